package apiv1

import (
	"campus-jobs-backend/controllers"
	notificationhandler "campus-jobs-backend/lib/notification"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	notificationapimodels "campus-jobs-backend/models/api/notification"
	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Put("read_all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary List
// @Tags Notification
// @Description In-app notifications of the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := notificationhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Mark read
// @Tags Notification
// @Description Mark one notification as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = notificationhandler.Instance.MarkRead(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update notification")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark all read
// @Tags Notification
// @Description Mark every notification of the current user as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
