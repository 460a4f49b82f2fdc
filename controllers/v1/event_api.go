package apiv1

import (
	"campus-jobs-backend/controllers"
	eventhandler "campus-jobs-backend/lib/event"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	eventapimodels "campus-jobs-backend/models/api/event"
	"github.com/gofiber/fiber/v2"
)

type eventApiController struct {
	controllers.BaseAPIController
}

func InitEventApiRouters(app *fiber.App) {
	controller := eventApiController{}
	app.Route("event", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("cancel", controller.cancel)
			idRoute.Put("complete", controller.complete)
		})
	})
}

// @Summary List
// @Tags Event
// @Description Interviews and other events of the managed jobs
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 eventapimodels.EventFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]eventapimodels.EventView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/list [post]
func (c *eventApiController) list(ctx *fiber.Ctx) error {
	var payload eventapimodels.EventFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := eventhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load events")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create
// @Tags Event
// @Description Schedule an event, the candidate is notified
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 eventapimodels.EventData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event [post]
func (c *eventApiController) create(ctx *fiber.Ctx) error {
	var payload eventapimodels.EventData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	id, err := eventhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Event scheduled successfully.", id))
}

// @Summary Get by ID
// @Tags Event
// @Description Event details
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=eventapimodels.EventView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/{id} [get]
func (c *eventApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	item, err := eventhandler.Instance.Get(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update
// @Tags Event
// @Description Update an event, a new time window marks it rescheduled
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 eventapimodels.EventData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/{id} [put]
func (c *eventApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload eventapimodels.EventData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = eventhandler.Instance.Update(middleware.GetUserID(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Event updated successfully.", nil))
}

// @Summary Delete
// @Tags Event
// @Description Delete an event
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/{id} [delete]
func (c *eventApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = eventhandler.Instance.Delete(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Event deleted successfully.", nil))
}

// @Summary Cancel
// @Tags Event
// @Description Cancel a pending event, the candidate is notified
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/{id}/cancel [put]
func (c *eventApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = eventhandler.Instance.Cancel(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to cancel event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Event cancelled successfully.", nil))
}

// @Summary Complete
// @Tags Event
// @Description Mark the event as completed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/event/{id}/complete [put]
func (c *eventApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = eventhandler.Instance.Complete(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to complete event")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Event completed.", nil))
}
