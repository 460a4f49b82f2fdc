package dict

import (
	"campus-jobs-backend/controllers"
	applicationstatusprovider "campus-jobs-backend/lib/dicts/application-status"
	categoryprovider "campus-jobs-backend/lib/dicts/category"
	hiringstageprovider "campus-jobs-backend/lib/dicts/hiring-stage"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
)

type dictApiController struct {
	controllers.BaseAPIController
}

func InitCategoryDictApiRouters(app *fiber.App) {
	controller := dictApiController{}
	app.Route("category", func(router fiber.Router) {
		router.Get("list", controller.categoryList)
	})
}

func InitHiringStageDictApiRouters(app *fiber.App) {
	controller := dictApiController{}
	app.Route("hiring_stage", func(router fiber.Router) {
		router.Get("list", controller.hiringStageList)
	})
}

func InitApplicationStatusDictApiRouters(app *fiber.App) {
	controller := dictApiController{}
	app.Route("application_status", func(router fiber.Router) {
		router.Get("list", controller.applicationStatusList)
	})
}

// @Summary Categories
// @Tags Dict
// @Description Job categories
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CategoryView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/list [get]
func (c *dictApiController) categoryList(ctx *fiber.Ctx) error {
	list, err := categoryprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load categories")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Hiring stages
// @Tags Dict
// @Description Hiring stages ordered by order index
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.HiringStageView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/hiring_stage/list [get]
func (c *dictApiController) hiringStageList(ctx *fiber.Ctx) error {
	list, err := hiringstageprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load hiring stages")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Application statuses
// @Tags Dict
// @Description Application statuses
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.ApplicationStatusView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/application_status/list [get]
func (c *dictApiController) applicationStatusList(ctx *fiber.Ctx) error {
	list, err := applicationstatusprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load application statuses")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
