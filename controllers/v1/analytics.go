package apiv1

import (
	"campus-jobs-backend/controllers"
	analyticshandler "campus-jobs-backend/lib/analytics"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	analyticsapimodels "campus-jobs-backend/models/api/analytics"
	"github.com/gofiber/fiber/v2"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app *fiber.App) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Get("dashboard", controller.dashboard)
	})
}

// @Summary Dashboard
// @Tags Analytics
// @Description Hiring dashboard. Unknown companies or jobs and unparseable dates are ignored.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   company_id			query		string	false	"company id"
// @Param   job_id				query		string	false	"job id"
// @Param   start_date			query		string	false	"YYYY-MM-DD"
// @Param   end_date			query		string	false	"YYYY-MM-DD"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.Dashboard}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/dashboard [get]
func (c *analyticsApiController) dashboard(ctx *fiber.Ctx) error {
	var payload analyticsapimodels.DashboardRequest
	if err := ctx.QueryParser(&payload); err != nil {
		// the filter is lenient, malformed query falls back to defaults
		c.GetLogger(ctx).WithError(err).Debug("dashboard query ignored")
		payload = analyticsapimodels.DashboardRequest{}
	}
	result, err := analyticshandler.Instance.Dashboard(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build dashboard")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
