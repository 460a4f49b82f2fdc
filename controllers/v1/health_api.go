package apiv1

import (
	"context"
	"time"

	"campus-jobs-backend/controllers"
	"campus-jobs-backend/db"
	"campus-jobs-backend/lib/cache"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
)

type healthApiController struct {
	controllers.BaseAPIController
	checks map[string]func(ctx context.Context) error
}

type HealthView struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func InitHealthApiRouters(app *fiber.App) {
	controller := healthApiController{
		checks: map[string]func(ctx context.Context) error{
			"database": db.PingDB,
			"cache": func(ctx context.Context) error {
				return cache.Instance.Ping(ctx)
			},
		},
	}
	app.Get("health", controller.health)
}

// @Summary Health
// @Tags Health
// @Description Database and cache availability
// @Success 200 {object} apimodels.Response{data=apiv1.HealthView}
// @Failure 503 {object} apimodels.Response{data=apiv1.HealthView}
// @router /api/v1/health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	checkCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()
	result := map[string]string{}
	healthy := true
	for name, check := range c.checks {
		result[name] = "ok"
		if err := check(checkCtx); err != nil {
			c.GetLogger(ctx).WithError(err).WithField("check", name).Warn("health check failed")
			result[name] = "unavailable"
			healthy = false
		}
	}
	view := HealthView{Database: result["database"], Cache: result["cache"]}
	if !healthy {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.Response{
			Status:  "fail",
			Message: "service degraded",
			Data:    view,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
