package apiv1

import (
	"campus-jobs-backend/controllers"
	"campus-jobs-backend/lib/rbac"
	"campus-jobs-backend/middleware"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
)

type userApiController struct {
	controllers.BaseAPIController
}

type UserView struct {
	ID          string                                `json:"id"`
	Name        string                                `json:"name"`
	Role        models.UserRole                       `json:"role"`
	Permissions map[models.Module][]models.Permission `json:"permissions"`
}

func InitUserApiRouters(app *fiber.App) {
	controller := userApiController{}
	app.Route("user", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Get("me", controller.me)
	})
}

// @Summary Current user
// @Tags User
// @Description Identity from the token and the permissions of its role
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=apiv1.UserView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/user/me [get]
func (c *userApiController) me(ctx *fiber.Ctx) error {
	role := middleware.GetUserRole(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(UserView{
		ID:          middleware.GetUserID(ctx),
		Name:        middleware.GetUserName(ctx),
		Role:        role,
		Permissions: rbac.Instance.GetPermissions(role),
	}))
}
