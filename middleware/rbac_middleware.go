package middleware

import (
	"campus-jobs-backend/lib/rbac"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// RbacMiddleware checks the token role against the rule registered for the route.
// Routes without a rule pass.
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || userRole == "" {
			return forbidden(ctx)
		}
		allow, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if found && !allow(userID, userRole, ctx.Path()) {
			log.WithFields(log.Fields{
				"user_id": userID,
				"role":    userRole,
				"method":  ctx.Method(),
				"path":    ctx.Path(),
			}).Debug("route denied by rbac")
			return forbidden(ctx)
		}
		return ctx.Next()
	}
}

func forbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("access denied"))
}
