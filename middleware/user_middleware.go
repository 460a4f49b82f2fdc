package middleware

import (
	authutils "campus-jobs-backend/lib/utils/auth-utils"
	"campus-jobs-backend/models"
	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetUserID(ctx)
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return authutils.GetUserRole(ctx)
}

func GetUserName(ctx *fiber.Ctx) string {
	return authutils.GetUserName(ctx)
}
