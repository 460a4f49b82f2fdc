package middleware

import (
	"net/http/httptest"
	"testing"

	"campus-jobs-backend/config"
	"campus-jobs-backend/lib/rbac"
	authutils "campus-jobs-backend/lib/utils/auth-utils"
	"campus-jobs-backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationAndRbac(t *testing.T) {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	config.Conf = conf
	rbac.NewHandler()

	app := fiber.New()
	handler := func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserName(ctx))
	}
	app.Get("/api/v1/analytics/dashboard", AuthorizationRequired(), RbacMiddleware(), handler)
	app.Get("/api/v1/unlisted", AuthorizationRequired(), RbacMiddleware(), handler)

	request := func(path string, role models.UserRole) int {
		req := httptest.NewRequest("GET", path, nil)
		if role != "" {
			token, err := authutils.GetToken("u1", "Ann", role)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusUnauthorized, request("/api/v1/analytics/dashboard", ""))
	require.Equal(t, fiber.StatusOK, request("/api/v1/analytics/dashboard", models.RoleManager))
	require.Equal(t, fiber.StatusForbidden, request("/api/v1/analytics/dashboard", models.RoleCandidate))
	require.Equal(t, fiber.StatusOK, request("/api/v1/unlisted", models.RoleCandidate))
}
