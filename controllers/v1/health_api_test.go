package apiv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		cache  func(ctx context.Context) error
		status int
		want   string
	}{
		{name: "healthy", cache: ok, status: fiber.StatusOK, want: "ok"},
		{name: "cache down", cache: down, status: fiber.StatusServiceUnavailable, want: "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controller := healthApiController{checks: map[string]func(ctx context.Context) error{
				"database": ok,
				"cache":    tc.cache,
			}}
			app := fiber.New()
			app.Get("/health", controller.health)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out struct {
				apimodels.Response
				Data HealthView `json:"data"`
			}
			require.NoError(t, json.Unmarshal(body, &out))
			require.Equal(t, "ok", out.Data.Database)
			require.Equal(t, tc.want, out.Data.Cache)
		})
	}
}
