package controllers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http/httptest"
	"testing"

	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"access denied", models.NewAccessDenied("company is not managed by the user"), fiber.StatusForbidden, "company is not managed by the user"},
		{"not found", errors.Wrap(models.NewNotFound("job"), "loading"), fiber.StatusNotFound, "loading: job not found"},
		{"validation", models.NewValidationError("title", "title is required"), fiber.StatusBadRequest, "title is required"},
		{"policy", models.NewPolicyError("job has applications"), fiber.StatusConflict, "job has applications"},
		{"internal", errors.New("connection refused"), fiber.StatusInternalServerError, "job update failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(ctx *fiber.Ctx) error {
				return c.SendError(ctx, c.GetLogger(ctx), tc.err, "job update failed")
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var result apimodels.Response
			require.NoError(t, json.Unmarshal(body, &result))
			require.Equal(t, "fail", result.Status)
			require.Equal(t, tc.message, result.Message)
		})
	}
}

func TestGetID(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/job/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return c.SendFail(ctx, err)
		}
		return ctx.SendString(id)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/job/abc", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "abc", string(body))
}

func TestSendFileDisposition(t *testing.T) {
	c := BaseAPIController{}
	cases := []struct {
		name     string
		fileName string
		inline   bool
		kind     string
	}{
		{"plain", "resume.pdf", false, "attachment"},
		{"quotes", `cv "final".pdf`, false, "attachment"},
		{"unicode", "résumé.pdf", true, "inline"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/file", func(ctx *fiber.Ctx) error {
				return c.SendFile(ctx, []byte("body"), tc.fileName, "application/pdf", tc.inline)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/file", nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			kind, params, err := mime.ParseMediaType(resp.Header.Get(fiber.HeaderContentDisposition))
			require.NoError(t, err)
			require.Equal(t, tc.kind, kind)
			require.Equal(t, tc.fileName, params["filename"])
		})
	}
}
