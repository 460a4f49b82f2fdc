package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRequestLogged(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagPath, TagStatus, TagBody}}))
	app.Post("/job", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusBadRequest).SendString("bad")
	})

	req := httptest.NewRequest("POST", "/job", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "warning", entry["level"])
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/job", entry["path"])
	require.Equal(t, float64(400), entry["status"])
	require.Equal(t, `{"title":""}`, entry["body"])
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxLoggedBody+10)
	require.Len(t, truncate([]byte(long)), maxLoggedBody+3)
	require.Equal(t, "short", truncate([]byte("short")))
}

func TestSkipAndErrorLevel(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagPath}, Skip: SkipPrefixes("/swagger")}))
	app.Get("/swagger/index.html", func(ctx *fiber.Ctx) error {
		return ctx.SendString("docs")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/swagger/index.html", nil))
	require.NoError(t, err)
	require.Zero(t, out.Len())

	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "/boom", entry["path"])
}
