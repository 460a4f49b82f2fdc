package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}
	if cfg.Skip == nil {
		cfg.Skip = SkipPreflight
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if cfg.Skip(c) {
			return err
		}
		entry := cfg.Logger.WithFields(fields(ftm, c, d))
		status := c.Response().StatusCode()
		if err != nil {
			// the app error handler sets the status after the chain returns
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("api request")
		case status >= fiber.StatusMultipleChoices:
			entry.Warn("api request")
		default:
			entry.Info("api request")
		}
		return err
	}
}

// fields evaluates the tags, empty strings are left out
func fields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		value := ft(c, d)
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		f[k] = value
	}
	return f
}
