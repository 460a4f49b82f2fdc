package fiberlog

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Logger defaults to the logrus standard logger
	Logger *logrus.Logger
	Tags   []string
	// Skip drops the request from the log when it returns true
	Skip func(c *fiber.Ctx) bool
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
	Skip: SkipPreflight,
}

func SkipPreflight(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodOptions
}

// SkipPrefixes skips preflight requests and every path under the given prefixes
func SkipPrefixes(prefixes ...string) func(c *fiber.Ctx) bool {
	return func(c *fiber.Ctx) bool {
		if SkipPreflight(c) {
			return true
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return true
			}
		}
		return false
	}
}
