package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid           = "pid"
	TagLatency       = "latency"
	TagStatus        = "status"
	TagMethod        = "method"
	TagPath          = "path"
	TagRoute         = "route"
	TagURL           = "url"
	TagIP            = "ip"
	TagUA            = "ua"
	TagBody          = "body"
	TagResBody       = "resBody"
	TagBytesReceived = "bytesReceived"
	TagBytesSent     = "bytesSent"
	RequestID        = "requestId"

	// bodies longer than this are cut in the log
	maxLoggedBody = 2048
)

// FuncTag extracts one log field from the request
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}

var tagFuncs = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Route().Path
	},
	TagURL: func(c *fiber.Ctx, _ *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagUA: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBody: func(c *fiber.Ctx, _ *data) interface{} {
		if c.Is("json") {
			return truncate(c.Body())
		}
		return ""
	},
	TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
		return truncate(c.Response().Body())
	},
	TagBytesReceived: func(c *fiber.Ctx, _ *data) interface{} {
		return len(c.Request().Body())
	},
	TagBytesSent: func(c *fiber.Ctx, _ *data) interface{} {
		return len(c.Response().Body())
	},
	RequestID: func(c *fiber.Ctx, _ *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
}

// getFuncTagMap keeps only the tags enabled in cfg
func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
