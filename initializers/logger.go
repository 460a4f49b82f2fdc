package initializers

import (
	"campus-jobs-backend/fiberlog"
	log "github.com/sirupsen/logrus"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger configures the global logger and returns the request logger config.
// The level is applied later by SetLogLevel once the configuration is loaded.
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(log.InfoLevel)

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
		Skip: fiberlog.SkipPrefixes("/api/v1/ws"),
	}
}

func SetLogLevel(level string) {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warnf("unknown log level %q, keeping %s", level, log.GetLevel())
		return
	}
	log.SetLevel(parsed)
}
