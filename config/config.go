package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"20971520" env:"APP_BODY_LIMIT"`
		LogLevel   string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"campus-jobs" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MaxOpenConns   int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns   int    `default:"5" env:"DB_MAX_IDLE_CONNS"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Redis struct {
		URL             string `default:"" env:"REDIS_URL"`
		CacheTTLSeconds int    `default:"300" env:"REDIS_CACHE_TTL_SECONDS"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"campus-jobs" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		Sender     string `default:"no-reply@campus-jobs.local" env:"SMTP_SENDER"`
	}
	Notification struct {
		QueueBatchSize      int `default:"500" env:"NOTIFICATION_QUEUE_BATCH_SIZE"`
		WorkerIntervalInSec int `default:"10" env:"NOTIFICATION_WORKER_INTERVAL_IN_SEC"`
		MaxAttempts         int `default:"3" env:"NOTIFICATION_MAX_ATTEMPTS"`
	}
	Scheduler struct {
		EventReminderSpec   string `default:"@every 5m" env:"SCHEDULER_EVENT_REMINDER_SPEC"`
		EventReminderLeadIn int    `default:"24" env:"SCHEDULER_EVENT_REMINDER_LEAD_HOURS"`
		QueuePurgeSpec      string `default:"@daily" env:"SCHEDULER_QUEUE_PURGE_SPEC"`
		QueueRetentionDays  int    `default:"30" env:"SCHEDULER_QUEUE_RETENTION_DAYS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env is optional, values from the environment take precedence
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not loaded")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
