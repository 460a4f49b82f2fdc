package db

import (
	"context"
	"fmt"
	"time"

	gormlogrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Settings struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxOpenConns int
	MaxIdleConns int
	Debug        bool
	Migrate      bool
}

func (s Settings) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		s.Host, s.Port, s.User, s.Name, s.Password)
}

func Connect(settings Settings) error {
	if DB != nil {
		return nil
	}
	conn, err := gorm.Open(postgres.Open(settings.dsn()), &gorm.Config{
		Logger: gormlogrus.New(),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return errors.Wrap(err, "database connection failed")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "database pool unavailable")
	}
	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.Debug {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	DB = conn
	if settings.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithField("db_name", settings.Name).Info("database connected")
	return nil
}

func PingDB(ctx context.Context) error {
	if DB == nil {
		return errors.New("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
