package db

import (
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	entities := []interface{}{
		&dbmodels.Role{},
		&dbmodels.User{},
		&dbmodels.Company{},
		&dbmodels.CompanyManager{},
		&dbmodels.Category{},
		&dbmodels.HiringStage{},
		&dbmodels.ApplicationStatus{},
		&dbmodels.Job{},
		&dbmodels.JobHiringStage{},
		&dbmodels.JobApplication{},
		&dbmodels.ApplicationStageHistory{},
		&dbmodels.Event{},
		&dbmodels.Conversation{},
		&dbmodels.Message{},
		&dbmodels.Notification{},
		&dbmodels.NotificationQueue{},
	}
	for _, entity := range entities {
		if err := DB.AutoMigrate(entity); err != nil {
			return errors.Wrapf(err, "migration of %T failed", entity)
		}
	}
	log.Info("migrations applied")
	return nil
}
