package notificationqueuestore

import (
	"time"

	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	"gorm.io/gorm"
)

type Provider interface {
	InsertBatch(list []dbmodels.NotificationQueue) error
	ListPending(limit, maxAttempts int) (list []dbmodels.NotificationQueue, err error)
	MarkSent(id string) error
	MarkFailed(id string, attempts int, errMsg string, final bool) error
	Purge(before time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) InsertBatch(list []dbmodels.NotificationQueue) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.CreateInBatches(&list, len(list)).Error
}

func (i impl) ListPending(limit, maxAttempts int) (list []dbmodels.NotificationQueue, err error) {
	list = []dbmodels.NotificationQueue{}
	err = i.db.
		Where("status = ?", models.QueueStatusPending).
		Where("attempts < ?", maxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSent(id string) error {
	return i.db.
		Model(&dbmodels.NotificationQueue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.QueueStatusSent,
			"sent_at": time.Now(),
		}).
		Error
}

func (i impl) MarkFailed(id string, attempts int, errMsg string, final bool) error {
	status := models.QueueStatusPending
	if final {
		status = models.QueueStatusFailed
	}
	return i.db.
		Model(&dbmodels.NotificationQueue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"attempts": attempts,
			"last_err": errMsg,
		}).
		Error
}

func (i impl) Purge(before time.Time) (int64, error) {
	tx := i.db.
		Where("status in (?)", []models.QueueStatus{models.QueueStatusSent, models.QueueStatusFailed}).
		Where("updated_at < ?", before).
		Delete(&dbmodels.NotificationQueue{})
	return tx.RowsAffected, tx.Error
}
