package dbmodels

import (
	"time"

	"campus-jobs-backend/models"
)

type Notification struct {
	BaseModel
	UserID   string                  `gorm:"type:varchar(36);index:idx_notification_user"`
	Code     models.NotificationCode `gorm:"type:varchar(100)"`
	Title    string
	Msg      string
	EntityID string `gorm:"type:varchar(36)"`
	IsRead   bool   `gorm:"index:idx_notification_user"`
	ReadAt   *time.Time
}

// NotificationQueue is an outbox row drained by the notification worker
type NotificationQueue struct {
	BaseModel
	UserID   string                  `gorm:"type:varchar(36)"`
	Code     models.NotificationCode `gorm:"type:varchar(100)"`
	Title    string
	Msg      string
	EntityID string             `gorm:"type:varchar(36)"`
	Status   models.QueueStatus `gorm:"type:varchar(20);index"`
	Attempts int
	LastErr  string
	SentAt   *time.Time
}

func (q NotificationQueue) Data() models.NotificationData {
	return models.NotificationData{
		Code:     q.Code,
		Title:    q.Title,
		Msg:      q.Msg,
		EntityID: q.EntityID,
	}
}
