package notificationstore

import (
	"time"

	notificationapimodels "campus-jobs-backend/models/api/notification"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error)
	ListCount(userID string, filter notificationapimodels.NotificationFilter) (rowCount int64, err error)
	ListUnread(userID string, limit int) (list []dbmodels.Notification, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.Model(&dbmodels.Notification{})
	i.addFilter(tx, userID, filter)
	page, limit := filter.GetPage()
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(userID string, filter notificationapimodels.NotificationFilter) (rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Notification{})
	i.addFilter(tx, userID, filter)
	err = tx.Count(&rowCount).Error
	return rowCount, err
}

func (i impl) ListUnread(userID string, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkRead(userID, id string) error {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).
		Error
}

func (i impl) addFilter(tx *gorm.DB, userID string, filter notificationapimodels.NotificationFilter) {
	tx.Where("user_id = ?", userID)
	if filter.UnreadOnly {
		tx.Where("is_read = ?", false)
	}
}
