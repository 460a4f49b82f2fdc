package eventstore

import (
	"time"

	"campus-jobs-backend/models"
	eventapimodels "campus-jobs-backend/models/api/event"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Event) (id string, err error)
	GetByID(id string) (rec *dbmodels.Event, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(companyIDs []string, filter eventapimodels.EventFilter) (list []dbmodels.Event, err error)
	ListCount(companyIDs []string, filter eventapimodels.EventFilter) (rowCount int64, err error)
	ListByApplication(applicationID string) (list []dbmodels.Event, err error)
	// DueReminders returns pending events starting in [from, to] without a sent reminder
	DueReminders(from, to time.Time) (list []dbmodels.Event, err error)
	MarkReminderSent(id string, at time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Event) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Event, error) {
	rec := dbmodels.Event{}
	err := i.db.
		Preload("Job").
		Preload("Application.User").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	upd := i.db.
		Model(&dbmodels.Event{}).
		Where("id = ?", id).
		Updates(updMap)
	if upd.Error != nil {
		return upd.Error
	}
	if upd.RowsAffected == 0 {
		return models.NewNotFound("event")
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Event{}).
		Error
}

func (i impl) List(companyIDs []string, filter eventapimodels.EventFilter) (list []dbmodels.Event, err error) {
	list = []dbmodels.Event{}
	tx := i.db.Model(&dbmodels.Event{})
	i.addFilter(tx, companyIDs, filter)
	page, limit := filter.GetPage()
	err = tx.
		Preload("Job").
		Preload("Application.User").
		Order("events.start_time").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(companyIDs []string, filter eventapimodels.EventFilter) (rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Event{})
	i.addFilter(tx, companyIDs, filter)
	err = tx.Count(&rowCount).Error
	return rowCount, err
}

func (i impl) addFilter(tx *gorm.DB, companyIDs []string, filter eventapimodels.EventFilter) {
	tx.Joins("JOIN jobs ON jobs.id = events.job_id")
	if len(companyIDs) == 0 {
		tx.Where("1 = 0")
	} else {
		tx.Where("jobs.company_id in (?)", companyIDs)
	}
	if filter.JobID != "" {
		tx.Where("events.job_id = ?", filter.JobID)
	}
	if filter.ApplicationID != "" {
		tx.Where("events.application_id = ?", filter.ApplicationID)
	}
	if filter.Status != "" {
		tx.Where("events.status = ?", filter.Status)
	}
	from, to := filter.GetRange()
	if from != nil {
		tx.Where("events.start_time >= ?", *from)
	}
	if to != nil {
		tx.Where("events.start_time <= ?", *to)
	}
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.Event, err error) {
	list = []dbmodels.Event{}
	err = i.db.
		Where("application_id = ?", applicationID).
		Order("start_time").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DueReminders(from, to time.Time) (list []dbmodels.Event, err error) {
	list = []dbmodels.Event{}
	err = i.db.
		Preload("Application").
		Where("status in (?)", []models.EventStatus{models.EventStatusScheduled, models.EventStatusRescheduled}).
		Where("reminder_sent_at is null").
		Where("start_time between ? and ?", from, to).
		Order("start_time").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkReminderSent(id string, at time.Time) error {
	return i.db.
		Model(&dbmodels.Event{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at).
		Error
}
