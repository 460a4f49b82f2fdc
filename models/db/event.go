package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"campus-jobs-backend/models"
	"github.com/pkg/errors"
)

type Event struct {
	BaseModel
	JobID          string          `gorm:"type:varchar(36);index"`
	Job            *Job            `gorm:"foreignKey:JobID"`
	ApplicationID  *string         `gorm:"type:varchar(36);index"`
	Application    *JobApplication `gorm:"foreignKey:ApplicationID"`
	CreatedByID    string          `gorm:"type:varchar(36)"`
	Title          string          `gorm:"type:varchar(255)"`
	Description    string
	StartTime      time.Time `gorm:"index"`
	EndTime        time.Time
	Location       string             `gorm:"type:varchar(255)"`
	MeetingLink    string             `gorm:"type:varchar(255)"`
	Type           models.EventType   `gorm:"type:varchar(20)"`
	Status         models.EventStatus `gorm:"type:varchar(20);index"`
	Attendees      EventAttendees     `gorm:"type:jsonb"`
	ReminderSentAt *time.Time
}

type EventAttendee struct {
	ID   string              `json:"id"`
	Type models.AttendeeType `json:"type"`
}

type EventAttendees []EventAttendee

func (a EventAttendees) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}

func (a *EventAttendees) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported attendees type %T", value)
	}
	return json.Unmarshal(raw, a)
}
