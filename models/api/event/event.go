package eventapimodels

import (
	"encoding/json"
	"strings"
	"time"

	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const attendeesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "type"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "type": {"type": "string", "enum": ["user", "candidate", "manager"]}
    },
    "additionalProperties": false
  }
}`

var attendeesSchemaLoader = gojsonschema.NewStringLoader(attendeesSchema)

type EventData struct {
	JobID         string           `json:"job_id"`         // Job id
	ApplicationID *string          `json:"application_id"` // Application id
	Title         string           `json:"title"`          // Title
	Description   string           `json:"description"`    // Description
	StartTime     time.Time        `json:"start_time"`     // Start, RFC3339
	EndTime       time.Time        `json:"end_time"`       // End, RFC3339
	Location      string           `json:"location"`       // Location
	MeetingLink   string           `json:"meeting_link"`   // Online meeting link
	Type          models.EventType `json:"type"`           // interview/test/meeting/other
	Attendees     json.RawMessage  `json:"attendees"`      // [{id, type}]
}

func (e EventData) Validate() error {
	if e.JobID == "" {
		return models.NewValidationError("job_id", "job is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return models.NewValidationError("title", "title is required")
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return models.NewValidationError("start_time", "time window is required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return models.NewValidationError("end_time", "end time must be after start time")
	}
	if err := e.Type.Validate(); err != nil {
		return err
	}
	if _, err := e.GetAttendees(); err != nil {
		return err
	}
	return nil
}

func (e EventData) GetAttendees() (dbmodels.EventAttendees, error) {
	if len(e.Attendees) == 0 || string(e.Attendees) == "null" {
		return dbmodels.EventAttendees{}, nil
	}
	result, err := gojsonschema.Validate(attendeesSchemaLoader, gojsonschema.NewBytesLoader(e.Attendees))
	if err != nil {
		return nil, models.NewValidationError("attendees", "attendees must be a list")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, models.NewValidationError("attendees", strings.Join(msgs, "; "))
	}
	attendees := dbmodels.EventAttendees{}
	if err = json.Unmarshal(e.Attendees, &attendees); err != nil {
		return nil, errors.Wrap(err, "attendees decode")
	}
	return attendees, nil
}

type EventView struct {
	ID            string                  `json:"id"`
	JobID         string                  `json:"job_id"`
	JobTitle      string                  `json:"job_title"`
	ApplicationID *string                 `json:"application_id"`
	CandidateName string                  `json:"candidate_name"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	StartTime     time.Time               `json:"start_time"`
	EndTime       time.Time               `json:"end_time"`
	Location      string                  `json:"location"`
	MeetingLink   string                  `json:"meeting_link"`
	Type          models.EventType        `json:"type"`
	Status        models.EventStatus      `json:"status"`
	Attendees     dbmodels.EventAttendees `json:"attendees"`
}

func EventConvert(rec dbmodels.Event) EventView {
	result := EventView{
		ID:            rec.ID,
		JobID:         rec.JobID,
		ApplicationID: rec.ApplicationID,
		Title:         rec.Title,
		Description:   rec.Description,
		StartTime:     rec.StartTime,
		EndTime:       rec.EndTime,
		Location:      rec.Location,
		MeetingLink:   rec.MeetingLink,
		Type:          rec.Type,
		Status:        rec.Status,
		Attendees:     rec.Attendees,
	}
	if result.Attendees == nil {
		result.Attendees = dbmodels.EventAttendees{}
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
	}
	if rec.Application != nil && rec.Application.User != nil {
		result.CandidateName = rec.Application.User.Name
	}
	return result
}

type EventFilter struct {
	apimodels.Pagination
	JobID         string             `json:"job_id"`         // Job id
	ApplicationID string             `json:"application_id"` // Application id
	Status        models.EventStatus `json:"status"`         // Event status
	From          string             `json:"from"`           // YYYY-MM-DD
	To            string             `json:"to"`             // YYYY-MM-DD
}

// GetRange returns the parsed bounds, unparseable dates are ignored
func (f EventFilter) GetRange() (from, to *time.Time) {
	if t, err := time.ParseInLocation(apimodels.DateFormat, f.From, time.Local); err == nil {
		from = &t
	}
	if t, err := time.ParseInLocation(apimodels.DateFormat, f.To, time.Local); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to
}
