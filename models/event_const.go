package models

type EventType string

const (
	EventTypeInterview EventType = "interview"
	EventTypeTest      EventType = "test"
	EventTypeMeeting   EventType = "meeting"
	EventTypeOther     EventType = "other"
)

func (t EventType) Validate() error {
	switch t {
	case EventTypeInterview, EventTypeTest, EventTypeMeeting, EventTypeOther:
		return nil
	}
	return NewValidationError("type", "unknown event type")
}

type EventStatus string

const (
	EventStatusScheduled   EventStatus = "scheduled"
	EventStatusCompleted   EventStatus = "completed"
	EventStatusCancelled   EventStatus = "cancelled"
	EventStatusRescheduled EventStatus = "rescheduled"
)

func (s EventStatus) Validate() error {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled, EventStatusRescheduled:
		return nil
	}
	return NewValidationError("status", "unknown event status")
}

func (s EventStatus) IsPending() bool {
	return s == EventStatusScheduled || s == EventStatusRescheduled
}

type AttendeeType string

const (
	AttendeeUser      AttendeeType = "user"
	AttendeeManager   AttendeeType = "manager"
	AttendeeCandidate AttendeeType = "candidate"
)
