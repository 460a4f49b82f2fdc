package messageapimodels

import (
	"strings"

	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	dbmodels "campus-jobs-backend/models/db"
)

type ConversationView struct {
	ID            string `json:"id"`
	ManagerID     string `json:"manager_id"`
	ManagerName   string `json:"manager_name"`
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	Subject       string `json:"subject"`
	IsArchived    bool   `json:"is_archived"`
	LastMessageAt string `json:"last_message_at"`
	UnreadCount   int64  `json:"unread_count"`
}

func ConversationConvert(rec dbmodels.Conversation) ConversationView {
	result := ConversationView{
		ID:          rec.ID,
		ManagerID:   rec.ManagerID,
		CandidateID: rec.CandidateID,
		Subject:     rec.Subject,
		IsArchived:  rec.IsArchived,
	}
	if rec.JobID != nil {
		result.JobID = *rec.JobID
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
	}
	if rec.Manager != nil {
		result.ManagerName = rec.Manager.Name
	}
	if rec.Candidate != nil {
		result.CandidateName = rec.Candidate.Name
	}
	if rec.LastMessageAt != nil {
		result.LastMessageAt = rec.LastMessageAt.Format(apimodels.DateTimeFormat)
	}
	return result
}

type MessageView struct {
	ID             string `json:"id"`
	SenderID       string `json:"sender_id"`
	SenderName     string `json:"sender_name"`
	ReceiverID     string `json:"receiver_id"`
	Body           string `json:"body"`
	AttachmentName string `json:"attachment_name,omitempty"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      string `json:"created_at"`
}

func MessageConvert(rec dbmodels.Message) MessageView {
	result := MessageView{
		ID:             rec.ID,
		SenderID:       rec.SenderID,
		ReceiverID:     rec.ReceiverID,
		Body:           rec.Body,
		AttachmentName: rec.AttachmentName,
		IsRead:         rec.IsRead,
		CreatedAt:      rec.CreatedAt.Format(apimodels.DateTimeFormat),
	}
	if rec.Sender != nil {
		result.SenderName = rec.Sender.Name
	}
	return result
}

type ConversationFilter struct {
	apimodels.Pagination
	Archived bool   `json:"archived"` // Show archived conversations
	Search   string `json:"search"`   // Subject search
}

type StartRequest struct {
	CandidateID string  `json:"candidate_id" form:"candidate_id"` // Candidate id
	JobID       *string `json:"job_id" form:"job_id"`             // Job id
	Subject     string  `json:"subject" form:"subject"`           // Subject
	Body        string  `json:"body" form:"body"`                 // First message
}

func (r StartRequest) Validate() error {
	if r.CandidateID == "" {
		return models.NewValidationError("candidate_id", "candidate is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return models.NewValidationError("subject", "subject is required")
	}
	if len(r.Subject) > 255 {
		return models.NewValidationError("subject", "subject must not exceed 255 characters")
	}
	return validateBody(r.Body)
}

type SendRequest struct {
	Body string `json:"body" form:"body"` // Message text
}

func (r SendRequest) Validate() error {
	return validateBody(r.Body)
}

func validateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("body", "message is required")
	}
	if len(body) > 5000 {
		return models.NewValidationError("body", "message must not exceed 5000 characters")
	}
	return nil
}

type ArchiveRequest struct {
	Archived bool `json:"archived"` // true to archive, false to restore
}

type ResponseTimeBuckets struct {
	UnderHour int `json:"under_hour"` // < 60 min
	UnderDay  int `json:"under_day"`  // < 1 day
	UnderWeek int `json:"under_week"` // < 1 week
	OverWeek  int `json:"over_week"`  // >= 1 week
}

type ResponseMetrics struct {
	TotalConversations  int                 `json:"total_conversations"`
	Responded           int                 `json:"responded"`
	AverageResponseTime float64             `json:"average_response_time"` // minutes
	ResponseRate        float64             `json:"response_rate"`         // percent
	Distribution        ResponseTimeBuckets `json:"distribution"`
}

const AttachmentMaxSize = 10 * 1024 * 1024
