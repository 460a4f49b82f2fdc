package applicationapimodels

import (
	"strings"

	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	eventapimodels "campus-jobs-backend/models/api/event"
	dbmodels "campus-jobs-backend/models/db"
)

type ApplicationView struct {
	ID            string `json:"id"`
	JobID         string `json:"job_id"`
	JobTitle      string `json:"job_title"`
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name"`
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	Email         string `json:"email"`
	StatusID      string `json:"status_id"`
	StatusName    string `json:"status_name"`
	StatusColor   string `json:"status_color"`
	StageID       string `json:"stage_id"`
	StageName     string `json:"stage_name"`
	CoverLetter   string `json:"cover_letter"`
	HasResume     bool   `json:"has_resume"`
	Notes         string `json:"notes"`
	IsFavorite    bool   `json:"is_favorite"`
	CreatedAt     string `json:"created_at"`
}

type ApplicationViewExt struct {
	ApplicationView
	History []HistoryView              `json:"history"`
	Events  []eventapimodels.EventView `json:"events"`
}

type HistoryView struct {
	StageID       string `json:"stage_id"`
	StageName     string `json:"stage_name"`
	ChangedByName string `json:"changed_by_name"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
}

func ApplicationConvert(rec dbmodels.JobApplication) ApplicationView {
	result := ApplicationView{
		ID:          rec.ID,
		JobID:       rec.JobID,
		CandidateID: rec.UserID,
		StatusID:    rec.StatusID,
		CoverLetter: rec.CoverLetter,
		HasResume:   rec.Resume != "",
		Notes:       rec.Notes,
		IsFavorite:  rec.IsFavorite,
		CreatedAt:   rec.CreatedAt.Format(apimodels.DateTimeFormat),
	}
	if rec.StageID != nil {
		result.StageID = *rec.StageID
	}
	if rec.Stage != nil {
		result.StageName = rec.Stage.Name
	}
	if rec.Status != nil {
		result.StatusName = rec.Status.Name
		result.StatusColor = rec.Status.Color
	}
	if rec.User != nil {
		result.CandidateName = rec.User.Name
		result.Email = rec.User.Email
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
		result.CompanyID = rec.Job.CompanyID
		if rec.Job.Company != nil {
			result.CompanyName = rec.Job.Company.Name
		}
	}
	return result
}

func ApplicationExtConvert(rec dbmodels.JobApplication) ApplicationViewExt {
	result := ApplicationViewExt{
		ApplicationView: ApplicationConvert(rec),
		History:         make([]HistoryView, 0, len(rec.History)),
		Events:          []eventapimodels.EventView{},
	}
	for _, h := range rec.History {
		result.History = append(result.History, HistoryConvert(h))
	}
	return result
}

func HistoryConvert(rec dbmodels.ApplicationStageHistory) HistoryView {
	result := HistoryView{
		StageID:       rec.StageID,
		ChangedByName: models.SystemUser,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt.Format(apimodels.DateTimeFormat),
	}
	if rec.Stage != nil {
		result.StageName = rec.Stage.Name
	}
	if rec.ChangedBy != nil {
		result.ChangedByName = rec.ChangedBy.Name
	}
	return result
}

type ApplicationFilter struct {
	apimodels.Pagination
	CompanyID string `json:"company_id"` // Company id
	JobID     string `json:"job_id"`     // Job id
	StatusID  string `json:"status_id"`  // Application status id
	StageID   string `json:"stage_id"`   // Hiring stage id
	Favorite  *bool  `json:"favorite"`   // Only favorites
	Search    string `json:"search"`     // Candidate name or e-mail
}

type StatusRequest struct {
	StatusID string `json:"status_id"` // New status id
}

func (r StatusRequest) Validate() error {
	if r.StatusID == "" {
		return models.NewValidationError("status_id", "status is required")
	}
	return nil
}

type StageRequest struct {
	StageID string `json:"stage_id"` // New hiring stage id
	Notes   string `json:"notes"`    // Comment for the history
}

func (r StageRequest) Validate() error {
	if r.StageID == "" {
		return models.NewValidationError("stage_id", "stage is required")
	}
	if len(r.Notes) > 1000 {
		return models.NewValidationError("notes", "notes must not exceed 1000 characters")
	}
	return nil
}

type NotesRequest struct {
	Notes string `json:"notes"` // Manager notes
}

func (r NotesRequest) Validate() error {
	if len(r.Notes) > 5000 {
		return models.NewValidationError("notes", "notes must not exceed 5000 characters")
	}
	return nil
}

type SubmitRequest struct {
	CoverLetter string `json:"cover_letter" form:"cover_letter"` // Cover letter
}

func (r SubmitRequest) Validate() error {
	if len(strings.TrimSpace(r.CoverLetter)) > 10000 {
		return models.NewValidationError("cover_letter", "cover letter is too long")
	}
	return nil
}

var ResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

const ResumeMaxSize = 5 * 1024 * 1024

const ExportLimit = 1000
