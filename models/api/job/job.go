package jobapimodels

import (
	"strings"
	"time"

	"campus-jobs-backend/lib/utils/helpers"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	dictapimodels "campus-jobs-backend/models/api/dict"
	dbmodels "campus-jobs-backend/models/db"
)

type JobData struct {
	CompanyID          string                 `json:"company_id"`          // Company id
	CategoryID         *string                `json:"category_id"`         // Category id
	Title              string                 `json:"title"`               // Job title
	Description        string                 `json:"description"`         // Description
	Requirements       string                 `json:"requirements"`        // Requirements
	Responsibilities   string                 `json:"responsibilities"`    // Responsibilities
	Location           string                 `json:"location"`            // Location
	IsRemote           bool                   `json:"is_remote"`           // Remote work allowed
	JobType            models.JobType         `json:"job_type"`            // full_time/part_time/contract/internship/freelance
	ExperienceLevel    models.ExperienceLevel `json:"experience_level"`    // entry/junior/mid/senior/lead
	SalaryMin          *int                   `json:"salary_min"`          // Salary from
	SalaryMax          *int                   `json:"salary_max"`          // Salary to
	IsSalaryVisible    bool                   `json:"is_salary_visible"`   // Show salary to candidates
	Vacancies          int                    `json:"vacancies"`           // Number of openings
	Skills             []string               `json:"skills"`              // Required skills
	SubmissionDeadline string                 `json:"submission_deadline"` // Deadline YYYY-MM-DD
	Status             models.JobStatus       `json:"status"`              // draft/active/closed, wins over is_active
	IsActive           *bool                  `json:"is_active"`           // Legacy activity flag
	HiringStages       []string               `json:"hiring_stages"`       // Ordered stage ids, default stages when empty
}

// Validate checks the payload. now is the reference for the deadline check,
// a zero now skips it.
func (j JobData) Validate(now time.Time) error {
	if j.CompanyID == "" {
		return models.NewValidationError("company_id", "company is required")
	}
	if strings.TrimSpace(j.Title) == "" {
		return models.NewValidationError("title", "title is required")
	}
	if len(j.Title) > 255 {
		return models.NewValidationError("title", "title must not exceed 255 characters")
	}
	if strings.TrimSpace(j.Description) == "" {
		return models.NewValidationError("description", "description is required")
	}
	if err := j.JobType.Validate(); err != nil {
		return err
	}
	if err := j.ExperienceLevel.Validate(); err != nil {
		return err
	}
	if j.Status != "" {
		if err := j.Status.Validate(); err != nil {
			return err
		}
	}
	if j.SalaryMin != nil && *j.SalaryMin < 0 {
		return models.NewValidationError("salary_min", "salary must not be negative")
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMax < *j.SalaryMin {
		return models.NewValidationError("salary_max", "maximum salary must not be lower than minimum salary")
	}
	if j.Vacancies < 1 {
		return models.NewValidationError("vacancies", "at least one vacancy is required")
	}
	deadline, err := j.GetDeadline()
	if err != nil {
		return models.NewValidationError("submission_deadline", "invalid date format, expected YYYY-MM-DD")
	}
	if deadline != nil && !now.IsZero() {
		if deadline.Before(helpers.UTCDate(now)) {
			return models.NewValidationError("submission_deadline", "deadline must not be in the past")
		}
	}
	seen := map[string]bool{}
	for _, id := range j.HiringStages {
		if seen[id] {
			return models.NewValidationError("hiring_stages", "hiring stages must be unique")
		}
		seen[id] = true
	}
	return nil
}

func (j JobData) GetDeadline() (*time.Time, error) {
	if j.SubmissionDeadline == "" {
		return nil, nil
	}
	date, err := time.ParseInLocation(apimodels.DateFormat, j.SubmissionDeadline, time.UTC)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

type JobView struct {
	ID                 string                          `json:"id"`
	CompanyID          string                          `json:"company_id"`
	CompanyName        string                          `json:"company_name"`
	CategoryID         *string                         `json:"category_id"`
	CategoryName       string                          `json:"category_name"`
	Title              string                          `json:"title"`
	Description        string                          `json:"description"`
	Requirements       string                          `json:"requirements"`
	Responsibilities   string                          `json:"responsibilities"`
	Location           string                          `json:"location"`
	IsRemote           bool                            `json:"is_remote"`
	JobType            models.JobType                  `json:"job_type"`
	ExperienceLevel    models.ExperienceLevel          `json:"experience_level"`
	SalaryMin          *int                            `json:"salary_min"`
	SalaryMax          *int                            `json:"salary_max"`
	IsSalaryVisible    bool                            `json:"is_salary_visible"`
	Vacancies          int                             `json:"vacancies"`
	Skills             []string                        `json:"skills"`
	SubmissionDeadline string                          `json:"submission_deadline"`
	Status             models.JobStatus                `json:"status"`
	IsActive           bool                            `json:"is_active"` // derived: status == active
	HiringStages       []dictapimodels.HiringStageView `json:"hiring_stages,omitempty"`
	ApplicationsCount  int64                           `json:"applications_count"`
	CreatedAt          string                          `json:"created_at"`
}

func JobConvert(rec dbmodels.Job) JobView {
	result := JobView{
		ID:               rec.ID,
		CompanyID:        rec.CompanyID,
		CategoryID:       rec.CategoryID,
		Title:            rec.Title,
		Description:      rec.Description,
		Requirements:     rec.Requirements,
		Responsibilities: rec.Responsibilities,
		Location:         rec.Location,
		IsRemote:         rec.IsRemote,
		JobType:          rec.JobType,
		ExperienceLevel:  rec.ExperienceLevel,
		SalaryMin:        rec.SalaryMin,
		SalaryMax:        rec.SalaryMax,
		IsSalaryVisible:  rec.IsSalaryVisible,
		Vacancies:        rec.Vacancies,
		Skills:           rec.Skills,
		Status:           rec.Status,
		IsActive:         rec.Status.IsActive(),
		CreatedAt:        rec.CreatedAt.Format(apimodels.DateFormat),
	}
	if result.Skills == nil {
		result.Skills = []string{}
	}
	if rec.SubmissionDeadline != nil {
		result.SubmissionDeadline = rec.SubmissionDeadline.UTC().Format(apimodels.DateFormat)
	}
	if rec.Company != nil {
		result.CompanyName = rec.Company.Name
	}
	if rec.Category != nil {
		result.CategoryName = rec.Category.Name
	}
	for _, stage := range rec.Stages {
		if stage.HiringStage == nil {
			continue
		}
		view := dictapimodels.HiringStageConvert(*stage.HiringStage)
		view.OrderIndex = stage.OrderIndex
		result.HiringStages = append(result.HiringStages, view)
	}
	return result
}

// PublicView hides the salary when the company chose not to show it
func PublicView(rec dbmodels.Job) JobView {
	result := JobConvert(rec)
	if !rec.IsSalaryVisible {
		result.SalaryMin = nil
		result.SalaryMax = nil
	}
	result.HiringStages = nil
	return result
}

type JobFilter struct {
	apimodels.Pagination
	CompanyID  string           `json:"company_id"`  // Company id
	CategoryID string           `json:"category_id"` // Category id
	Status     models.JobStatus `json:"status"`      // Job status
	Search     string           `json:"search"`      // Search by title
}

type StageSetRequest struct {
	StageIDs []string `json:"stage_ids"` // Ordered stage ids
}

func (r StageSetRequest) Validate() error {
	if len(r.StageIDs) == 0 {
		return models.NewValidationError("stage_ids", "at least one stage is required")
	}
	seen := map[string]bool{}
	for _, id := range r.StageIDs {
		if seen[id] {
			return models.NewValidationError("stage_ids", "hiring stages must be unique")
		}
		seen[id] = true
	}
	return nil
}

type StageOrderRequest struct {
	StageID  string `json:"stage_id"`  // Hiring stage id
	NewOrder int    `json:"new_order"` // New position starting from 1
}

func (r StageOrderRequest) Validate() error {
	if r.StageID == "" {
		return models.NewValidationError("stage_id", "stage is required")
	}
	if r.NewOrder < 1 {
		return models.NewValidationError("new_order", "position must start from 1")
	}
	return nil
}
