package dbmodels

import (
	"time"

	"campus-jobs-backend/models"
	"github.com/lib/pq"
)

type Job struct {
	BaseModel
	CompanyID          string    `gorm:"type:varchar(36);index"`
	Company            *Company  `gorm:"foreignKey:CompanyID"`
	CategoryID         *string   `gorm:"type:varchar(36);index"`
	Category           *Category `gorm:"foreignKey:CategoryID"`
	CreatedByID        string    `gorm:"type:varchar(36)"`
	Title              string    `gorm:"type:varchar(255)"`
	Description        string
	Requirements       string
	Responsibilities   string
	Location           string `gorm:"type:varchar(255)"`
	IsRemote           bool
	JobType            models.JobType         `gorm:"type:varchar(50)"`
	ExperienceLevel    models.ExperienceLevel `gorm:"type:varchar(50)"`
	SalaryMin          *int
	SalaryMax          *int
	IsSalaryVisible    bool
	Vacancies          int              `gorm:"default:1"`
	Skills             pq.StringArray   `gorm:"type:text[]"`
	SubmissionDeadline *time.Time       `gorm:"type:date"`
	Status             models.JobStatus `gorm:"type:varchar(20);index"`
	Stages             []JobHiringStage `gorm:"foreignKey:JobID"`
}

type JobHiringStage struct {
	BaseModel
	JobID         string       `gorm:"type:varchar(36);uniqueIndex:idx_job_stage"`
	HiringStageID string       `gorm:"type:varchar(36);uniqueIndex:idx_job_stage"`
	HiringStage   *HiringStage `gorm:"foreignKey:HiringStageID"`
	OrderIndex    int
}
