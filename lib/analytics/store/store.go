package analyticsstore

import (
	"time"

	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	"gorm.io/gorm"
)

// Filter is a normalized dashboard filter. CompanyIDs is the manager's scope,
// CompanyID and JobID are optional narrowing already validated against it.
type Filter struct {
	CompanyIDs []string
	CompanyID  string
	JobID      string
	Start      time.Time
	End        time.Time
}

type StatusCount struct {
	StatusID string
	Cnt      int64
}

type JobCount struct {
	JobID       string
	Title       string
	CompanyName string
	Cnt         int64
}

type ApplicationPoint struct {
	StatusID  string
	CreatedAt time.Time
}

type HistoryPoint struct {
	ApplicationID string
	StageID       string
	CreatedAt     time.Time
}

type Provider interface {
	// JobsTouched counts jobs created or updated within the range
	JobsTouched(f Filter) (int64, error)
	ActiveJobs(f Filter) (int64, error)
	Applications(f Filter) (int64, error)
	Events(f Filter) (int64, error)
	StatusCounts(f Filter) ([]StatusCount, error)
	JobCounts(f Filter) ([]JobCount, error)
	ApplicationPoints(f Filter) ([]ApplicationPoint, error)
	// JobDates and ApplicationDates return creation times within [from, to] under the scope of f
	JobDates(f Filter, from, to time.Time) ([]time.Time, error)
	ApplicationDates(f Filter, from, to time.Time) ([]time.Time, error)
	// StageHistory returns history rows of the filtered applications ordered by application and time
	StageHistory(f Filter) ([]HistoryPoint, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func scopeJobs(tx *gorm.DB, f Filter) *gorm.DB {
	if len(f.CompanyIDs) == 0 {
		return tx.Where("1 = 0")
	}
	tx = tx.Where("jobs.company_id in (?)", f.CompanyIDs)
	if f.CompanyID != "" {
		tx = tx.Where("jobs.company_id = ?", f.CompanyID)
	}
	if f.JobID != "" {
		tx = tx.Where("jobs.id = ?", f.JobID)
	}
	return tx
}

func (i impl) applications(f Filter, from, to time.Time) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.JobApplication{}).
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("job_applications.created_at between ? and ?", from, to)
	return scopeJobs(tx, f)
}

func (i impl) JobsTouched(f Filter) (rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("(jobs.created_at between ? and ?) OR (jobs.updated_at between ? and ?)", f.Start, f.End, f.Start, f.End)
	err = scopeJobs(tx, f).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) ActiveJobs(f Filter) (rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("jobs.status = ?", models.JobStatusActive)
	err = scopeJobs(tx, f).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) Applications(f Filter) (rowCount int64, err error) {
	err = i.applications(f, f.Start, f.End).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) Events(f Filter) (rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Event{}).
		Joins("JOIN jobs ON jobs.id = events.job_id").
		Where("events.start_time between ? and ?", f.Start, f.End)
	err = scopeJobs(tx, f).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) StatusCounts(f Filter) (list []StatusCount, err error) {
	list = []StatusCount{}
	err = i.applications(f, f.Start, f.End).
		Select("job_applications.status_id, count(*) as cnt").
		Group("job_applications.status_id").
		Scan(&list).
		Error
	return list, err
}

func (i impl) JobCounts(f Filter) (list []JobCount, err error) {
	list = []JobCount{}
	err = i.applications(f, f.Start, f.End).
		Joins("LEFT JOIN companies ON companies.id = jobs.company_id").
		Select("jobs.id as job_id, jobs.title, companies.name as company_name, count(*) as cnt").
		Group("jobs.id, jobs.title, companies.name").
		Order("cnt desc").
		Scan(&list).
		Error
	return list, err
}

func (i impl) ApplicationPoints(f Filter) (list []ApplicationPoint, err error) {
	list = []ApplicationPoint{}
	err = i.applications(f, f.Start, f.End).
		Select("job_applications.status_id, job_applications.created_at").
		Scan(&list).
		Error
	return list, err
}

func (i impl) JobDates(f Filter, from, to time.Time) (list []time.Time, err error) {
	list = []time.Time{}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("jobs.created_at between ? and ?", from, to)
	err = scopeJobs(tx, f).Pluck("jobs.created_at", &list).Error
	return list, err
}

func (i impl) ApplicationDates(f Filter, from, to time.Time) (list []time.Time, err error) {
	list = []time.Time{}
	err = i.applications(f, from, to).Pluck("job_applications.created_at", &list).Error
	return list, err
}

func (i impl) StageHistory(f Filter) (list []HistoryPoint, err error) {
	list = []HistoryPoint{}
	sub := i.applications(f, f.Start, f.End).Select("job_applications.id")
	err = i.db.
		Model(&dbmodels.ApplicationStageHistory{}).
		Select("application_id, stage_id, created_at").
		Where("application_id in (?)", sub).
		Order("application_id, created_at").
		Scan(&list).
		Error
	return list, err
}
