package applicationstore

import (
	"strings"

	"campus-jobs-backend/lib/utils/pgerrors"
	"campus-jobs-backend/models"
	applicationapimodels "campus-jobs-backend/models/api/application"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a list either to a set of managed companies or to one candidate.
// A nil CompanyIDs means no company scope, an empty one matches nothing.
type Scope struct {
	CompanyIDs  []string
	CandidateID string
}

type Provider interface {
	// Create inserts the application with its first history row, a second application
	// of the same candidate to the same job is a policy error
	Create(rec dbmodels.JobApplication, history *dbmodels.ApplicationStageHistory) (id string, err error)
	GetByID(id string) (rec *dbmodels.JobApplication, err error)
	List(scope Scope, filter applicationapimodels.ApplicationFilter) (list []dbmodels.JobApplication, err error)
	ListCount(scope Scope, filter applicationapimodels.ApplicationFilter) (rowCount int64, err error)
	ListForExport(scope Scope, filter applicationapimodels.ApplicationFilter, limit int) (list []dbmodels.JobApplication, err error)
	Update(id string, updMap map[string]interface{}) error
	// ChangeStage moves the current stage and appends the history row in one transaction
	ChangeStage(id string, history dbmodels.ApplicationStageHistory) error
	// ChangeStatus sets the status and, when history is not nil, appends it in the same transaction
	ChangeStatus(id, statusID string, history *dbmodels.ApplicationStageHistory) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobApplication, history *dbmodels.ApplicationStageHistory) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			if pgerrors.IsUniqueViolation(err) {
				return models.NewPolicyError("you have already applied to this job")
			}
			return errors.Wrap(err, "application creation failed")
		}
		if history == nil {
			return nil
		}
		history.ApplicationID = rec.ID
		if err := tx.Omit(clause.Associations).Create(history).Error; err != nil {
			return errors.Wrap(err, "application history creation failed")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.JobApplication, error) {
	rec := dbmodels.JobApplication{}
	err := i.db.
		Preload("Job.Company").
		Preload("User").
		Preload("Status").
		Preload("Stage").
		Preload("History", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at")
		}).
		Preload("History.Stage").
		Preload("History.ChangedBy").
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

func (i impl) List(scope Scope, filter applicationapimodels.ApplicationFilter) (list []dbmodels.JobApplication, err error) {
	page, limit := filter.GetPage()
	return i.find(scope, filter, limit, (page-1)*limit)
}

func (i impl) ListForExport(scope Scope, filter applicationapimodels.ApplicationFilter, limit int) (list []dbmodels.JobApplication, err error) {
	return i.find(scope, filter, limit, 0)
}

func (i impl) find(scope Scope, filter applicationapimodels.ApplicationFilter, limit, offset int) (list []dbmodels.JobApplication, err error) {
	list = []dbmodels.JobApplication{}
	tx := i.db.Model(&dbmodels.JobApplication{})
	i.addFilter(tx, scope, filter)
	err = tx.
		Preload("Job.Company").
		Preload("User").
		Preload("Status").
		Preload("Stage").
		Order("job_applications.created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(scope Scope, filter applicationapimodels.ApplicationFilter) (rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.JobApplication{})
	i.addFilter(tx, scope, filter)
	err = tx.Count(&rowCount).Error
	return rowCount, err
}

func (i impl) addFilter(tx *gorm.DB, scope Scope, filter applicationapimodels.ApplicationFilter) {
	tx.Joins("JOIN jobs ON jobs.id = job_applications.job_id")
	if scope.CompanyIDs != nil {
		if len(scope.CompanyIDs) == 0 {
			tx.Where("1 = 0")
		} else {
			tx.Where("jobs.company_id in (?)", scope.CompanyIDs)
		}
	}
	if scope.CandidateID != "" {
		tx.Where("job_applications.user_id = ?", scope.CandidateID)
	}
	if filter.CompanyID != "" {
		tx.Where("jobs.company_id = ?", filter.CompanyID)
	}
	if filter.JobID != "" {
		tx.Where("job_applications.job_id = ?", filter.JobID)
	}
	if filter.StatusID != "" {
		tx.Where("job_applications.status_id = ?", filter.StatusID)
	}
	if filter.StageID != "" {
		tx.Where("job_applications.stage_id = ?", filter.StageID)
	}
	if filter.Favorite != nil {
		tx.Where("job_applications.is_favorite = ?", *filter.Favorite)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Joins("JOIN users ON users.id = job_applications.user_id").
			Where("(LOWER(users.name) like ? OR LOWER(users.email) like ?)", search, search)
	}
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	upd := i.db.
		Model(&dbmodels.JobApplication{}).
		Where("id = ?", id).
		Updates(updMap)
	if upd.Error != nil {
		return errors.Wrap(upd.Error, "application update failed")
	}
	if upd.RowsAffected == 0 {
		return models.NewNotFound("application")
	}
	return nil
}

func (i impl) ChangeStage(id string, history dbmodels.ApplicationStageHistory) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		upd := tx.
			Model(&dbmodels.JobApplication{}).
			Where("id = ?", id).
			Update("stage_id", history.StageID)
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "application stage update failed")
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFound("application")
		}
		history.ApplicationID = id
		if err := tx.Omit(clause.Associations).Create(&history).Error; err != nil {
			return errors.Wrap(err, "application history creation failed")
		}
		return nil
	})
}

func (i impl) ChangeStatus(id, statusID string, history *dbmodels.ApplicationStageHistory) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		upd := tx.
			Model(&dbmodels.JobApplication{}).
			Where("id = ?", id).
			Update("status_id", statusID)
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "application status update failed")
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFound("application")
		}
		if history == nil {
			return nil
		}
		history.ApplicationID = id
		if err := tx.Omit(clause.Associations).Create(history).Error; err != nil {
			return errors.Wrap(err, "application history creation failed")
		}
		return nil
	})
}
