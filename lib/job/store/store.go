package jobstore

import (
	"strings"

	"campus-jobs-backend/models"
	jobapimodels "campus-jobs-backend/models/api/job"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// CreateWithStages inserts the job and its ordered pipeline in one transaction
	CreateWithStages(rec dbmodels.Job, stageIDs []string) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	// Update applies updMap and, when stageIDs is not nil, replaces the pipeline
	Update(id string, updMap map[string]interface{}, stageIDs []string) error
	List(companyIDs []string, filter jobapimodels.JobFilter) (list []dbmodels.Job, err error)
	ListCount(companyIDs []string, filter jobapimodels.JobFilter) (rowCount int64, err error)
	ApplicationCounts(jobIDs []string) (counts map[string]int64, err error)
	// Delete refuses with a policy error while applications exist
	Delete(id string) error
	StageList(jobID string) (list []dbmodels.JobHiringStage, err error)
	StageSetOrder(jobID string, list []dbmodels.JobHiringStage) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateWithStages(rec dbmodels.Job, stageIDs []string) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return errors.Wrap(err, "job creation failed")
		}
		return replaceStages(tx, rec.ID, stageIDs)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func replaceStages(tx *gorm.DB, jobID string, stageIDs []string) error {
	err := tx.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.JobHiringStage{}).
		Error
	if err != nil {
		return errors.Wrap(err, "job stages cleanup failed")
	}
	if len(stageIDs) == 0 {
		return nil
	}
	list := make([]dbmodels.JobHiringStage, 0, len(stageIDs))
	for k, stageID := range stageIDs {
		list = append(list, dbmodels.JobHiringStage{
			JobID:         jobID,
			HiringStageID: stageID,
			OrderIndex:    k + 1,
		})
	}
	if err = tx.Omit(clause.Associations).Create(&list).Error; err != nil {
		return errors.Wrap(err, "job stages creation failed")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Preload("Company").
		Preload("Category").
		Preload("Stages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index")
		}).
		Preload("Stages.HiringStage").
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

func (i impl) Update(id string, updMap map[string]interface{}, stageIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		if len(updMap) != 0 {
			upd := tx.
				Model(&dbmodels.Job{}).
				Where("id = ?", id).
				Updates(updMap)
			if upd.Error != nil {
				return errors.Wrap(upd.Error, "job update failed")
			}
			if upd.RowsAffected == 0 {
				return models.NewNotFound("job")
			}
		}
		if stageIDs == nil {
			return nil
		}
		return replaceStages(tx, id, stageIDs)
	})
}

func (i impl) List(companyIDs []string, filter jobapimodels.JobFilter) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.Model(&dbmodels.Job{})
	i.addFilter(tx, companyIDs, filter)
	page, limit := filter.GetPage()
	err = tx.
		Preload("Company").
		Preload("Category").
		Order("jobs.created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(companyIDs []string, filter jobapimodels.JobFilter) (rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Job{})
	i.addFilter(tx, companyIDs, filter)
	err = tx.Count(&rowCount).Error
	return rowCount, err
}

// addFilter scopes by companyIDs, a nil slice means no company scope
func (i impl) addFilter(tx *gorm.DB, companyIDs []string, filter jobapimodels.JobFilter) {
	if companyIDs != nil {
		if len(companyIDs) == 0 {
			tx.Where("1 = 0")
		} else {
			tx.Where("jobs.company_id in (?)", companyIDs)
		}
	}
	if filter.CompanyID != "" {
		tx.Where("jobs.company_id = ?", filter.CompanyID)
	}
	if filter.CategoryID != "" {
		tx.Where("jobs.category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		tx.Where("jobs.status = ?", filter.Status)
	}
	if filter.Search != "" {
		tx.Where("LOWER(jobs.title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}

func (i impl) ApplicationCounts(jobIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(jobIDs) == 0 {
		return counts, nil
	}
	type row struct {
		JobID string
		Cnt   int64
	}
	rows := []row{}
	err := i.db.
		Model(&dbmodels.JobApplication{}).
		Select("job_id, count(*) as cnt").
		Where("job_id in (?)", jobIDs).
		Group("job_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.JobID] = r.Cnt
	}
	return counts, nil
}

func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		var appCount int64
		err := tx.
			Model(&dbmodels.JobApplication{}).
			Where("job_id = ?", id).
			Count(&appCount).
			Error
		if err != nil {
			return errors.Wrap(err, "applications count failed")
		}
		if appCount > 0 {
			return models.NewPolicyError("the job cannot be deleted because it has applications")
		}
		if err = tx.Where("job_id = ?", id).Delete(&dbmodels.JobHiringStage{}).Error; err != nil {
			return errors.Wrap(err, "job stages deletion failed")
		}
		if err = tx.Where("job_id = ?", id).Delete(&dbmodels.Event{}).Error; err != nil {
			return errors.Wrap(err, "job events deletion failed")
		}
		err = tx.
			Model(&dbmodels.Conversation{}).
			Where("job_id = ?", id).
			Update("job_id", nil).
			Error
		if err != nil {
			return errors.Wrap(err, "conversations detach failed")
		}
		del := tx.Delete(&dbmodels.Job{}, "id = ?", id)
		if del.Error != nil {
			return errors.Wrap(del.Error, "job deletion failed")
		}
		if del.RowsAffected == 0 {
			return models.NewNotFound("job")
		}
		return nil
	})
}

func (i impl) StageList(jobID string) (list []dbmodels.JobHiringStage, err error) {
	list = []dbmodels.JobHiringStage{}
	err = i.db.
		Preload("HiringStage").
		Where("job_id = ?", jobID).
		Order("order_index").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) StageSetOrder(jobID string, list []dbmodels.JobHiringStage) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range list {
			err := tx.
				Model(&dbmodels.JobHiringStage{}).
				Where("id = ? AND job_id = ?", rec.ID, jobID).
				Update("order_index", rec.OrderIndex).
				Error
			if err != nil {
				return errors.Wrap(err, "stage order update failed")
			}
		}
		return nil
	})
}
