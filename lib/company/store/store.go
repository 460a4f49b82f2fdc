package companystore

import (
	"campus-jobs-backend/lib/utils/pgerrors"
	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Company, err error)
	List(ids []string) (list []dbmodels.Company, err error)
	Update(id string, updMap map[string]interface{}) error
	ManagedCompanyIDs(managerID string) (ids []string, err error)
	ManagerIDs(companyID string) (ids []string, err error)
	GetLink(companyID, userID string) (rec *dbmodels.CompanyManager, err error)
	// AddManager links the user to the company, an existing link is kept as is
	AddManager(companyID, userID string, isPrimary bool) error
	RemoveManager(companyID, userID string) error
	// SetPrimary makes userID the only primary manager of the company
	SetPrimary(companyID, userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.
		Preload("Managers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("is_primary desc, created_at")
		}).
		Preload("Managers.User").
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

func (i impl) List(ids []string) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id in (?)", ids).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Company{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFound("company")
	}
	return nil
}

func (i impl) ManagedCompanyIDs(managerID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.CompanyManager{}).
		Where("user_id = ?", managerID).
		Pluck("company_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) ManagerIDs(companyID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.CompanyManager{}).
		Where("company_id = ?", companyID).
		Pluck("user_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) GetLink(companyID, userID string) (*dbmodels.CompanyManager, error) {
	rec := dbmodels.CompanyManager{}
	err := i.db.
		Where("company_id = ? AND user_id = ?", companyID, userID).
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

func (i impl) AddManager(companyID, userID string, isPrimary bool) error {
	rec := dbmodels.CompanyManager{
		CompanyID: companyID,
		UserID:    userID,
		IsPrimary: isPrimary,
	}
	err := i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil && !pgerrors.IsUniqueViolation(err) {
		return err
	}
	return nil
}

func (i impl) RemoveManager(companyID, userID string) error {
	return i.db.
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Delete(&dbmodels.CompanyManager{}).
		Error
}

func (i impl) SetPrimary(companyID, userID string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.CompanyManager{}).
			Where("company_id = ?", companyID).
			Update("is_primary", false).
			Error
		if err != nil {
			return errors.Wrap(err, "primary flag reset failed")
		}
		upd := tx.
			Model(&dbmodels.CompanyManager{}).
			Where("company_id = ? AND user_id = ?", companyID, userID).
			Update("is_primary", true)
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "primary flag update failed")
		}
		if upd.RowsAffected == 0 {
			return models.NewNotFound("company manager")
		}
		return nil
	})
}
