package hiringstagestore

import (
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.HiringStage) (id string, err error)
	GetByID(id string) (rec *dbmodels.HiringStage, err error)
	List() (list []dbmodels.HiringStage, err error)
	DefaultList() (list []dbmodels.HiringStage, err error)
	ListByIDs(ids []string) (list []dbmodels.HiringStage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.HiringStage) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.HiringStage, error) {
	rec := dbmodels.HiringStage{}
	err := i.db.
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

func (i impl) List() (list []dbmodels.HiringStage, err error) {
	list = []dbmodels.HiringStage{}
	err = i.db.
		Order("order_index").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DefaultList() (list []dbmodels.HiringStage, err error) {
	list = []dbmodels.HiringStage{}
	err = i.db.
		Where("is_default = ?", true).
		Order("order_index").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByIDs(ids []string) (list []dbmodels.HiringStage, err error) {
	list = []dbmodels.HiringStage{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
