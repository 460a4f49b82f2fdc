package categorystore

import (
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Category) (id string, err error)
	GetByID(id string) (rec *dbmodels.Category, err error)
	List() (list []dbmodels.Category, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Category) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Category, error) {
	rec := dbmodels.Category{}
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

func (i impl) List() (list []dbmodels.Category, err error) {
	list = []dbmodels.Category{}
	err = i.db.
		Order("order_index").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
