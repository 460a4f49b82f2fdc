package applicationstatusstore

import (
	"strings"

	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApplicationStatus) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApplicationStatus, err error)
	List() (list []dbmodels.ApplicationStatus, err error)
	First() (rec *dbmodels.ApplicationStatus, err error)
	FindBySlug(slug string) (rec *dbmodels.ApplicationStatus, err error)
	FindByNamePattern(pattern string) (rec *dbmodels.ApplicationStatus, err error)
	MaxOrder() (int, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationStatus) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApplicationStatus, error) {
	return i.first(i.db.Where("id = ?", id))
}

func (i impl) List() (list []dbmodels.ApplicationStatus, err error) {
	list = []dbmodels.ApplicationStatus{}
	err = i.db.
		Order("sort_order").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) First() (*dbmodels.ApplicationStatus, error) {
	return i.first(i.db.Order("sort_order"))
}

func (i impl) FindBySlug(slug string) (*dbmodels.ApplicationStatus, error) {
	return i.first(i.db.Where("slug = ?", slug))
}

func (i impl) FindByNamePattern(pattern string) (*dbmodels.ApplicationStatus, error) {
	return i.first(i.db.
		Where("LOWER(name) like ?", "%"+strings.ToLower(pattern)+"%").
		Order("sort_order"))
}

func (i impl) MaxOrder() (int, error) {
	var maxOrder int
	err := i.db.
		Model(&dbmodels.ApplicationStatus{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).
		Error
	return maxOrder, err
}

func (i impl) first(tx *gorm.DB) (*dbmodels.ApplicationStatus, error) {
	rec := dbmodels.ApplicationStatus{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
