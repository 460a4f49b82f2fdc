package usersstore

import (
	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.User, err error)
	GetByIDs(ids []string) (list []dbmodels.User, err error)
	// ActiveCandidateIDs returns up to limit ids of active candidates ordered by id, starting after afterID
	ActiveCandidateIDs(afterID string, limit int) (ids []string, err error)
	HasRole(id string, roles ...models.UserRole) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Preload(clause.Associations).
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

func (i impl) GetByIDs(ids []string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
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

func (i impl) ActiveCandidateIDs(afterID string, limit int) (ids []string, err error) {
	ids = []string{}
	tx := i.db.
		Model(&dbmodels.User{}).
		Joins("join roles as r on r.id = users.role_id").
		Where("r.slug = ?", models.RoleCandidate).
		Where("users.is_active = ?", true)
	if afterID != "" {
		tx = tx.Where("users.id > ?", afterID)
	}
	err = tx.
		Order("users.id").
		Limit(limit).
		Pluck("users.id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) HasRole(id string, roles ...models.UserRole) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.User{}).
		Joins("join roles as r on r.id = users.role_id").
		Where("users.id = ?", id).
		Where("r.slug in (?)", roles).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}
