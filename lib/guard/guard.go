package guard

import (
	"campus-jobs-backend/db"
	companystore "campus-jobs-backend/lib/company/store"
	"campus-jobs-backend/models"
	"github.com/pkg/errors"
)

// Provider answers object-level authorization questions for managers
type Provider interface {
	ManagedCompanyIDs(managerID string) ([]string, error)
	CompanyAllowed(managerID, companyID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: companystore.NewInstance(db.DB),
	}
}

func NewInstance(store companystore.Provider) Provider {
	return impl{store: store}
}

type impl struct {
	store companystore.Provider
}

func (i impl) ManagedCompanyIDs(managerID string) ([]string, error) {
	ids, err := i.store.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, errors.Wrap(err, "managed companies loading failed")
	}
	return ids, nil
}

func (i impl) CompanyAllowed(managerID, companyID string) error {
	if managerID == "" || companyID == "" {
		return models.NewAccessDenied("company is not managed by the user")
	}
	ids, err := i.ManagedCompanyIDs(managerID)
	if err != nil {
		return err
	}
	if !Contains(ids, companyID) {
		return models.NewAccessDenied("company is not managed by the user")
	}
	return nil
}

func Contains(ids []string, id string) bool {
	for _, item := range ids {
		if item == id {
			return true
		}
	}
	return false
}
