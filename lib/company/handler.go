package companyhandler

import (
	"context"
	"io"
	"path"
	"strings"

	"campus-jobs-backend/db"
	companystore "campus-jobs-backend/lib/company/store"
	filestorage "campus-jobs-backend/lib/file-storage"
	"campus-jobs-backend/lib/guard"
	usersstore "campus-jobs-backend/lib/users/store"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	"campus-jobs-backend/models"
	companyapimodels "campus-jobs-backend/models/api/company"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(managerID string) (list []companyapimodels.CompanyView, err error)
	Get(managerID, id string) (item companyapimodels.CompanyView, err error)
	Update(managerID, id string, data companyapimodels.CompanyData) error
	AddManager(managerID, companyID, userID string) error
	RemoveManager(managerID, companyID, userID string) error
	SetPrimaryManager(managerID, companyID, userID string) error
	UploadLogo(ctx context.Context, managerID, companyID, fileName string, reader io.Reader, size int64, contentType string) error
	GetLogo(ctx context.Context, companyID string) (body []byte, err error)
}

var Instance Provider

var logoExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".svg": true, ".webp": true}

const logoMaxSize = 2 * 1024 * 1024

func NewHandler() {
	instance := impl{
		store:      companystore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
		guard:      guard.Instance,
		files:      filestorage.Instance,
	}
	initchecker.CheckInit(
		"guard", instance.guard,
	)
	Instance = instance
}

type impl struct {
	store      companystore.Provider
	usersStore usersstore.Provider
	guard      guard.Provider
	files      filestorage.Provider
}

func (i impl) getLogger(managerID, companyID string) *log.Entry {
	logger := log.WithField("manager_id", managerID)
	if companyID != "" {
		logger = logger.WithField("company_id", companyID)
	}
	return logger
}

func (i impl) List(managerID string) (list []companyapimodels.CompanyView, err error) {
	ids, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, err
	}
	recList, err := i.store.List(ids)
	if err != nil {
		return nil, err
	}
	list = make([]companyapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, companyapimodels.CompanyConvert(rec))
	}
	return list, nil
}

func (i impl) Get(managerID, id string) (item companyapimodels.CompanyView, err error) {
	if err = i.guard.CompanyAllowed(managerID, id); err != nil {
		return companyapimodels.CompanyView{}, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return companyapimodels.CompanyView{}, err
	}
	if rec == nil {
		return companyapimodels.CompanyView{}, models.NewNotFound("company")
	}
	return companyapimodels.CompanyConvert(*rec), nil
}

func (i impl) Update(managerID, id string, data companyapimodels.CompanyData) error {
	if err := i.guard.CompanyAllowed(managerID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        data.Name,
		"email":       data.Email,
		"phone":       data.Phone,
		"website":     data.Website,
		"address":     data.Address,
		"description": data.Description,
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	i.getLogger(managerID, id).Info("company updated")
	return nil
}

func (i impl) AddManager(managerID, companyID, userID string) error {
	if err := i.guard.CompanyAllowed(managerID, companyID); err != nil {
		return err
	}
	isManager, err := i.usersStore.HasRole(userID, models.RoleManager, models.RoleAdmin)
	if err != nil {
		return err
	}
	if !isManager {
		return models.NewValidationError("user_id", "user is not a manager")
	}
	if err = i.store.AddManager(companyID, userID, false); err != nil {
		return errors.Wrap(err, "manager linking failed")
	}
	i.getLogger(managerID, companyID).WithField("user_id", userID).Info("manager added to company")
	return nil
}

func (i impl) RemoveManager(managerID, companyID, userID string) error {
	if err := i.guard.CompanyAllowed(managerID, companyID); err != nil {
		return err
	}
	link, err := i.store.GetLink(companyID, userID)
	if err != nil {
		return err
	}
	if link == nil {
		return models.NewNotFound("company manager")
	}
	if link.IsPrimary {
		return models.NewPolicyError("the primary manager cannot be removed, assign another primary manager first")
	}
	if err = i.store.RemoveManager(companyID, userID); err != nil {
		return err
	}
	i.getLogger(managerID, companyID).WithField("user_id", userID).Info("manager removed from company")
	return nil
}

func (i impl) SetPrimaryManager(managerID, companyID, userID string) error {
	if err := i.guard.CompanyAllowed(managerID, companyID); err != nil {
		return err
	}
	if err := i.store.SetPrimary(companyID, userID); err != nil {
		return err
	}
	i.getLogger(managerID, companyID).WithField("user_id", userID).Info("primary manager changed")
	return nil
}

func (i impl) UploadLogo(ctx context.Context, managerID, companyID, fileName string, reader io.Reader, size int64, contentType string) error {
	if err := i.guard.CompanyAllowed(managerID, companyID); err != nil {
		return err
	}
	if !logoExtensions[strings.ToLower(path.Ext(fileName))] {
		return models.NewValidationError("logo", "logo must be an image (png, jpg, svg, webp)")
	}
	if size > logoMaxSize {
		return models.NewValidationError("logo", "logo must not exceed 2 MB")
	}
	if i.files == nil {
		return models.NewPolicyError("file storage is not configured")
	}
	key, err := i.files.Upload(ctx, filestorage.FolderLogo, companyID, fileName, reader, size, contentType)
	if err != nil {
		return err
	}
	return i.store.Update(companyID, map[string]interface{}{"logo": key})
}

func (i impl) GetLogo(ctx context.Context, companyID string) ([]byte, error) {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Logo == "" {
		return nil, models.NewNotFound("logo")
	}
	if i.files == nil {
		return nil, models.NewPolicyError("file storage is not configured")
	}
	return i.files.GetFile(ctx, rec.Logo)
}
