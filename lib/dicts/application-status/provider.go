package applicationstatusprovider

import (
	"context"
	"time"

	"campus-jobs-backend/db"
	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	"campus-jobs-backend/lib/utils/lock"
	"campus-jobs-backend/models"
	dictapimodels "campus-jobs-backend/models/api/dict"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List() (list []dictapimodels.ApplicationStatusView, err error)
	// Resolve finds the status of the given kind, creating it when reference data lacks it
	Resolve(ctx context.Context, kind models.StatusKind) (*dbmodels.ApplicationStatus, error)
}

var Instance Provider

const resolveLockWait = 5 * time.Second

func NewHandler() {
	Instance = impl{
		store: applicationstatusstore.NewInstance(db.DB),
	}
}

type impl struct {
	store applicationstatusstore.Provider
}

func (i impl) List() (list []dictapimodels.ApplicationStatusView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.ApplicationStatusView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.ApplicationStatusConvert(rec))
	}
	return list, nil
}

func (i impl) Resolve(ctx context.Context, kind models.StatusKind) (*dbmodels.ApplicationStatus, error) {
	fallback, ok := models.StatusFallbacks[kind]
	if !ok {
		return nil, errors.Errorf("unknown status kind %v", kind)
	}
	rec, err := i.find(fallback)
	if err != nil || rec != nil {
		return rec, err
	}
	// slow path: serialize creation so concurrent calls produce one record
	locked, err := lock.WithDelay(ctx, "application-status-"+string(kind), resolveLockWait, func() error {
		rec, err = i.find(fallback)
		if err != nil || rec != nil {
			return err
		}
		rec, err = i.create(fallback)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.Errorf("status %v resolution timed out", kind)
	}
	return rec, nil
}

func (i impl) find(fallback models.StatusFallback) (*dbmodels.ApplicationStatus, error) {
	for _, slug := range fallback.Slugs {
		rec, err := i.store.FindBySlug(slug)
		if err != nil {
			return nil, errors.Wrap(err, "status search by slug failed")
		}
		if rec != nil {
			return rec, nil
		}
	}
	for _, pattern := range fallback.NamePatterns {
		rec, err := i.store.FindByNamePattern(pattern)
		if err != nil {
			return nil, errors.Wrap(err, "status search by name failed")
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (i impl) create(fallback models.StatusFallback) (*dbmodels.ApplicationStatus, error) {
	maxOrder, err := i.store.MaxOrder()
	if err != nil {
		return nil, errors.Wrap(err, "status order calculation failed")
	}
	rec := dbmodels.ApplicationStatus{
		Name:  fallback.Name,
		Slug:  fallback.Slugs[0],
		Order: maxOrder + 1,
		Color: fallback.Color,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "status creation failed")
	}
	rec.ID = id
	log.WithField("slug", rec.Slug).Info("missing application status created")
	return &rec, nil
}
