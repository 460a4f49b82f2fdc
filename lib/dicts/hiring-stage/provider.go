package hiringstageprovider

import (
	"campus-jobs-backend/db"
	hiringstagestore "campus-jobs-backend/lib/dicts/hiring-stage/store"
	dictapimodels "campus-jobs-backend/models/api/dict"
)

type Provider interface {
	List() (list []dictapimodels.HiringStageView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: hiringstagestore.NewInstance(db.DB),
	}
}

type impl struct {
	store hiringstagestore.Provider
}

func (i impl) List() (list []dictapimodels.HiringStageView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.HiringStageView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.HiringStageConvert(rec))
	}
	return list, nil
}
