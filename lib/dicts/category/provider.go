package categoryprovider

import (
	"campus-jobs-backend/db"
	categorystore "campus-jobs-backend/lib/dicts/category/store"
	dictapimodels "campus-jobs-backend/models/api/dict"
)

type Provider interface {
	List() (list []dictapimodels.CategoryView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: categorystore.NewInstance(db.DB),
	}
}

type impl struct {
	store categorystore.Provider
}

func (i impl) List() (list []dictapimodels.CategoryView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list = make([]dictapimodels.CategoryView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.CategoryConvert(rec))
	}
	return list, nil
}
