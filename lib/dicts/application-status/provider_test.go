package applicationstatusprovider

import (
	"context"
	"strings"
	"sync"
	"testing"

	"campus-jobs-backend/models"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu   sync.Mutex
	list []dbmodels.ApplicationStatus
}

func (f *fakeStore) Create(rec dbmodels.ApplicationStatus) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = "created-" + rec.Slug
	f.list = append(f.list, rec)
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.ApplicationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.list {
		if rec.ID == id {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List() ([]dbmodels.ApplicationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dbmodels.ApplicationStatus{}, f.list...), nil
}

func (f *fakeStore) First() (*dbmodels.ApplicationStatus, error) {
	return nil, nil
}

func (f *fakeStore) FindBySlug(slug string) (*dbmodels.ApplicationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.list {
		if rec.Slug == slug {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByNamePattern(pattern string) (*dbmodels.ApplicationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.list {
		if strings.Contains(strings.ToLower(rec.Name), pattern) {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) MaxOrder() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	maxOrder := 0
	for _, rec := range f.list {
		if rec.Order > maxOrder {
			maxOrder = rec.Order
		}
	}
	return maxOrder, nil
}

func TestResolveCanonicalSlug(t *testing.T) {
	store := &fakeStore{list: []dbmodels.ApplicationStatus{
		{BaseModel: dbmodels.BaseModel{ID: "s1"}, Name: "Hired", Slug: "hired", Order: 5},
		{BaseModel: dbmodels.BaseModel{ID: "s2"}, Name: "Accepted", Slug: "accepted", Order: 6},
	}}
	rec, err := impl{store: store}.Resolve(context.Background(), models.StatusKindAccepted)
	require.NoError(t, err)
	require.Equal(t, "s2", rec.ID)
}

func TestResolveAlternateSlug(t *testing.T) {
	store := &fakeStore{list: []dbmodels.ApplicationStatus{
		{BaseModel: dbmodels.BaseModel{ID: "s1"}, Name: "Declined", Slug: "declined", Order: 3},
	}}
	rec, err := impl{store: store}.Resolve(context.Background(), models.StatusKindRejected)
	require.NoError(t, err)
	require.Equal(t, "s1", rec.ID)
}

func TestResolveNamePattern(t *testing.T) {
	store := &fakeStore{list: []dbmodels.ApplicationStatus{
		{BaseModel: dbmodels.BaseModel{ID: "s1"}, Name: "Candidate Rejected", Slug: "cand-rej", Order: 3},
	}}
	rec, err := impl{store: store}.Resolve(context.Background(), models.StatusKindRejected)
	require.NoError(t, err)
	require.Equal(t, "s1", rec.ID)
}

func TestResolveCreatesMissing(t *testing.T) {
	store := &fakeStore{list: []dbmodels.ApplicationStatus{
		{BaseModel: dbmodels.BaseModel{ID: "s1"}, Name: "New", Slug: "new", Order: 1},
		{BaseModel: dbmodels.BaseModel{ID: "s2"}, Name: "Reviewed", Slug: "reviewed", Order: 4},
	}}
	h := impl{store: store}
	wg := sync.WaitGroup{}
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := h.Resolve(context.Background(), models.StatusKindAccepted)
			require.NoError(t, err)
			require.Equal(t, "accepted", rec.Slug)
			require.Equal(t, 5, rec.Order)
		}()
	}
	wg.Wait()
	list, _ := store.List()
	require.Len(t, list, 3)
}
