package analyticshandler

import (
	"context"
	"testing"
	"time"

	analyticsstore "campus-jobs-backend/lib/analytics/store"
	"campus-jobs-backend/lib/cache"
	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	hiringstagestore "campus-jobs-backend/lib/dicts/hiring-stage/store"
	jobstore "campus-jobs-backend/lib/job/store"
	analyticsapimodels "campus-jobs-backend/models/api/analytics"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsStore struct {
	analyticsstore.Provider
	statusCounts []analyticsstore.StatusCount
	applications int64
	filters      []analyticsstore.Filter
}

func (f *fakeAnalyticsStore) JobsTouched(filter analyticsstore.Filter) (int64, error) {
	f.filters = append(f.filters, filter)
	return 2, nil
}

func (f *fakeAnalyticsStore) ActiveJobs(analyticsstore.Filter) (int64, error) { return 1, nil }

func (f *fakeAnalyticsStore) Applications(analyticsstore.Filter) (int64, error) {
	return f.applications, nil
}

func (f *fakeAnalyticsStore) Events(analyticsstore.Filter) (int64, error) { return 3, nil }

func (f *fakeAnalyticsStore) StatusCounts(analyticsstore.Filter) ([]analyticsstore.StatusCount, error) {
	return f.statusCounts, nil
}

func (f *fakeAnalyticsStore) JobCounts(analyticsstore.Filter) ([]analyticsstore.JobCount, error) {
	return []analyticsstore.JobCount{{JobID: "job1", Title: "Intern", CompanyName: "Acme", Cnt: f.applications}}, nil
}

func (f *fakeAnalyticsStore) ApplicationPoints(analyticsstore.Filter) ([]analyticsstore.ApplicationPoint, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) JobDates(analyticsstore.Filter, time.Time, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) ApplicationDates(analyticsstore.Filter, time.Time, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) StageHistory(analyticsstore.Filter) ([]analyticsstore.HistoryPoint, error) {
	return nil, nil
}

type fakeStatusStore struct {
	applicationstatusstore.Provider
}

func (fakeStatusStore) List() ([]dbmodels.ApplicationStatus, error) {
	return testStatuses(), nil
}

type fakeStageStore struct {
	hiringstagestore.Provider
}

func (fakeStageStore) List() ([]dbmodels.HiringStage, error) {
	return []dbmodels.HiringStage{{BaseModel: dbmodels.BaseModel{ID: "applied"}, Name: "Applied", OrderIndex: 1}}, nil
}

type fakeJobStore struct {
	jobstore.Provider
}

func (fakeJobStore) GetByID(id string) (*dbmodels.Job, error) {
	if id == "job1" {
		return &dbmodels.Job{BaseModel: dbmodels.BaseModel{ID: id}, CompanyID: "c1"}, nil
	}
	return nil, nil
}

type fakeGuard struct {
	companies map[string][]string
}

func (g fakeGuard) ManagedCompanyIDs(managerID string) ([]string, error) {
	return g.companies[managerID], nil
}

func (g fakeGuard) CompanyAllowed(string, string) error { return nil }

func newTestHandler(store *fakeAnalyticsStore) impl {
	now := func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return impl{
		store:       store,
		statusStore: fakeStatusStore{},
		stageStore:  fakeStageStore{},
		jobStore:    fakeJobStore{},
		guard:       fakeGuard{companies: map[string][]string{"m1": {"c1"}, "m2": {"c2"}}},
		cache:       cache.NewMemory(time.Minute),
		cacheTTL:    time.Minute,
		now:         now,
	}
}

func TestDashboard(t *testing.T) {
	store := &fakeAnalyticsStore{
		applications: 4,
		statusCounts: []analyticsstore.StatusCount{{StatusID: "new", Cnt: 3}, {StatusID: "accepted", Cnt: 1}},
	}
	h := newTestHandler(store)

	result, err := h.Dashboard(context.Background(), "m1", analyticsapimodels.DashboardRequest{JobID: "job1"})
	require.NoError(t, err)
	require.Equal(t, "job1", result.Filter.JobID)
	require.Equal(t, analyticsapimodels.Totals{Jobs: 2, ActiveJobs: 1, Applications: 4, Events: 3}, result.Totals)
	require.Len(t, result.StatusDistribution, 2)
	require.Equal(t, float64(75), result.StatusDistribution[0].Percentage)
	require.Len(t, result.ConversionFunnel, 4)
	require.Equal(t, float64(100), result.JobDistribution[0].Percentage)
	require.Equal(t, GranularityWeek, result.StatusTrend.Granularity)
	require.Len(t, result.MonthlyTrend, 7)
	require.Len(t, result.AverageTimeInStage, 1)
	require.Equal(t, []string{"c1"}, store.filters[0].CompanyIDs)
}

func TestDashboardCacheIsPerManager(t *testing.T) {
	store := &fakeAnalyticsStore{
		applications: 1,
		statusCounts: []analyticsstore.StatusCount{{StatusID: "new", Cnt: 1}},
	}
	h := newTestHandler(store)

	first, err := h.Dashboard(context.Background(), "m1", analyticsapimodels.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, first.StatusDistribution, 1)

	store.statusCounts = []analyticsstore.StatusCount{{StatusID: "new", Cnt: 1}, {StatusID: "accepted", Cnt: 1}}
	cached, err := h.Dashboard(context.Background(), "m1", analyticsapimodels.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, cached.StatusDistribution, 1)

	other, err := h.Dashboard(context.Background(), "m2", analyticsapimodels.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, other.StatusDistribution, 2)
}

func TestDashboardWithoutCompanies(t *testing.T) {
	store := &fakeAnalyticsStore{}
	h := newTestHandler(store)

	result, err := h.Dashboard(context.Background(), "nobody", analyticsapimodels.DashboardRequest{CompanyID: "c1"})
	require.NoError(t, err)
	require.Empty(t, result.Filter.CompanyID)
	require.NotNil(t, store.filters[0].CompanyIDs)
	require.Empty(t, store.filters[0].CompanyIDs)
	require.Empty(t, result.StatusDistribution)
}

func TestDashboardCacheExpires(t *testing.T) {
	store := &fakeAnalyticsStore{
		applications: 1,
		statusCounts: []analyticsstore.StatusCount{{StatusID: "new", Cnt: 1}},
	}
	h := newTestHandler(store)
	h.cacheTTL = 100 * time.Millisecond

	first, err := h.Dashboard(context.Background(), "m1", analyticsapimodels.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, first.StatusDistribution, 1)

	store.statusCounts = []analyticsstore.StatusCount{{StatusID: "new", Cnt: 1}, {StatusID: "accepted", Cnt: 1}}
	time.Sleep(150 * time.Millisecond)
	fresh, err := h.Dashboard(context.Background(), "m1", analyticsapimodels.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, fresh.StatusDistribution, 2)
}
