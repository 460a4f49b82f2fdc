package analyticshandler

import (
	"testing"
	"time"

	analyticsapimodels "campus-jobs-backend/models/api/analytics"
	"github.com/stretchr/testify/require"
)

func testJobCompany(jobID string) (string, bool) {
	switch jobID {
	case "job1":
		return "c1", true
	case "job2":
		return "c2", true
	case "job9":
		return "c9", true
	}
	return "", false
}

func TestNormalizeFilterDefaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	f := NormalizeFilter(analyticsapimodels.DashboardRequest{StartDate: "garbage"}, now, []string{"c1"}, testJobCompany)
	require.Equal(t, time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), f.Start)
	require.Equal(t, "2024-06-15", f.End.Format("2006-01-02"))
	require.Equal(t, 23, f.End.Hour())
	require.Empty(t, f.CompanyID)
	require.Empty(t, f.JobID)
}

func TestNormalizeFilterEndBeforeStartResets(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	f := NormalizeFilter(analyticsapimodels.DashboardRequest{
		StartDate: "2024-05-10",
		EndDate:   "2024-05-01",
	}, now, []string{"c1"}, testJobCompany)
	applied := appliedFilter(f)
	require.Equal(t, "2023-12-15", applied.StartDate)
	require.Equal(t, "2024-06-15", applied.EndDate)
}

func TestNormalizeFilterExplicitRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	f := NormalizeFilter(analyticsapimodels.DashboardRequest{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-01",
	}, now, []string{"c1"}, testJobCompany)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), f.Start)
	require.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), f.End)
}

func TestNormalizeFilterDropsForeignScope(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	managed := []string{"c1", "c2"}

	f := NormalizeFilter(analyticsapimodels.DashboardRequest{CompanyID: "c9", JobID: "job9"}, now, managed, testJobCompany)
	require.Empty(t, f.CompanyID)
	require.Empty(t, f.JobID)

	f = NormalizeFilter(analyticsapimodels.DashboardRequest{CompanyID: "c1", JobID: "job2"}, now, managed, testJobCompany)
	require.Equal(t, "c1", f.CompanyID)
	require.Empty(t, f.JobID)

	f = NormalizeFilter(analyticsapimodels.DashboardRequest{JobID: "job2"}, now, managed, testJobCompany)
	require.Equal(t, "job2", f.JobID)

	f = NormalizeFilter(analyticsapimodels.DashboardRequest{JobID: "unknown"}, now, managed, testJobCompany)
	require.Empty(t, f.JobID)
}

func TestNormalizeFilterNoCompanies(t *testing.T) {
	f := NormalizeFilter(analyticsapimodels.DashboardRequest{CompanyID: "c1"}, time.Now(), nil, testJobCompany)
	require.NotNil(t, f.CompanyIDs)
	require.Empty(t, f.CompanyIDs)
	require.Empty(t, f.CompanyID)
}
