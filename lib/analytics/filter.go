package analyticshandler

import (
	"time"

	analyticsstore "campus-jobs-backend/lib/analytics/store"
	"campus-jobs-backend/lib/guard"
	"campus-jobs-backend/lib/utils/helpers"
	analyticsapimodels "campus-jobs-backend/models/api/analytics"
)

const defaultRangeMonths = 6

// JobCompanyResolver returns the company of a job, ok is false for an unknown job
type JobCompanyResolver func(jobID string) (companyID string, ok bool)

// NormalizeFilter applies the dashboard leniency rules: unparseable dates fall back to
// the default range, a range ending before it starts is reset to the default, and
// company or job filters outside the manager's companies are dropped.
func NormalizeFilter(raw analyticsapimodels.DashboardRequest, now time.Time, companyIDs []string, jobCompany JobCompanyResolver) analyticsstore.Filter {
	today := helpers.StartOfDay(now)
	defaultStart := today.AddDate(0, -defaultRangeMonths, 0)

	start := defaultStart
	if parsed := helpers.ParseDate(raw.StartDate, now.Location()); parsed != nil {
		start = *parsed
	}
	end := today
	if parsed := helpers.ParseDate(raw.EndDate, now.Location()); parsed != nil {
		end = *parsed
	}
	if end.Before(start) {
		start, end = defaultStart, today
	}

	result := analyticsstore.Filter{
		CompanyIDs: companyIDs,
		Start:      helpers.StartOfDay(start),
		End:        helpers.EndOfDay(end),
	}
	if result.CompanyIDs == nil {
		result.CompanyIDs = []string{}
	}
	if raw.CompanyID != "" && guard.Contains(companyIDs, raw.CompanyID) {
		result.CompanyID = raw.CompanyID
	}
	if raw.JobID != "" && jobCompany != nil {
		jobCompanyID, ok := jobCompany(raw.JobID)
		if ok && guard.Contains(companyIDs, jobCompanyID) && (result.CompanyID == "" || result.CompanyID == jobCompanyID) {
			result.JobID = raw.JobID
		}
	}
	return result
}

func appliedFilter(f analyticsstore.Filter) analyticsapimodels.AppliedFilter {
	return analyticsapimodels.AppliedFilter{
		CompanyID: f.CompanyID,
		JobID:     f.JobID,
		StartDate: f.Start.Format(helpers.DateLayout),
		EndDate:   f.End.Format(helpers.DateLayout),
	}
}
