package analyticshandler

import (
	"context"
	"fmt"
	"time"

	"campus-jobs-backend/config"
	"campus-jobs-backend/db"
	analyticsstore "campus-jobs-backend/lib/analytics/store"
	"campus-jobs-backend/lib/cache"
	applicationstatusstore "campus-jobs-backend/lib/dicts/application-status/store"
	hiringstagestore "campus-jobs-backend/lib/dicts/hiring-stage/store"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	analyticsapimodels "campus-jobs-backend/models/api/analytics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Dashboard(ctx context.Context, managerID string, raw analyticsapimodels.DashboardRequest) (analyticsapimodels.Dashboard, error)
}

var Instance Provider

const defaultCacheTTL = 5 * time.Minute

func NewHandler() {
	ttl := defaultCacheTTL
	if config.Conf != nil && config.Conf.Redis.CacheTTLSeconds > 0 {
		ttl = time.Duration(config.Conf.Redis.CacheTTLSeconds) * time.Second
	}
	instance := impl{
		store:       analyticsstore.NewInstance(db.DB),
		statusStore: applicationstatusstore.NewInstance(db.DB),
		stageStore:  hiringstagestore.NewInstance(db.DB),
		jobStore:    jobstore.NewInstance(db.DB),
		guard:       guard.Instance,
		cache:       cache.Instance,
		cacheTTL:    ttl,
		now:         time.Now,
	}
	initchecker.CheckInit(
		"guard", instance.guard,
		"cache", instance.cache,
	)
	Instance = instance
}

type impl struct {
	store       analyticsstore.Provider
	statusStore applicationstatusstore.Provider
	stageStore  hiringstagestore.Provider
	jobStore    jobstore.Provider
	guard       guard.Provider
	cache       cache.Provider
	cacheTTL    time.Duration
	now         func() time.Time
}

func (i impl) jobCompany(jobID string) (string, bool) {
	job, err := i.jobStore.GetByID(jobID)
	if err != nil || job == nil {
		return "", false
	}
	return job.CompanyID, true
}

func cacheKey(kind, managerID string, f analyticsstore.Filter) string {
	return fmt.Sprintf("analytics:%s:%s:%s:%s:%d:%d", kind, managerID, f.CompanyID, f.JobID, f.Start.Unix(), f.End.Unix())
}

func (i impl) Dashboard(ctx context.Context, managerID string, raw analyticsapimodels.DashboardRequest) (result analyticsapimodels.Dashboard, err error) {
	logger := log.WithField("manager_id", managerID)
	companyIDs, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return result, err
	}
	f := NormalizeFilter(raw, i.now(), companyIDs, i.jobCompany)
	result.Filter = appliedFilter(f)

	if result.Totals, err = i.totals(f); err != nil {
		return result, err
	}
	total := result.Totals.Applications

	statuses, err := i.statusStore.List()
	if err != nil {
		return result, errors.Wrap(err, "statuses loading failed")
	}
	counts := map[string]int64{}
	statusCounts, err := i.store.StatusCounts(f)
	if err != nil {
		return result, errors.Wrap(err, "status counts failed")
	}
	for _, item := range statusCounts {
		counts[item.StatusID] = item.Cnt
	}

	result.StatusDistribution, err = cache.GetOrLoad(ctx, i.cache, cacheKey("status", managerID, f), i.cacheTTL,
		func() ([]analyticsapimodels.StatusItem, error) {
			return statusDistribution(statuses, counts, total), nil
		})
	if err != nil {
		return result, err
	}

	jobCounts, err := i.store.JobCounts(f)
	if err != nil {
		return result, errors.Wrap(err, "job counts failed")
	}
	result.JobDistribution = jobDistribution(jobCounts, total)

	periods := monthPeriods(f.Start, f.End)
	monthFrom, monthTo := periods[0].start, periods[len(periods)-1].end
	jobDates, err := i.store.JobDates(f, monthFrom, monthTo)
	if err != nil {
		return result, errors.Wrap(err, "job dates loading failed")
	}
	applicationDates, err := i.store.ApplicationDates(f, monthFrom, monthTo)
	if err != nil {
		return result, errors.Wrap(err, "application dates loading failed")
	}
	result.MonthlyTrend = monthlyTrend(periods, jobDates, applicationDates)

	result.StatusTrend, err = cache.GetOrLoad(ctx, i.cache, cacheKey("trend", managerID, f), i.cacheTTL,
		func() (analyticsapimodels.StatusTrend, error) {
			points, err := i.store.ApplicationPoints(f)
			if err != nil {
				return analyticsapimodels.StatusTrend{}, errors.Wrap(err, "application points loading failed")
			}
			return statusTrend(f.Start, f.End, statuses, points), nil
		})
	if err != nil {
		return result, err
	}

	result.ConversionFunnel = conversionFunnel(statuses, counts, total)

	stages, err := i.stageStore.List()
	if err != nil {
		return result, errors.Wrap(err, "hiring stages loading failed")
	}
	history, err := i.store.StageHistory(f)
	if err != nil {
		return result, errors.Wrap(err, "stage history loading failed")
	}
	result.AverageTimeInStage = averageTimeInStage(stages, history)

	logger.WithField("filter", result.Filter).Debug("dashboard built")
	return result, nil
}

func (i impl) totals(f analyticsstore.Filter) (totals analyticsapimodels.Totals, err error) {
	if totals.Jobs, err = i.store.JobsTouched(f); err != nil {
		return totals, errors.Wrap(err, "jobs count failed")
	}
	if totals.ActiveJobs, err = i.store.ActiveJobs(f); err != nil {
		return totals, errors.Wrap(err, "active jobs count failed")
	}
	if totals.Applications, err = i.store.Applications(f); err != nil {
		return totals, errors.Wrap(err, "applications count failed")
	}
	if totals.Events, err = i.store.Events(f); err != nil {
		return totals, errors.Wrap(err, "events count failed")
	}
	return totals, nil
}
