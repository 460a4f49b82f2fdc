package analyticshandler

import (
	"fmt"
	"sort"
	"time"

	analyticsstore "campus-jobs-backend/lib/analytics/store"
	"campus-jobs-backend/lib/utils/helpers"
	analyticsapimodels "campus-jobs-backend/models/api/analytics"
	dbmodels "campus-jobs-backend/models/db"
)

const (
	GranularityDay  = "day"
	GranularityWeek = "week"

	// ranges longer than this many days are bucketed by week
	dailyRangeLimit = 30

	dayLabel   = "Jan 2"
	monthLabel = "Jan 2006"
)

type period struct {
	start time.Time
	end   time.Time
	label string
}

func (p period) contains(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

// rangeDays is the number of calendar days between the first and the last day of the range
func rangeDays(start, end time.Time) int {
	first := helpers.StartOfDay(start)
	last := helpers.StartOfDay(end)
	return int(last.Sub(first).Hours()/24 + 0.5)
}

func trendPeriods(start, end time.Time) (granularity string, periods []period) {
	first := helpers.StartOfDay(start)
	if rangeDays(start, end) <= dailyRangeLimit {
		for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
			periods = append(periods, period{start: day, end: helpers.EndOfDay(day), label: day.Format(dayLabel)})
		}
		return GranularityDay, periods
	}
	for week := helpers.StartOfWeek(first); !week.After(end); week = week.AddDate(0, 0, 7) {
		from := week
		if from.Before(first) {
			from = first
		}
		to := helpers.EndOfDay(week.AddDate(0, 0, 6))
		if to.After(end) {
			to = end
		}
		label := fmt.Sprintf("%s - %s", from.Format(dayLabel), to.Format(dayLabel))
		periods = append(periods, period{start: from, end: to, label: label})
	}
	return GranularityWeek, periods
}

func statusTrend(start, end time.Time, statuses []dbmodels.ApplicationStatus, points []analyticsstore.ApplicationPoint) analyticsapimodels.StatusTrend {
	granularity, periods := trendPeriods(start, end)
	result := analyticsapimodels.StatusTrend{
		Granularity: granularity,
		Labels:      make([]string, 0, len(periods)),
		Series:      make([]analyticsapimodels.TrendSeries, 0, len(statuses)),
	}
	for _, p := range periods {
		result.Labels = append(result.Labels, p.label)
	}
	for _, status := range statuses {
		series := analyticsapimodels.TrendSeries{
			StatusID: status.ID,
			Name:     status.Name,
			Color:    status.Color,
			Data:     make([]int64, len(periods)),
		}
		for _, point := range points {
			if point.StatusID != status.ID {
				continue
			}
			for k, p := range periods {
				if p.contains(point.CreatedAt) {
					series.Data[k]++
					break
				}
			}
		}
		result.Series = append(result.Series, series)
	}
	return result
}

func monthPeriods(start, end time.Time) []period {
	periods := []period{}
	for month := helpers.StartOfMonth(start); !month.After(end); month = month.AddDate(0, 1, 0) {
		periods = append(periods, period{
			start: month,
			end:   month.AddDate(0, 1, 0).Add(-time.Nanosecond),
			label: month.Format(monthLabel),
		})
	}
	return periods
}

// monthlyTrend counts creations within each whole calendar month overlapping the range
func monthlyTrend(periods []period, jobDates, applicationDates []time.Time) []analyticsapimodels.MonthItem {
	result := make([]analyticsapimodels.MonthItem, 0, len(periods))
	for _, p := range periods {
		item := analyticsapimodels.MonthItem{Month: p.label}
		for _, t := range jobDates {
			if p.contains(t) {
				item.Jobs++
			}
		}
		for _, t := range applicationDates {
			if p.contains(t) {
				item.Applications++
			}
		}
		result = append(result, item)
	}
	return result
}

func statusDistribution(statuses []dbmodels.ApplicationStatus, counts map[string]int64, total int64) []analyticsapimodels.StatusItem {
	result := make([]analyticsapimodels.StatusItem, 0, len(statuses))
	for _, status := range statuses {
		count := counts[status.ID]
		if count == 0 {
			continue
		}
		result = append(result, analyticsapimodels.StatusItem{
			StatusID:   status.ID,
			Name:       status.Name,
			Color:      status.Color,
			Count:      count,
			Percentage: helpers.Percentage(count, total),
		})
	}
	return result
}

func jobDistribution(list []analyticsstore.JobCount, total int64) []analyticsapimodels.JobItem {
	result := make([]analyticsapimodels.JobItem, 0, len(list))
	for _, item := range list {
		result = append(result, analyticsapimodels.JobItem{
			JobID:       item.JobID,
			Title:       item.Title,
			CompanyName: item.CompanyName,
			Count:       item.Cnt,
			Percentage:  helpers.Percentage(item.Cnt, total),
		})
	}
	return result
}

// conversionFunnel expects statuses ordered by their order
func conversionFunnel(statuses []dbmodels.ApplicationStatus, counts map[string]int64, total int64) []analyticsapimodels.FunnelItem {
	result := make([]analyticsapimodels.FunnelItem, 0, len(statuses))
	for k, status := range statuses {
		count := counts[status.ID]
		item := analyticsapimodels.FunnelItem{
			StatusID:   status.ID,
			Name:       status.Name,
			Count:      count,
			Percentage: helpers.Percentage(count, total),
		}
		if k > 0 {
			item.ConversionRate = helpers.Percentage(count, counts[statuses[k-1].ID])
		}
		result = append(result, item)
	}
	return result
}

// averageTimeInStage measures each stage visit as the gap to the next history row of the
// same application. The current stage of an application has no end yet and is skipped.
func averageTimeInStage(stages []dbmodels.HiringStage, history []analyticsstore.HistoryPoint) []analyticsapimodels.StageTimeItem {
	type acc struct {
		total   time.Duration
		samples int
	}
	byStage := map[string]*acc{}
	for k := 0; k+1 < len(history); k++ {
		cur, next := history[k], history[k+1]
		if cur.ApplicationID != next.ApplicationID {
			continue
		}
		a, ok := byStage[cur.StageID]
		if !ok {
			a = &acc{}
			byStage[cur.StageID] = a
		}
		a.total += next.CreatedAt.Sub(cur.CreatedAt)
		a.samples++
	}
	sorted := make([]dbmodels.HiringStage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	result := make([]analyticsapimodels.StageTimeItem, 0, len(sorted))
	for _, stage := range sorted {
		item := analyticsapimodels.StageTimeItem{StageID: stage.ID, Name: stage.Name}
		if a, ok := byStage[stage.ID]; ok {
			item.Samples = a.samples
			item.AverageDays = helpers.Round1(a.total.Hours() / 24 / float64(a.samples))
		}
		result = append(result, item)
	}
	return result
}
