package analyticsapimodels

// DashboardRequest carries the raw filter, invalid values are dropped during normalization
type DashboardRequest struct {
	CompanyID string `json:"company_id" query:"company_id"` // Company id
	JobID     string `json:"job_id" query:"job_id"`         // Job id
	StartDate string `json:"start_date" query:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date" query:"end_date"`     // YYYY-MM-DD
}

type AppliedFilter struct {
	CompanyID string `json:"company_id"`
	JobID     string `json:"job_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Totals struct {
	Jobs         int64 `json:"jobs"`
	ActiveJobs   int64 `json:"active_jobs"`
	Applications int64 `json:"applications"`
	Events       int64 `json:"events"`
}

type StatusItem struct {
	StatusID   string  `json:"status_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type JobItem struct {
	JobID       string  `json:"job_id"`
	Title       string  `json:"title"`
	CompanyName string  `json:"company_name"`
	Count       int64   `json:"count"`
	Percentage  float64 `json:"percentage"`
}

type MonthItem struct {
	Month        string `json:"month"`
	Jobs         int64  `json:"jobs"`
	Applications int64  `json:"applications"`
}

type TrendSeries struct {
	StatusID string  `json:"status_id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Data     []int64 `json:"data"`
}

type StatusTrend struct {
	Granularity string        `json:"granularity"` // day/week
	Labels      []string      `json:"labels"`
	Series      []TrendSeries `json:"series"`
}

type FunnelItem struct {
	StatusID       string  `json:"status_id"`
	Name           string  `json:"name"`
	Count          int64   `json:"count"`
	Percentage     float64 `json:"percentage"`
	ConversionRate float64 `json:"conversion_rate"`
}

type StageTimeItem struct {
	StageID     string  `json:"stage_id"`
	Name        string  `json:"name"`
	AverageDays float64 `json:"average_days"`
	Samples     int     `json:"samples"`
}

type Dashboard struct {
	Filter             AppliedFilter   `json:"filter"`
	Totals             Totals          `json:"totals"`
	StatusDistribution []StatusItem    `json:"status_distribution"`
	JobDistribution    []JobItem       `json:"job_distribution"`
	MonthlyTrend       []MonthItem     `json:"monthly_trend"`
	StatusTrend        StatusTrend     `json:"status_trend"`
	ConversionFunnel   []FunnelItem    `json:"conversion_funnel"`
	AverageTimeInStage []StageTimeItem `json:"average_time_in_stage"`
}
