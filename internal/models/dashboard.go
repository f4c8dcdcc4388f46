package models

import "time"

type DashboardPeriod string

const (
	PeriodWeek  DashboardPeriod = "week"
	PeriodMonth DashboardPeriod = "month"
	PeriodYear  DashboardPeriod = "year"
)

func (p DashboardPeriod) Valid() bool {
	return p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// Bounds returns the window [now-period, now+period].
func (p DashboardPeriod) Bounds(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodMonth:
		return now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0)
	default:
		return now.AddDate(0, 0, -7), now.AddDate(0, 0, 7)
	}
}

type CategoryCount struct {
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

type DashboardSummary struct {
	Period             DashboardPeriod     `json:"period"`
	WindowStart        time.Time           `json:"window_start"`
	WindowEnd          time.Time           `json:"window_end"`
	TotalPrints        int                 `json:"total_prints"`
	TotalProducts      int                 `json:"total_products"`
	AlertsInWindow     map[AlertStatus]int `json:"alerts_in_window"`
	AlertsByStatus     map[AlertStatus]int `json:"alerts_by_status"`
	ProductsByCategory []CategoryCount     `json:"products_by_category"`
	RecentPrints       []RecentPrint       `json:"recent_prints"`
}
