package api

import (
	"context"
	"net/http"

	"agrigest/internal/types"
)

// Chart periods accepted by /dashboard/graphiques/.
const (
	Period3Months  = "3months"
	Period6Months  = "6months"
	Period12Months = "12months"
	PeriodAll      = "all"
)

// ChartPeriods lists the selectable chart periods in display order.
var ChartPeriods = []string{Period3Months, Period6Months, Period12Months, PeriodAll}

// DashboardService is the facade for the read-only dashboard endpoints.
type DashboardService struct {
	c *Client
}

// Stats fetches the aggregate dashboard statistics.
func (s *DashboardService) Stats(ctx context.Context) (*types.DashboardStats, error) {
	var stats types.DashboardStats
	if err := s.c.do(ctx, http.MethodGet, "/dashboard/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Charts fetches the chart series for the given period. An empty
// period falls back to the server default (12 months).
func (s *DashboardService) Charts(ctx context.Context, period string) (*types.ChartData, error) {
	path := "/dashboard/graphiques/"
	if period != "" {
		path += "?period=" + period
	}
	var data types.ChartData
	if err := s.c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
