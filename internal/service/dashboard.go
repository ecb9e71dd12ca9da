package service

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/fleet-reports/internal/model"
)

const (
	sectionLoads      = "loads"
	sectionDrivers    = "drivers"
	sectionFinancials = "financials"
)

// Dashboard runs the load, driver and financial summaries concurrently for
// one window. A failed branch is logged and replaced by its zero value; only
// cancellation of ctx fails the whole dashboard.
func (s *ReportService) Dashboard(ctx context.Context, q DashboardQuery) (*model.DashboardReport, error) {
	now := s.now()
	start, end := now.AddDate(0, -1, 0), now
	if q.StartDate != nil {
		start = *q.StartDate
	}
	if q.EndDate != nil {
		end = *q.EndDate
	}
	if err := validateRange(&start, &end); err != nil {
		return nil, err
	}

	result := &model.DashboardReport{StartDate: start, EndDate: end, GeneratedAt: now}
	var mu sync.Mutex
	degrade := func(section string, err error) {
		s.log.Warn().Err(err).Str("section", section).Msg("dashboard section degraded")
		mu.Lock()
		result.Degraded = append(result.Degraded, section)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		summary, err := s.LoadSummary(ctx, LoadFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			degrade(sectionLoads, err)
			return nil
		}
		result.Loads = *summary
		return nil
	})
	g.Go(func() error {
		summary, err := s.DriverSummary(ctx, DriverSummaryQuery{StartDate: &start, EndDate: &end})
		if err != nil {
			degrade(sectionDrivers, err)
			return nil
		}
		result.Drivers = *summary
		return nil
	})
	g.Go(func() error {
		summary, err := s.FinancialSummary(ctx, FinancialSummaryQuery{StartDate: &start, EndDate: &end})
		if err != nil {
			degrade(sectionFinancials, err)
			return nil
		}
		result.Financials = *summary
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	order := map[string]int{sectionLoads: 0, sectionDrivers: 1, sectionFinancials: 2}
	slices.SortFunc(result.Degraded, func(a, b string) int { return cmp.Compare(order[a], order[b]) })
	return result, nil
}
