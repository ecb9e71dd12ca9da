package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/report"
)

type Options struct {
	DefaultPageSize    int
	RecentLoadsLimit   int
	TopPerformersLimit int
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize < 1 {
		o.DefaultPageSize = 25
	}
	if o.RecentLoadsLimit < 1 {
		o.RecentLoadsLimit = 10
	}
	if o.TopPerformersLimit < 1 {
		o.TopPerformersLimit = 10
	}
	return o
}

type ReportService struct {
	source   DataSource
	engine   *report.Engine
	renderer Renderer
	archive  Archive
	opts     Options
	now      func() time.Time
	log      zerolog.Logger
}

func NewReportService(source DataSource, engine *report.Engine, renderer Renderer, opts Options, log zerolog.Logger) *ReportService {
	return &ReportService{
		source:   source,
		engine:   engine,
		renderer: renderer,
		opts:     opts.withDefaults(),
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// WithArchive stores every rendered export in addition to returning it.
func (s *ReportService) WithArchive(archive Archive) *ReportService {
	s.archive = archive
	return s
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func loadSpec(f LoadFilter) *filter.Spec[model.Load] {
	status, hasStatus := model.ParseLoadStatus(f.Status)
	loadType, hasType := model.ParseLoadType(f.LoadType)
	term := searchTerm(f.Search)

	return filter.New[model.Load]().
		Between(filter.FieldDispatchedDate, f.StartDate, f.EndDate, func(l model.Load) time.Time { return l.DispatchedDate }).
		WhereIf(hasStatus, func(l model.Load) bool { return l.Status == status }).
		WhereIf(hasType, func(l model.Load) bool { return l.Type == loadType }).
		WhereIf(f.AssignedDriverID != nil, func(l model.Load) bool {
			mainDriver, ok := l.MainDriverID()
			return ok && mainDriver == *f.AssignedDriverID
		}).
		WhereIf(f.AssignedTruckID != nil, func(l model.Load) bool {
			return l.AssignedTruckID != nil && *l.AssignedTruckID == *f.AssignedTruckID
		}).
		WhereIf(f.CustomerID != nil, func(l model.Load) bool {
			return l.CustomerID != nil && *l.CustomerID == *f.CustomerID
		}).
		WhereIf(f.MinDeliveryCost != nil, func(l model.Load) bool {
			return l.DeliveryCost.Amount.GreaterThanOrEqual(*f.MinDeliveryCost)
		}).
		WhereIf(f.MaxDeliveryCost != nil, func(l model.Load) bool {
			return l.DeliveryCost.Amount.LessThanOrEqual(*f.MaxDeliveryCost)
		}).
		WhereIf(term != "", func(l model.Load) bool { return loadMatches(l, term) })
}

func loadMatches(l model.Load, term string) bool {
	var truckNumber, customerName string
	if l.AssignedTruck != nil {
		truckNumber = l.AssignedTruck.Number
	}
	if l.Customer != nil {
		customerName = l.Customer.Name
	}
	return containsTerm(term, l.Name, truckNumber, customerName)
}

func windowSpec(start, end *time.Time) *filter.Spec[model.Load] {
	return filter.New[model.Load]().
		Between(filter.FieldDispatchedDate, start, end, func(l model.Load) time.Time { return l.DispatchedDate })
}

func driverSpec() *filter.Spec[model.Employee] {
	return filter.New[model.Employee]().Where(model.Employee.IsDriver)
}

// LoadReport returns one page of load rows plus the summary of the whole
// filtered set.
func (s *ReportService) LoadReport(ctx context.Context, q LoadReportQuery) (*model.LoadReport, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	paging := q.Paging.withDefaults(s.opts.DefaultPageSize)

	loads, err := s.source.FetchLoads(ctx, loadSpec(q.LoadFilter))
	if err != nil {
		return nil, aggregationError("load report", err)
	}

	report.SortLoads(loads, paging.SortBy, paging.SortOrder)
	page := model.Paginate(loads, paging.Page, paging.PageSize)

	return &model.LoadReport{
		Summary: s.engine.SummarizeLoads(loads),
		Loads: model.Page[model.LoadReportRow]{
			Items:      s.engine.ProjectLoads(page.Items, boolOr(q.IncludeInvoiceDetails, true)),
			TotalCount: page.TotalCount,
			Page:       page.Page,
			Size:       page.Size,
			TotalPages: page.TotalPages,
		},
	}, nil
}

// LoadSummary ignores the delivery cost bounds of the filter.
func (s *ReportService) LoadSummary(ctx context.Context, f LoadFilter) (*model.LoadReportSummary, error) {
	if err := validateRange(f.StartDate, f.EndDate); err != nil {
		return nil, err
	}
	f.MinDeliveryCost, f.MaxDeliveryCost = nil, nil

	loads, err := s.source.FetchLoads(ctx, loadSpec(f))
	if err != nil {
		return nil, aggregationError("load report summary", err)
	}
	summary := s.engine.SummarizeLoads(loads)
	return &summary, nil
}

type driverData struct {
	drivers []model.Employee
	trucks  []model.Truck
	loads   []model.Load
}

func (s *ReportService) fetchDriverData(ctx context.Context, start, end *time.Time) (*driverData, error) {
	drivers, err := s.source.FetchEmployees(ctx, driverSpec())
	if err != nil {
		return nil, err
	}
	trucks, err := s.source.FetchTrucks(ctx, nil)
	if err != nil {
		return nil, err
	}
	loads, err := s.source.FetchLoads(ctx, windowSpec(start, end))
	if err != nil {
		return nil, err
	}
	return &driverData{drivers: drivers, trucks: trucks, loads: loads}, nil
}

func (s *ReportService) driverRow(data *driverData, driver model.Employee, q DriverReportQuery) model.DriverReportRow {
	limit := q.RecentLoadsLimit
	if limit < 1 {
		limit = s.opts.RecentLoadsLimit
	}
	return s.engine.BuildDriverRow(
		driver,
		report.CurrentTruck(driver.ID, data.trucks),
		report.DriverLoads(driver.ID, data.loads),
		s.now(),
		report.DriverRowOptions{
			IncludeRecentLoads: boolOr(q.IncludeRecentLoads, true),
			RecentLoadsLimit:   limit,
		},
	)
}

// DriverReport sorts the full driver collection before paging. The summary
// covers every driver regardless of the row filters.
func (s *ReportService) DriverReport(ctx context.Context, q DriverReportQuery) (*model.DriverReport, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	paging := q.Paging.withDefaults(s.opts.DefaultPageSize)

	data, err := s.fetchDriverData(ctx, q.StartDate, q.EndDate)
	if err != nil {
		return nil, aggregationError("driver report", err)
	}

	var truck *model.Truck
	if q.TruckID != nil {
		for i := range data.trucks {
			if data.trucks[i].ID == *q.TruckID {
				truck = &data.trucks[i]
				break
			}
		}
	}
	term := searchTerm(q.Search)
	rowSpec := filter.New[model.Employee]().
		WhereIf(q.DriverID != nil, func(d model.Employee) bool { return d.ID == *q.DriverID }).
		WhereIf(q.TruckID != nil, func(d model.Employee) bool { return truck != nil && truck.HasDriver(d.ID) }).
		WhereIf(term != "", func(d model.Employee) bool { return containsTerm(term, d.FullName()) })

	matched := filter.Apply(rowSpec, data.drivers)
	rows := make([]model.DriverReportRow, 0, len(matched))
	for _, driver := range matched {
		rows = append(rows, s.driverRow(data, driver, q))
	}

	report.SortDrivers(rows, paging.SortBy, paging.SortOrder)
	return &model.DriverReport{
		Summary: s.engine.SummarizeDrivers(data.drivers, data.trucks, data.loads),
		Drivers: model.Paginate(rows, paging.Page, paging.PageSize),
	}, nil
}

func (s *ReportService) Driver(ctx context.Context, id uuid.UUID, q DriverReportQuery) (*model.DriverReportRow, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: driver id is required", ErrInvalidInput)
	}
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}

	data, err := s.fetchDriverData(ctx, q.StartDate, q.EndDate)
	if err != nil {
		return nil, aggregationError("driver report", err)
	}
	for _, driver := range data.drivers {
		if driver.ID == id {
			row := s.driverRow(data, driver, q)
			return &row, nil
		}
	}
	return nil, fmt.Errorf("%w: driver %s", ErrNotFound, id)
}

func (s *ReportService) DriverSummary(ctx context.Context, q DriverSummaryQuery) (*model.DriverReportSummary, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	data, err := s.fetchDriverData(ctx, q.StartDate, q.EndDate)
	if err != nil {
		return nil, aggregationError("driver report summary", err)
	}
	summary := s.engine.SummarizeDrivers(data.drivers, data.trucks, data.loads)
	return &summary, nil
}
