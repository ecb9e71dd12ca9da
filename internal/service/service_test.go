package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-reports/internal/export"
	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/report"
	"github.com/nurpe/fleet-reports/internal/repository"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type fleet struct {
	seed       repository.Seed
	ann, bob   uuid.UUID
	customerID uuid.UUID
}

func usd(v string) model.Money {
	return model.Money{Amount: decimal.RequireFromString(v), Currency: "USD"}
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// newFleet builds two drivers with one truck each and four loads:
// 1 delivered (Ann, Mar 1, 1000), 2 dispatched (Ann, Mar 10, 500),
// 3 delivered (Bob, Feb 5, 2000), 4 picked up (no truck, Mar 12, 300).
func newFleet() fleet {
	ann, bob, carl := uuid.New(), uuid.New(), uuid.New()
	t1, t2 := uuid.New(), uuid.New()
	customerID := uuid.New()
	l1, l2, l3, l4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	seed := repository.Seed{
		Customers: []model.Customer{{ID: customerID, Name: "Acme"}},
		Employees: []model.Employee{
			{ID: ann, FirstName: "Ann", LastName: "Lee", Roles: []string{"Driver"}},
			{ID: bob, FirstName: "Bob", LastName: "Ray", Roles: []string{"Driver"}},
			{ID: carl, FirstName: "Carl", LastName: "Fox", Roles: []string{"Dispatcher"}},
		},
		Trucks: []model.Truck{
			{ID: t1, Number: "T-1", MainDriverID: &ann},
			{ID: t2, Number: "T-2", MainDriverID: &bob},
		},
		Loads: []model.Load{
			{ID: l1, Number: 1, Name: "Steel", Type: model.LoadTypeGeneral, Status: model.LoadStatusDelivered,
				Distance: 120, DeliveryCost: usd("1000"), DispatchedDate: at(3, 1, 8),
				PickUpDate: ptr(at(3, 1, 9)), DeliveryDate: ptr(at(3, 1, 18)),
				AssignedTruckID: &t1, CustomerID: &customerID},
			{ID: l2, Number: 2, Name: "Lumber", Type: model.LoadTypeGeneral, Status: model.LoadStatusDispatched,
				Distance: 80, DeliveryCost: usd("500"), DispatchedDate: at(3, 10, 8), AssignedTruckID: &t1},
			{ID: l3, Number: 3, Name: "Milk", Type: model.LoadTypeRefrigerated, Status: model.LoadStatusDelivered,
				Distance: 300, DeliveryCost: usd("2000"), DispatchedDate: at(2, 5, 8),
				PickUpDate: ptr(at(2, 5, 9)), DeliveryDate: ptr(at(2, 5, 14)), AssignedTruckID: &t2},
			{ID: l4, Number: 4, Name: "Paint", Type: model.LoadTypeHazmat, Status: model.LoadStatusPickedUp,
				Distance: 50, DeliveryCost: usd("300"), DispatchedDate: at(3, 12, 8), PickUpDate: ptr(at(3, 12, 10))},
		},
		Invoices: []model.Invoice{{
			ID: uuid.New(), Number: 100, LoadID: &l1, CustomerID: &customerID,
			Status: model.InvoiceStatusPaid, Total: usd("1000"), CreatedAt: at(3, 2, 0),
			Payments: []model.Payment{{ID: uuid.New(), Amount: usd("1000"), Status: model.PaymentStatusCompleted, CreatedAt: at(3, 5, 0)}},
		}},
		PayrollInvoices: []model.PayrollInvoice{{
			ID: uuid.New(), EmployeeID: ann, PeriodStart: at(3, 1, 0), PeriodEnd: at(3, 15, 0),
			Status: model.InvoiceStatusPaid, Total: usd("400"), CreatedAt: at(3, 16, 0),
		}},
	}
	return fleet{seed: seed, ann: ann, bob: bob, customerID: customerID}
}

func newService(source DataSource) *ReportService {
	return NewReportService(
		source,
		report.NewEngine(metrics.DefaultPolicy()),
		export.NewRenderer(nil, nil, nil),
		Options{},
		zerolog.Nop(),
	).WithClock(func() time.Time { return fixedNow })
}

type failingSource struct {
	*repository.MemoryStore
	failLoads   bool
	failPayroll bool
}

var errSourceDown = errors.New("connection refused")

func (f *failingSource) FetchLoads(ctx context.Context, spec *filter.Spec[model.Load]) ([]model.Load, error) {
	if f.failLoads {
		return nil, errSourceDown
	}
	return f.MemoryStore.FetchLoads(ctx, spec)
}

func (f *failingSource) FetchPayrollInvoices(ctx context.Context, spec *filter.Spec[model.PayrollInvoice]) ([]model.PayrollInvoice, error) {
	if f.failPayroll {
		return nil, errSourceDown
	}
	return f.MemoryStore.FetchPayrollInvoices(ctx, spec)
}

func TestLoadReportFiltersSortsAndPages(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))

	result, err := svc.LoadReport(context.Background(), LoadReportQuery{Paging: Paging{Page: 2, PageSize: 1}})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Loads.TotalCount)
	assert.Equal(t, 4, result.Loads.TotalPages)
	require.Len(t, result.Loads.Items, 1)
	assert.Equal(t, int64(2), result.Loads.Items[0].Number)
	assert.Equal(t, 4, result.Summary.TotalLoads)

	delivered, err := svc.LoadReport(context.Background(), LoadReportQuery{
		LoadFilter: LoadFilter{Status: "delivered"},
		Paging:     Paging{SortOrder: "asc"},
	})
	require.NoError(t, err)
	require.Len(t, delivered.Loads.Items, 2)
	assert.Equal(t, int64(3), delivered.Loads.Items[0].Number)
	assert.True(t, decimal.RequireFromString("3000").Equal(delivered.Summary.TotalRevenue))
	assert.Equal(t, 2, delivered.Summary.CompletedLoads)
}

func TestLoadReportByMainDriver(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))

	result, err := svc.LoadReport(context.Background(), LoadReportQuery{LoadFilter: LoadFilter{AssignedDriverID: &f.ann}})

	require.NoError(t, err)
	require.Len(t, result.Loads.Items, 2)
	for _, row := range result.Loads.Items {
		assert.Equal(t, "Ann Lee", row.AssignedDriverName)
	}
}

func TestLoadReportRejectsInvertedRange(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	_, err := svc.LoadReport(context.Background(), LoadReportQuery{
		LoadFilter: LoadFilter{StartDate: ptr(at(3, 10, 0)), EndDate: ptr(at(3, 1, 0))},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadReportWrapsSourceFailures(t *testing.T) {
	source := &failingSource{MemoryStore: repository.NewMemoryStore(newFleet().seed), failLoads: true}
	svc := newService(source)

	_, err := svc.LoadReport(context.Background(), LoadReportQuery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAggregation)
	assert.ErrorIs(t, err, errSourceDown)
	assert.Contains(t, err.Error(), "error generating load report: connection refused")
}

func TestLoadSummaryIgnoresCostBounds(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	summary, err := svc.LoadSummary(context.Background(), LoadFilter{MinDeliveryCost: ptr(decimal.NewFromInt(10000))})

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalLoads)
}

func TestDriverReportCountsDispatchedLoadsInEarnings(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))

	result, err := svc.DriverReport(context.Background(), DriverReportQuery{DriverID: &f.ann})

	require.NoError(t, err)
	require.Len(t, result.Drivers.Items, 1)
	row := result.Drivers.Items[0]
	assert.Equal(t, "T-1", row.CurrentTruckNumber)
	assert.Equal(t, 1, row.TotalLoadsCompleted)
	assert.Equal(t, 2, row.TotalLoadsAssigned)
	assert.True(t, decimal.RequireFromString("450").Equal(row.TotalEarnings), row.TotalEarnings.String())
	assert.Equal(t, 200.0, row.TotalDistanceDriven)
	assert.Len(t, row.RecentLoads, 2)

	assert.Equal(t, 2, result.Summary.TotalDrivers)
	assert.Equal(t, 2, result.Summary.ActiveDrivers)
}

func TestDriverReportByTruck(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))
	truckID := f.seed.Trucks[1].ID

	result, err := svc.DriverReport(context.Background(), DriverReportQuery{TruckID: &truckID})

	require.NoError(t, err)
	require.Len(t, result.Drivers.Items, 1)
	assert.Equal(t, f.bob, result.Drivers.Items[0].ID)
}

func TestDriverLookup(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))
	ctx := context.Background()

	row, err := svc.Driver(ctx, f.bob, DriverReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bob Ray", row.FullName)

	_, err = svc.Driver(ctx, uuid.New(), DriverReportQuery{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Driver(ctx, uuid.Nil, DriverReportQuery{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinancialReport(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	result, err := svc.FinancialReport(context.Background(), FinancialReportQuery{
		StartDate: at(3, 1, 0),
		EndDate:   at(3, 31, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, defaultFinancialPeriod, result.Period)
	assert.True(t, decimal.RequireFromString("1800").Equal(result.TotalRevenue), result.TotalRevenue.String())
	assert.True(t, decimal.RequireFromString("400").Equal(result.Expenses.PayrollExpenses))
	require.NotNil(t, result.Comparison)
	assert.True(t, decimal.RequireFromString("2000").Equal(result.Comparison.PreviousPeriodRevenue))
	require.NotEmpty(t, result.TopCustomers)
	assert.Equal(t, "Acme", result.TopCustomers[0].CustomerName)
}

func TestFinancialReportRequiresRange(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	_, err := svc.FinancialReport(context.Background(), FinancialReportQuery{EndDate: at(3, 31, 0)})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCashFlow(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))

	result, err := svc.CashFlow(context.Background(), CashFlowQuery{StartDate: at(3, 1, 0), EndDate: at(3, 31, 0)})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(result.TotalInflows))
	assert.True(t, decimal.NewFromInt(400).Equal(result.TotalOutflows))
	assert.True(t, decimal.NewFromInt(600).Equal(result.ClosingBalance))
	require.Len(t, result.Periods, 1)
	assert.True(t, decimal.NewFromInt(600).Equal(result.Periods[0].RunningBalance))
}

func TestDashboardDegradesFailedSection(t *testing.T) {
	source := &failingSource{MemoryStore: repository.NewMemoryStore(newFleet().seed), failPayroll: true}
	svc := newService(source)

	result, err := svc.Dashboard(context.Background(), DashboardQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{sectionFinancials}, result.Degraded)
	assert.Equal(t, fixedNow.AddDate(0, -1, 0), result.StartDate)
	assert.Equal(t, 3, result.Loads.TotalLoads)
	assert.Equal(t, 2, result.Drivers.TotalDrivers)
	assert.True(t, result.Financials.TotalRevenue.IsZero())
}

func TestDashboardCancelled(t *testing.T) {
	svc := newService(repository.NewMemoryStore(newFleet().seed))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Dashboard(ctx, DashboardQuery{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadReportSearch(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))

	tests := []struct {
		search string
		want   []int64
	}{
		{search: "acme", want: []int64{1}},
		{search: "  t-2 ", want: []int64{3}},
		{search: "MIL", want: []int64{3}},
		{search: "t-", want: []int64{2, 1, 3}},
		{search: "nothing", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			result, err := svc.LoadReport(context.Background(), LoadReportQuery{LoadFilter: LoadFilter{Search: tt.search}})
			require.NoError(t, err)

			numbers := []int64{}
			for _, row := range result.Loads.Items {
				numbers = append(numbers, row.Number)
			}
			assert.Equal(t, tt.want, numbers)
			assert.Equal(t, len(tt.want), result.Summary.TotalLoads)
		})
	}
}

func TestDriverReportSearchKeepsSummary(t *testing.T) {
	f := newFleet()
	svc := newService(repository.NewMemoryStore(f.seed))

	result, err := svc.DriverReport(context.Background(), DriverReportQuery{Search: "RAY"})

	require.NoError(t, err)
	require.Len(t, result.Drivers.Items, 1)
	assert.Equal(t, f.bob, result.Drivers.Items[0].ID)
	assert.Equal(t, 2, result.Summary.TotalDrivers)
}

func TestInvoiceReport(t *testing.T) {
	f := newFleet()
	f.seed.Invoices = append(f.seed.Invoices,
		model.Invoice{ID: uuid.New(), Number: 101, Status: model.InvoiceStatusIssued, Total: usd("500"), CreatedAt: at(3, 8, 0)},
		model.Invoice{ID: uuid.New(), Number: 102, CustomerID: &f.customerID, Status: model.InvoiceStatusOverdue,
			Total: usd("250"), CreatedAt: at(2, 20, 0),
			Payments: []model.Payment{{ID: uuid.New(), Amount: usd("50"), Status: model.PaymentStatusPending, CreatedAt: at(2, 25, 0)}}},
	)
	svc := newService(repository.NewMemoryStore(f.seed))
	ctx := context.Background()

	all, err := svc.InvoiceReport(ctx, InvoiceReportQuery{})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1750").Equal(all.TotalInvoiced))
	assert.True(t, decimal.RequireFromString("1050").Equal(all.TotalPaid))
	assert.True(t, decimal.RequireFromString("700").Equal(all.TotalDue))
	require.Len(t, all.Invoices.Items, 3)
	assert.Equal(t, int64(101), all.Invoices.Items[0].InvoiceNumber)
	assert.Equal(t, int64(100), all.Invoices.Items[1].InvoiceNumber)
	assert.Equal(t, "Acme", all.Invoices.Items[1].CustomerName)

	acme, err := svc.InvoiceReport(ctx, InvoiceReportQuery{Search: "acm", Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, acme.Invoices.Items, 1)
	assert.Equal(t, int64(102), acme.Invoices.Items[0].InvoiceNumber)
	assert.True(t, decimal.RequireFromString("200").Equal(acme.TotalDue))

	march, err := svc.InvoiceReport(ctx, InvoiceReportQuery{
		StartDate: ptr(at(3, 1, 0)),
		EndDate:   ptr(at(3, 31, 0)),
		Paging:    Paging{Page: 2, PageSize: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, march.Invoices.TotalCount)
	require.Len(t, march.Invoices.Items, 1)
	assert.Equal(t, int64(100), march.Invoices.Items[0].InvoiceNumber)

	_, err = svc.InvoiceReport(ctx, InvoiceReportQuery{StartDate: ptr(at(3, 2, 0)), EndDate: ptr(at(3, 1, 0))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
