package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/period"
	"github.com/nurpe/fleet-reports/internal/report"
)

const defaultFinancialPeriod = "Monthly"

func invoiceSpec(start, end time.Time) *filter.Spec[model.Invoice] {
	return filter.New[model.Invoice]().
		Between(filter.FieldCreatedAt, &start, &end, func(i model.Invoice) time.Time { return i.CreatedAt })
}

// payrollSpec keeps payroll invoices whose whole period lies in the window.
func payrollSpec(start, end time.Time) *filter.Spec[model.PayrollInvoice] {
	return filter.New[model.PayrollInvoice]().
		Hint(filter.Window{Field: filter.FieldPayrollPeriod, From: &start, To: &end}).
		Where(func(p model.PayrollInvoice) bool {
			return !p.PeriodStart.Before(start) && !p.PeriodEnd.After(end)
		})
}

func (s *ReportService) FinancialReport(ctx context.Context, q FinancialReportQuery) (*model.FinancialReport, error) {
	if err := requireRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	if q.Period == "" {
		q.Period = defaultFinancialPeriod
	}
	limit := q.TopPerformersLimit
	if limit < 1 {
		limit = s.opts.TopPerformersLimit
	}

	in := report.FinancialInput{
		Start:                q.StartDate,
		End:                  q.EndDate,
		Period:               q.Period,
		IncludeTopPerformers: boolOr(q.IncludeTopPerformers, true),
		TopPerformersLimit:   limit,
		IncludeInvoiceAging:  boolOr(q.IncludeInvoiceAging, true),
	}

	var err error
	if in.Loads, err = s.source.FetchLoads(ctx, windowSpec(&q.StartDate, &q.EndDate)); err != nil {
		return nil, aggregationError("financial report", err)
	}
	if in.Invoices, err = s.source.FetchInvoices(ctx, invoiceSpec(q.StartDate, q.EndDate)); err != nil {
		return nil, aggregationError("financial report", err)
	}
	if in.Payroll, err = s.source.FetchPayrollInvoices(ctx, payrollSpec(q.StartDate, q.EndDate)); err != nil {
		return nil, aggregationError("financial report", err)
	}
	if in.IncludeTopPerformers {
		if in.Employees, err = s.source.FetchEmployees(ctx, nil); err != nil {
			return nil, aggregationError("financial report", err)
		}
		if in.Customers, err = s.source.FetchCustomers(ctx, nil); err != nil {
			return nil, aggregationError("financial report", err)
		}
	}

	if boolOr(q.IncludeComparison, true) {
		prevStart, prevEnd, err := period.PreviousPeriodOfEqualLength(q.StartDate, q.EndDate)
		if err != nil {
			return nil, err
		}
		previous := &report.PreviousWindow{Start: prevStart, End: prevEnd}
		if previous.Loads, err = s.source.FetchLoads(ctx, windowSpec(&prevStart, &prevEnd)); err != nil {
			return nil, aggregationError("financial report", err)
		}
		if previous.Payroll, err = s.source.FetchPayrollInvoices(ctx, payrollSpec(prevStart, prevEnd)); err != nil {
			return nil, aggregationError("financial report", err)
		}
		in.Previous = previous
	}

	result := s.engine.BuildFinancialReport(in, s.now())
	return &result, nil
}

// FinancialSummary defaults to the twelve months ending now.
func (s *ReportService) FinancialSummary(ctx context.Context, q FinancialSummaryQuery) (*model.FinancialSummary, error) {
	now := s.now()
	start, end := now.AddDate(0, -12, 0), now
	if q.StartDate != nil {
		start = *q.StartDate
	}
	if q.EndDate != nil {
		end = *q.EndDate
	}
	if err := validateRange(&start, &end); err != nil {
		return nil, err
	}

	loads, err := s.source.FetchLoads(ctx, windowSpec(&start, &end))
	if err != nil {
		return nil, aggregationError("financial summary", err)
	}
	invoices, err := s.source.FetchInvoices(ctx, invoiceSpec(start, end))
	if err != nil {
		return nil, aggregationError("financial summary", err)
	}
	payroll, err := s.source.FetchPayrollInvoices(ctx, payrollSpec(start, end))
	if err != nil {
		return nil, aggregationError("financial summary", err)
	}

	summary := s.engine.FinancialSummary(loads, invoices, payroll)
	return &summary, nil
}

// InvoiceReport lists customer invoices created in the optional window.
func (s *ReportService) InvoiceReport(ctx context.Context, q InvoiceReportQuery) (*model.InvoiceReport, error) {
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	paging := q.Paging.withDefaults(s.opts.DefaultPageSize)

	customers, err := s.source.FetchCustomers(ctx, nil)
	if err != nil {
		return nil, aggregationError("invoice report", err)
	}
	names := make(map[uuid.UUID]string, len(customers))
	for _, customer := range customers {
		names[customer.ID] = customer.Name
	}

	status, hasStatus := model.ParseInvoiceStatus(q.Status)
	term := searchTerm(q.Search)
	spec := filter.New[model.Invoice]().
		Between(filter.FieldCreatedAt, q.StartDate, q.EndDate, func(i model.Invoice) time.Time { return i.CreatedAt }).
		WhereIf(hasStatus, func(i model.Invoice) bool { return i.Status == status }).
		WhereIf(term != "", func(i model.Invoice) bool {
			return i.CustomerID != nil && containsTerm(term, names[*i.CustomerID])
		})

	invoices, err := s.source.FetchInvoices(ctx, spec)
	if err != nil {
		return nil, aggregationError("invoice report", err)
	}
	result := report.BuildInvoiceReport(invoices, names, paging.Page, paging.PageSize)
	return &result, nil
}

func (s *ReportService) CashFlow(ctx context.Context, q CashFlowQuery) (*model.CashFlowReport, error) {
	if err := requireRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}

	payments, err := s.source.FetchPayments(ctx, filter.New[model.Payment]().
		Between(filter.FieldCreatedAt, &q.StartDate, &q.EndDate, func(p model.Payment) time.Time { return p.CreatedAt }).
		Where(func(p model.Payment) bool { return p.Status == model.PaymentStatusCompleted }))
	if err != nil {
		return nil, aggregationError("cash flow report", err)
	}
	payroll, err := s.source.FetchPayrollInvoices(ctx, payrollSpec(q.StartDate, q.EndDate).
		Where(func(p model.PayrollInvoice) bool { return p.Status == model.InvoiceStatusPaid }))
	if err != nil {
		return nil, aggregationError("cash flow report", err)
	}

	result := s.engine.BuildCashFlow(report.CashFlowInput{
		Start:       q.StartDate,
		End:         q.EndDate,
		Granularity: period.ParseGranularity(q.Period),
		Payments:    payments,
		Payroll:     payroll,
	})
	return &result, nil
}
