package service

import (
	"context"

	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/model"
)

// DataSource returns fully materialized records matching a spec. Loads come
// with their truck (and its drivers), dispatcher, customer and invoices
// resolved; invoices and payroll invoices carry their payments.
type DataSource interface {
	FetchLoads(ctx context.Context, spec *filter.Spec[model.Load]) ([]model.Load, error)
	FetchEmployees(ctx context.Context, spec *filter.Spec[model.Employee]) ([]model.Employee, error)
	FetchTrucks(ctx context.Context, spec *filter.Spec[model.Truck]) ([]model.Truck, error)
	FetchInvoices(ctx context.Context, spec *filter.Spec[model.Invoice]) ([]model.Invoice, error)
	FetchPayrollInvoices(ctx context.Context, spec *filter.Spec[model.PayrollInvoice]) ([]model.PayrollInvoice, error)
	FetchPayments(ctx context.Context, spec *filter.Spec[model.Payment]) ([]model.Payment, error)
	FetchCustomers(ctx context.Context, spec *filter.Spec[model.Customer]) ([]model.Customer, error)
}
