package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/period"
)

const (
	CategoryCustomerPayments = "Customer Payments"
	CategoryDriverPayroll    = "Driver Payroll"
)

type CashFlowInput struct {
	Start       time.Time
	End         time.Time
	Granularity period.Granularity
	// Payments are completed customer payments created inside the window.
	Payments []model.Payment
	// Payroll are paid payroll invoices whose period lies inside the window.
	Payroll []model.PayrollInvoice
}

// BuildCashFlow walks the window in buckets. The opening balance is zero
// since no ledger state is tracked.
func (e *Engine) BuildCashFlow(in CashFlowInput) model.CashFlowReport {
	inflows := decimal.Zero
	for _, p := range in.Payments {
		inflows = inflows.Add(p.Amount.Amount)
	}
	outflows := sumPayroll(in.Payroll)
	net := inflows.Sub(outflows)
	opening := decimal.Zero

	report := model.CashFlowReport{
		StartDate:      in.Start,
		EndDate:        in.End,
		Granularity:    string(in.Granularity),
		OpeningBalance: opening,
		TotalInflows:   inflows,
		TotalOutflows:  outflows,
		NetCashFlow:    net,
		ClosingBalance: opening.Add(net),
		Inflows: []model.CashFlowItem{{
			Category:    CategoryCustomerPayments,
			Amount:      inflows,
			Percentage:  metrics.SafePercentage(inflows, inflows),
			Description: "Payments received from customers for completed loads",
		}},
		Outflows: []model.CashFlowItem{{
			Category:    CategoryDriverPayroll,
			Amount:      outflows,
			Percentage:  metrics.SafePercentage(outflows, outflows),
			Description: "Payroll payments to drivers and employees",
		}},
		Periods: []model.CashFlowPeriod{},
	}

	balance := opening
	for start, end := range period.WalkBuckets(in.Start, in.End, in.Granularity) {
		bucket := model.CashFlowPeriod{Start: start, End: end, Inflow: decimal.Zero, Outflow: decimal.Zero}
		for _, p := range in.Payments {
			if inside(p.CreatedAt, start, end) {
				bucket.Inflow = bucket.Inflow.Add(p.Amount.Amount)
			}
		}
		for _, p := range in.Payroll {
			if inside(p.CreatedAt, start, end) {
				bucket.Outflow = bucket.Outflow.Add(p.Total.Amount)
			}
		}
		bucket.NetFlow = bucket.Inflow.Sub(bucket.Outflow)
		balance = balance.Add(bucket.NetFlow)
		bucket.RunningBalance = balance
		report.Periods = append(report.Periods, bucket)
	}

	return report
}

func inside(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
