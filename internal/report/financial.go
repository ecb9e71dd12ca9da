package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/period"
)

const (
	CategoryDriverPayouts = "Driver Payouts"
	CategoryPayroll       = "Payroll"
)

type agingBucket struct {
	label   string
	maxDays float64 // inclusive upper bound; 0 means unbounded
}

var agingBuckets = []agingBucket{
	{label: "0-30 days", maxDays: 30},
	{label: "31-60 days", maxDays: 60},
	{label: "61-90 days", maxDays: 90},
	{label: "90+ days"},
}

// RevenueBreakdown percentages by load type are shares of revenue, unlike the
// count shares used by the load summary.
func (e *Engine) RevenueBreakdown(loads []model.Load) model.RevenueBreakdown {
	revenue := sumCost(loads)
	breakdown := model.RevenueBreakdown{
		TotalRevenue:          revenue,
		LoadRevenue:           revenue,
		FuelSurcharges:        decimal.Zero,
		AccessorialCharges:    decimal.Zero,
		TotalLoadsDelivered:   len(withStatus(loads, model.LoadStatusDelivered)),
		AverageRevenuePerLoad: metrics.SafeDivide(revenue, decimalCount(len(loads))),
		AverageRevenuePerMile: metrics.SafeDivide(revenue, decimal.NewFromFloat(sumDistance(loads))),
		RevenueByLoadType:     []model.RevenueByType{},
	}
	for _, g := range groupBy(loads, func(l model.Load) model.LoadType { return l.Type }) {
		typeRevenue := sumCost(g.items)
		breakdown.RevenueByLoadType = append(breakdown.RevenueByLoadType, model.RevenueByType{
			LoadType:   g.key,
			Revenue:    typeRevenue,
			LoadCount:  len(g.items),
			Percentage: metrics.SafePercentage(typeRevenue, revenue),
		})
	}
	return breakdown
}

func sumPayroll(payroll []model.PayrollInvoice) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payroll {
		total = total.Add(p.Total.Amount)
	}
	return total
}

// ExpenseBreakdown carries fuel, maintenance, insurance and other operational
// costs as zero placeholders.
func (e *Engine) ExpenseBreakdown(loads []model.Load, payroll []model.PayrollInvoice) model.ExpenseBreakdown {
	payouts := e.sumDriverShare(loads)
	payrollTotal := sumPayroll(payroll)
	total := payouts.Add(payrollTotal)
	return model.ExpenseBreakdown{
		TotalExpenses:         total,
		DriverPayouts:         payouts,
		PayrollExpenses:       payrollTotal,
		FuelCosts:             decimal.Zero,
		MaintenanceCosts:      decimal.Zero,
		InsuranceCosts:        decimal.Zero,
		OtherOperationalCosts: decimal.Zero,
		ExpensesByCategory: []model.ExpenseByCategory{
			{
				Category:    CategoryDriverPayouts,
				Amount:      payouts,
				Percentage:  metrics.SafePercentage(payouts, total),
				Description: "Driver share of delivery costs",
			},
			{
				Category:    CategoryPayroll,
				Amount:      payrollTotal,
				Percentage:  metrics.SafePercentage(payrollTotal, total),
				Description: "Payroll invoices for the period",
			},
		},
	}
}

type invoiceTotals struct {
	count  int
	amount decimal.Decimal
}

func tallyInvoices(invoices []model.Invoice, keep func(model.Invoice) bool) invoiceTotals {
	totals := invoiceTotals{amount: decimal.Zero}
	for _, invoice := range invoices {
		if keep(invoice) {
			totals.count++
			totals.amount = totals.amount.Add(invoice.Total.Amount)
		}
	}
	return totals
}

func invoiceStatusIs(status model.InvoiceStatus) func(model.Invoice) bool {
	return func(i model.Invoice) bool { return i.Status == status }
}

func unpaid(i model.Invoice) bool {
	return i.Status != model.InvoiceStatusPaid
}

// PaymentStatus partitions invoices by status. Days to payment averages
// paid invoices that have at least one payment.
func (e *Engine) PaymentStatus(invoices []model.Invoice) model.PaymentStatusSummary {
	all := tallyInvoices(invoices, func(model.Invoice) bool { return true })
	paid := tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusPaid))
	pending := tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusIssued))
	overdue := tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusOverdue))

	var days float64
	var settled int
	for _, invoice := range invoices {
		if invoice.Status != model.InvoiceStatusPaid {
			continue
		}
		if latest, ok := invoice.LatestPayment(); ok {
			days += latest.Sub(invoice.CreatedAt).Hours() / 24
			settled++
		}
	}

	return model.PaymentStatusSummary{
		TotalReceivables:     all.amount,
		PaidAmount:           paid.amount,
		PendingAmount:        pending.amount,
		OverdueAmount:        overdue.amount,
		TotalInvoices:        all.count,
		PaidInvoices:         paid.count,
		PendingInvoices:      pending.count,
		OverdueInvoices:      overdue.count,
		CollectionPercentage: metrics.SafePercentage(paid.amount, all.amount),
		AverageDaysToPayment: metrics.SafeDivideFloat(days, float64(settled)),
	}
}

func (e *Engine) InvoiceSummary(invoices []model.Invoice, now time.Time, includeAging bool) model.InvoiceSummary {
	all := tallyInvoices(invoices, func(model.Invoice) bool { return true })
	summary := model.InvoiceSummary{
		TotalInvoicesIssued: all.count,
		TotalInvoiceValue:   all.amount,
		AverageInvoiceValue: metrics.SafeDivide(all.amount, decimalCount(all.count)),
		InvoicesPaid:        tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusPaid)).count,
		InvoicesPending:     tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusIssued)).count,
		InvoicesOverdue:     tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusOverdue)).count,
	}
	if includeAging {
		summary.InvoiceAging = InvoiceAging(invoices, now)
	}
	return summary
}

// InvoiceAging buckets unpaid invoices by days since creation into
// [0,30], (30,60], (60,90] and (90,inf). Every unpaid invoice lands in
// exactly one bucket.
func InvoiceAging(invoices []model.Invoice, now time.Time) []model.InvoiceAging {
	outstanding := tallyInvoices(invoices, unpaid)
	aging := make([]model.InvoiceAging, len(agingBuckets))
	for i, bucket := range agingBuckets {
		aging[i] = model.InvoiceAging{AgeRange: bucket.label, Amount: decimal.Zero}
	}

	for _, invoice := range invoices {
		if !unpaid(invoice) {
			continue
		}
		age := now.Sub(invoice.CreatedAt).Hours() / 24
		i := len(agingBuckets) - 1
		for j, bucket := range agingBuckets[:len(agingBuckets)-1] {
			if age <= bucket.maxDays {
				i = j
				break
			}
		}
		aging[i].Count++
		aging[i].Amount = aging[i].Amount.Add(invoice.Total.Amount)
	}

	for i := range aging {
		aging[i].Percentage = metrics.SafePercentage(aging[i].Amount, outstanding.amount)
	}
	return aging
}

// TopDrivers ranks main drivers by earnings, takes limit, then drops drivers
// that cannot be resolved.
func (e *Engine) TopDrivers(loads []model.Load, employees []model.Employee, limit int) []model.TopPerformingDriver {
	known := make(map[uuid.UUID]model.Employee, len(employees))
	for _, employee := range employees {
		known[employee.ID] = employee
	}

	perf := rankByEarnings(e.performanceByMainDriver(loads))
	out := []model.TopPerformingDriver{}
	for _, p := range perf[:min(max(limit, 0), len(perf))] {
		driver, ok := known[p.driverID]
		if !ok {
			continue
		}
		out = append(out, model.TopPerformingDriver{
			DriverID:       p.driverID,
			DriverName:     driver.FullName(),
			TotalEarnings:  p.earnings,
			LoadsCompleted: p.loadsCompleted,
			TotalDistance:  p.distance,
			AveragePerLoad: metrics.SafeDivide(p.earnings, decimalCount(p.loadsCompleted)),
		})
	}
	return out
}

// TopCustomers ranks customers by revenue, takes limit, then drops customers
// that cannot be resolved. Outstanding balance sums unpaid invoices attached
// to the customer's loads.
func (e *Engine) TopCustomers(loads []model.Load, customers []model.Customer, limit int) []model.TopCustomer {
	known := make(map[uuid.UUID]model.Customer, len(customers))
	for _, customer := range customers {
		known[customer.ID] = customer
	}

	var withCustomer []model.Load
	for _, load := range loads {
		if load.CustomerID != nil {
			withCustomer = append(withCustomer, load)
		}
	}
	groups := groupBy(withCustomer, func(l model.Load) uuid.UUID { return *l.CustomerID })

	type ranked struct {
		id          uuid.UUID
		revenue     decimal.Decimal
		loads       int
		outstanding decimal.Decimal
	}
	rows := make([]ranked, 0, len(groups))
	for _, g := range groups {
		outstanding := decimal.Zero
		for _, load := range g.items {
			outstanding = outstanding.Add(tallyInvoices(load.Invoices, unpaid).amount)
		}
		rows = append(rows, ranked{id: g.key, revenue: sumCost(g.items), loads: len(g.items), outstanding: outstanding})
	}
	slices.SortStableFunc(rows, func(a, b ranked) int { return b.revenue.Cmp(a.revenue) })

	out := []model.TopCustomer{}
	for _, r := range rows[:min(max(limit, 0), len(rows))] {
		customer, ok := known[r.id]
		if !ok {
			continue
		}
		out = append(out, model.TopCustomer{
			CustomerID:         r.id,
			CustomerName:       customer.Name,
			TotalRevenue:       r.revenue,
			TotalLoads:         r.loads,
			AverageLoadValue:   metrics.SafeDivide(r.revenue, decimalCount(r.loads)),
			OutstandingBalance: r.outstanding,
		})
	}
	return out
}

// PeriodTotals are the figures compared across periods.
type PeriodTotals struct {
	Revenue decimal.Decimal
	Profit  decimal.Decimal
	Loads   int
}

// Totals computes revenue, profit after driver payouts and payroll, and the
// load count for one window.
func (e *Engine) Totals(loads []model.Load, payroll []model.PayrollInvoice) PeriodTotals {
	revenue := sumCost(loads)
	return PeriodTotals{
		Revenue: revenue,
		Profit:  revenue.Sub(e.sumDriverShare(loads)).Sub(sumPayroll(payroll)),
		Loads:   len(loads),
	}
}

// Comparison reports zero growth percentage whenever the previous value is
// zero, including growth from nothing. Percentages divide by the signed
// previous value, so growth out of a loss comes out negative.
func Comparison(current, previous PeriodTotals, previousStart, previousEnd time.Time) model.FinancialComparison {
	revenueGrowth := current.Revenue.Sub(previous.Revenue)
	profitGrowth := current.Profit.Sub(previous.Profit)
	loadGrowth := current.Loads - previous.Loads
	return model.FinancialComparison{
		PreviousPeriodRevenue:   previous.Revenue,
		RevenueGrowth:           revenueGrowth,
		RevenueGrowthPercentage: metrics.SafePercentage(revenueGrowth, previous.Revenue),
		PreviousPeriodProfit:    previous.Profit,
		ProfitGrowth:            profitGrowth,
		ProfitGrowthPercentage:  metrics.SafePercentage(profitGrowth, previous.Profit),
		PreviousPeriodLoads:     previous.Loads,
		LoadGrowth:              loadGrowth,
		LoadGrowthPercentage:    metrics.CountPercentage(loadGrowth, previous.Loads),
		PreviousPeriodStart:     previousStart,
		PreviousPeriodEnd:       previousEnd,
	}
}

type FinancialInput struct {
	Start     time.Time
	End       time.Time
	Period    string
	Loads     []model.Load
	Invoices  []model.Invoice
	Payroll   []model.PayrollInvoice
	Employees []model.Employee
	Customers []model.Customer

	IncludeTopPerformers bool
	TopPerformersLimit   int
	IncludeInvoiceAging  bool

	// Previous is set when a comparison was requested.
	Previous *PreviousWindow
}

type PreviousWindow struct {
	Start   time.Time
	End     time.Time
	Loads   []model.Load
	Payroll []model.PayrollInvoice
}

// BuildFinancialReport assembles the full financial report. Net profit equals
// gross profit.
func (e *Engine) BuildFinancialReport(in FinancialInput, now time.Time) model.FinancialReport {
	revenue := e.RevenueBreakdown(in.Loads)
	expenses := e.ExpenseBreakdown(in.Loads, in.Payroll)
	gross := revenue.TotalRevenue.Sub(expenses.TotalExpenses)

	report := model.FinancialReport{
		StartDate:      in.Start,
		EndDate:        in.End,
		Period:         in.Period,
		TotalRevenue:   revenue.TotalRevenue,
		TotalExpenses:  expenses.TotalExpenses,
		GrossProfit:    gross,
		NetProfit:      gross,
		ProfitMargin:   metrics.SafePercentage(gross, revenue.TotalRevenue),
		Revenue:        revenue,
		Expenses:       expenses,
		PaymentStatus:  e.PaymentStatus(in.Invoices),
		InvoiceSummary: e.InvoiceSummary(in.Invoices, now, in.IncludeInvoiceAging),
	}

	if in.IncludeTopPerformers {
		report.TopDrivers = e.TopDrivers(in.Loads, in.Employees, in.TopPerformersLimit)
		report.TopCustomers = e.TopCustomers(in.Loads, in.Customers, in.TopPerformersLimit)
	}
	if in.Previous != nil {
		comparison := Comparison(
			e.Totals(in.Loads, in.Payroll),
			e.Totals(in.Previous.Loads, in.Previous.Payroll),
			in.Previous.Start, in.Previous.End,
		)
		report.Comparison = &comparison
	}
	return report
}

// FinancialSummary is the compact financial view used by the dashboard.
// Monthly trends count driver shares as expenses and are ordered by month.
func (e *Engine) FinancialSummary(loads []model.Load, invoices []model.Invoice, payroll []model.PayrollInvoice) model.FinancialSummary {
	revenue := sumCost(loads)
	expenses := e.sumDriverShare(loads).Add(sumPayroll(payroll))
	gross := revenue.Sub(expenses)
	all := tallyInvoices(invoices, func(model.Invoice) bool { return true })
	paid := tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusPaid))

	summary := model.FinancialSummary{
		TotalRevenue:       revenue,
		TotalExpenses:      expenses,
		GrossProfit:        gross,
		NetProfit:          gross,
		ProfitMargin:       metrics.SafePercentage(gross, revenue),
		TotalInvoices:      all.count,
		PaidInvoices:       paid.count,
		OverdueInvoices:    tallyInvoices(invoices, invoiceStatusIs(model.InvoiceStatusOverdue)).count,
		OutstandingBalance: tallyInvoices(invoices, unpaid).amount,
		CollectionRate:     metrics.CountPercentage(paid.count, all.count),
		MonthlyTrends:      []model.MonthlyFinancialTrend{},
	}

	for _, g := range groupBy(loads, func(l model.Load) string { return period.MonthKey(l.DispatchedDate) }) {
		monthRevenue := sumCost(g.items)
		monthExpenses := e.sumDriverShare(g.items)
		summary.MonthlyTrends = append(summary.MonthlyTrends, model.MonthlyFinancialTrend{
			Month:          g.key,
			Revenue:        monthRevenue,
			Expenses:       monthExpenses,
			Profit:         monthRevenue.Sub(monthExpenses),
			LoadsCompleted: len(withStatus(g.items, model.LoadStatusDelivered)),
		})
	}
	slices.SortFunc(summary.MonthlyTrends, func(a, b model.MonthlyFinancialTrend) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return summary
}
