package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RevenueByType struct {
	LoadType   LoadType        `json:"load_type"`
	Revenue    decimal.Decimal `json:"revenue"`
	LoadCount  int             `json:"load_count"`
	Percentage decimal.Decimal `json:"percentage"`
}

type RevenueBreakdown struct {
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	LoadRevenue           decimal.Decimal `json:"load_revenue"`
	FuelSurcharges        decimal.Decimal `json:"fuel_surcharges"`
	AccessorialCharges    decimal.Decimal `json:"accessorial_charges"`
	TotalLoadsDelivered   int             `json:"total_loads_delivered"`
	AverageRevenuePerLoad decimal.Decimal `json:"average_revenue_per_load"`
	AverageRevenuePerMile decimal.Decimal `json:"average_revenue_per_mile"`
	RevenueByLoadType     []RevenueByType `json:"revenue_by_load_type"`
}

type ExpenseByCategory struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description"`
}

type ExpenseBreakdown struct {
	TotalExpenses         decimal.Decimal     `json:"total_expenses"`
	DriverPayouts         decimal.Decimal     `json:"driver_payouts"`
	PayrollExpenses       decimal.Decimal     `json:"payroll_expenses"`
	FuelCosts             decimal.Decimal     `json:"fuel_costs"`
	MaintenanceCosts      decimal.Decimal     `json:"maintenance_costs"`
	InsuranceCosts        decimal.Decimal     `json:"insurance_costs"`
	OtherOperationalCosts decimal.Decimal     `json:"other_operational_costs"`
	ExpensesByCategory    []ExpenseByCategory `json:"expenses_by_category"`
}

type PaymentStatusSummary struct {
	TotalReceivables     decimal.Decimal `json:"total_receivables"`
	PaidAmount           decimal.Decimal `json:"paid_amount"`
	PendingAmount        decimal.Decimal `json:"pending_amount"`
	OverdueAmount        decimal.Decimal `json:"overdue_amount"`
	TotalInvoices        int             `json:"total_invoices"`
	PaidInvoices         int             `json:"paid_invoices"`
	PendingInvoices      int             `json:"pending_invoices"`
	OverdueInvoices      int             `json:"overdue_invoices"`
	CollectionPercentage decimal.Decimal `json:"collection_percentage"`
	AverageDaysToPayment float64         `json:"average_days_to_payment"`
}

type InvoiceAging struct {
	AgeRange   string          `json:"age_range"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type InvoiceSummary struct {
	TotalInvoicesIssued int             `json:"total_invoices_issued"`
	TotalInvoiceValue   decimal.Decimal `json:"total_invoice_value"`
	AverageInvoiceValue decimal.Decimal `json:"average_invoice_value"`
	InvoicesPaid        int             `json:"invoices_paid"`
	InvoicesPending     int             `json:"invoices_pending"`
	InvoicesOverdue     int             `json:"invoices_overdue"`
	InvoiceAging        []InvoiceAging  `json:"invoice_aging,omitempty"`
}

type TopPerformingDriver struct {
	DriverID       uuid.UUID       `json:"driver_id"`
	DriverName     string          `json:"driver_name"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	LoadsCompleted int             `json:"loads_completed"`
	TotalDistance  float64         `json:"total_distance"`
	AveragePerLoad decimal.Decimal `json:"average_per_load"`
}

type TopCustomer struct {
	CustomerID         uuid.UUID       `json:"customer_id"`
	CustomerName       string          `json:"customer_name"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalLoads         int             `json:"total_loads"`
	AverageLoadValue   decimal.Decimal `json:"average_load_value"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

type FinancialComparison struct {
	PreviousPeriodRevenue   decimal.Decimal `json:"previous_period_revenue"`
	RevenueGrowth           decimal.Decimal `json:"revenue_growth"`
	RevenueGrowthPercentage decimal.Decimal `json:"revenue_growth_percentage"`
	PreviousPeriodProfit    decimal.Decimal `json:"previous_period_profit"`
	ProfitGrowth            decimal.Decimal `json:"profit_growth"`
	ProfitGrowthPercentage  decimal.Decimal `json:"profit_growth_percentage"`
	PreviousPeriodLoads     int             `json:"previous_period_loads"`
	LoadGrowth              int             `json:"load_growth"`
	LoadGrowthPercentage    decimal.Decimal `json:"load_growth_percentage"`
	PreviousPeriodStart     time.Time       `json:"previous_period_start"`
	PreviousPeriodEnd       time.Time       `json:"previous_period_end"`
}

type FinancialReport struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Period    string    `json:"period"`

	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`

	Revenue        RevenueBreakdown     `json:"revenue"`
	Expenses       ExpenseBreakdown     `json:"expenses"`
	PaymentStatus  PaymentStatusSummary `json:"payment_status"`
	InvoiceSummary InvoiceSummary       `json:"invoice_summary"`

	TopDrivers   []TopPerformingDriver `json:"top_drivers,omitempty"`
	TopCustomers []TopCustomer         `json:"top_customers,omitempty"`
	Comparison   *FinancialComparison  `json:"comparison,omitempty"`
}

type MonthlyFinancialTrend struct {
	Month          string          `json:"month"` // yyyy-mm
	Revenue        decimal.Decimal `json:"revenue"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
	LoadsCompleted int             `json:"loads_completed"`
}

type FinancialSummary struct {
	TotalRevenue       decimal.Decimal         `json:"total_revenue"`
	TotalExpenses      decimal.Decimal         `json:"total_expenses"`
	GrossProfit        decimal.Decimal         `json:"gross_profit"`
	NetProfit          decimal.Decimal         `json:"net_profit"`
	ProfitMargin       decimal.Decimal         `json:"profit_margin"`
	TotalInvoices      int                     `json:"total_invoices"`
	PaidInvoices       int                     `json:"paid_invoices"`
	OverdueInvoices    int                     `json:"overdue_invoices"`
	OutstandingBalance decimal.Decimal         `json:"outstanding_balance"`
	CollectionRate     decimal.Decimal         `json:"collection_rate"`
	MonthlyTrends      []MonthlyFinancialTrend `json:"monthly_trends"`
}
