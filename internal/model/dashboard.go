package model

import "time"

type DashboardReport struct {
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	GeneratedAt time.Time           `json:"generated_at"`
	Loads       LoadReportSummary   `json:"loads"`
	Drivers     DriverReportSummary `json:"drivers"`
	Financials  FinancialSummary    `json:"financials"`
	// Sections lists summaries that failed and were replaced by zero values.
	Degraded []string `json:"degraded,omitempty"`
}
