package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceReportRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber int64           `json:"invoice_number"`
	Status        InvoiceStatus   `json:"status"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Due           decimal.Decimal `json:"due"`
	Currency      string          `json:"currency"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceReport totals cover every matching invoice, not only the page.
type InvoiceReport struct {
	TotalInvoiced decimal.Decimal        `json:"total_invoiced"`
	TotalPaid     decimal.Decimal        `json:"total_paid"`
	TotalDue      decimal.Decimal        `json:"total_due"`
	Invoices      Page[InvoiceReportRow] `json:"invoices"`
}
