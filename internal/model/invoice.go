package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued  InvoiceStatus = "Issued"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

var invoiceStatuses = []InvoiceStatus{InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusOverdue}

func ParseInvoiceStatus(raw string) (InvoiceStatus, bool) {
	raw = strings.TrimSpace(raw)
	for _, status := range invoiceStatuses {
		if strings.EqualFold(string(status), raw) {
			return status, true
		}
	}
	return "", false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

type Payment struct {
	ID        uuid.UUID     `json:"id"`
	Amount    Money         `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type Invoice struct {
	ID         uuid.UUID     `json:"id"`
	Number     int64         `json:"number"`
	LoadID     *uuid.UUID    `json:"load_id,omitempty"`
	CustomerID *uuid.UUID    `json:"customer_id,omitempty"`
	Status     InvoiceStatus `json:"status"`
	Total      Money         `json:"total"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	Payments   []Payment     `json:"payments,omitempty"`
}

// PaidAmount sums every attached payment whatever its status.
func (i Invoice) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, payment := range i.Payments {
		paid = paid.Add(payment.Amount.Amount)
	}
	return paid
}

// LatestPayment returns the most recent payment timestamp, if any.
func (i Invoice) LatestPayment() (time.Time, bool) {
	var latest time.Time
	for _, payment := range i.Payments {
		if payment.CreatedAt.After(latest) {
			latest = payment.CreatedAt
		}
	}
	return latest, len(i.Payments) > 0
}

type PayrollInvoice struct {
	ID          uuid.UUID     `json:"id"`
	EmployeeID  uuid.UUID     `json:"employee_id"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	Status      InvoiceStatus `json:"status"`
	Total       Money         `json:"total"`
	CreatedAt   time.Time     `json:"created_at"`
	Payments    []Payment     `json:"payments,omitempty"`

	Employee *Employee `json:"-"`
}
