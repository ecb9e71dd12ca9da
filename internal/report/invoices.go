package report

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/model"
)

func ProjectInvoice(invoice model.Invoice, customerNames map[uuid.UUID]string) model.InvoiceReportRow {
	paid := invoice.PaidAmount()
	row := model.InvoiceReportRow{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.Number,
		Status:        invoice.Status,
		Total:         invoice.Total.Amount,
		Paid:          paid,
		Due:           invoice.Total.Amount.Sub(paid),
		Currency:      invoice.Total.Currency,
		DueDate:       invoice.DueDate,
		CreatedAt:     invoice.CreatedAt,
	}
	if invoice.CustomerID != nil {
		row.CustomerName = customerNames[*invoice.CustomerID]
	}
	return row
}

// BuildInvoiceReport orders invoices newest first in place before paging.
// Totals cover the whole set and paid counts payments of any status.
func BuildInvoiceReport(invoices []model.Invoice, customerNames map[uuid.UUID]string, page, size int) model.InvoiceReport {
	slices.SortStableFunc(invoices, func(a, b model.Invoice) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	invoiced := tallyInvoices(invoices, func(model.Invoice) bool { return true }).amount
	paid := decimal.Zero
	for _, invoice := range invoices {
		paid = paid.Add(invoice.PaidAmount())
	}

	current := model.Paginate(invoices, page, size)
	rows := make([]model.InvoiceReportRow, 0, len(current.Items))
	for _, invoice := range current.Items {
		rows = append(rows, ProjectInvoice(invoice, customerNames))
	}

	return model.InvoiceReport{
		TotalInvoiced: invoiced,
		TotalPaid:     paid,
		TotalDue:      invoiced.Sub(paid),
		Invoices: model.Page[model.InvoiceReportRow]{
			Items:      rows,
			TotalCount: current.TotalCount,
			Page:       current.Page,
			Size:       current.Size,
			TotalPages: current.TotalPages,
		},
	}
}
