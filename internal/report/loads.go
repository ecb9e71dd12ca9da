package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
)

// SummarizeLoads aggregates a filtered load set. On-time and delivery-time
// figures only consider delivered loads that carry a delivery date.
func (e *Engine) SummarizeLoads(loads []model.Load) model.LoadReportSummary {
	total := len(loads)
	revenue := sumCost(loads)
	distance := sumDistance(loads)

	summary := model.LoadReportSummary{
		TotalLoads:          total,
		CompletedLoads:      len(withStatus(loads, model.LoadStatusDelivered)),
		InProgressLoads:     len(withStatus(loads, model.LoadStatusPickedUp)),
		DispatchedLoads:     len(withStatus(loads, model.LoadStatusDispatched)),
		TotalRevenue:        revenue,
		TotalDriverPayouts:  e.sumDriverShare(loads),
		TotalDistance:       distance,
		AverageDeliveryCost: metrics.SafeDivide(revenue, decimalCount(total)),
		AverageDistance:     metrics.SafeDivideFloat(distance, float64(total)),
		LoadsByStatus:       []model.LoadsByStatus{},
		LoadsByType:         []model.LoadsByType{},
	}

	var delivered []model.Load
	for _, load := range loads {
		if load.Status == model.LoadStatusDelivered && load.DeliveryDate != nil {
			delivered = append(delivered, load)
		}
	}
	if len(delivered) > 0 {
		var hours float64
		for _, load := range delivered {
			hours += metrics.HoursBetween(load.DispatchedDate, *load.DeliveryDate)
		}
		summary.AverageDeliveryTime = hours / float64(len(delivered))
		summary.OnTimeDeliveryPercentage = metrics.CountPercentage(e.countOnTime(delivered), len(delivered))
	}

	for _, g := range groupBy(loads, func(l model.Load) model.LoadStatus { return l.Status }) {
		summary.LoadsByStatus = append(summary.LoadsByStatus, model.LoadsByStatus{
			Status:     g.key,
			Count:      len(g.items),
			Revenue:    sumCost(g.items),
			Percentage: metrics.CountPercentage(len(g.items), total),
		})
	}
	for _, g := range groupBy(loads, func(l model.Load) model.LoadType { return l.Type }) {
		summary.LoadsByType = append(summary.LoadsByType, model.LoadsByType{
			Type:       g.key,
			Count:      len(g.items),
			Revenue:    sumCost(g.items),
			Percentage: metrics.CountPercentage(len(g.items), total),
		})
	}

	return summary
}

// ProjectLoad flattens a load into a display row. Invoice details come from
// the first attached invoice only.
func (e *Engine) ProjectLoad(load model.Load, includeInvoice bool) model.LoadReportRow {
	share := e.policy.DriverShare(load)
	row := model.LoadReportRow{
		ID:                 load.ID,
		Number:             load.Number,
		Name:               load.Name,
		Type:               load.Type,
		Status:             load.Status,
		OriginAddress:      load.OriginAddress,
		DestinationAddress: load.DestinationAddress,
		Distance:           load.Distance,
		DeliveryCost:       load.DeliveryCost.Amount,
		Currency:           load.DeliveryCost.Currency,
		DriverShare:        share,
		CompanyRevenue:     load.DeliveryCost.Amount.Sub(share),
		DispatchedDate:     load.DispatchedDate,
		PickUpDate:         load.PickUpDate,
		DeliveryDate:       load.DeliveryDate,
		HasInvoice:         len(load.Invoices) > 0,
	}

	if load.PickUpDate != nil && load.DeliveryDate != nil {
		hours := int(metrics.HoursBetween(*load.PickUpDate, *load.DeliveryDate))
		row.DeliveryTimeInHours = &hours
	}
	if load.AssignedTruck != nil {
		row.AssignedTruckNumber = load.AssignedTruck.Number
		row.AssignedDriverName = load.AssignedTruck.DriversNames()
	}
	if load.AssignedDispatcher != nil {
		row.AssignedDispatcherName = load.AssignedDispatcher.FullName()
	}
	if load.Customer != nil {
		row.CustomerName = load.Customer.Name
	}

	if includeInvoice && len(load.Invoices) > 0 {
		invoice := load.Invoices[0]
		status := invoice.Status
		total := invoice.Total.Amount
		row.InvoiceStatus = &status
		row.InvoiceTotal = &total
		row.InvoiceDueDate = invoice.DueDate
		row.IsPaid = invoice.Status == model.InvoiceStatusPaid
	}

	return row
}

func (e *Engine) ProjectLoads(loads []model.Load, includeInvoice bool) []model.LoadReportRow {
	rows := make([]model.LoadReportRow, 0, len(loads))
	for _, load := range loads {
		rows = append(rows, e.ProjectLoad(load, includeInvoice))
	}
	return rows
}

// IsDescending treats only "desc" as descending.
func IsDescending(sortOrder string) bool {
	return strings.EqualFold(strings.TrimSpace(sortOrder), "desc")
}

// SortLoads sorts in place by one of dispatcheddate, deliverydate,
// deliverycost, distance, status, name or number. Unknown keys sort by
// dispatch date. Missing delivery dates sort first ascending.
func SortLoads(loads []model.Load, sortBy, sortOrder string) {
	compare := loadComparator(strings.ToLower(strings.TrimSpace(sortBy)))
	desc := IsDescending(sortOrder)
	slices.SortStableFunc(loads, func(a, b model.Load) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func loadComparator(key string) func(a, b model.Load) int {
	switch key {
	case "deliverydate":
		return func(a, b model.Load) int {
			switch {
			case a.DeliveryDate == nil && b.DeliveryDate == nil:
				return 0
			case a.DeliveryDate == nil:
				return -1
			case b.DeliveryDate == nil:
				return 1
			}
			return a.DeliveryDate.Compare(*b.DeliveryDate)
		}
	case "deliverycost":
		return func(a, b model.Load) int { return a.DeliveryCost.Amount.Cmp(b.DeliveryCost.Amount) }
	case "distance":
		return func(a, b model.Load) int { return cmp.Compare(a.Distance, b.Distance) }
	case "status":
		return func(a, b model.Load) int { return cmp.Compare(a.Status.Rank(), b.Status.Rank()) }
	case "name":
		return func(a, b model.Load) int { return strings.Compare(a.Name, b.Name) }
	case "number":
		return func(a, b model.Load) int { return cmp.Compare(a.Number, b.Number) }
	default:
		return func(a, b model.Load) int { return a.DispatchedDate.Compare(b.DispatchedDate) }
	}
}

