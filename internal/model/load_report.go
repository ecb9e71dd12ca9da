package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoadReportRow struct {
	ID                     uuid.UUID        `json:"id"`
	Number                 int64            `json:"number"`
	Name                   string           `json:"name"`
	Type                   LoadType         `json:"type"`
	Status                 LoadStatus       `json:"status"`
	OriginAddress          string           `json:"origin_address"`
	DestinationAddress     string           `json:"destination_address"`
	Distance               float64          `json:"distance"`
	DeliveryCost           decimal.Decimal  `json:"delivery_cost"`
	Currency               string           `json:"currency"`
	DriverShare            decimal.Decimal  `json:"driver_share"`
	CompanyRevenue         decimal.Decimal  `json:"company_revenue"`
	DispatchedDate         time.Time        `json:"dispatched_date"`
	PickUpDate             *time.Time       `json:"pick_up_date,omitempty"`
	DeliveryDate           *time.Time       `json:"delivery_date,omitempty"`
	DeliveryTimeInHours    *int             `json:"delivery_time_in_hours,omitempty"`
	AssignedTruckNumber    string           `json:"assigned_truck_number,omitempty"`
	AssignedDriverName     string           `json:"assigned_driver_name,omitempty"`
	AssignedDispatcherName string           `json:"assigned_dispatcher_name,omitempty"`
	CustomerName           string           `json:"customer_name,omitempty"`
	HasInvoice             bool             `json:"has_invoice"`
	InvoiceStatus          *InvoiceStatus   `json:"invoice_status,omitempty"`
	InvoiceTotal           *decimal.Decimal `json:"invoice_total,omitempty"`
	InvoiceDueDate         *time.Time       `json:"invoice_due_date,omitempty"`
	IsPaid                 bool             `json:"is_paid"`
}

type LoadsByStatus struct {
	Status     LoadStatus      `json:"status"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

type LoadsByType struct {
	Type       LoadType        `json:"type"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

type LoadReportSummary struct {
	TotalLoads               int             `json:"total_loads"`
	CompletedLoads           int             `json:"completed_loads"`
	InProgressLoads          int             `json:"in_progress_loads"`
	DispatchedLoads          int             `json:"dispatched_loads"`
	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	TotalDriverPayouts       decimal.Decimal `json:"total_driver_payouts"`
	TotalDistance            float64         `json:"total_distance"`
	AverageDeliveryCost      decimal.Decimal `json:"average_delivery_cost"`
	AverageDistance          float64         `json:"average_distance"`
	AverageDeliveryTime      float64         `json:"average_delivery_time"` // hours
	OnTimeDeliveryPercentage decimal.Decimal `json:"on_time_delivery_percentage"`
	LoadsByStatus            []LoadsByStatus `json:"loads_by_status"`
	LoadsByType              []LoadsByType   `json:"loads_by_type"`
}

type LoadReport struct {
	Summary LoadReportSummary   `json:"summary"`
	Loads   Page[LoadReportRow] `json:"loads"`
}
