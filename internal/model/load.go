package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LoadStatus string

const (
	LoadStatusDispatched LoadStatus = "Dispatched"
	LoadStatusPickedUp   LoadStatus = "PickedUp"
	LoadStatusDelivered  LoadStatus = "Delivered"
)

var loadStatuses = []LoadStatus{LoadStatusDispatched, LoadStatusPickedUp, LoadStatusDelivered}

// Rank orders statuses along the load lifecycle.
func (s LoadStatus) Rank() int {
	for i, status := range loadStatuses {
		if status == s {
			return i
		}
	}
	return len(loadStatuses)
}

func ParseLoadStatus(raw string) (LoadStatus, bool) {
	raw = strings.TrimSpace(raw)
	for _, status := range loadStatuses {
		if strings.EqualFold(string(status), raw) {
			return status, true
		}
	}
	return "", false
}

type LoadType string

const (
	LoadTypeGeneral      LoadType = "General"
	LoadTypeRefrigerated LoadType = "Refrigerated"
	LoadTypeHazmat       LoadType = "Hazmat"
	LoadTypeOversized    LoadType = "Oversized"
)

var loadTypes = []LoadType{LoadTypeGeneral, LoadTypeRefrigerated, LoadTypeHazmat, LoadTypeOversized}

func ParseLoadType(raw string) (LoadType, bool) {
	raw = strings.TrimSpace(raw)
	for _, loadType := range loadTypes {
		if strings.EqualFold(string(loadType), raw) {
			return loadType, true
		}
	}
	return "", false
}

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type Load struct {
	ID                   uuid.UUID  `json:"id"`
	Number               int64      `json:"number"`
	Name                 string     `json:"name"`
	Type                 LoadType   `json:"type"`
	Status               LoadStatus `json:"status"`
	OriginAddress        string     `json:"origin_address"`
	DestinationAddress   string     `json:"destination_address"`
	Distance             float64    `json:"distance"` // km
	DeliveryCost         Money      `json:"delivery_cost"`
	DispatchedDate       time.Time  `json:"dispatched_date"`
	PickUpDate           *time.Time `json:"pick_up_date,omitempty"`
	DeliveryDate         *time.Time `json:"delivery_date,omitempty"`
	AssignedTruckID      *uuid.UUID `json:"assigned_truck_id,omitempty"`
	AssignedDispatcherID *uuid.UUID `json:"assigned_dispatcher_id,omitempty"`
	CustomerID           *uuid.UUID `json:"customer_id,omitempty"`

	// Resolved references, populated by the data source.
	AssignedTruck      *Truck    `json:"-"`
	AssignedDispatcher *Employee `json:"-"`
	Customer           *Customer `json:"-"`
	Invoices           []Invoice `json:"-"`
}

// MainDriverID returns the main driver of the assigned truck.
func (l Load) MainDriverID() (uuid.UUID, bool) {
	if l.AssignedTruck == nil || l.AssignedTruck.MainDriverID == nil {
		return uuid.Nil, false
	}
	return *l.AssignedTruck.MainDriverID, true
}

// AssignedTo reports whether the driver sits in either slot of the assigned truck.
func (l Load) AssignedTo(driverID uuid.UUID) bool {
	return l.AssignedTruck != nil && l.AssignedTruck.HasDriver(driverID)
}
