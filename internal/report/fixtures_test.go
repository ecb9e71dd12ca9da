package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
)

var baseTime = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func money(s string) model.Money {
	return model.Money{Amount: dec(s), Currency: "USD"}
}

func ptr[T any](v T) *T {
	return &v
}

func newEngine() *Engine {
	return NewEngine(metrics.DefaultPolicy())
}

type loadOpt func(*model.Load)

func newLoad(cost string, status model.LoadStatus, opts ...loadOpt) model.Load {
	load := model.Load{
		ID:             uuid.New(),
		Name:           "load",
		Type:           model.LoadTypeGeneral,
		Status:         status,
		Distance:       100,
		DeliveryCost:   money(cost),
		DispatchedDate: baseTime,
	}
	for _, opt := range opts {
		opt(&load)
	}
	return load
}

func withType(t model.LoadType) loadOpt {
	return func(l *model.Load) { l.Type = t }
}

func withDistance(d float64) loadOpt {
	return func(l *model.Load) { l.Distance = d }
}

func dispatchedAt(t time.Time) loadOpt {
	return func(l *model.Load) { l.DispatchedDate = t }
}

func deliveredAfter(d time.Duration) loadOpt {
	return func(l *model.Load) { l.DeliveryDate = ptr(l.DispatchedDate.Add(d)) }
}

func pickedUpAfter(d time.Duration) loadOpt {
	return func(l *model.Load) { l.PickUpDate = ptr(l.DispatchedDate.Add(d)) }
}

func onTruck(truck *model.Truck) loadOpt {
	return func(l *model.Load) {
		l.AssignedTruckID = &truck.ID
		l.AssignedTruck = truck
	}
}

func forCustomer(c model.Customer) loadOpt {
	return func(l *model.Load) {
		l.CustomerID = &c.ID
		l.Customer = &c
	}
}

func withInvoices(invoices ...model.Invoice) loadOpt {
	return func(l *model.Load) { l.Invoices = invoices }
}

func newDriver(first, last string) model.Employee {
	return model.Employee{
		ID:         uuid.New(),
		FirstName:  first,
		LastName:   last,
		Email:      first + "@example.com",
		JoinedDate: baseTime.AddDate(-1, 0, 0),
		Roles:      []string{"Driver"},
	}
}

func truckFor(main *model.Employee, secondary *model.Employee) *model.Truck {
	truck := &model.Truck{ID: uuid.New(), Number: "T-" + uuid.NewString()[:4], Type: "FreightTruck", Status: "Available"}
	if main != nil {
		truck.MainDriverID = &main.ID
		truck.MainDriver = main
	}
	if secondary != nil {
		truck.SecondaryDriverID = &secondary.ID
		truck.SecondaryDriver = secondary
	}
	return truck
}

func invoice(total string, status model.InvoiceStatus, createdAt time.Time) model.Invoice {
	return model.Invoice{ID: uuid.New(), Status: status, Total: money(total), CreatedAt: createdAt}
}
