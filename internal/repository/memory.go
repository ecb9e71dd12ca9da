package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/model"
)

// Seed is the JSON document the memory store is loaded from. Invoice and
// payroll payments are nested in their invoices.
type Seed struct {
	Customers       []model.Customer       `json:"customers"`
	Employees       []model.Employee       `json:"employees"`
	Trucks          []model.Truck          `json:"trucks"`
	Loads           []model.Load           `json:"loads"`
	Invoices        []model.Invoice        `json:"invoices"`
	PayrollInvoices []model.PayrollInvoice `json:"payroll_invoices"`
}

func LoadSeedFile(path string) (Seed, error) {
	var seed Seed
	raw, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed file: %w", err)
	}
	if err := json.Unmarshal(raw, &seed); err != nil {
		return seed, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seed, nil
}

// MemoryStore serves records from memory with references resolved the same
// way the postgres store resolves them.
// The data set is fixed at construction, so concurrent reads need no locking.
type MemoryStore struct {
	seed Seed
}

func NewMemoryStore(seed Seed) *MemoryStore {
	return &MemoryStore{seed: seed}
}

func (m *MemoryStore) FetchCustomers(ctx context.Context, spec *filter.Spec[model.Customer]) ([]model.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filter.Apply(spec, m.seed.Customers), nil
}

func (m *MemoryStore) FetchEmployees(ctx context.Context, spec *filter.Spec[model.Employee]) ([]model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filter.Apply(spec, m.seed.Employees), nil
}

func (m *MemoryStore) FetchTrucks(ctx context.Context, spec *filter.Spec[model.Truck]) ([]model.Truck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filter.Apply(spec, m.resolveTrucks()), nil
}

func (m *MemoryStore) FetchLoads(ctx context.Context, spec *filter.Spec[model.Load]) ([]model.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trucks := indexByID(m.resolveTrucks(), func(t model.Truck) uuid.UUID { return t.ID })
	employees := indexByID(m.seed.Employees, func(e model.Employee) uuid.UUID { return e.ID })
	customers := indexByID(m.seed.Customers, func(c model.Customer) uuid.UUID { return c.ID })

	invoicesByLoad := make(map[uuid.UUID][]model.Invoice)
	for _, invoice := range m.seed.Invoices {
		if invoice.LoadID != nil {
			invoicesByLoad[*invoice.LoadID] = append(invoicesByLoad[*invoice.LoadID], invoice)
		}
	}

	loads := make([]model.Load, 0, len(m.seed.Loads))
	for _, load := range m.seed.Loads {
		load.AssignedTruck = lookup(trucks, load.AssignedTruckID)
		load.AssignedDispatcher = lookup(employees, load.AssignedDispatcherID)
		load.Customer = lookup(customers, load.CustomerID)
		load.Invoices = invoicesByLoad[load.ID]
		loads = append(loads, load)
	}
	return filter.Apply(spec, loads), nil
}

func (m *MemoryStore) FetchInvoices(ctx context.Context, spec *filter.Spec[model.Invoice]) ([]model.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filter.Apply(spec, m.seed.Invoices), nil
}

func (m *MemoryStore) FetchPayrollInvoices(ctx context.Context, spec *filter.Spec[model.PayrollInvoice]) ([]model.PayrollInvoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	employees := indexByID(m.seed.Employees, func(e model.Employee) uuid.UUID { return e.ID })
	payroll := make([]model.PayrollInvoice, 0, len(m.seed.PayrollInvoices))
	for _, p := range m.seed.PayrollInvoices {
		p.Employee = lookup(employees, &p.EmployeeID)
		payroll = append(payroll, p)
	}
	return filter.Apply(spec, payroll), nil
}

// FetchPayments returns customer invoice payments; payroll payments are
// reachable through their payroll invoices.
func (m *MemoryStore) FetchPayments(ctx context.Context, spec *filter.Spec[model.Payment]) ([]model.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payments []model.Payment
	for _, invoice := range m.seed.Invoices {
		payments = append(payments, invoice.Payments...)
	}
	return filter.Apply(spec, payments), nil
}

func (m *MemoryStore) resolveTrucks() []model.Truck {
	employees := indexByID(m.seed.Employees, func(e model.Employee) uuid.UUID { return e.ID })
	trucks := make([]model.Truck, 0, len(m.seed.Trucks))
	for _, truck := range m.seed.Trucks {
		truck.MainDriver = lookup(employees, truck.MainDriverID)
		truck.SecondaryDriver = lookup(employees, truck.SecondaryDriverID)
		trucks = append(trucks, truck)
	}
	return trucks
}

func indexByID[T any](items []T, id func(T) uuid.UUID) map[uuid.UUID]*T {
	index := make(map[uuid.UUID]*T, len(items))
	for i := range items {
		item := items[i]
		index[id(item)] = &item
	}
	return index
}

func lookup[T any](index map[uuid.UUID]*T, id *uuid.UUID) *T {
	if id == nil {
		return nil
	}
	return index[*id]
}
