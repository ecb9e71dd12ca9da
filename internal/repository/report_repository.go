package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-reports/internal/filter"
	"github.com/nurpe/fleet-reports/internal/model"
)

// ReportRepository reads report inputs from postgres. A filter's date window
// is pushed into the WHERE clause; the full filter is applied to the rows after
// references are attached.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type loadRow struct {
	ID                   uuid.UUID
	Number               int64
	Name                 string
	Type                 string
	Status               string
	OriginAddress        string
	DestinationAddress   string
	Distance             float64
	DeliveryCost         decimal.Decimal
	Currency             string
	DispatchedDate       time.Time
	PickUpDate           *time.Time
	DeliveryDate         *time.Time
	AssignedTruckID      *uuid.UUID
	AssignedDispatcherID *uuid.UUID
	CustomerID           *uuid.UUID
}

type truckRow struct {
	ID                uuid.UUID
	Number            string
	Type              string
	Status            string
	MainDriverID      *uuid.UUID
	SecondaryDriverID *uuid.UUID
}

type employeeRow struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	JoinedDate  time.Time
	Roles       string
}

type invoiceRow struct {
	ID         uuid.UUID
	Number     int64
	LoadID     *uuid.UUID
	CustomerID *uuid.UUID
	Status     string
	Total      decimal.Decimal
	Currency   string
	DueDate    *time.Time
	CreatedAt  time.Time
}

type payrollRow struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      string
	Total       decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}

type paymentRow struct {
	ID               uuid.UUID
	Amount           decimal.Decimal
	Currency         string
	Status           string
	CreatedAt        time.Time
	InvoiceID        *uuid.UUID
	PayrollInvoiceID *uuid.UUID
}

func (r *ReportRepository) FetchCustomers(ctx context.Context, spec *filter.Spec[model.Customer]) ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM customers
		ORDER BY name ASC
	`).Scan(&customers).Error; err != nil {
		return nil, err
	}
	return filter.Apply(spec, customers), nil
}

func (r *ReportRepository) FetchEmployees(ctx context.Context, spec *filter.Spec[model.Employee]) ([]model.Employee, error) {
	var rows []employeeRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.first_name,
			e.last_name,
			e.email,
			COALESCE(e.phone_number, '') AS phone_number,
			e.joined_date,
			COALESCE(string_agg(ro.name, ',' ORDER BY ro.name), '') AS roles
		FROM employees e
		LEFT JOIN employee_roles er ON er.employee_id = e.id
		LEFT JOIN roles ro ON ro.id = er.role_id
		GROUP BY e.id
		ORDER BY e.last_name ASC, e.first_name ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	employees := make([]model.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.toModel())
	}
	return filter.Apply(spec, employees), nil
}

func (r *ReportRepository) FetchTrucks(ctx context.Context, spec *filter.Spec[model.Truck]) ([]model.Truck, error) {
	employees, err := r.FetchEmployees(ctx, nil)
	if err != nil {
		return nil, err
	}
	trucks, err := r.trucks(ctx, employees)
	if err != nil {
		return nil, err
	}
	return filter.Apply(spec, trucks), nil
}

// trucks resolves driver references against employees.
func (r *ReportRepository) trucks(ctx context.Context, employees []model.Employee) ([]model.Truck, error) {
	var rows []truckRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, number, type, status, main_driver_id, secondary_driver_id
		FROM trucks
		ORDER BY number ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	index := indexByID(employees, func(e model.Employee) uuid.UUID { return e.ID })
	trucks := make([]model.Truck, 0, len(rows))
	for _, row := range rows {
		trucks = append(trucks, model.Truck{
			ID:                row.ID,
			Number:            row.Number,
			Type:              row.Type,
			Status:            row.Status,
			MainDriverID:      row.MainDriverID,
			SecondaryDriverID: row.SecondaryDriverID,
			MainDriver:        lookup(index, row.MainDriverID),
			SecondaryDriver:   lookup(index, row.SecondaryDriverID),
		})
	}
	return trucks, nil
}

func (r *ReportRepository) FetchLoads(ctx context.Context, spec *filter.Spec[model.Load]) ([]model.Load, error) {
	query := `
		SELECT
			l.id,
			l.number,
			l.name,
			l.type,
			l.status,
			l.origin_address,
			l.destination_address,
			l.distance,
			l.delivery_cost,
			l.currency,
			l.dispatched_date,
			l.pick_up_date,
			l.delivery_date,
			l.assigned_truck_id,
			l.assigned_dispatcher_id,
			l.customer_id
		FROM loads l`
	query, args := withWindow(query, spec, filter.FieldDispatchedDate, "l.dispatched_date", "l.dispatched_date")
	query += `
		ORDER BY l.dispatched_date DESC`

	var rows []loadRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Load{}, nil
	}

	employees, err := r.FetchEmployees(ctx, nil)
	if err != nil {
		return nil, err
	}
	trucks, err := r.trucks(ctx, employees)
	if err != nil {
		return nil, err
	}
	customers, err := r.FetchCustomers(ctx, nil)
	if err != nil {
		return nil, err
	}

	loadIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		loadIDs = append(loadIDs, row.ID)
	}
	invoices, err := r.invoicesForLoads(ctx, loadIDs)
	if err != nil {
		return nil, err
	}

	truckIndex := indexByID(trucks, func(t model.Truck) uuid.UUID { return t.ID })
	employeeIndex := indexByID(employees, func(e model.Employee) uuid.UUID { return e.ID })
	customerIndex := indexByID(customers, func(c model.Customer) uuid.UUID { return c.ID })

	loads := make([]model.Load, 0, len(rows))
	for _, row := range rows {
		load := row.toModel()
		load.AssignedTruck = lookup(truckIndex, load.AssignedTruckID)
		load.AssignedDispatcher = lookup(employeeIndex, load.AssignedDispatcherID)
		load.Customer = lookup(customerIndex, load.CustomerID)
		load.Invoices = invoices[load.ID]
		loads = append(loads, load)
	}
	return filter.Apply(spec, loads), nil
}

func (r *ReportRepository) invoicesForLoads(ctx context.Context, loadIDs []uuid.UUID) (map[uuid.UUID][]model.Invoice, error) {
	var rows []invoiceRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, number, load_id, customer_id, status, total, currency, due_date, created_at
		FROM invoices
		WHERE load_id IN ?
		ORDER BY created_at ASC
	`, loadIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	invoices, err := r.attachInvoicePayments(ctx, rows)
	if err != nil {
		return nil, err
	}

	byLoad := make(map[uuid.UUID][]model.Invoice, len(invoices))
	for _, invoice := range invoices {
		byLoad[*invoice.LoadID] = append(byLoad[*invoice.LoadID], invoice)
	}
	return byLoad, nil
}

func (r *ReportRepository) FetchInvoices(ctx context.Context, spec *filter.Spec[model.Invoice]) ([]model.Invoice, error) {
	query := `
		SELECT id, number, load_id, customer_id, status, total, currency, due_date, created_at
		FROM invoices`
	query, args := withWindow(query, spec, filter.FieldCreatedAt, "created_at", "created_at")
	query += `
		ORDER BY created_at ASC`

	var rows []invoiceRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	invoices, err := r.attachInvoicePayments(ctx, rows)
	if err != nil {
		return nil, err
	}
	return filter.Apply(spec, invoices), nil
}

func (r *ReportRepository) attachInvoicePayments(ctx context.Context, rows []invoiceRow) ([]model.Invoice, error) {
	if len(rows) == 0 {
		return []model.Invoice{}, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var payments []paymentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, amount, currency, status, created_at, invoice_id, payroll_invoice_id
		FROM payments
		WHERE invoice_id IN ?
		ORDER BY created_at ASC
	`, ids).Scan(&payments).Error; err != nil {
		return nil, err
	}
	byInvoice := make(map[uuid.UUID][]model.Payment)
	for _, p := range payments {
		byInvoice[*p.InvoiceID] = append(byInvoice[*p.InvoiceID], p.toModel())
	}

	invoices := make([]model.Invoice, 0, len(rows))
	for _, row := range rows {
		invoice := row.toModel()
		invoice.Payments = byInvoice[row.ID]
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func (r *ReportRepository) FetchPayrollInvoices(ctx context.Context, spec *filter.Spec[model.PayrollInvoice]) ([]model.PayrollInvoice, error) {
	query := `
		SELECT id, employee_id, period_start, period_end, status, total, currency, created_at
		FROM payroll_invoices`
	query, args := withWindow(query, spec, filter.FieldPayrollPeriod, "period_start", "period_end")
	query += `
		ORDER BY period_start ASC`

	var rows []payrollRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.PayrollInvoice{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var payments []paymentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, amount, currency, status, created_at, invoice_id, payroll_invoice_id
		FROM payments
		WHERE payroll_invoice_id IN ?
		ORDER BY created_at ASC
	`, ids).Scan(&payments).Error; err != nil {
		return nil, err
	}
	byInvoice := make(map[uuid.UUID][]model.Payment)
	for _, p := range payments {
		byInvoice[*p.PayrollInvoiceID] = append(byInvoice[*p.PayrollInvoiceID], p.toModel())
	}

	employees, err := r.FetchEmployees(ctx, nil)
	if err != nil {
		return nil, err
	}
	employeeIndex := indexByID(employees, func(e model.Employee) uuid.UUID { return e.ID })

	payroll := make([]model.PayrollInvoice, 0, len(rows))
	for _, row := range rows {
		p := row.toModel()
		p.Payments = byInvoice[row.ID]
		p.Employee = lookup(employeeIndex, &p.EmployeeID)
		payroll = append(payroll, p)
	}
	return filter.Apply(spec, payroll), nil
}

// FetchPayments returns payments made against customer invoices.
func (r *ReportRepository) FetchPayments(ctx context.Context, spec *filter.Spec[model.Payment]) ([]model.Payment, error) {
	query := `
		SELECT id, amount, currency, status, created_at, invoice_id, payroll_invoice_id
		FROM payments`
	conditions, args := windowConditions(spec, filter.FieldCreatedAt, "created_at", "created_at")
	conditions = append([]string{"invoice_id IS NOT NULL"}, conditions...)
	query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	query += `
		ORDER BY created_at ASC`

	var rows []paymentRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]model.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.toModel())
	}
	return filter.Apply(spec, payments), nil
}

// windowConditions turns a filter's window hint into SQL bounds when it
// targets field. Hints for other fields are left to the in-memory predicates.
func windowConditions[T any](spec *filter.Spec[T], field, fromColumn, toColumn string) ([]string, []interface{}) {
	w, ok := spec.Window()
	if !ok || w.Field != field {
		return nil, nil
	}
	var conditions []string
	var args []interface{}
	if w.From != nil {
		conditions = append(conditions, fromColumn+" >= ?")
		args = append(args, *w.From)
	}
	if w.To != nil {
		conditions = append(conditions, toColumn+" <= ?")
		args = append(args, *w.To)
	}
	return conditions, args
}

func withWindow[T any](query string, spec *filter.Spec[T], field, fromColumn, toColumn string) (string, []interface{}) {
	conditions, args := windowConditions(spec, field, fromColumn, toColumn)
	if len(conditions) == 0 {
		return query, args
	}
	return query + "\n\t\tWHERE " + strings.Join(conditions, " AND "), args
}

func (row loadRow) toModel() model.Load {
	loadType, _ := model.ParseLoadType(row.Type)
	status, _ := model.ParseLoadStatus(row.Status)
	return model.Load{
		ID:                   row.ID,
		Number:               row.Number,
		Name:                 row.Name,
		Type:                 loadType,
		Status:               status,
		OriginAddress:        row.OriginAddress,
		DestinationAddress:   row.DestinationAddress,
		Distance:             row.Distance,
		DeliveryCost:         model.Money{Amount: row.DeliveryCost, Currency: row.Currency},
		DispatchedDate:       row.DispatchedDate,
		PickUpDate:           row.PickUpDate,
		DeliveryDate:         row.DeliveryDate,
		AssignedTruckID:      row.AssignedTruckID,
		AssignedDispatcherID: row.AssignedDispatcherID,
		CustomerID:           row.CustomerID,
	}
}

func (row employeeRow) toModel() model.Employee {
	var roles []string
	for _, role := range strings.Split(row.Roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return model.Employee{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Email:       row.Email,
		PhoneNumber: row.PhoneNumber,
		JoinedDate:  row.JoinedDate,
		Roles:       roles,
	}
}

func (row invoiceRow) toModel() model.Invoice {
	return model.Invoice{
		ID:         row.ID,
		Number:     row.Number,
		LoadID:     row.LoadID,
		CustomerID: row.CustomerID,
		Status:     model.InvoiceStatus(row.Status),
		Total:      model.Money{Amount: row.Total, Currency: row.Currency},
		DueDate:    row.DueDate,
		CreatedAt:  row.CreatedAt,
	}
}

func (row payrollRow) toModel() model.PayrollInvoice {
	return model.PayrollInvoice{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		PeriodStart: row.PeriodStart,
		PeriodEnd:   row.PeriodEnd,
		Status:      model.InvoiceStatus(row.Status),
		Total:       model.Money{Amount: row.Total, Currency: row.Currency},
		CreatedAt:   row.CreatedAt,
	}
}

func (row paymentRow) toModel() model.Payment {
	return model.Payment{
		ID:        row.ID,
		Amount:    model.Money{Amount: row.Amount, Currency: row.Currency},
		Status:    model.PaymentStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
}
