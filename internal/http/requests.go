package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/service"
)

// Request structs bind the query string with gin. Dates, ids and amounts stay
// strings here and are parsed by rawParams so errors name the key.

type DateRange struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type PageParams struct {
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

func (p PageParams) paging() service.Paging {
	return service.Paging{SortBy: p.SortBy, SortOrder: p.SortOrder, Page: p.Page, PageSize: p.PageSize}
}

type loadReportRequest struct {
	DateRange
	PageParams
	Status                string `form:"status"`
	LoadType              string `form:"load_type"`
	AssignedDriverID      string `form:"assigned_driver_id"`
	AssignedTruckID       string `form:"assigned_truck_id"`
	CustomerID            string `form:"customer_id"`
	MinDeliveryCost       string `form:"min_delivery_cost"`
	MaxDeliveryCost       string `form:"max_delivery_cost"`
	Search                string `form:"search"`
	IncludeInvoiceDetails *bool  `form:"include_invoice_details"`
}

func (r loadReportRequest) query() (service.LoadReportQuery, error) {
	var p rawParams
	q := service.LoadReportQuery{
		LoadFilter: service.LoadFilter{
			StartDate:        p.date("start_date", r.StartDate),
			EndDate:          p.date("end_date", r.EndDate),
			Status:           r.Status,
			LoadType:         r.LoadType,
			AssignedDriverID: p.uuid("assigned_driver_id", r.AssignedDriverID),
			AssignedTruckID:  p.uuid("assigned_truck_id", r.AssignedTruckID),
			CustomerID:       p.uuid("customer_id", r.CustomerID),
			MinDeliveryCost:  p.decimal("min_delivery_cost", r.MinDeliveryCost),
			MaxDeliveryCost:  p.decimal("max_delivery_cost", r.MaxDeliveryCost),
			Search:           r.Search,
		},
		Paging:                r.paging(),
		IncludeInvoiceDetails: r.IncludeInvoiceDetails,
	}
	return q, p.err
}

type driverReportRequest struct {
	DateRange
	PageParams
	DriverID           string `form:"driver_id"`
	TruckID            string `form:"truck_id"`
	Search             string `form:"search"`
	IncludeRecentLoads *bool  `form:"include_recent_loads"`
	RecentLoadsLimit   int    `form:"recent_loads_limit"`
}

func (r driverReportRequest) query() (service.DriverReportQuery, error) {
	var p rawParams
	q := service.DriverReportQuery{
		StartDate:          p.date("start_date", r.StartDate),
		EndDate:            p.date("end_date", r.EndDate),
		DriverID:           p.uuid("driver_id", r.DriverID),
		TruckID:            p.uuid("truck_id", r.TruckID),
		Search:             r.Search,
		IncludeRecentLoads: r.IncludeRecentLoads,
		RecentLoadsLimit:   r.RecentLoadsLimit,
		Paging:             r.paging(),
	}
	return q, p.err
}

type financialReportRequest struct {
	DateRange
	Period               string `form:"period"`
	IncludeComparison    *bool  `form:"include_comparison"`
	IncludeTopPerformers *bool  `form:"include_top_performers"`
	IncludeInvoiceAging  *bool  `form:"include_invoice_aging"`
	TopPerformersLimit   int    `form:"top_performers_limit"`
}

func (r financialReportRequest) query() (service.FinancialReportQuery, error) {
	var p rawParams
	q := service.FinancialReportQuery{
		StartDate:            valueOf(p.date("start_date", r.StartDate)),
		EndDate:              valueOf(p.date("end_date", r.EndDate)),
		Period:               r.Period,
		IncludeComparison:    r.IncludeComparison,
		IncludeTopPerformers: r.IncludeTopPerformers,
		IncludeInvoiceAging:  r.IncludeInvoiceAging,
		TopPerformersLimit:   r.TopPerformersLimit,
	}
	return q, p.err
}

type cashFlowRequest struct {
	DateRange
	Period string `form:"period"`
}

func (r cashFlowRequest) query() (service.CashFlowQuery, error) {
	var p rawParams
	q := service.CashFlowQuery{
		StartDate: valueOf(p.date("start_date", r.StartDate)),
		EndDate:   valueOf(p.date("end_date", r.EndDate)),
		Period:    r.Period,
	}
	return q, p.err
}

type invoiceReportRequest struct {
	DateRange
	PageParams
	Status string `form:"status"`
	Search string `form:"search"`
}

func (r invoiceReportRequest) query() (service.InvoiceReportQuery, error) {
	var p rawParams
	q := service.InvoiceReportQuery{
		StartDate: p.date("start_date", r.StartDate),
		EndDate:   p.date("end_date", r.EndDate),
		Status:    r.Status,
		Search:    r.Search,
		Paging:    r.paging(),
	}
	return q, p.err
}

// bounds parses an optional window shared by the summary and dashboard
// endpoints.
func (r DateRange) bounds() (start, end *time.Time, err error) {
	var p rawParams
	start = p.date("start_date", r.StartDate)
	end = p.date("end_date", r.EndDate)
	return start, end, p.err
}

// bindQuery binds the query string into R and converts it to a service query.
func bindQuery[R, Q any](c *gin.Context, convert func(R) (Q, error)) (Q, error) {
	var req R
	if err := c.ShouldBindQuery(&req); err != nil {
		var zero Q
		return zero, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	return convert(req)
}

// rawParams keeps the first parse failure. Blank values yield nil.
type rawParams struct {
	err error
}

func (p *rawParams) fail(key string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, key)
	}
}

func (p *rawParams) date(key, raw string) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parsed, err := parseDate(raw)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &parsed
}

func (p *rawParams) uuid(key, raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &id
}

func (p *rawParams) decimal(key, raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &value
}

func valueOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
