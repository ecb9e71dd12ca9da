package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultSortOrder = "desc"

type Paging struct {
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

func (p Paging) withDefaults(pageSize int) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = pageSize
	}
	if p.SortOrder == "" {
		p.SortOrder = defaultSortOrder
	}
	return p
}

// LoadFilter narrows loads. Status and LoadType values that do not parse are
// ignored. Search matches the load name, truck number or customer name.
type LoadFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Status           string
	LoadType         string
	AssignedDriverID *uuid.UUID
	AssignedTruckID  *uuid.UUID
	CustomerID       *uuid.UUID
	MinDeliveryCost  *decimal.Decimal
	MaxDeliveryCost  *decimal.Decimal
	Search           string
}

type LoadReportQuery struct {
	LoadFilter
	Paging
	IncludeInvoiceDetails *bool
}

type DriverReportQuery struct {
	StartDate          *time.Time
	EndDate            *time.Time
	DriverID           *uuid.UUID
	TruckID            *uuid.UUID
	Search             string
	IncludeRecentLoads *bool
	RecentLoadsLimit   int
	Paging
}

type DriverSummaryQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type FinancialReportQuery struct {
	StartDate            time.Time
	EndDate              time.Time
	Period               string
	IncludeComparison    *bool
	IncludeTopPerformers *bool
	IncludeInvoiceAging  *bool
	TopPerformersLimit   int
}

type FinancialSummaryQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type CashFlowQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Period    string
}

// InvoiceReportQuery lists invoices newest first, so only the page fields of
// Paging apply. Search matches the customer name.
type InvoiceReportQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Search    string
	Paging
}

type DashboardQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// searchTerm normalizes a search value; empty means no search.
func searchTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// containsTerm reports whether any value contains term, ignoring case.
func containsTerm(term string, values ...string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), term) {
			return true
		}
	}
	return false
}

func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end_date must be after or equal to start_date", ErrInvalidInput)
	}
	return nil
}

func requireRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}
	return validateRange(&start, &end)
}
