package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DriverPeriodStats struct {
	LoadsCompleted           int             `json:"loads_completed"`
	TotalEarnings            decimal.Decimal `json:"total_earnings"`
	TotalRevenue             decimal.Decimal `json:"total_revenue"`
	TotalDistance            float64         `json:"total_distance"`
	AverageEarningsPerLoad   decimal.Decimal `json:"average_earnings_per_load"`
	OnTimeDeliveries         int             `json:"on_time_deliveries"`
	LateDeliveries           int             `json:"late_deliveries"`
	OnTimeDeliveryPercentage decimal.Decimal `json:"on_time_delivery_percentage"`
}

type DriverReportRow struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	JoinedDate  time.Time `json:"joined_date"`

	CurrentTruckNumber string `json:"current_truck_number,omitempty"`
	CurrentTruckType   string `json:"current_truck_type,omitempty"`
	CurrentTruckStatus string `json:"current_truck_status,omitempty"`

	TotalLoadsCompleted  int `json:"total_loads_completed"`
	TotalLoadsInProgress int `json:"total_loads_in_progress"`
	TotalLoadsDispatched int `json:"total_loads_dispatched"`
	TotalLoadsAssigned   int `json:"total_loads_assigned"`

	TotalDistanceDriven        float64         `json:"total_distance_driven"`
	TotalEarnings              decimal.Decimal `json:"total_earnings"`
	AverageEarningsPerLoad     decimal.Decimal `json:"average_earnings_per_load"`
	AverageEarningsPerKm       decimal.Decimal `json:"average_earnings_per_km"`
	AverageDistancePerLoad     float64         `json:"average_distance_per_load"`
	AverageDeliveryTimeInHours float64         `json:"average_delivery_time_in_hours"`
	OnTimeDeliveries           int             `json:"on_time_deliveries"`
	LateDeliveries             int             `json:"late_deliveries"`
	OnTimeDeliveryPercentage   decimal.Decimal `json:"on_time_delivery_percentage"`
	LastActiveDate             *time.Time      `json:"last_active_date,omitempty"`

	ThisWeek  DriverPeriodStats `json:"this_week"`
	LastWeek  DriverPeriodStats `json:"last_week"`
	ThisMonth DriverPeriodStats `json:"this_month"`
	LastMonth DriverPeriodStats `json:"last_month"`
	ThisYear  DriverPeriodStats `json:"this_year"`

	RecentLoads []LoadReportRow `json:"recent_loads,omitempty"`
}

type TopDriver struct {
	DriverID         uuid.UUID       `json:"driver_id"`
	Name             string          `json:"name"`
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	LoadsCompleted   int             `json:"loads_completed"`
	TotalDistance    float64         `json:"total_distance"`
	OnTimePercentage decimal.Decimal `json:"on_time_percentage"`
}

type DriverEfficiency struct {
	Category                string          `json:"category"`
	DriverCount             int             `json:"driver_count"`
	AverageEarnings         decimal.Decimal `json:"average_earnings"`
	AverageOnTimePercentage decimal.Decimal `json:"average_on_time_percentage"`
}

type DriverReportSummary struct {
	TotalDrivers                 int                `json:"total_drivers"`
	ActiveDrivers                int                `json:"active_drivers"`
	InactiveDrivers              int                `json:"inactive_drivers"`
	TotalEarnings                decimal.Decimal    `json:"total_earnings"`
	AverageEarningsPerDriver     decimal.Decimal    `json:"average_earnings_per_driver"`
	TotalDistance                float64            `json:"total_distance"`
	AverageDistancePerDriver     float64            `json:"average_distance_per_driver"`
	TotalLoadsCompleted          int                `json:"total_loads_completed"`
	AverageLoadsPerDriver        float64            `json:"average_loads_per_driver"`
	OverallOnTimeDeliveryPercent decimal.Decimal    `json:"overall_on_time_delivery_percentage"`
	TopPerformers                []TopDriver        `json:"top_performers"`
	DriverEfficiency             []DriverEfficiency `json:"driver_efficiency"`
}

type DriverReport struct {
	Summary DriverReportSummary   `json:"summary"`
	Drivers Page[DriverReportRow] `json:"drivers"`
}
