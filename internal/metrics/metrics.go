// Package metrics holds ratio helpers and the delivery policy shared by all
// report aggregators.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/model"
)

var hundred = decimal.NewFromInt(100)

// SafeDivide returns zero when the denominator is zero.
func SafeDivide(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}

// SafePercentage returns part/whole*100, or zero when whole is zero. The
// result is not clamped.
func SafePercentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// CountPercentage is SafePercentage over counts.
func CountPercentage(part, whole int) decimal.Decimal {
	return SafePercentage(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(whole)))
}

func SafeDivideFloat(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Mean averages decimals, zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

type Policy struct {
	AverageSpeedKmh float64
	OnTimeGrace     time.Duration
	DriverShareRate decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		AverageSpeedKmh: 60,
		OnTimeGrace:     24 * time.Hour,
		DriverShareRate: decimal.RequireFromString("0.3"),
	}
}

// ExpectedDelivery is the dispatch time plus the travel time at the assumed
// average speed.
func (p Policy) ExpectedDelivery(load model.Load) time.Time {
	if p.AverageSpeedKmh <= 0 {
		return load.DispatchedDate
	}
	travel := time.Duration(load.Distance / p.AverageSpeedKmh * float64(time.Hour))
	return load.DispatchedDate.Add(travel)
}

// IsOnTimeDelivery is false for loads without a delivery date.
func (p Policy) IsOnTimeDelivery(load model.Load) bool {
	if load.DeliveryDate == nil {
		return false
	}
	deadline := p.ExpectedDelivery(load).Add(p.OnTimeGrace)
	return !load.DeliveryDate.After(deadline)
}

// DriverShare is the part of the delivery cost paid out to the driver.
func (p Policy) DriverShare(load model.Load) decimal.Decimal {
	return load.DeliveryCost.Amount.Mul(p.DriverShareRate)
}

// HoursBetween returns fractional hours from a to b.
func HoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}
