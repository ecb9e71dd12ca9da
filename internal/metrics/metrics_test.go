package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/fleet-reports/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   decimal.Decimal
		denominator decimal.Decimal
		want        decimal.Decimal
	}{
		{name: "zero denominator", numerator: d("10"), denominator: decimal.Zero, want: decimal.Zero},
		{name: "zero over zero", numerator: decimal.Zero, denominator: decimal.Zero, want: decimal.Zero},
		{name: "regular", numerator: d("10"), denominator: d("4"), want: d("2.5")},
		{name: "negative", numerator: d("-9"), denominator: d("3"), want: d("-3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(SafeDivide(tt.numerator, tt.denominator)))
		})
	}
}

func TestSafePercentage(t *testing.T) {
	assert.True(t, SafePercentage(d("1000"), decimal.Zero).IsZero())
	assert.True(t, d("50").Equal(SafePercentage(d("1"), d("2"))))
	assert.True(t, d("-25").Equal(SafePercentage(d("-1"), d("4"))), "negative values pass through")
	assert.True(t, d("150").Equal(SafePercentage(d("3"), d("2"))), "values above 100 pass through")
	assert.Equal(t, "66.67", CountPercentage(2, 3).StringFixed(2))
	assert.True(t, CountPercentage(5, 0).IsZero())
}

func TestSafeDivideFloat(t *testing.T) {
	assert.Zero(t, SafeDivideFloat(12, 0))
	assert.InDelta(t, 2.5, SafeDivideFloat(5, 2), 1e-9)
}

func TestMean(t *testing.T) {
	assert.True(t, Mean(nil).IsZero())
	assert.True(t, d("150").Equal(Mean([]decimal.Decimal{d("100"), d("200")})))
}

func TestIsOnTimeDeliveryBoundary(t *testing.T) {
	policy := DefaultPolicy()
	dispatched := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	deadline := dispatched.Add(2*time.Hour + 24*time.Hour)

	tests := []struct {
		name     string
		delivery *time.Time
		want     bool
	}{
		{name: "no delivery date", delivery: nil, want: false},
		{name: "exactly at deadline", delivery: &deadline, want: true},
		{name: "one nanosecond late", delivery: ptr(deadline.Add(time.Nanosecond)), want: false},
		{name: "early", delivery: ptr(dispatched.Add(time.Hour)), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := model.Load{Distance: 120, DispatchedDate: dispatched, DeliveryDate: tt.delivery}
			assert.Equal(t, tt.want, policy.IsOnTimeDelivery(load))
		})
	}
}

func TestPolicyIsConfigurable(t *testing.T) {
	policy := Policy{AverageSpeedKmh: 40, OnTimeGrace: time.Hour, DriverShareRate: d("0.25")}
	dispatched := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	delivered := dispatched.Add(4 * time.Hour)
	load := model.Load{
		Distance:       120,
		DispatchedDate: dispatched,
		DeliveryDate:   &delivered,
		DeliveryCost:   model.Money{Amount: d("400"), Currency: "USD"},
	}

	assert.True(t, policy.IsOnTimeDelivery(load))
	late := delivered.Add(time.Minute)
	load.DeliveryDate = &late
	assert.False(t, policy.IsOnTimeDelivery(load))
	assert.True(t, d("100").Equal(policy.DriverShare(load)))
}

func ptr[T any](v T) *T {
	return &v
}
