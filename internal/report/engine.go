// Package report turns fetched records into report rows and summaries. Every
// function here is pure: callers pass the records and the current time.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
)

type Engine struct {
	policy metrics.Policy
}

func NewEngine(policy metrics.Policy) *Engine {
	return &Engine{policy: policy}
}

type group[K comparable, T any] struct {
	key   K
	items []T
}

// groupBy keeps groups in order of first occurrence.
func groupBy[K comparable, T any](items []T, key func(T) K) []group[K, T] {
	index := make(map[K]int)
	var groups []group[K, T]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K, T]{key: k})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

func sumCost(loads []model.Load) decimal.Decimal {
	total := decimal.Zero
	for _, load := range loads {
		total = total.Add(load.DeliveryCost.Amount)
	}
	return total
}

func (e *Engine) sumDriverShare(loads []model.Load) decimal.Decimal {
	total := decimal.Zero
	for _, load := range loads {
		total = total.Add(e.policy.DriverShare(load))
	}
	return total
}

func sumDistance(loads []model.Load) float64 {
	var total float64
	for _, load := range loads {
		total += load.Distance
	}
	return total
}

func withStatus(loads []model.Load, status model.LoadStatus) []model.Load {
	var out []model.Load
	for _, load := range loads {
		if load.Status == status {
			out = append(out, load)
		}
	}
	return out
}

func (e *Engine) countOnTime(loads []model.Load) int {
	count := 0
	for _, load := range loads {
		if e.policy.IsOnTimeDelivery(load) {
			count++
		}
	}
	return count
}

func decimalCount(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
