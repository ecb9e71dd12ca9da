package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/fleet-reports/internal/metrics"
	"github.com/nurpe/fleet-reports/internal/model"
	"github.com/nurpe/fleet-reports/internal/period"
)

const (
	EfficiencyHigh   = "High (>= 90%)"
	EfficiencyMedium = "Medium (70-89%)"
	EfficiencyLow    = "Low (< 70%)"

	topPerformersInSummary = 5
	unknownDriverName      = "Unknown"
)

var (
	highThreshold   = decimal.NewFromInt(90)
	mediumThreshold = decimal.NewFromInt(70)
)

type DriverRowOptions struct {
	IncludeRecentLoads bool
	RecentLoadsLimit   int
}

// DriverLoads selects loads whose assigned truck carries the driver in
// either slot.
func DriverLoads(driverID uuid.UUID, loads []model.Load) []model.Load {
	var out []model.Load
	for _, load := range loads {
		if load.AssignedTo(driverID) {
			out = append(out, load)
		}
	}
	return out
}

// CurrentTruck returns the first truck that has the driver in a slot.
func CurrentTruck(driverID uuid.UUID, trucks []model.Truck) *model.Truck {
	for i := range trucks {
		if trucks[i].HasDriver(driverID) {
			return &trucks[i]
		}
	}
	return nil
}

// BuildDriverRow aggregates one driver's loads. Earnings and distance cover
// every assigned load whatever its status; on-time figures cover delivered
// loads only.
func (e *Engine) BuildDriverRow(driver model.Employee, truck *model.Truck, loads []model.Load, now time.Time, opts DriverRowOptions) model.DriverReportRow {
	completed := withStatus(loads, model.LoadStatusDelivered)
	earnings := e.sumDriverShare(loads)
	distance := sumDistance(loads)

	row := model.DriverReportRow{
		ID:                   driver.ID,
		FirstName:            driver.FirstName,
		LastName:             driver.LastName,
		FullName:             driver.FullName(),
		Email:                driver.Email,
		PhoneNumber:          driver.PhoneNumber,
		JoinedDate:           driver.JoinedDate,
		TotalLoadsCompleted:  len(completed),
		TotalLoadsInProgress: len(withStatus(loads, model.LoadStatusPickedUp)),
		TotalLoadsDispatched: len(withStatus(loads, model.LoadStatusDispatched)),
		TotalLoadsAssigned:   len(loads),
		TotalDistanceDriven:  distance,
		TotalEarnings:        earnings,
		ThisWeek:             e.PeriodStats(loads, period.ThisWeek(now)),
		LastWeek:             e.PeriodStats(loads, period.LastWeek(now)),
		ThisMonth:            e.PeriodStats(loads, period.ThisMonth(now)),
		LastMonth:            e.PeriodStats(loads, period.LastMonth(now)),
		ThisYear:             e.PeriodStats(loads, period.ThisYear(now)),
	}

	if truck != nil {
		row.CurrentTruckNumber = truck.Number
		row.CurrentTruckType = truck.Type
		row.CurrentTruckStatus = truck.Status
	}

	if len(loads) > 0 {
		row.AverageEarningsPerLoad = earnings.Div(decimalCount(len(loads)))
		row.AverageDistancePerLoad = distance / float64(len(loads))
		row.AverageEarningsPerKm = metrics.SafeDivide(earnings, decimal.NewFromFloat(distance))
	}

	if len(completed) > 0 {
		onTime := e.countOnTime(completed)
		row.OnTimeDeliveries = onTime
		row.LateDeliveries = len(completed) - onTime
		row.OnTimeDeliveryPercentage = metrics.CountPercentage(onTime, len(completed))

		var hours float64
		var timed int
		for _, load := range completed {
			if load.PickUpDate != nil && load.DeliveryDate != nil {
				hours += metrics.HoursBetween(*load.PickUpDate, *load.DeliveryDate)
				timed++
			}
		}
		row.AverageDeliveryTimeInHours = metrics.SafeDivideFloat(hours, float64(timed))
	}

	for _, load := range loads {
		if row.LastActiveDate == nil || load.DispatchedDate.After(*row.LastActiveDate) {
			last := load.DispatchedDate
			row.LastActiveDate = &last
		}
	}

	if opts.IncludeRecentLoads {
		recent := slices.Clone(loads)
		slices.SortStableFunc(recent, func(a, b model.Load) int {
			return b.DispatchedDate.Compare(a.DispatchedDate)
		})
		limit := opts.RecentLoadsLimit
		if limit <= 0 {
			limit = 10
		}
		row.RecentLoads = e.ProjectLoads(recent[:min(limit, len(recent))], true)
	}

	return row
}

// PeriodStats recomputes driver figures for loads dispatched inside w.
// Per-load earnings divide by completed loads.
func (e *Engine) PeriodStats(loads []model.Load, w period.Window) model.DriverPeriodStats {
	var inWindow []model.Load
	for _, load := range loads {
		if w.Contains(load.DispatchedDate) {
			inWindow = append(inWindow, load)
		}
	}
	completed := withStatus(inWindow, model.LoadStatusDelivered)

	stats := model.DriverPeriodStats{
		LoadsCompleted: len(completed),
		TotalEarnings:  e.sumDriverShare(inWindow),
		TotalRevenue:   sumCost(inWindow),
		TotalDistance:  sumDistance(inWindow),
	}
	if len(completed) > 0 {
		onTime := e.countOnTime(completed)
		stats.AverageEarningsPerLoad = stats.TotalEarnings.Div(decimalCount(len(completed)))
		stats.OnTimeDeliveries = onTime
		stats.LateDeliveries = len(completed) - onTime
		stats.OnTimeDeliveryPercentage = metrics.CountPercentage(onTime, len(completed))
	}
	return stats
}

// SortDrivers sorts rows in place. Keys: totalearnings (default),
// totalloadscompleted, totaldistancedriven, ontimedeliverypercentage,
// averageearningsperload, name, joineddate.
func SortDrivers(rows []model.DriverReportRow, sortBy, sortOrder string) {
	compare := driverComparator(strings.ToLower(strings.TrimSpace(sortBy)))
	desc := IsDescending(sortOrder)
	slices.SortStableFunc(rows, func(a, b model.DriverReportRow) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func driverComparator(key string) func(a, b model.DriverReportRow) int {
	switch key {
	case "totalloadscompleted":
		return func(a, b model.DriverReportRow) int { return cmp.Compare(a.TotalLoadsCompleted, b.TotalLoadsCompleted) }
	case "totaldistancedriven":
		return func(a, b model.DriverReportRow) int { return cmp.Compare(a.TotalDistanceDriven, b.TotalDistanceDriven) }
	case "ontimedeliverypercentage":
		return func(a, b model.DriverReportRow) int { return a.OnTimeDeliveryPercentage.Cmp(b.OnTimeDeliveryPercentage) }
	case "averageearningsperload":
		return func(a, b model.DriverReportRow) int { return a.AverageEarningsPerLoad.Cmp(b.AverageEarningsPerLoad) }
	case "name":
		return func(a, b model.DriverReportRow) int { return strings.Compare(a.FullName, b.FullName) }
	case "joineddate":
		return func(a, b model.DriverReportRow) int { return a.JoinedDate.Compare(b.JoinedDate) }
	default:
		return func(a, b model.DriverReportRow) int { return a.TotalEarnings.Cmp(b.TotalEarnings) }
	}
}

type driverPerformance struct {
	driverID       uuid.UUID
	earnings       decimal.Decimal
	distance       float64
	loadsCompleted int
	onTime         int
}

func (p driverPerformance) onTimePercentage() decimal.Decimal {
	return metrics.CountPercentage(p.onTime, p.loadsCompleted)
}

// performanceByMainDriver groups loads by the main driver of their truck.
func (e *Engine) performanceByMainDriver(loads []model.Load) []driverPerformance {
	var assigned []model.Load
	for _, load := range loads {
		if _, ok := load.MainDriverID(); ok {
			assigned = append(assigned, load)
		}
	}
	groups := groupBy(assigned, func(l model.Load) uuid.UUID {
		id, _ := l.MainDriverID()
		return id
	})

	out := make([]driverPerformance, 0, len(groups))
	for _, g := range groups {
		completed := withStatus(g.items, model.LoadStatusDelivered)
		out = append(out, driverPerformance{
			driverID:       g.key,
			earnings:       e.sumDriverShare(g.items),
			distance:       sumDistance(g.items),
			loadsCompleted: len(completed),
			onTime:         e.countOnTime(completed),
		})
	}
	return out
}

func rankByEarnings(perf []driverPerformance) []driverPerformance {
	ranked := slices.Clone(perf)
	slices.SortStableFunc(ranked, func(a, b driverPerformance) int {
		return b.earnings.Cmp(a.earnings)
	})
	return ranked
}

// SummarizeDrivers aggregates the driver roster against loads in the window.
// Active drivers are known drivers sitting in any truck slot.
func (e *Engine) SummarizeDrivers(drivers []model.Employee, trucks []model.Truck, loads []model.Load) model.DriverReportSummary {
	known := make(map[uuid.UUID]model.Employee, len(drivers))
	for _, driver := range drivers {
		known[driver.ID] = driver
	}
	active := make(map[uuid.UUID]struct{})
	for _, truck := range trucks {
		for _, id := range truck.DriverIDs() {
			if _, ok := known[id]; ok {
				active[id] = struct{}{}
			}
		}
	}

	completed := withStatus(loads, model.LoadStatusDelivered)
	total := len(drivers)
	summary := model.DriverReportSummary{
		TotalDrivers:        total,
		ActiveDrivers:       len(active),
		InactiveDrivers:     total - len(active),
		TotalEarnings:       e.sumDriverShare(loads),
		TotalDistance:       sumDistance(loads),
		TotalLoadsCompleted: len(completed),
		TopPerformers:       []model.TopDriver{},
	}
	if total > 0 {
		summary.AverageEarningsPerDriver = summary.TotalEarnings.Div(decimalCount(total))
		summary.AverageDistancePerDriver = summary.TotalDistance / float64(total)
		summary.AverageLoadsPerDriver = float64(summary.TotalLoadsCompleted) / float64(total)
	}
	summary.OverallOnTimeDeliveryPercent = metrics.CountPercentage(e.countOnTime(completed), len(completed))

	perf := e.performanceByMainDriver(loads)
	for _, p := range rankByEarnings(perf)[:min(topPerformersInSummary, len(perf))] {
		name := unknownDriverName
		if driver, ok := known[p.driverID]; ok {
			name = driver.FullName()
		}
		summary.TopPerformers = append(summary.TopPerformers, model.TopDriver{
			DriverID:         p.driverID,
			Name:             name,
			TotalEarnings:    p.earnings,
			LoadsCompleted:   p.loadsCompleted,
			TotalDistance:    p.distance,
			OnTimePercentage: p.onTimePercentage(),
		})
	}

	summary.DriverEfficiency = efficiencyHistogram(perf)
	return summary
}

// EfficiencyCategory buckets an on-time percentage.
func EfficiencyCategory(onTime decimal.Decimal) string {
	switch {
	case onTime.GreaterThanOrEqual(highThreshold):
		return EfficiencyHigh
	case onTime.GreaterThanOrEqual(mediumThreshold):
		return EfficiencyMedium
	default:
		return EfficiencyLow
	}
}

// efficiencyHistogram always returns the High, Medium and Low buckets in
// that order. Empty buckets report zero averages.
func efficiencyHistogram(perf []driverPerformance) []model.DriverEfficiency {
	categories := []string{EfficiencyHigh, EfficiencyMedium, EfficiencyLow}
	earnings := make(map[string][]decimal.Decimal, len(categories))
	onTime := make(map[string][]decimal.Decimal, len(categories))
	for _, p := range perf {
		pct := p.onTimePercentage()
		category := EfficiencyCategory(pct)
		earnings[category] = append(earnings[category], p.earnings)
		onTime[category] = append(onTime[category], pct)
	}

	out := make([]model.DriverEfficiency, 0, len(categories))
	for _, category := range categories {
		out = append(out, model.DriverEfficiency{
			Category:                category,
			DriverCount:             len(earnings[category]),
			AverageEarnings:         metrics.Mean(earnings[category]),
			AverageOnTimePercentage: metrics.Mean(onTime[category]),
		})
	}
	return out
}
