// Package period computes calendar windows and bucket walks used by reports.
package period

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

var ErrInvalidRange = errors.New("invalid range")

type Granularity string

const (
	Daily   Granularity = "Daily"
	Weekly  Granularity = "Weekly"
	Monthly Granularity = "Monthly"
)

// ParseGranularity falls back to Monthly for anything unrecognized.
func ParseGranularity(raw string) Granularity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily":
		return Daily
	case "weekly":
		return Weekly
	default:
		return Monthly
	}
}

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return DateOnly(t).AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func ThisWeek(now time.Time) Window {
	start := StartOfWeek(now)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

func LastWeek(now time.Time) Window {
	end := StartOfWeek(now)
	return Window{Start: end.AddDate(0, 0, -7), End: end}
}

func ThisMonth(now time.Time) Window {
	start := StartOfMonth(now)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

func LastMonth(now time.Time) Window {
	end := StartOfMonth(now)
	return Window{Start: end.AddDate(0, -1, 0), End: end}
}

func ThisYear(now time.Time) Window {
	start := StartOfYear(now)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// PreviousPeriodOfEqualLength returns the window of the same length that ends
// one tick before start.
func PreviousPeriodOfEqualLength(start, end time.Time) (time.Time, time.Time, error) {
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	length := end.Sub(start)
	return start.Add(-length), start.Add(-time.Nanosecond), nil
}

// WalkBuckets yields contiguous (bucketStart, bucketEnd) pairs covering
// [start, end] inclusive. Bucket ends are one nanosecond before the next
// bucket start; the final bucket is clipped to end. The sequence is empty
// when end is before start and may be ranged over any number of times.
func WalkBuckets(start, end time.Time, g Granularity) iter.Seq2[time.Time, time.Time] {
	return func(yield func(time.Time, time.Time) bool) {
		cursor := start
		for i := 1; !cursor.After(end); i++ {
			next := step(start, g, i)
			bucketEnd := next.Add(-time.Nanosecond)
			if bucketEnd.After(end) {
				bucketEnd = end
			}
			if !yield(cursor, bucketEnd) {
				return
			}
			cursor = next
		}
	}
}

// step offsets from the anchor rather than the previous cursor so month
// clamping does not drift (Jan 31 -> Feb 28 -> Mar 31).
func step(anchor time.Time, g Granularity, n int) time.Time {
	switch g {
	case Daily:
		return anchor.AddDate(0, 0, n)
	case Weekly:
		return anchor.AddDate(0, 0, 7*n)
	default:
		return addMonthsClamped(anchor, n)
	}
}

func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	return firstOfTarget.AddDate(0, 0, min(d, lastDay)-1)
}

// MonthKey formats t as yyyy-mm.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
