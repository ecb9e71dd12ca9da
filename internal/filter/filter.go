// Package filter composes record predicates. A store may push the optional
// date window down to its query and then apply the predicates in memory.
package filter

import "time"

// Window fields understood by the stores.
const (
	FieldDispatchedDate = "dispatched_date"
	FieldCreatedAt      = "created_at"
	// FieldPayrollPeriod bounds period_start from below and period_end from above.
	FieldPayrollPeriod = "payroll_period"
)

type Predicate[T any] func(T) bool

// Window is an inclusive date range on a named field. A nil bound is open.
type Window struct {
	Field string
	From  *time.Time
	To    *time.Time
}

func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

type Spec[T any] struct {
	predicates []Predicate[T]
	window     *Window
}

func New[T any]() *Spec[T] {
	return &Spec[T]{}
}

func (s *Spec[T]) Where(p Predicate[T]) *Spec[T] {
	s.predicates = append(s.predicates, p)
	return s
}

// WhereIf adds p only when cond holds.
func (s *Spec[T]) WhereIf(cond bool, p Predicate[T]) *Spec[T] {
	if cond {
		s.Where(p)
	}
	return s
}

// Between records the window hint and filters on value(item) within it.
// With both bounds nil it is a no-op.
func (s *Spec[T]) Between(field string, from, to *time.Time, value func(T) time.Time) *Spec[T] {
	if from == nil && to == nil {
		return s
	}
	w := Window{Field: field, From: from, To: to}
	s.window = &w
	return s.Where(func(item T) bool {
		return w.Contains(value(item))
	})
}

// Hint records a window for stores to push down without adding a predicate.
func (s *Spec[T]) Hint(w Window) *Spec[T] {
	s.window = &w
	return s
}

func (s *Spec[T]) Window() (Window, bool) {
	if s == nil || s.window == nil {
		return Window{}, false
	}
	return *s.window, true
}

// Match folds all predicates with AND. A nil spec matches everything.
func (s *Spec[T]) Match(item T) bool {
	if s == nil {
		return true
	}
	for _, p := range s.predicates {
		if !p(item) {
			return false
		}
	}
	return true
}

func Apply[T any](s *Spec[T], items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
