// Package query filters, sorts and aggregates an owner's task set.
//
// Date windows are evaluated against the engine clock in the engine location,
// because due dates carry no time zone of their own.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// Filter selects a subset of tasks.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterWeek      Filter = "week"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// SortKey orders tasks.
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortPriority SortKey = "priority"
)

// weekSpan is the inclusive length of the week window in days after today.
const weekSpan = 7

// ParseFilter parses a filter name case-insensitively; empty means all.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterToday, FilterWeek, FilterHigh, FilterMedium, FilterLow, FilterCompleted, FilterPending:
		return f, nil
	}
	return "", model.NewValidationError("unknown filter %q", s)
}

// ParseSortKey parses a sort key case-insensitively; empty means newest.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortPriority:
		return k, nil
	}
	return "", model.NewValidationError("unknown sort key %q", s)
}

// Engine evaluates queries over task sets. It holds no task state.
type Engine struct {
	now      func() time.Time
	location *time.Location
}

// NewEngine creates an engine. A nil clock defaults to time.Now and a nil
// location to time.Local.
func NewEngine(now func() time.Time, location *time.Location) *Engine {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &Engine{now: now, location: location}
}

// Query returns the tasks matching filter ordered by sort. The input slice is not modified.
func (e *Engine) Query(tasks []model.Task, filter Filter, sort SortKey) []model.Task {
	return e.Sort(e.Filter(tasks, filter), sort)
}

// Filter returns the tasks matching filter, preserving input order.
func (e *Engine) Filter(tasks []model.Task, filter Filter) []model.Task {
	match := e.matcher(filter)

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) matcher(filter Filter) func(model.Task) bool {
	today := model.DateOf(e.now().In(e.location))

	switch filter {
	case FilterToday:
		return func(t model.Task) bool {
			return t.DueDate != nil && t.DueDate.Compare(today) == 0
		}
	case FilterWeek:
		end := today.AddDays(weekSpan)
		return func(t model.Task) bool {
			return t.DueDate != nil && t.DueDate.Compare(today) >= 0 && t.DueDate.Compare(end) <= 0
		}
	case FilterHigh, FilterMedium, FilterLow:
		return func(t model.Task) bool {
			return strings.EqualFold(string(t.Priority), string(filter))
		}
	case FilterCompleted:
		return func(t model.Task) bool { return t.Completed }
	case FilterPending:
		return func(t model.Task) bool { return !t.Completed }
	default:
		return func(model.Task) bool { return true }
	}
}

// Sort returns a stably sorted copy of tasks. Equal keys keep input order.
func (e *Engine) Sort(tasks []model.Task, key SortKey) []model.Task {
	out := slices.Clone(tasks)

	switch key {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			if r := b.Priority.Rank() - a.Priority.Rank(); r != 0 {
				return r
			}
			return newestFirst(a, b)
		})
	default:
		slices.SortStableFunc(out, newestFirst)
	}

	return out
}

func newestFirst(a, b model.Task) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

// Stats partitions tasks by priority and completion.
func (e *Engine) Stats(tasks []model.Task) model.Stats {
	stats := model.Stats{Total: len(tasks)}

	for _, t := range tasks {
		switch t.Priority {
		case model.PriorityHigh:
			stats.High++
		case model.PriorityMedium:
			stats.Medium++
		default:
			stats.Low++
		}

		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed

	return stats
}
