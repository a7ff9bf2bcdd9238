// Package view computes read-only projections over the task cache: period
// buckets (today/week/month), completion filtering, and deadline sorting.
// Selectors never mutate the cache; results are memoized on the cache's
// version and the parameter tuple, so repeated calls with unchanged inputs
// return the same slice without recomputation.
//
// The UI composes stages as select-by-period, then filter-by-completion,
// then sort; each stage is independently pure, and Query applies that
// composition in one memoized call.
package view

import (
	"sort"
	"sync"
	"time"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/domain"
)

// SortOrder directs deadline sorting.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Period names a deadline bucket.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DefaultWeekStart matches the app's shipped locale convention.
const DefaultWeekStart = time.Monday

// Engine memoizes task projections for one task cache.
type Engine struct {
	tasks     *cache.Cache[domain.Task]
	weekStart time.Weekday
	now       func() time.Time

	mu          sync.Mutex
	memoVersion uint64
	memo        map[memoKey][]domain.Task
}

type memoKey struct {
	op            string
	startMs       int64
	endMs         int64
	showCompleted bool
	order         SortOrder
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeekStart overrides the week-start weekday.
func WithWeekStart(d time.Weekday) Option {
	return func(e *Engine) { e.weekStart = d }
}

// WithClock overrides the wall clock. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a view engine over the given task cache.
func NewEngine(tasks *cache.Cache[domain.Task], opts ...Option) *Engine {
	e := &Engine{
		tasks:     tasks,
		weekStart: DefaultWeekStart,
		now:       time.Now,
		memo:      make(map[memoKey][]domain.Task),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SelectAll returns every cached task in insertion order.
func (e *Engine) SelectAll() []domain.Task {
	return e.memoized(memoKey{op: "all"}, func() []domain.Task {
		return e.tasks.All()
	})
}

// SelectForToday returns tasks whose deadline falls within today,
// evaluated against wall-clock time at call time.
func (e *Engine) SelectForToday() []domain.Task {
	start, end := DayBounds(e.now())
	return e.selectRange(start, end)
}

// SelectForWeek returns tasks due in the current week.
func (e *Engine) SelectForWeek() []domain.Task {
	start, end := WeekBounds(e.now(), e.weekStart)
	return e.selectRange(start, end)
}

// SelectForMonth returns tasks due in the current month.
func (e *Engine) SelectForMonth() []domain.Task {
	start, end := MonthBounds(e.now())
	return e.selectRange(start, end)
}

// Query runs the UI's standard composition: period bucket, completion
// filter, deadline sort. The whole composition is memoized as one unit.
func (e *Engine) Query(p Period, showCompleted bool, order SortOrder) []domain.Task {
	var start, end int64
	switch p {
	case PeriodToday:
		start, end = DayBounds(e.now())
	case PeriodWeek:
		start, end = WeekBounds(e.now(), e.weekStart)
	case PeriodMonth:
		start, end = MonthBounds(e.now())
	}

	key := memoKey{op: "query:" + string(p), startMs: start, endMs: end, showCompleted: showCompleted, order: order}
	return e.memoized(key, func() []domain.Task {
		tasks := e.tasks.All()
		if p != PeriodAll {
			tasks = filterRange(tasks, start, end)
		}
		tasks = FilterByCompletion(tasks, showCompleted)
		return SortByDeadline(tasks, order)
	})
}

func (e *Engine) selectRange(startMs, endMs int64) []domain.Task {
	key := memoKey{op: "range", startMs: startMs, endMs: endMs}
	return e.memoized(key, func() []domain.Task {
		return filterRange(e.tasks.All(), startMs, endMs)
	})
}

// memoized returns the cached result for key at the cache's current
// version, computing it once per (version, key). A version change drops
// all entries for the previous content.
func (e *Engine) memoized(key memoKey, compute func() []domain.Task) []domain.Task {
	version := e.tasks.Version()

	e.mu.Lock()
	defer e.mu.Unlock()

	if version != e.memoVersion {
		e.memoVersion = version
		e.memo = make(map[memoKey][]domain.Task)
	}
	if cached, ok := e.memo[key]; ok {
		return cached
	}
	result := compute()
	e.memo[key] = result
	return result
}

func filterRange(tasks []domain.Task, startMs, endMs int64) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deadline >= startMs && t.Deadline <= endMs {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCompletion excludes completed tasks when showCompleted is false.
// With showCompleted true the input is returned as-is.
func FilterByCompletion(tasks []domain.Task, showCompleted bool) []domain.Task {
	if showCompleted {
		return tasks
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsComplete {
			out = append(out, t)
		}
	}
	return out
}

// SortByDeadline returns a new slice sorted by deadline. The sort is
// stable: tasks with equal deadlines keep their relative order across any
// number of calls.
func SortByDeadline(tasks []domain.Task, order SortOrder) []domain.Task {
	out := append([]domain.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortDesc {
			return out[i].Deadline > out[j].Deadline
		}
		return out[i].Deadline < out[j].Deadline
	})
	return out
}
