package view

import (
	"time"
)

// Period bounds are inclusive [start, end] in epoch milliseconds, at the
// store's millisecond resolution: end is the last representable instant of
// the period, so a deadline at end+1ms falls outside it.

// DayBounds returns the bounds of the calendar day containing now, in
// now's location.
func DayBounds(now time.Time) (startMs, endMs int64) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli() - 1
}

// WeekBounds returns the bounds of the week containing now, where weeks
// begin on weekStart. The week-start day is a locale convention, so it is
// a parameter rather than a constant.
func WeekBounds(now time.Time, weekStart time.Weekday) (startMs, endMs int64) {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	back := (int(now.Weekday()) - int(weekStart) + 7) % 7
	start := day.AddDate(0, 0, -back)
	return start.UnixMilli(), start.AddDate(0, 0, 7).UnixMilli() - 1
}

// MonthBounds returns the bounds of the calendar month containing now.
func MonthBounds(now time.Time) (startMs, endMs int64) {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	return start.UnixMilli(), start.AddDate(0, 1, 0).UnixMilli() - 1
}
