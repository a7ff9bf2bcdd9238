package view

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 13, 15, 42, 7, 0, time.UTC)
	start, end := DayBounds(now)

	wantStart := time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC).UnixMilli()
	wantEnd := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC).UnixMilli() - 1

	if start != wantStart {
		t.Errorf("start = %d, want %d", start, wantStart)
	}
	if end != wantEnd {
		t.Errorf("end = %d, want %d", end, wantEnd)
	}
}

func TestWeekBounds(t *testing.T) {
	t.Parallel()

	// 2024-03-13 is a Wednesday.
	now := time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		weekStart time.Weekday
		wantFrom  time.Time
	}{
		{
			name:      "monday start",
			weekStart: time.Monday,
			wantFrom:  time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday start",
			weekStart: time.Sunday,
			wantFrom:  time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week start on today",
			weekStart: time.Wednesday,
			wantFrom:  time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "week start tomorrow wraps back",
			weekStart: time.Thursday,
			wantFrom:  time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end := WeekBounds(now, tt.weekStart)
			if start != tt.wantFrom.UnixMilli() {
				t.Errorf("start = %d, want %d", start, tt.wantFrom.UnixMilli())
			}
			wantEnd := tt.wantFrom.AddDate(0, 0, 7).UnixMilli() - 1
			if end != wantEnd {
				t.Errorf("end = %d, want %d", end, wantEnd)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	start, end := MonthBounds(now)

	wantStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	// 2024 is a leap year.
	wantEnd := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli() - 1

	if start != wantStart {
		t.Errorf("start = %d, want %d", start, wantStart)
	}
	if end != wantEnd {
		t.Errorf("end = %d, want %d", end, wantEnd)
	}
}
