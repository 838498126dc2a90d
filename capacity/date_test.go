package capacity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/capacity-engine/capacity"
)

// 2026-03-02 is a Monday; used as a known week anchor throughout.
func monday() capacity.Date { return capacity.NewDate(2026, time.March, 2) }

func TestWorkDays_SingleDay(t *testing.T) {
	// A one-day interval counts 1 on Mon-Fri and 0 on weekends.
	for offset := 0; offset < 7; offset++ {
		d := monday().AddDays(offset)
		want := 0
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			want = 1
		}
		if got := capacity.WorkDays(d, d); got != want {
			t.Errorf("WorkDays(%s, %s) = %d, want %d", d, d, got, want)
		}
	}
}

func TestWorkDays_EndBeforeStart(t *testing.T) {
	if got := capacity.WorkDays(monday(), monday().AddDays(-1)); got != 0 {
		t.Errorf("WorkDays with end before start = %d, want 0", got)
	}
}

func TestWorkDays_FullWeek(t *testing.T) {
	// Monday through Sunday has exactly 5 working days.
	if got := capacity.WorkDays(monday(), monday().AddDays(6)); got != 5 {
		t.Errorf("WorkDays over Mon-Sun = %d, want 5", got)
	}
}

func TestWorkDays_AcrossMonthBoundary(t *testing.T) {
	// Fri 2026-02-27 .. Tue 2026-03-03: Fri, Mon, Tue = 3 working days.
	start := capacity.NewDate(2026, time.February, 27)
	end := capacity.NewDate(2026, time.March, 3)
	if got := capacity.WorkDays(start, end); got != 3 {
		t.Errorf("WorkDays(%s, %s) = %d, want 3", start, end, got)
	}
}

func TestWeekStart_Idempotent(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		d := monday().AddDays(offset)
		ws := capacity.WeekStart(d)
		if !capacity.WeekStart(ws).Equal(ws) {
			t.Errorf("WeekStart(WeekStart(%s)) = %s, want %s", d, capacity.WeekStart(ws), ws)
		}
		if ws.Weekday() != time.Monday {
			t.Errorf("WeekStart(%s) = %s, not a Monday", d, ws)
		}
	}
}

func TestWeekStart_SundayBelongsToPriorWeek(t *testing.T) {
	sunday := monday().AddDays(6)
	if got := capacity.WeekStart(sunday); !got.Equal(monday()) {
		t.Errorf("WeekStart(%s) = %s, want %s", sunday, got, monday())
	}
}

func TestWeekEnd_SixDaysAfterWeekStart(t *testing.T) {
	for offset := -3; offset <= 10; offset++ {
		d := monday().AddDays(offset)
		ws, we := capacity.WeekStart(d), capacity.WeekEnd(d)
		if !we.Equal(ws.AddDays(6)) {
			t.Errorf("WeekEnd(%s) = %s, want %s", d, we, ws.AddDays(6))
		}
	}
}

func TestAvailableHours(t *testing.T) {
	tests := []struct {
		percent  int
		workDays int
		want     string
	}{
		{100, 5, "40"},
		{50, 5, "20"},
		{100, 0, "0"},
		{0, 5, "0"},
		{150, 4, "48"},
		{75, 3, "18"},
	}

	for _, tt := range tests {
		got := capacity.AvailableHours(tt.percent, tt.workDays)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("AvailableHours(%d, %d) = %s, want %s", tt.percent, tt.workDays, got, tt.want)
		}
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := capacity.ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-03-02" {
		t.Errorf("round-trip = %s, want 2026-03-02", d)
	}

	if _, err := capacity.ParseDate("03/02/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
