package capacity

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Bare calendar date (no time of day, no timezone)
// =============================================================================

// Date is a calendar date. The value is normalized to UTC midnight, so
// weekday checks and comparisons give the same answer everywhere: a date
// never shifts across a DST change or a month boundary the way a
// locally-interpreted timestamp can.
type Date struct {
	t time.Time
}

// NewDate constructs a Date from year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic and properties
func (d Date) AddDays(n int) Date    { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

func (d Date) IsWorkday() bool {
	wd := d.t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// MaxDate returns the later of two dates.
func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// =============================================================================
// WORK CALENDAR - Working-day counts and week boundaries
// =============================================================================

// FullTimeDayHours is the hours a full-time person works per working day.
const FullTimeDayHours = 8

// WorkDays counts the Monday-Friday days in [start, end] inclusive.
// Returns 0 when end is before start.
func WorkDays(start, end Date) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkday() {
			days++
		}
	}
	return days
}

// WeekStart returns the Monday on or before the given date. Sunday belongs
// to the week that started six days earlier.
func WeekStart(d Date) Date {
	diff := int(time.Monday) - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		diff = -6
	}
	return d.AddDays(diff)
}

// WeekEnd returns the Sunday ending the week containing the given date.
func WeekEnd(d Date) Date {
	return WeekStart(d).AddDays(6)
}

// AvailableHours computes the plan-derived working hours for a number of
// working days at an allocation percentage:
//
//	workDays x (percent / 100) x FullTimeDayHours
func AvailableHours(allocationPercent, workDays int) decimal.Decimal {
	return decimal.NewFromInt(int64(workDays)).
		Mul(decimal.NewFromInt(int64(allocationPercent))).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(FullTimeDayHours))
}
