package generic

import (
	"time"
)

// =============================================================================
// TIME POINT - A calendar day in a provider's location
// =============================================================================

// Year bounds every date rule accepts.
const (
	MinYear = 1
	MaxYear = 9999
)

// TimePoint is a calendar day. Time always holds midnight in the location the
// day was computed for; comparisons look at the calendar day only.
type TimePoint struct {
	Time time.Time
}

// NewTimePoint builds a day without validation (time.Date normalizes overflow).
func NewTimePoint(year int, month time.Month, day int, loc *time.Location) TimePoint {
	if loc == nil {
		loc = time.UTC
	}
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// Date builds a day and fails with InvalidDateError if it does not exist.
func Date(year int, month time.Month, day int, loc *time.Location) (TimePoint, error) {
	if err := ValidateYear(year); err != nil {
		return TimePoint{}, err
	}
	if month < time.January || month > time.December {
		return TimePoint{}, &InvalidDateError{Year: year, Month: month, Day: day, Reason: "month out of range"}
	}
	tp := NewTimePoint(year, month, day, loc)
	if tp.Time.Month() != month || tp.Time.Day() != day {
		return TimePoint{}, &InvalidDateError{Year: year, Month: month, Day: day, Reason: "day does not exist in month"}
	}
	return tp, nil
}

// FromTime truncates t to its calendar day in loc.
func FromTime(t time.Time, loc *time.Location) TimePoint {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.In(loc).Date()
	return NewTimePoint(y, m, d, loc)
}

// ValidateYear checks the range every rule supports.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return &InvalidYearError{Year: year}
	}
	return nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.ordinal() < other.ordinal() }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.ordinal() == other.ordinal() }
func (tp TimePoint) After(other TimePoint) bool         { return tp.ordinal() > other.ordinal() }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// ordinal orders days independently of their location.
func (tp TimePoint) ordinal() int {
	y, m, d := tp.Time.Date()
	return y*10000 + int(m)*100 + d
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }
func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (tp TimePoint) String() string {
	return tp.Time.Format(time.DateOnly)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func StartOfYear(year int, loc *time.Location) TimePoint {
	return NewTimePoint(year, time.January, 1, loc)
}

func EndOfYear(year int, loc *time.Location) TimePoint {
	return NewTimePoint(year, time.December, 31, loc)
}

func EndOfMonth(year int, month time.Month, loc *time.Location) TimePoint {
	return NewTimePoint(year, month+1, 0, loc)
}
