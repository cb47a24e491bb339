package generic

import "time"

// =============================================================================
// PERIOD - Date range used by the Between filter
// =============================================================================

// Period is a range of days. Inclusive controls whether Start and End
// themselves belong to the period.
//
// Examples:
//   - Calendar year 2025: {Jan 1, Dec 31, inclusive}
//   - Strictly between two holidays: {Apr 29, May 3, exclusive}
type Period struct {
	Start     TimePoint
	End       TimePoint
	Inclusive bool
}

// Contains returns true if the day lies within the period.
func (p Period) Contains(t TimePoint) bool {
	if p.Inclusive {
		return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
	}
	return t.After(p.Start) && t.Before(p.End)
}

// Valid reports whether End is not before Start.
func (p Period) Valid() bool {
	return !p.End.Before(p.Start)
}

// Days returns all days in [Start, End] honoring Inclusive.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		if p.Contains(current) {
			days = append(days, current)
		}
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	if p.Inclusive {
		return "[" + p.Start.String() + ", " + p.End.String() + "]"
	}
	return "(" + p.Start.String() + ", " + p.End.String() + ")"
}

// YearPeriod covers a full calendar year in loc.
func YearPeriod(year int, loc *time.Location) Period {
	return Period{Start: StartOfYear(year, loc), End: EndOfYear(year, loc), Inclusive: true}
}
