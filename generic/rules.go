/*
rules.go - Date rules: pure functions from a year to a calendar day

PURPOSE:
  A DateRule computes the day a holiday falls on in a given year. Rules hold
  no state and always return the same day for the same (year, location).

RULE TYPES:
  Fixed             - Same month/day every year (Christmas)
  FixedLeapFallback - Feb 29 falls back to Feb 28 on common years
  NthWeekday        - 2nd Monday of January, last Monday of May
  WeekdayBefore     - Last Wednesday before November 23
  Easter            - Easter Sunday plus a signed offset
  Equinox           - Astronomical equinox/solstice (see equinox.go)

COMBINATORS:
  Switch - Picks a rule per historical era (a holiday that changed date)
  Moved  - Moves the day by a substitution policy, without a separate entry
  RuleFunc - Adapts a plain function for one-off algorithms

EXAMPLE:
  comingOfAge := generic.Switch(
      generic.Era{From: 1948, Rule: generic.Fixed(time.January, 15)},
      generic.Era{From: 2000, Rule: generic.NthWeekday(time.January, time.Monday, 2)},
  )
  day, err := comingOfAge.Date(2031, tokyo) // 2031-01-13

SEE ALSO:
  - observe.go: Substitution policies used by Moved
  - blueprint.go: Definitions that attach rules to holiday keys
*/
package generic

import (
	"fmt"
	"sort"
	"time"
)

// DateRule computes the day of a holiday in a year.
type DateRule interface {
	Date(year int, loc *time.Location) (TimePoint, error)
}

// RuleFunc adapts a function to the DateRule interface.
type RuleFunc func(year int, loc *time.Location) (TimePoint, error)

func (f RuleFunc) Date(year int, loc *time.Location) (TimePoint, error) {
	if err := ValidateYear(year); err != nil {
		return TimePoint{}, err
	}
	return f(year, loc)
}

// =============================================================================
// FIXED DATES
// =============================================================================

type fixedRule struct {
	month        time.Month
	day          int
	leapFallback bool
}

// Fixed returns the same month/day every year. Feb 29 fails on common years.
func Fixed(month time.Month, day int) DateRule {
	return fixedRule{month: month, day: day}
}

// FixedLeapFallback is Fixed, except Feb 29 becomes Feb 28 on common years.
func FixedLeapFallback(month time.Month, day int) DateRule {
	return fixedRule{month: month, day: day, leapFallback: true}
}

func (r fixedRule) Date(year int, loc *time.Location) (TimePoint, error) {
	if r.leapFallback && r.month == time.February && r.day == 29 && !IsLeapYear(year) {
		return Date(year, time.February, 28, loc)
	}
	return Date(year, r.month, r.day, loc)
}

func (r fixedRule) String() string {
	return fmt.Sprintf("%s %d", r.month, r.day)
}

// IsLeapYear reports whether year has a Feb 29 in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// =============================================================================
// WEEKDAY RULES
// =============================================================================

type nthWeekdayRule struct {
	month   time.Month
	weekday time.Weekday
	n       int
}

// NthWeekday returns the nth weekday of a month. Positive n counts from the
// start of the month (1 = first), negative n from the end (-1 = last).
func NthWeekday(month time.Month, weekday time.Weekday, n int) DateRule {
	return nthWeekdayRule{month: month, weekday: weekday, n: n}
}

func (r nthWeekdayRule) Date(year int, loc *time.Location) (TimePoint, error) {
	if err := ValidateYear(year); err != nil {
		return TimePoint{}, err
	}
	if r.n == 0 || r.n > 5 || r.n < -5 {
		return TimePoint{}, &InvalidDateError{Year: year, Month: r.month, Reason: fmt.Sprintf("occurrence %d of %s", r.n, r.weekday)}
	}

	var target TimePoint
	if r.n > 0 {
		first := NewTimePoint(year, r.month, 1, loc)
		offset := (int(r.weekday) - int(first.Weekday()) + 7) % 7
		target = first.AddDays(offset + (r.n-1)*7)
	} else {
		last := EndOfMonth(year, r.month, loc)
		offset := (int(last.Weekday()) - int(r.weekday) + 7) % 7
		target = last.AddDays(-offset + (r.n+1)*7)
	}

	if target.Month() != r.month || target.Year() != year {
		return TimePoint{}, &InvalidDateError{Year: year, Month: r.month, Reason: fmt.Sprintf("no occurrence %d of %s", r.n, r.weekday)}
	}
	return target, nil
}

type weekdayBeforeRule struct {
	month   time.Month
	day     int
	weekday time.Weekday
}

// WeekdayBefore returns the last given weekday strictly before month/day.
func WeekdayBefore(month time.Month, day int, weekday time.Weekday) DateRule {
	return weekdayBeforeRule{month: month, day: day, weekday: weekday}
}

func (r weekdayBeforeRule) Date(year int, loc *time.Location) (TimePoint, error) {
	anchor, err := Date(year, r.month, r.day, loc)
	if err != nil {
		return TimePoint{}, err
	}
	back := (int(anchor.Weekday()) - int(r.weekday) + 7) % 7
	if back == 0 {
		back = 7
	}
	return anchor.AddDays(-back), nil
}

// =============================================================================
// EASTER
// =============================================================================

type easterRule struct {
	offset int
}

// Easter returns Easter Sunday shifted by offset days
// (Good Friday -2, Ascension +39, Pentecost +49).
func Easter(offset int) DateRule {
	return easterRule{offset: offset}
}

func (r easterRule) Date(year int, loc *time.Location) (TimePoint, error) {
	easter, err := EasterSunday(year, loc)
	if err != nil {
		return TimePoint{}, err
	}
	return easter.AddDays(r.offset), nil
}

// EasterSunday computes Gregorian Easter Sunday (Meeus/Jones/Butcher).
func EasterSunday(year int, loc *time.Location) (TimePoint, error) {
	if err := ValidateYear(year); err != nil {
		return TimePoint{}, err
	}

	// Golden number, century and corrections
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return NewTimePoint(year, time.Month(month), day, loc), nil
}

// =============================================================================
// COMBINATORS
// =============================================================================

// Era applies Rule from year From onward, until the next era starts.
type Era struct {
	From int
	Rule DateRule
}

type switchRule struct {
	eras []Era
}

// Switch selects the rule of the latest era whose From is <= year.
// Years before the first era fail with InvalidDateError; pair Switch with an
// Established year to keep them out of range.
func Switch(eras ...Era) DateRule {
	sorted := make([]Era, len(eras))
	copy(sorted, eras)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
	return switchRule{eras: sorted}
}

func (r switchRule) Date(year int, loc *time.Location) (TimePoint, error) {
	if err := ValidateYear(year); err != nil {
		return TimePoint{}, err
	}
	for i := len(r.eras) - 1; i >= 0; i-- {
		if r.eras[i].From <= year {
			return r.eras[i].Rule.Date(year, loc)
		}
	}
	return TimePoint{}, &InvalidDateError{Year: year, Reason: "no rule defined for year"}
}

type movedRule struct {
	rule   DateRule
	policy Policy
}

// Moved shifts the computed day by policy in place. Unlike a substitution,
// the holiday itself moves and no extra entry is produced.
func Moved(rule DateRule, policy Policy) DateRule {
	return movedRule{rule: rule, policy: policy}
}

func (r movedRule) Date(year int, loc *time.Location) (TimePoint, error) {
	tp, err := r.rule.Date(year, loc)
	if err != nil {
		return TimePoint{}, err
	}
	return r.policy.Observe(tp), nil
}
