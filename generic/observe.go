/*
observe.go - Substitution policies for holidays falling on non-working days

PURPOSE:
  A Policy moves a holiday's observed day when it falls on a given weekday,
  e.g. "if Sunday, observe Monday". Providers record the observed day as a
  separate OBSERVANCE entry pointing back to the original key.

SHIFTS:
  A policy is an ordered list of shifts. The first shift whose weekday
  matches the date wins:

    generic.NewPolicy(
        generic.Shift{On: time.Saturday, Days: 2}, // Saturday -> Monday
        generic.Shift{On: time.Sunday, Days: 1},   // Sunday -> Monday
    )

IDEMPOTENCE:
  NewPolicy rejects a shift whose target weekday is itself shifted by the
  policy, so Observe(Observe(d, p), p) == Observe(d, p) for every date.

SEE ALSO:
  - provider.go: Creates substitute entries
  - rules.go: Moved() applies a policy in place
*/
package generic

import (
	"fmt"
	"strings"
	"time"
)

// Shift moves a date that falls on weekday On by Days days.
type Shift struct {
	On   time.Weekday
	Days int
}

func (s Shift) target() time.Weekday {
	return time.Weekday(((int(s.On)+s.Days)%7 + 7) % 7)
}

// Policy is an ordered, first-match-wins list of shifts. The zero value
// substitutes nothing.
type Policy struct {
	shifts []Shift
}

// NewPolicy validates shifts and builds a policy.
func NewPolicy(shifts ...Shift) (Policy, error) {
	sources := make(map[time.Weekday]bool, len(shifts))
	for _, s := range shifts {
		if s.On < time.Sunday || s.On > time.Saturday {
			return Policy{}, fmt.Errorf("%w: weekday %d", ErrInvalidPolicy, int(s.On))
		}
		if s.Days == 0 || s.Days <= -7 || s.Days >= 7 {
			return Policy{}, fmt.Errorf("%w: %s shifted by %d days", ErrInvalidPolicy, s.On, s.Days)
		}
		sources[s.On] = true
	}
	for _, s := range shifts {
		if sources[s.target()] {
			return Policy{}, fmt.Errorf("%w: %s moves onto %s, which is itself shifted", ErrInvalidPolicy, s.On, s.target())
		}
	}
	copied := make([]Shift, len(shifts))
	copy(copied, shifts)
	return Policy{shifts: copied}, nil
}

// MustPolicy is NewPolicy that panics. Use for package-level policies.
func MustPolicy(shifts ...Shift) Policy {
	p, err := NewPolicy(shifts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Compound concatenates policies; earlier policies take precedence.
func Compound(policies ...Policy) (Policy, error) {
	var shifts []Shift
	for _, p := range policies {
		shifts = append(shifts, p.shifts...)
	}
	return NewPolicy(shifts...)
}

// MustCompound is Compound that panics.
func MustCompound(policies ...Policy) Policy {
	p, err := Compound(policies...)
	if err != nil {
		panic(err)
	}
	return p
}

// Common policies
var (
	NoSubstitution   = Policy{}
	SundayToMonday   = MustPolicy(Shift{On: time.Sunday, Days: 1})
	SaturdayToMonday = MustPolicy(Shift{On: time.Saturday, Days: 2})
	SaturdayToFriday = MustPolicy(Shift{On: time.Saturday, Days: -1})
	WeekendToMonday  = MustCompound(SaturdayToMonday, SundayToMonday)
	NearestWeekday   = MustCompound(SaturdayToFriday, SundayToMonday)

	// WeekendPlusTwo pushes both weekend days two days later. Used for pairs
	// of consecutive holidays (Christmas and St Stephen's/Boxing Day) so the
	// two substitutes never collide.
	WeekendPlusTwo = MustPolicy(Shift{On: time.Saturday, Days: 2}, Shift{On: time.Sunday, Days: 2})
)

// IsZero reports whether the policy never substitutes.
func (p Policy) IsZero() bool { return len(p.shifts) == 0 }

// Shifts returns a copy of the policy's shifts.
func (p Policy) Shifts() []Shift {
	out := make([]Shift, len(p.shifts))
	copy(out, p.shifts)
	return out
}

func (p Policy) match(d TimePoint) (Shift, bool) {
	wd := d.Weekday()
	for _, s := range p.shifts {
		if s.On == wd {
			return s, true
		}
	}
	return Shift{}, false
}

// Applies reports whether the policy would move d.
func (p Policy) Applies(d TimePoint) bool {
	_, ok := p.match(d)
	return ok
}

// Observe returns the observed day for d; unmatched days are returned as is.
func (p Policy) Observe(d TimePoint) TimePoint {
	if s, ok := p.match(d); ok {
		return d.AddDays(s.Days)
	}
	return d
}

func (p Policy) String() string {
	if p.IsZero() {
		return "none"
	}
	parts := make([]string, 0, len(p.shifts))
	for _, s := range p.shifts {
		parts = append(parts, fmt.Sprintf("%s%+d", s.On, s.Days))
	}
	return strings.Join(parts, ",")
}

// Observe applies policy to date.
func Observe(date TimePoint, policy Policy) TimePoint {
	return policy.Observe(date)
}
