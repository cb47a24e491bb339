package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// SUBSTITUTION POLICIES
// =============================================================================

func TestObserve_SundayToMonday(t *testing.T) {
	// GIVEN: A holiday on Sunday March 17, 2019
	// WHEN: Observed with "if Sunday, observe Monday"
	// THEN: Observed on Monday March 18

	sunday := day(2019, time.March, 17)
	observed := generic.Observe(sunday, generic.SundayToMonday)
	assert.Equal(t, "2019-03-18", observed.String())
	assert.True(t, generic.SundayToMonday.Applies(sunday))

	// Saturdays are left alone by this policy
	saturday := day(2018, time.March, 17)
	assert.Equal(t, saturday.String(), generic.Observe(saturday, generic.SundayToMonday).String())
	assert.False(t, generic.SundayToMonday.Applies(saturday))
}

func TestObserve_CommonPolicies(t *testing.T) {
	saturday := day(2021, time.December, 25)
	sunday := day(2021, time.December, 26)
	weekday := day(2021, time.December, 24)

	tests := []struct {
		name   string
		policy generic.Policy
		in     generic.TimePoint
		want   string
	}{
		{"weekend to monday (sat)", generic.WeekendToMonday, saturday, "2021-12-27"},
		{"weekend to monday (sun)", generic.WeekendToMonday, sunday, "2021-12-27"},
		{"nearest weekday (sat)", generic.NearestWeekday, saturday, "2021-12-24"},
		{"nearest weekday (sun)", generic.NearestWeekday, sunday, "2021-12-27"},
		{"plus two (sat)", generic.WeekendPlusTwo, saturday, "2021-12-27"},
		{"plus two (sun)", generic.WeekendPlusTwo, sunday, "2021-12-28"},
		{"saturday to friday", generic.SaturdayToFriday, saturday, "2021-12-24"},
		{"no substitution", generic.NoSubstitution, sunday, "2021-12-26"},
		{"weekday untouched", generic.WeekendToMonday, weekday, "2021-12-24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Observe(tt.in).String())
		})
	}
}

func TestObserve_IsIdempotent(t *testing.T) {
	// Observe(Observe(d)) == Observe(d) for every day of a year and every
	// built-in policy
	policies := []generic.Policy{
		generic.SundayToMonday, generic.SaturdayToMonday, generic.SaturdayToFriday,
		generic.WeekendToMonday, generic.NearestWeekday, generic.WeekendPlusTwo,
	}
	for _, p := range policies {
		for _, d := range generic.YearPeriod(2024, time.UTC).Days() {
			once := p.Observe(d)
			assert.True(t, once.Equal(p.Observe(once)), "%s on %s", p, d)
		}
	}
}

func TestNewPolicy_RejectsNonIdempotentShifts(t *testing.T) {
	// Saturday -> Sunday while Sunday is itself shifted would move twice
	_, err := generic.NewPolicy(
		generic.Shift{On: time.Saturday, Days: 1},
		generic.Shift{On: time.Sunday, Days: 1},
	)
	assert.ErrorIs(t, err, generic.ErrInvalidPolicy)
}

func TestNewPolicy_RejectsBadShifts(t *testing.T) {
	_, err := generic.NewPolicy(generic.Shift{On: time.Sunday, Days: 0})
	assert.ErrorIs(t, err, generic.ErrInvalidPolicy)

	_, err = generic.NewPolicy(generic.Shift{On: time.Sunday, Days: 7})
	assert.ErrorIs(t, err, generic.ErrInvalidPolicy)

	_, err = generic.NewPolicy(generic.Shift{On: time.Weekday(9), Days: 1})
	assert.ErrorIs(t, err, generic.ErrInvalidPolicy)
}

func TestCompound_EarlierPolicyWins(t *testing.T) {
	p, err := generic.Compound(generic.SaturdayToFriday, generic.SundayToMonday)
	require.NoError(t, err)
	assert.Len(t, p.Shifts(), 2)
	assert.Equal(t, "Saturday-1,Sunday+1", p.String())

	// Saturday -> Monday combined with Sunday -> Saturday loops
	sundayToSaturday := generic.MustPolicy(generic.Shift{On: time.Sunday, Days: -1})
	_, err = generic.Compound(generic.SaturdayToMonday, sundayToSaturday)
	assert.ErrorIs(t, err, generic.ErrInvalidPolicy)
}

func TestPolicy_ZeroValue(t *testing.T) {
	var p generic.Policy
	assert.True(t, p.IsZero())
	assert.Equal(t, "none", p.String())
	assert.False(t, p.Applies(day(2021, time.December, 26)))
}
