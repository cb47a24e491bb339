package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/generic"
)

func planKeys(t *testing.T, b *generic.Blueprint) []string {
	t.Helper()
	plan, err := b.Plan()
	require.NoError(t, err)
	keys := make([]string, 0, len(plan))
	for _, d := range plan {
		keys = append(keys, d.Key)
	}
	return keys
}

func TestBlueprint_RegionDiff(t *testing.T) {
	// GIVEN: A region that excludes one parent key, overrides another and
	//        adds its own
	// THEN: The override keeps the parent's position, the excluded key is
	//       gone and new steps come last

	parent := testCountry()
	region := &generic.Blueprint{
		ID:       "Testland/North",
		Parent:   parent,
		Excludes: []string{"goodFriday"},
		Overrides: []generic.Definition{
			{Key: "mayDay", Rule: generic.Fixed(time.May, 1), Type: generic.TypeBank},
		},
		Steps: []generic.Definition{
			{Key: "stAndrewsDay", Rule: generic.Fixed(time.November, 30), Type: generic.TypeBank},
		},
	}

	assert.Equal(t,
		[]string{"newYearsDay", "mayDay", "pentecostMonday", "christmasDay", "stStephensDay", "stAndrewsDay"},
		planKeys(t, region))

	p := resolve(t, region, 2018)
	may, err := p.WhenIs("mayDay")
	require.NoError(t, err)
	assert.Equal(t, "2018-05-01", may.String(), "region wins over its country")
	assert.False(t, p.Registry().Has("goodFriday"))

	// The parent itself is unchanged
	parentMay, err := resolve(t, parent, 2018).WhenIs("mayDay")
	require.NoError(t, err)
	assert.Equal(t, "2018-05-07", parentMay.String())
}

func TestBlueprint_InheritsFromParent(t *testing.T) {
	region := &generic.Blueprint{ID: "Testland/East", Parent: testCountry()}

	loc, err := region.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Dublin", loc.String())
	assert.Equal(t, "en_IE", region.EffectiveLocale())

	region.Locale = "ga_IE"
	assert.Equal(t, "ga_IE", region.EffectiveLocale())
}

func TestBlueprint_Defaults(t *testing.T) {
	b := &generic.Blueprint{ID: "Bare"}
	loc, err := b.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, generic.DefaultLocale, b.EffectiveLocale())
}

func TestBlueprint_InvalidDiffs(t *testing.T) {
	tests := []struct {
		name   string
		region *generic.Blueprint
		want   error
	}{
		{
			name:   "exclude unknown key",
			region: &generic.Blueprint{ID: "r", Parent: testCountry(), Excludes: []string{"kingsDay"}},
			want:   generic.ErrUnknownKey,
		},
		{
			name: "override unknown key",
			region: &generic.Blueprint{ID: "r", Parent: testCountry(), Overrides: []generic.Definition{
				{Key: "kingsDay", Rule: generic.Fixed(time.April, 27), Type: generic.TypeNational},
			}},
			want: generic.ErrUnknownKey,
		},
		{
			name: "step duplicates parent key",
			region: &generic.Blueprint{ID: "r", Parent: testCountry(), Steps: []generic.Definition{
				{Key: "christmasDay", Rule: generic.Fixed(time.December, 25), Type: generic.TypeNational},
			}},
			want: generic.ErrDuplicateKey,
		},
		{
			name:   "override without parent",
			region: &generic.Blueprint{ID: "r", Excludes: []string{"christmasDay"}},
			want:   generic.ErrInvalidDefinition,
		},
		{
			name: "step without rule",
			region: &generic.Blueprint{ID: "r", Steps: []generic.Definition{
				{Key: "noRule", Type: generic.TypeNational},
			}},
			want: generic.ErrInvalidDefinition,
		},
		{
			name: "unknown type",
			region: &generic.Blueprint{ID: "r", Steps: []generic.Definition{
				{Key: "weird", Rule: generic.Fixed(time.May, 1), Type: "religious"},
			}},
			want: generic.ErrInvalidDefinition,
		},
		{
			name: "abolished before established",
			region: &generic.Blueprint{ID: "r", Steps: []generic.Definition{
				{Key: "odd", Rule: generic.Fixed(time.May, 1), Type: generic.TypeNational, Established: 2000, Abolished: 1990},
			}},
			want: generic.ErrInvalidDefinition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.region.Plan()
			assert.ErrorIs(t, err, tt.want)

			_, err = generic.Resolve(tt.region, 2018, testNames)
			assert.ErrorIs(t, err, tt.want, "resolution fails the same way")
		})
	}
}

func TestBlueprint_DerivationsRunParentFirst(t *testing.T) {
	var order []string
	record := func(name string) generic.Derivation {
		return func(int, []generic.Holiday) ([]generic.Occurrence, error) {
			order = append(order, name)
			return nil, nil
		}
	}
	parent := testCountry()
	parent.Derivations = []generic.Derivation{record("parent")}
	region := &generic.Blueprint{ID: "r", Parent: parent, Derivations: []generic.Derivation{record("region")}}

	resolve(t, region, 2018)
	assert.Equal(t, []string{"parent", "region"}, order)
}

func TestDefinition_ActiveIn(t *testing.T) {
	d := generic.Definition{Established: 1990, Abolished: 2000, Except: []int{1995}}
	assert.False(t, d.ActiveIn(1989))
	assert.True(t, d.ActiveIn(1990))
	assert.False(t, d.ActiveIn(1995))
	assert.True(t, d.ActiveIn(2000))
	assert.False(t, d.ActiveIn(2001))
}
