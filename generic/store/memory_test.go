package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/factory"
	"github.com/warp/holiday-engine/generic"
	"github.com/warp/holiday-engine/generic/store"
)

func snapshotOf(t *testing.T, identifier string, year int) generic.Snapshot {
	t.Helper()
	p, err := factory.Resolve(identifier, year)
	require.NoError(t, err)
	return generic.NewSnapshot(p)
}

func dublin(year int, month time.Month, day int) generic.TimePoint {
	loc, _ := time.LoadLocation("Europe/Dublin")
	return generic.NewTimePoint(year, month, day, loc)
}

// eveSnapshot resolves a one-holiday country whose Dec 31 moves to Monday
// when it falls on a weekend.
func eveSnapshot(t *testing.T, year int) generic.Snapshot {
	t.Helper()
	b := &generic.Blueprint{
		ID:       "Eveland",
		Timezone: "Europe/Dublin",
		Steps: []generic.Definition{
			{Key: "newYearsEve", Rule: generic.Fixed(time.December, 31), Type: generic.TypeNational, Substitution: generic.WeekendToMonday},
		},
	}
	p, err := generic.Resolve(b, year, nil)
	require.NoError(t, err)
	return generic.NewSnapshot(p)
}

func TestMemory_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	snap := snapshotOf(t, "Ireland", 2018)
	require.NoError(t, m.SaveSnapshot(ctx, snap))

	loaded, err := m.LoadSnapshot(ctx, "Ireland", 2018)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, "Europe/Dublin", loaded.Timezone)
	require.Len(t, loaded.Holidays, len(snap.Holidays))
	assert.Equal(t, "newYearsDay", loaded.Holidays[0].Key)

	// Callers cannot mutate the stored copy
	loaded.Holidays[0].Key = "tampered"
	again, err := m.LoadSnapshot(ctx, "Ireland", 2018)
	require.NoError(t, err)
	assert.Equal(t, "newYearsDay", again.Holidays[0].Key)
}

func TestMemory_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	first := snapshotOf(t, "Ireland", 2018)
	require.NoError(t, m.SaveSnapshot(ctx, first))
	second := snapshotOf(t, "Ireland", 2018)
	require.NoError(t, m.SaveSnapshot(ctx, second))

	loaded, err := m.LoadSnapshot(ctx, "Ireland", 2018)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)

	list, err := m.ListSnapshots(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemory_ListSnapshots(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	for _, s := range []generic.Snapshot{
		snapshotOf(t, "Netherlands", 2019),
		snapshotOf(t, "Ireland", 2019),
		snapshotOf(t, "Ireland", 2018),
	} {
		require.NoError(t, m.SaveSnapshot(ctx, s))
	}

	all, err := m.ListSnapshots(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ireland", all[0].Identifier)
	assert.Equal(t, 2018, all[0].Year)
	assert.Equal(t, 2019, all[1].Year)
	assert.Equal(t, "Netherlands", all[2].Identifier)
	assert.Nil(t, all[0].Holidays, "headers only")

	irish, err := m.ListSnapshots(ctx, "Ireland")
	require.NoError(t, err)
	assert.Len(t, irish, 2)
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.LoadSnapshot(ctx, "Ireland", 2018)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)

	err = m.DeleteSnapshot(ctx, "Ireland", 2018)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)

	_, err = m.IsHoliday(ctx, "Ireland", dublin(2018, time.December, 25))
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)

	_, err = m.GetCalendar(ctx, "acme")
	assert.ErrorIs(t, err, generic.ErrCalendarNotFound)

	err = m.DeleteCalendar(ctx, "acme")
	assert.ErrorIs(t, err, generic.ErrCalendarNotFound)
}

func TestMemory_IsHoliday(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2021)))

	tests := []struct {
		name string
		day  generic.TimePoint
		want bool
	}{
		{"national", dublin(2021, time.March, 17), true},
		{"june holiday", dublin(2021, time.June, 7), true},
		{"substitute", dublin(2021, time.December, 27), true},
		{"observance", dublin(2021, time.April, 2), false},
		{"ordinary day", dublin(2021, time.July, 14), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.IsHoliday(ctx, "Ireland", tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemory_IsHoliday_SubstituteFromPreviousYear(t *testing.T) {
	// GIVEN: Snapshots for 2022 (Dec 31 is a Saturday) and 2023
	// WHEN: Checking 2023-01-02
	// THEN: The substitute saved with 2022 makes it a day off

	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveSnapshot(ctx, eveSnapshot(t, 2023)))

	off, err := m.IsHoliday(ctx, "Eveland", dublin(2023, time.January, 2))
	require.NoError(t, err)
	assert.False(t, off, "2022 not saved yet")

	require.NoError(t, m.SaveSnapshot(ctx, eveSnapshot(t, 2022)))

	off, err = m.IsHoliday(ctx, "Eveland", dublin(2023, time.January, 2))
	require.NoError(t, err)
	assert.True(t, off)

	off, err = m.IsHoliday(ctx, "Eveland", dublin(2023, time.January, 3))
	require.NoError(t, err)
	assert.False(t, off)
}

func TestMemory_DeleteSnapshot(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveSnapshot(ctx, snapshotOf(t, "Japan", 2019)))

	require.NoError(t, m.DeleteSnapshot(ctx, "Japan", 2019))
	_, err := m.LoadSnapshot(ctx, "Japan", 2019)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)
}

func TestMemory_CalendarVersions(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	rec := generic.CalendarRecord{ID: "acme", Name: "ACME", Parent: "Ireland", ConfigJSON: `{"id":"acme"}`}
	require.NoError(t, m.SaveCalendar(ctx, rec))
	rec.ConfigJSON = `{"id":"acme","exclude":["octoberHoliday"]}`
	require.NoError(t, m.SaveCalendar(ctx, rec))

	got, err := m.GetCalendar(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Contains(t, got.ConfigJSON, "octoberHoliday")
	assert.False(t, got.CreatedAt.After(got.UpdatedAt))

	require.NoError(t, m.SaveCalendar(ctx, generic.CalendarRecord{ID: "beta", Name: "Beta", ConfigJSON: `{}`}))
	require.NoError(t, m.SaveCalendar(ctx, generic.CalendarRecord{ID: "alpha", Name: "Alpha", ConfigJSON: `{}`}))

	list, err := m.ListCalendars(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"ACME", "Alpha", "Beta"}, []string{list[0].Name, list[1].Name, list[2].Name})

	require.NoError(t, m.DeleteCalendar(ctx, "acme"))
	list, err = m.ListCalendars(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemory_Reset(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2018)))
	require.NoError(t, m.SaveCalendar(ctx, generic.CalendarRecord{ID: "acme", Name: "ACME"}))

	require.NoError(t, m.Reset(ctx))

	snaps, err := m.ListSnapshots(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, snaps)
	cals, err := m.ListCalendars(ctx)
	require.NoError(t, err)
	assert.Empty(t, cals)
}
