package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/factory"
	"github.com/warp/holiday-engine/generic"
	"github.com/warp/holiday-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func snapshotOf(t *testing.T, identifier string, year int) generic.Snapshot {
	t.Helper()
	p, err := factory.Resolve(identifier, year)
	require.NoError(t, err)
	return generic.NewSnapshot(p)
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

// =============================================================================
// SNAPSHOTS
// =============================================================================

func TestSnapshot_RoundTrip(t *testing.T) {
	// GIVEN: Japan 2019, with bridge days and substitutes
	// WHEN: Saving and loading it
	// THEN: Every holiday comes back in registry order, in Tokyo time

	ctx := context.Background()
	store := newTestStore(t)
	snap := snapshotOf(t, "Japan", 2019)
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx, "Japan", 2019)
	require.NoError(t, err)

	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, "Asia/Tokyo", loaded.Timezone)
	assert.WithinDuration(t, snap.CreatedAt, loaded.CreatedAt, time.Second)
	require.Len(t, loaded.Holidays, len(snap.Holidays))

	for i, want := range snap.Holidays {
		got := loaded.Holidays[i]
		assert.Equal(t, want.Key, got.Key)
		assert.True(t, want.Date.Equal(got.Date), "%s: %s != %s", want.Key, want.Date, got.Date)
		assert.Equal(t, "Asia/Tokyo", got.Date.Time.Location().String())
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Names, got.Names)
		assert.Equal(t, want.Substitutes, got.Substitutes)
		assert.Equal(t, want.EstablishedYear, got.EstablishedYear)
	}
}

func TestSnapshot_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := snapshotOf(t, "Ireland", 2018)
	require.NoError(t, store.SaveSnapshot(ctx, first))

	// A trimmed year replaces the first one entirely
	second := snapshotOf(t, "Ireland", 2018)
	second.Holidays = second.Holidays[:2]
	require.NoError(t, store.SaveSnapshot(ctx, second))

	loaded, err := store.LoadSnapshot(ctx, "Ireland", 2018)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
	assert.Len(t, loaded.Holidays, 2)

	list, err := store.ListSnapshots(ctx, "Ireland")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSnapshot_DuplicateKeyRejected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snap := snapshotOf(t, "Ireland", 2018)
	snap.Holidays = append(snap.Holidays, snap.Holidays[0])

	err := store.SaveSnapshot(ctx, snap)
	assert.ErrorIs(t, err, generic.ErrDuplicateKey)

	// The failed save left nothing behind
	_, err = store.LoadSnapshot(ctx, "Ireland", 2018)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)
}

func TestSnapshot_AssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snap := snapshotOf(t, "Chile", 2017)
	snap.ID = ""
	snap.CreatedAt = time.Time{}
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx, "Chile", 2017)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.ID)
	assert.False(t, loaded.CreatedAt.IsZero())
}

func TestListSnapshots(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, s := range []generic.Snapshot{
		snapshotOf(t, "Netherlands", 2019),
		snapshotOf(t, "Ireland", 2019),
		snapshotOf(t, "Ireland", 2018),
	} {
		require.NoError(t, store.SaveSnapshot(ctx, s))
	}

	all, err := store.ListSnapshots(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ireland", all[0].Identifier)
	assert.Equal(t, 2018, all[0].Year)
	assert.Equal(t, 2019, all[1].Year)
	assert.Equal(t, "Netherlands", all[2].Identifier)
	assert.Empty(t, all[0].Holidays)

	none, err := store.ListSnapshots(ctx, "Japan")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2018)))

	require.NoError(t, store.DeleteSnapshot(ctx, "Ireland", 2018))

	_, err := store.LoadSnapshot(ctx, "Ireland", 2018)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)

	err = store.DeleteSnapshot(ctx, "Ireland", 2018)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)

	// Holidays were removed with the snapshot, so a fresh save succeeds
	require.NoError(t, store.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2018)))
}

func TestIsHoliday(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2021)))

	loc, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)

	tests := []struct {
		name string
		day  generic.TimePoint
		want bool
	}{
		{"national", generic.NewTimePoint(2021, time.March, 17, loc), true},
		{"substitute", generic.NewTimePoint(2021, time.December, 27, loc), true},
		{"observance", generic.NewTimePoint(2021, time.April, 2, loc), false},
		{"ordinary day", generic.NewTimePoint(2021, time.July, 14, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.IsHoliday(ctx, "Ireland", tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = store.IsHoliday(ctx, "Ireland", generic.NewTimePoint(2022, time.March, 17, loc))
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)
}

func TestIsHoliday_SubstituteFromPreviousYear(t *testing.T) {
	// GIVEN: Snapshots for 2022 (Dec 31 is a Saturday) and 2023
	// WHEN: Checking 2023-01-02
	// THEN: The substitute saved with 2022 makes it a day off

	ctx := context.Background()
	store := newTestStore(t)
	loc, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)
	jan2 := generic.NewTimePoint(2023, time.January, 2, loc)

	require.NoError(t, store.SaveSnapshot(ctx, eveSnapshot(t, 2023)))
	off, err := store.IsHoliday(ctx, "Eveland", jan2)
	require.NoError(t, err)
	assert.False(t, off, "2022 not saved yet")

	require.NoError(t, store.SaveSnapshot(ctx, eveSnapshot(t, 2022)))
	off, err = store.IsHoliday(ctx, "Eveland", jan2)
	require.NoError(t, err)
	assert.True(t, off)

	// 2023's own substitute lands on 2024-01-01 and needs the 2024 snapshot
	_, err = store.IsHoliday(ctx, "Eveland", generic.NewTimePoint(2024, time.January, 1, loc))
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)
}

// =============================================================================
// CALENDARS
// =============================================================================

func TestCalendar_Versioning(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := generic.CalendarRecord{ID: "acme", Name: "ACME", Parent: "Ireland", ConfigJSON: `{"id":"acme"}`}
	require.NoError(t, store.SaveCalendar(ctx, rec))

	got, err := store.GetCalendar(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "Ireland", got.Parent)

	rec.ConfigJSON = `{"id":"acme","exclude":["octoberHoliday"]}`
	require.NoError(t, store.SaveCalendar(ctx, rec))

	got, err = store.GetCalendar(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, rec.ConfigJSON, got.ConfigJSON)
}

func TestCalendar_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, rec := range []generic.CalendarRecord{
		{ID: "b", Name: "Beta", ConfigJSON: `{}`},
		{ID: "a", Name: "Alpha", ConfigJSON: `{}`},
	} {
		require.NoError(t, store.SaveCalendar(ctx, rec))
	}

	list, err := store.ListCalendars(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)

	require.NoError(t, store.DeleteCalendar(ctx, "a"))
	assert.ErrorIs(t, store.DeleteCalendar(ctx, "a"), generic.ErrCalendarNotFound)

	_, err = store.GetCalendar(ctx, "a")
	assert.ErrorIs(t, err, generic.ErrCalendarNotFound)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveSnapshot(ctx, snapshotOf(t, "Ireland", 2018)))
	require.NoError(t, store.SaveCalendar(ctx, generic.CalendarRecord{ID: "acme", Name: "ACME", ConfigJSON: `{}`}))

	require.NoError(t, store.Reset(ctx))

	snaps, err := store.ListSnapshots(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, snaps)
	cals, err := store.ListCalendars(ctx)
	require.NoError(t, err)
	assert.Empty(t, cals)
}
