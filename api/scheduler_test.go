package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holiday-engine/generic"
	"github.com/warp/holiday-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestHandler(t *testing.T, now time.Time) *Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return now }
	return h
}

var midsummer2024 = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// =============================================================================
// SCHEDULER
// =============================================================================

func TestRunNow_CreatesMissingSnapshots(t *testing.T) {
	// GIVEN: Two providers and an empty store in June 2024
	// WHEN: The scheduler runs twice
	// THEN: The first run saves 2024 and 2025 for both, the second saves nothing

	ctx := context.Background()
	h := newTestHandler(t, midsummer2024)
	s := NewSnapshotScheduler(h, []string{"Ireland", "Japan"})

	assert.Equal(t, 4, s.RunNow(ctx))
	assert.Equal(t, 0, s.RunNow(ctx))

	snaps, err := h.Store.ListSnapshots(ctx, "")
	require.NoError(t, err)
	require.Len(t, snaps, 4)
	assert.Equal(t, "Ireland", snaps[0].Identifier)
	assert.Equal(t, 2024, snaps[0].Year)
	assert.Equal(t, 2025, snaps[1].Year)
	assert.Equal(t, "Japan", snaps[2].Identifier)
}

func TestRunNow_KeepsExistingSnapshots(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, midsummer2024)

	existing, err := h.snapshot(ctx, "Ireland", 2024)
	require.NoError(t, err)

	s := NewSnapshotScheduler(h, []string{"Ireland"})
	assert.Equal(t, 1, s.RunNow(ctx), "only 2025 was missing")

	loaded, err := h.Store.LoadSnapshot(ctx, "Ireland", 2024)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, loaded.ID)
}

func TestRunNow_FailuresDontStopOthers(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, midsummer2024)
	s := NewSnapshotScheduler(h, []string{"Atlantis", "Netherlands"})
	s.YearsAhead = 0

	assert.Equal(t, 1, s.RunNow(ctx))

	_, err := h.Store.LoadSnapshot(ctx, "Netherlands", 2024)
	assert.NoError(t, err)
	_, err = h.Store.LoadSnapshot(ctx, "Atlantis", 2024)
	assert.ErrorIs(t, err, generic.ErrSnapshotNotFound)
}

func TestScheduler_StartStop(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(t, midsummer2024)
	s := NewSnapshotScheduler(h, []string{"Germany"})
	s.CheckInterval = 10 * time.Millisecond

	s.Start()
	s.Start() // second start is a no-op
	require.Eventually(t, func() bool {
		snaps, err := h.Store.ListSnapshots(ctx, "Germany")
		return err == nil && len(snaps) == 2
	}, 2*time.Second, 10*time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestScheduler_DisabledWithoutProviders(t *testing.T) {
	h := newTestHandler(t, midsummer2024)
	s := NewSnapshotScheduler(h, nil)

	s.Start()
	s.Stop()

	snaps, err := h.Store.ListSnapshots(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, snaps)
}
