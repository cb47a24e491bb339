/*
scheduler.go - Automated snapshot scheduler

PURPOSE:
  Keeps snapshots of the configured providers for the current and the
  following year, so published calendars exist before the year starts and
  survive later changes to holiday definitions.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Skips provider years that already have a snapshot
  - Logs each created snapshot; failures don't stop the other providers

CONFIGURATION:
  - Identifiers:   Providers to keep snapshots for
  - CheckInterval: How often to check (default: 1 hour)
  - YearsAhead:    Future years to cover besides the current one (default: 1)

USAGE:
  scheduler := NewSnapshotScheduler(handler, []string{"Ireland", "Japan"})
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: CreateSnapshot endpoint (manual snapshot)
  - generic/store.go: SnapshotStore
*/
package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/holiday-engine/generic"
)

// SnapshotScheduler creates missing snapshots on a timer.
type SnapshotScheduler struct {
	Handler       *Handler
	Identifiers   []string
	CheckInterval time.Duration
	YearsAhead    int

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSnapshotScheduler creates a new scheduler.
func NewSnapshotScheduler(handler *Handler, identifiers []string) *SnapshotScheduler {
	return &SnapshotScheduler{
		Handler:       handler,
		Identifiers:   identifiers,
		CheckInterval: 1 * time.Hour,
		YearsAhead:    1,
	}
}

// Start begins the scheduler. A scheduler without identifiers does nothing.
func (s *SnapshotScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Identifiers) == 0 {
		s.Handler.Logger.Info("snapshot scheduler disabled, no providers configured")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run()

	s.Handler.Logger.Info("snapshot scheduler started",
		slog.Duration("interval", s.CheckInterval),
		slog.Any("providers", s.Identifiers))
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		s.Handler.Logger.Info("snapshot scheduler stopped")
	}
}

func (s *SnapshotScheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.RunNow(context.Background())

	for {
		select {
		case <-s.ticker.C:
			s.RunNow(context.Background())
		case <-s.stop:
			return
		}
	}
}

// RunNow creates every missing snapshot and returns how many it created.
func (s *SnapshotScheduler) RunNow(ctx context.Context) int {
	current := s.Handler.now().Year()
	created := 0

	for _, id := range s.Identifiers {
		for year := current; year <= current+s.YearsAhead; year++ {
			_, err := s.Handler.Store.LoadSnapshot(ctx, id, year)
			if err == nil {
				continue
			}
			if !errors.Is(err, generic.ErrSnapshotNotFound) {
				s.Handler.Logger.Error("snapshot lookup failed",
					slog.String("provider", id), slog.Int("year", year), slog.String("error", err.Error()))
				continue
			}

			snap, err := s.Handler.snapshot(ctx, id, year)
			if err != nil {
				s.Handler.Logger.Error("snapshot failed",
					slog.String("provider", id), slog.Int("year", year), slog.String("error", err.Error()))
				continue
			}
			created++
			s.Handler.Logger.Info("snapshot created",
				slog.String("provider", id), slog.Int("year", year), slog.Int("holidays", len(snap.Holidays)))
		}
	}
	return created
}
