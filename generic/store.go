/*
store.go - Persistence interfaces for resolved years and custom calendars

PURPOSE:
  Resolution is pure and cheap, but some callers need a record of what a
  provider produced: payroll that must keep paying the holidays it
  announced, or audits asking what the calendar said on a given day. A
  Snapshot freezes one provider year; the store keeps it independent of
  later definition changes.

KEY INTERFACES:
  SnapshotStore: Saved provider years, and day lookups against them
  CalendarStore: Custom calendar JSON definitions (see factory/calendar.go)

SNAPSHOT SEMANTICS:
  One snapshot per (identifier, year). Saving again replaces the previous
  snapshot atomically: readers see either the old or the new holidays,
  never a mix.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for tests and development

EXAMPLE:
  p, _ := factory.Resolve("Ireland", 2018)
  err := store.SaveSnapshot(ctx, generic.NewSnapshot(p))
  off, err := store.IsHoliday(ctx, "Ireland", day)

SEE ALSO:
  - provider.go: Produces the holidays a snapshot captures
  - api/handlers.go: HTTP access to both stores
*/
package generic

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Snapshot is the persisted result of resolving a provider for one year.
type Snapshot struct {
	ID         string
	Identifier string
	Year       int
	Timezone   string
	Holidays   []Holiday
	CreatedAt  time.Time
}

// NewSnapshot captures every holiday of p in registry order.
func NewSnapshot(p *Provider) Snapshot {
	return Snapshot{
		ID:         uuid.NewString(),
		Identifier: p.ID(),
		Year:       p.Year(),
		Timezone:   p.Location().String(),
		Holidays:   p.Registry().Holidays(),
		CreatedAt:  time.Now().UTC(),
	}
}

// IsDayOff reports whether any holiday of the snapshot makes day a day off.
func (s Snapshot) IsDayOff(day TimePoint) bool {
	for _, h := range s.Holidays {
		if h.Date.Equal(day) && isDayOff(h) {
			return true
		}
	}
	return false
}

// SnapshotStore persists snapshots.
type SnapshotStore interface {
	// SaveSnapshot stores snap, replacing any snapshot for the same
	// identifier and year.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// LoadSnapshot returns the snapshot for identifier and year, or an error
	// wrapping ErrSnapshotNotFound.
	LoadSnapshot(ctx context.Context, identifier string, year int) (*Snapshot, error)

	// ListSnapshots returns snapshot headers (without holidays) for
	// identifier, or for all identifiers when it is empty.
	ListSnapshots(ctx context.Context, identifier string) ([]Snapshot, error)

	// DeleteSnapshot removes a snapshot. Deleting a missing snapshot returns
	// an error wrapping ErrSnapshotNotFound.
	DeleteSnapshot(ctx context.Context, identifier string, year int) error

	// IsHoliday reports whether day is a day off according to the saved
	// snapshot of its year. Missing snapshots return ErrSnapshotNotFound.
	IsHoliday(ctx context.Context, identifier string, day TimePoint) (bool, error)
}

// =============================================================================
// CUSTOM CALENDARS
// =============================================================================

// CalendarRecord is a stored custom calendar with its JSON definition.
type CalendarRecord struct {
	ID         string
	Name       string
	Parent     string
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CalendarStore persists custom calendar definitions. Saving an existing ID
// replaces its definition and bumps Version.
type CalendarStore interface {
	SaveCalendar(ctx context.Context, rec CalendarRecord) error
	GetCalendar(ctx context.Context, id string) (*CalendarRecord, error)
	ListCalendars(ctx context.Context) ([]CalendarRecord, error)
	DeleteCalendar(ctx context.Context, id string) error
}
