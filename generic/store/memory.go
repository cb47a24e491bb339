// Package store provides in-memory implementations of the generic store
// interfaces.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	snapshots map[key]generic.Snapshot
	calendars map[string]generic.CalendarRecord
}

type key struct {
	Identifier string
	Year       int
}

var (
	_ generic.SnapshotStore = (*Memory)(nil)
	_ generic.CalendarStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[key]generic.Snapshot),
		calendars: make(map[string]generic.CalendarRecord),
	}
}

// SaveSnapshot replaces the snapshot for the same identifier and year.
func (m *Memory) SaveSnapshot(_ context.Context, snap generic.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap.Holidays = slices.Clone(snap.Holidays)
	m.snapshots[key{Identifier: snap.Identifier, Year: snap.Year}] = snap
	return nil
}

func (m *Memory) LoadSnapshot(_ context.Context, identifier string, year int) (*generic.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[key{Identifier: identifier, Year: year}]
	if !ok {
		return nil, fmt.Errorf("%s/%d: %w", identifier, year, generic.ErrSnapshotNotFound)
	}
	snap.Holidays = slices.Clone(snap.Holidays)
	return &snap, nil
}

// ListSnapshots returns headers ordered by identifier, then year.
func (m *Memory) ListSnapshots(_ context.Context, identifier string) ([]generic.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []generic.Snapshot
	for k, snap := range m.snapshots {
		if identifier != "" && k.Identifier != identifier {
			continue
		}
		snap.Holidays = nil
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b generic.Snapshot) int {
		return cmp.Or(cmp.Compare(a.Identifier, b.Identifier), cmp.Compare(a.Year, b.Year))
	})
	return out, nil
}

func (m *Memory) DeleteSnapshot(_ context.Context, identifier string, year int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{Identifier: identifier, Year: year}
	if _, ok := m.snapshots[k]; !ok {
		return fmt.Errorf("%s/%d: %w", identifier, year, generic.ErrSnapshotNotFound)
	}
	delete(m.snapshots, k)
	return nil
}

func (m *Memory) IsHoliday(_ context.Context, identifier string, day generic.TimePoint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.snapshots[key{Identifier: identifier, Year: day.Year()}]
	if !ok {
		return false, fmt.Errorf("%s/%d: %w", identifier, day.Year(), generic.ErrSnapshotNotFound)
	}
	if snap.IsDayOff(day) {
		return true, nil
	}
	// A substitute pushed past Dec 31 lives in the previous year's snapshot.
	if prev, ok := m.snapshots[key{Identifier: identifier, Year: day.Year() - 1}]; ok {
		return prev.IsDayOff(day), nil
	}
	return false, nil
}

// =============================================================================
// CALENDARS
// =============================================================================

func (m *Memory) SaveCalendar(_ context.Context, rec generic.CalendarRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if prev, ok := m.calendars[rec.ID]; ok {
		rec.Version = prev.Version + 1
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.Version = 1
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.calendars[rec.ID] = rec
	return nil
}

func (m *Memory) GetCalendar(_ context.Context, id string) (*generic.CalendarRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.calendars[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, generic.ErrCalendarNotFound)
	}
	return &rec, nil
}

// ListCalendars returns calendars ordered by name.
func (m *Memory) ListCalendars(_ context.Context) ([]generic.CalendarRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]generic.CalendarRecord, 0, len(m.calendars))
	for _, rec := range m.calendars {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b generic.CalendarRecord) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (m *Memory) DeleteCalendar(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calendars[id]; !ok {
		return fmt.Errorf("%s: %w", id, generic.ErrCalendarNotFound)
	}
	delete(m.calendars, id)
	return nil
}

// Reset deletes all snapshots and calendars.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.snapshots)
	clear(m.calendars)
	return nil
}
