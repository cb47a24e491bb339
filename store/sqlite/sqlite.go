/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements generic.SnapshotStore and generic.CalendarStore using SQLite.
  The same schema works on PostgreSQL with minor dialect changes.

KEY TABLES:
  snapshots:          One row per (identifier, year)
  snapshot_holidays:  The holidays of a snapshot, in registry order
  calendars:          Custom calendar JSON definitions (versioned)

INDEXES:
  - idx_snapshots_identifier_year: One snapshot per provider year
  - idx_snapshot_holidays_date: Day lookups (IsHoliday hot path)

REPLACEMENT:
  SaveSnapshot deletes the previous snapshot and inserts the new one in a
  single transaction, so readers never observe a partially written year.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./holidays.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/holiday-engine/generic"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ generic.SnapshotStore = (*Store)(nil)
	_ generic.CalendarStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL"
	if dbPath == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Snapshots (one resolved provider year)
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		identifier TEXT NOT NULL,
		year INTEGER NOT NULL,
		timezone TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_snapshots_identifier_year
		ON snapshots(identifier, year);

	-- Holidays of a snapshot
	CREATE TABLE IF NOT EXISTS snapshot_holidays (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		key TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		names_json TEXT NOT NULL,
		locale TEXT NOT NULL,
		established_year INTEGER NOT NULL DEFAULT 0,
		abolished_year INTEGER NOT NULL DEFAULT 0,
		substitutes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (snapshot_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshot_holidays_date
		ON snapshot_holidays(snapshot_id, date);

	-- Custom calendars
	CREATE TABLE IF NOT EXISTS calendars (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent TEXT NOT NULL DEFAULT '',
		config_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT STORE
// =============================================================================

// SaveSnapshot replaces any snapshot for the same identifier and year.
func (s *Store) SaveSnapshot(ctx context.Context, snap generic.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM snapshots WHERE identifier = ? AND year = ?",
		snap.Identifier, snap.Year,
	); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (id, identifier, year, timezone, created_at) VALUES (?, ?, ?, ?, ?)",
		snap.ID, snap.Identifier, snap.Year, snap.Timezone, snap.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_holidays
			(snapshot_id, position, key, date, type, names_json, locale, established_year, abolished_year, substitutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, h := range snap.Holidays {
		names, err := json.Marshal(h.Names)
		if err != nil {
			return fmt.Errorf("failed to encode names of %s: %w", h.Key, err)
		}
		if _, err := stmt.ExecContext(ctx,
			snap.ID, i, h.Key, h.Date.String(), string(h.Type), string(names), h.Locale,
			h.EstablishedYear, h.AbolishedYear, h.Substitutes,
		); err != nil {
			if isUniqueConstraintError(err) {
				return &generic.DuplicateKeyError{Key: h.Key, Year: snap.Year}
			}
			return fmt.Errorf("failed to insert holiday %s: %w", h.Key, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot returns a snapshot with its holidays in registry order.
func (s *Store) LoadSnapshot(ctx context.Context, identifier string, year int) (*generic.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := s.snapshotHeader(ctx, identifier, year)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(snap.Timezone)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: timezone %q: %w", snap.ID, snap.Timezone, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, date, type, names_json, locale, established_year, abolished_year, substitutes
		FROM snapshot_holidays
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snap.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanHoliday(rows, loc)
		if err != nil {
			return nil, err
		}
		snap.Holidays = append(snap.Holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) snapshotHeader(ctx context.Context, identifier string, year int) (*generic.Snapshot, error) {
	var snap generic.Snapshot
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, identifier, year, timezone, created_at FROM snapshots WHERE identifier = ? AND year = ?",
		identifier, year,
	).Scan(&snap.ID, &snap.Identifier, &snap.Year, &snap.Timezone, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%d: %w", identifier, year, generic.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, err
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &snap, nil
}

func scanHoliday(rows *sql.Rows, loc *time.Location) (generic.Holiday, error) {
	var h generic.Holiday
	var date, typ, names string
	if err := rows.Scan(&h.Key, &date, &typ, &names, &h.Locale, &h.EstablishedYear, &h.AbolishedYear, &h.Substitutes); err != nil {
		return generic.Holiday{}, err
	}
	t, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return generic.Holiday{}, fmt.Errorf("holiday %s: %w", h.Key, err)
	}
	h.Date = generic.TimePoint{Time: t}
	h.Type = generic.Type(typ)
	if err := json.Unmarshal([]byte(names), &h.Names); err != nil {
		return generic.Holiday{}, fmt.Errorf("holiday %s: names: %w", h.Key, err)
	}
	return h, nil
}

// ListSnapshots returns snapshot headers ordered by identifier, then year.
func (s *Store) ListSnapshots(ctx context.Context, identifier string) ([]generic.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, identifier, year, timezone, created_at FROM snapshots"
	var args []any
	if identifier != "" {
		query += " WHERE identifier = ?"
		args = append(args, identifier)
	}
	query += " ORDER BY identifier, year"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []generic.Snapshot
	for rows.Next() {
		var snap generic.Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.Identifier, &snap.Year, &snap.Timezone, &createdAt); err != nil {
			return nil, err
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteSnapshot removes a snapshot and its holidays.
func (s *Store) DeleteSnapshot(ctx context.Context, identifier string, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE identifier = ? AND year = ?", identifier, year)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s/%d: %w", identifier, year, generic.ErrSnapshotNotFound)
	}
	return nil
}

// IsHoliday checks the saved snapshot of day's year for a day off. The
// previous year's snapshot is searched too, when present, for substitutes
// pushed past Dec 31.
func (s *Store) IsHoliday(ctx context.Context, identifier string, day generic.TimePoint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.snapshotHeader(ctx, identifier, day.Year()); err != nil {
		return false, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM snapshot_holidays h
		JOIN snapshots s ON s.id = h.snapshot_id
		WHERE s.identifier = ?
		  AND s.year IN (?, ?)
		  AND h.date = ?
		  AND (h.type IN (?, ?) OR h.substitutes != '')
	`, identifier, day.Year(), day.Year()-1, day.String(),
		string(generic.TypeNational), string(generic.TypeBank)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// =============================================================================
// CALENDAR STORE
// =============================================================================

// SaveCalendar upserts a calendar; updates bump its version.
func (s *Store) SaveCalendar(ctx context.Context, rec generic.CalendarRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO calendars (id, name, parent, config_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			parent = excluded.parent,
			config_json = excluded.config_json,
			version = calendars.version + 1,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.Parent, rec.ConfigJSON, now, now)
	return err
}

// GetCalendar retrieves a calendar by ID.
func (s *Store) GetCalendar(ctx context.Context, id string) (*generic.CalendarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec generic.CalendarRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, parent, config_json, version, created_at, updated_at FROM calendars WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Parent, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, generic.ErrCalendarNotFound)
	}
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

// ListCalendars returns all calendars ordered by name.
func (s *Store) ListCalendars(ctx context.Context) ([]generic.CalendarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, parent, config_json, version, created_at, updated_at FROM calendars ORDER BY name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calendars []generic.CalendarRecord
	for rows.Next() {
		var rec generic.CalendarRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Parent, &rec.ConfigJSON, &rec.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		calendars = append(calendars, rec)
	}
	return calendars, rows.Err()
}

// DeleteCalendar removes a calendar.
func (s *Store) DeleteCalendar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calendars WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, generic.ErrCalendarNotFound)
	}
	return nil
}

// Reset deletes all data (for testing/demo purposes).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshot_holidays;
		DELETE FROM snapshots;
		DELETE FROM calendars;
	`)
	return err
}

// Helper functions

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
