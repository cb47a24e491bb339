/*
handlers.go - HTTP API handlers for the holiday engine

PURPOSE:
  Exposes provider resolution, custom calendars and snapshots via REST.
  Handles HTTP request/response and JSON serialization, and delegates to
  the factory and the stores.

ENDPOINTS:
  Providers:
    GET    /api/providers                  List built-in identifiers

  Holidays:
    GET    /api/holidays?provider=&year=   A provider year
             &type=       national|official|observance|season|bank|other
             &from=&to=   Restrict to a date range (inclusive)
             &locale=     Name locale (default: server DEFAULT_LOCALE)
             &names=all   Include every translation
    GET    /api/holidays/{key}?provider=&year=
    GET    /api/check?provider=&date=      Is the day off?

  Calendars:
    GET    /api/calendars                  List custom calendars
    POST   /api/calendars                  Create/replace from JSON
    GET    /api/calendars/{id}
    DELETE /api/calendars/{id}
    GET    /api/calendars/{id}/holidays?year=

  Snapshots:
    GET    /api/snapshots?provider=        List (headers only)
    POST   /api/snapshots                  Resolve and save a year
    GET    /api/snapshots/year?provider=&year=
    DELETE /api/snapshots/year?provider=&year=
    GET    /api/snapshots/check?provider=&date=

  Scenarios (demo data, resets the store):
    GET    /api/scenarios
    GET    /api/scenarios/current
    POST   /api/scenarios/load             {"scenario_id": "..."}

  "provider" accepts a built-in identifier or a custom calendar ID.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid year/date, malformed calendar definition
  - 404: Unknown provider, holiday, calendar or snapshot
  - 409: Duplicate holiday key
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/holiday-engine/factory"
	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is the persistence the API needs.
type Store interface {
	generic.SnapshotStore
	generic.CalendarStore
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store           Store
	Providers       *factory.ProviderFactory
	CalendarFactory *factory.CalendarFactory
	DefaultLocale   string
	Logger          *slog.Logger

	now             func() time.Time
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a handler over store using the built-in providers.
func NewHandler(store Store, providers *factory.ProviderFactory, logger *slog.Logger) *Handler {
	if providers == nil {
		providers = factory.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:           store,
		Providers:       providers,
		CalendarFactory: factory.NewCalendarFactory(providers),
		DefaultLocale:   generic.DefaultLocale,
		Logger:          logger,
		now:             time.Now,
	}
}

// resolve resolves a built-in identifier, falling back to a stored custom
// calendar with that ID.
func (h *Handler) resolve(ctx context.Context, identifier string, year int) (*generic.Provider, error) {
	p, err := h.Providers.Resolve(identifier, year)
	if err == nil || !errors.Is(err, generic.ErrProviderNotFound) {
		return p, err
	}

	rec, calErr := h.Store.GetCalendar(ctx, identifier)
	if calErr != nil {
		if errors.Is(calErr, generic.ErrCalendarNotFound) {
			return nil, err
		}
		return nil, calErr
	}
	b, err := h.CalendarFactory.ParseCalendar(rec.ConfigJSON)
	if err != nil {
		return nil, err
	}
	return h.Providers.ResolveBlueprint(b, year)
}

// =============================================================================
// PROVIDER ENDPOINTS
// =============================================================================

// ListProviders returns the built-in identifiers.
// GET /api/providers
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	ids := h.Providers.Identifiers()
	dtos := make([]ProviderDTO, 0, len(ids))
	for _, id := range ids {
		b, err := h.Providers.Blueprint(id)
		if err != nil {
			continue
		}
		dto := ProviderDTO{ID: id, Locale: b.EffectiveLocale()}
		if loc, err := b.Location(); err == nil {
			dto.Timezone = loc.String()
		}
		if b.Parent != nil {
			dto.Parent = b.Parent.ID
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": dtos})
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns a provider year.
// GET /api/holidays?provider=Ireland&year=2018&type=official
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	identifier := q.Get("provider")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "provider is required", nil)
		return
	}
	year, err := h.yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	p, err := h.resolve(r.Context(), identifier, year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve provider", err)
		return
	}

	filter := generic.NewFilter(p.Registry(), func(generic.Holiday) bool { return true })
	if s := q.Get("type"); s != "" {
		t, ok := generic.ParseType(s)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid type", fmt.Errorf("unknown holiday type %q", s))
			return
		}
		filter = generic.ByType(p.Registry(), t)
	}

	holidays := filter.ToSlice()
	if q.Get("from") != "" || q.Get("to") != "" {
		period, err := periodParam(q.Get("from"), q.Get("to"), p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date range", err)
			return
		}
		var inRange []generic.Holiday
		for _, hol := range holidays {
			if period.Contains(hol.Date) {
				inRange = append(inRange, hol)
			}
		}
		holidays = inRange
	}

	writeJSON(w, http.StatusOK, HolidaysResponse{
		Provider: p.ID(),
		Year:     p.Year(),
		Timezone: p.Location().String(),
		Count:    len(holidays),
		Holidays: toHolidayDTOs(holidays, h.localeParam(r), q.Get("names") == "all"),
	})
}

// GetHoliday returns one holiday by key.
// GET /api/holidays/{key}?provider=Japan&year=2019
func (h *Handler) GetHoliday(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	identifier := r.URL.Query().Get("provider")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "provider is required", nil)
		return
	}
	year, err := h.yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	p, err := h.resolve(r.Context(), identifier, year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve provider", err)
		return
	}
	hol, err := p.Holiday(key)
	if err != nil {
		h.writeDomainError(w, r, "Holiday not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTO(hol, h.localeParam(r), true))
}

// CheckDate reports whether a day is off for a provider.
// GET /api/check?provider=UnitedKingdom&date=2022-06-02
func (h *Handler) CheckDate(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("provider")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "provider is required", nil)
		return
	}
	day, err := time.Parse(time.DateOnly, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)", err)
		return
	}

	p, err := h.resolve(r.Context(), identifier, day.Year())
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve provider", err)
		return
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, p.Location())
	onDay := p.On(generic.FromTime(local, p.Location()))
	writeJSON(w, http.StatusOK, CheckResponse{
		Provider:   p.ID(),
		Date:       day.Format(time.DateOnly),
		IsHoliday:  p.IsHoliday(local),
		IsWeekend:  p.IsWeekendDay(local),
		IsWorking:  p.IsWorkingDay(local),
		Holidays:   toHolidayDTOs(onDay, h.localeParam(r), false),
		FromSource: "computed",
	})
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

// ListCalendars returns all custom calendars.
// GET /api/calendars
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListCalendars(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list calendars", err)
		return
	}
	dtos := make([]CalendarDTO, 0, len(records))
	for _, rec := range records {
		dto, err := toCalendarDTO(rec)
		if err != nil {
			h.writeDomainError(w, r, "Stored calendar is corrupt", err)
			return
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, map[string]any{"calendars": dtos})
}

// CreateCalendar validates and stores a custom calendar.
// POST /api/calendars
func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read body", err)
		return
	}

	var cj factory.CalendarJSON
	if err := json.Unmarshal(body, &cj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if _, err := h.Providers.Blueprint(cj.ID); err == nil {
		writeError(w, http.StatusConflict, "Calendar ID clashes with a built-in provider", fmt.Errorf("%q is built in", cj.ID))
		return
	}
	if _, err := h.CalendarFactory.FromJSON(cj); err != nil {
		h.writeDomainError(w, r, "Invalid calendar", err)
		return
	}

	name := cj.Name
	if name == "" {
		name = cj.ID
	}
	rec := generic.CalendarRecord{
		ID:         cj.ID,
		Name:       name,
		Parent:     cj.Parent,
		ConfigJSON: string(body),
	}
	if err := h.Store.SaveCalendar(r.Context(), rec); err != nil {
		h.writeDomainError(w, r, "Failed to save calendar", err)
		return
	}

	saved, err := h.Store.GetCalendar(r.Context(), cj.ID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load calendar", err)
		return
	}
	dto, err := toCalendarDTO(*saved)
	if err != nil {
		h.writeDomainError(w, r, "Stored calendar is corrupt", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// GetCalendar returns a custom calendar.
// GET /api/calendars/{id}
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetCalendar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Calendar not found", err)
		return
	}
	dto, err := toCalendarDTO(*rec)
	if err != nil {
		h.writeDomainError(w, r, "Stored calendar is corrupt", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteCalendar removes a custom calendar.
// DELETE /api/calendars/{id}
func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCalendar(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, "Failed to delete calendar", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCalendarHolidays resolves a custom calendar for a year.
// GET /api/calendars/{id}/holidays?year=2024
func (h *Handler) GetCalendarHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := h.yearParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	rec, err := h.Store.GetCalendar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Calendar not found", err)
		return
	}
	b, err := h.CalendarFactory.ParseCalendar(rec.ConfigJSON)
	if err != nil {
		h.writeDomainError(w, r, "Stored calendar is invalid", err)
		return
	}
	p, err := h.Providers.ResolveBlueprint(b, year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to resolve calendar", err)
		return
	}
	holidays := p.Registry().Holidays()
	writeJSON(w, http.StatusOK, HolidaysResponse{
		Provider: p.ID(),
		Year:     p.Year(),
		Timezone: p.Location().String(),
		Count:    len(holidays),
		Holidays: toHolidayDTOs(holidays, h.localeParam(r), false),
	})
}

func toCalendarDTO(rec generic.CalendarRecord) (CalendarDTO, error) {
	dto := CalendarDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Parent:    rec.Parent,
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &dto.Config); err != nil {
		return CalendarDTO{}, fmt.Errorf("calendar %s: config: %w", rec.ID, err)
	}
	return dto, nil
}

// =============================================================================
// SNAPSHOT ENDPOINTS
// =============================================================================

// ListSnapshots returns snapshot headers.
// GET /api/snapshots?provider=Ireland
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.Store.ListSnapshots(r.Context(), r.URL.Query().Get("provider"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to list snapshots", err)
		return
	}
	dtos := make([]SnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		dtos = append(dtos, toSnapshotDTO(s, ""))
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": dtos})
}

// CreateSnapshot resolves a provider year and saves it.
// POST /api/snapshots {"provider": "Ireland", "year": 2018}
func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if req.Provider == "" {
		writeError(w, http.StatusBadRequest, "provider is required", nil)
		return
	}

	snap, err := h.snapshot(r.Context(), req.Provider, req.Year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to create snapshot", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSnapshotDTO(snap, h.localeParam(r)))
}

// snapshot resolves identifier for year and saves the result.
func (h *Handler) snapshot(ctx context.Context, identifier string, year int) (generic.Snapshot, error) {
	p, err := h.resolve(ctx, identifier, year)
	if err != nil {
		return generic.Snapshot{}, err
	}
	snap := generic.NewSnapshot(p)
	snap.Identifier = identifier
	if err := h.Store.SaveSnapshot(ctx, snap); err != nil {
		return generic.Snapshot{}, err
	}
	return snap, nil
}

// GetSnapshot returns a saved provider year.
// GET /api/snapshots/year?provider=Ireland&year=2018
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("provider")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	snap, err := h.Store.LoadSnapshot(r.Context(), identifier, year)
	if err != nil {
		h.writeDomainError(w, r, "Snapshot not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotDTO(*snap, h.localeParam(r)))
}

// DeleteSnapshot removes a saved provider year.
// DELETE /api/snapshots/year?provider=Ireland&year=2018
func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("provider")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	if err := h.Store.DeleteSnapshot(r.Context(), identifier, year); err != nil {
		h.writeDomainError(w, r, "Failed to delete snapshot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckSnapshotDate answers from the saved snapshot instead of recomputing.
// GET /api/snapshots/check?provider=Ireland&date=2018-12-25
func (h *Handler) CheckSnapshotDate(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("provider")
	date := r.URL.Query().Get("date")
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)", err)
		return
	}

	snap, err := h.Store.LoadSnapshot(r.Context(), identifier, day.Year())
	if err != nil {
		h.writeDomainError(w, r, "Snapshot not found", err)
		return
	}
	loc, err := time.LoadLocation(snap.Timezone)
	if err != nil {
		h.writeDomainError(w, r, "Snapshot timezone is invalid", err)
		return
	}
	tp := generic.NewTimePoint(day.Year(), day.Month(), day.Day(), loc)

	off, err := h.Store.IsHoliday(r.Context(), identifier, tp)
	if err != nil {
		h.writeDomainError(w, r, "Failed to check snapshot", err)
		return
	}
	var onDay []generic.Holiday
	for _, hol := range snap.Holidays {
		if hol.Date.Equal(tp) {
			onDay = append(onDay, hol)
		}
	}
	if prev, err := h.Store.LoadSnapshot(r.Context(), identifier, day.Year()-1); err == nil {
		for _, hol := range prev.Holidays {
			if hol.IsSubstitute() && hol.Date.Equal(tp) {
				onDay = append(onDay, hol)
			}
		}
	}
	writeJSON(w, http.StatusOK, CheckResponse{
		Provider:   identifier,
		Date:       tp.String(),
		IsHoliday:  off,
		IsWeekend:  tp.IsWeekend(),
		IsWorking:  !off && !tp.IsWeekend(),
		Holidays:   toHolidayDTOs(onDay, h.localeParam(r), false),
		FromSource: "snapshot",
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) yearParam(r *http.Request) (int, error) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return h.now().Year(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("year %q is not a number", s)
	}
	return year, nil
}

func (h *Handler) localeParam(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	return h.DefaultLocale
}

func periodParam(from, to string, p *generic.Provider) (generic.Period, error) {
	period := generic.YearPeriod(p.Year(), p.Location())
	if from != "" {
		t, err := time.ParseInLocation(time.DateOnly, from, p.Location())
		if err != nil {
			return generic.Period{}, fmt.Errorf("from: %w", err)
		}
		period.Start = generic.TimePoint{Time: t}
	}
	if to != "" {
		t, err := time.ParseInLocation(time.DateOnly, to, p.Location())
		if err != nil {
			return generic.Period{}, fmt.Errorf("to: %w", err)
		}
		period.End = generic.TimePoint{Time: t}
	}
	if !period.Valid() {
		return generic.Period{}, fmt.Errorf("from %s is after to %s", period.Start, period.End)
	}
	return period, nil
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generic.ErrDuplicateKey):
		return http.StatusConflict
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case generic.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error(message,
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
