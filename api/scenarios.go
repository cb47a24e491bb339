/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario stores custom calendars
	layered on built-in countries and/or saves snapshots of provider years.

AVAILABLE SCENARIOS:

	dublin-office:  Irish calendar plus company days and a Christmas closure
	tokyo-office:   Japanese calendar plus the year-end/new-year closure
	eu-snapshots:   Saved years for Ireland, the Netherlands and Germany

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Store custom calendars via the calendar factory
 3. Save snapshots for the current and following year

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "dublin-office"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Register it in the loaders map of LoadScenario

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Calendar and snapshot handlers
  - factory/calendar.go: Calendar JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/holiday-engine/factory"
	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "dublin-office",
		Name:        "Dublin Office",
		Description: "Irish public holidays plus Christmas Eve and a summer company day",
		Category:    "calendars",
	},
	{
		ID:          "tokyo-office",
		Name:        "Tokyo Office",
		Description: "Japanese national holidays plus the Dec 29 - Jan 3 closure",
		Category:    "calendars",
	},
	{
		ID:          "eu-snapshots",
		Name:        "EU Snapshots",
		Description: "Saved holiday years for Ireland, the Netherlands and Germany",
		Category:    "snapshots",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario loads a predefined scenario.
// POST /api/scenarios/load {"scenario_id": "tokyo-office"}
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	loaders := map[string]func(context.Context) error{
		"dublin-office": h.loadDublinOfficeScenario,
		"tokyo-office":  h.loadTokyoOfficeScenario,
		"eu-snapshots":  h.loadEUSnapshotsScenario,
	}
	load, ok := loaders[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("scenario %q does not exist", req.ScenarioID))
		return
	}

	ctx := r.Context()
	if err := h.resetStore(ctx); err != nil {
		h.writeDomainError(w, r, "Failed to reset database", err)
		return
	}
	if err := load(ctx); err != nil {
		h.writeDomainError(w, r, "Failed to load scenario", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

type resetter interface {
	Reset(ctx context.Context) error
}

func (h *Handler) resetStore(ctx context.Context) error {
	if rs, ok := h.Store.(resetter); ok {
		return rs.Reset(ctx)
	}
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadDublinOfficeScenario stores an office calendar on top of Ireland.
func (h *Handler) loadDublinOfficeScenario(ctx context.Context) error {
	return h.saveCalendarJSON(ctx, `{
		"id": "dublin-office",
		"name": "Dublin Office",
		"parent": "Ireland",
		"holidays": [
			{
				"key": "christmasEve",
				"type": "bank",
				"rule": {"type": "fixed", "month": 12, "day": 24},
				"names": {"en": "Christmas Eve", "ga": "Oíche Nollag"}
			},
			{
				"key": "summerCompanyDay",
				"type": "bank",
				"rule": {"type": "nth_weekday", "month": 7, "weekday": "friday", "n": -1},
				"established": 2020,
				"names": {"en": "Summer Company Day"}
			}
		]
	}`)
}

// loadTokyoOfficeScenario stores an office calendar on top of Japan.
func (h *Handler) loadTokyoOfficeScenario(ctx context.Context) error {
	closure := func(key string, month, day int, en string) factory.DefinitionJSON {
		return factory.DefinitionJSON{
			Key:   key,
			Type:  string(generic.TypeBank),
			Rule:  factory.RuleJSON{Type: "fixed", Month: month, Day: day},
			Names: map[string]string{"en": en, "ja": "年末年始休業"},
		}
	}
	cj := factory.CalendarJSON{
		ID:     "tokyo-office",
		Name:   "Tokyo Office",
		Parent: "Japan",
		Holidays: []factory.DefinitionJSON{
			closure("newYearClosure2", 1, 2, "New Year closure"),
			closure("newYearClosure3", 1, 3, "New Year closure"),
			closure("yearEndClosure29", 12, 29, "Year-end closure"),
			closure("yearEndClosure30", 12, 30, "Year-end closure"),
			closure("yearEndClosure31", 12, 31, "Year-end closure"),
		},
	}
	raw, err := json.Marshal(cj)
	if err != nil {
		return err
	}
	return h.saveCalendarJSON(ctx, string(raw))
}

// loadEUSnapshotsScenario saves the current and next year of three
// countries.
func (h *Handler) loadEUSnapshotsScenario(ctx context.Context) error {
	year := h.now().Year()
	for _, id := range []string{"Ireland", "Netherlands", "Germany"} {
		for _, y := range []int{year, year + 1} {
			if _, err := h.snapshot(ctx, id, y); err != nil {
				return fmt.Errorf("snapshot %s %d: %w", id, y, err)
			}
		}
	}
	return nil
}

// saveCalendarJSON validates a calendar definition and stores it.
func (h *Handler) saveCalendarJSON(ctx context.Context, jsonStr string) error {
	var cj factory.CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return fmt.Errorf("%w: %v", generic.ErrInvalidDefinition, err)
	}
	if _, err := h.CalendarFactory.FromJSON(cj); err != nil {
		return err
	}
	return h.Store.SaveCalendar(ctx, generic.CalendarRecord{
		ID:         cj.ID,
		Name:       cj.Name,
		Parent:     cj.Parent,
		ConfigJSON: jsonStr,
	})
}
