/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract, allowing field
  renaming without breaking clients.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/calendar.go: CalendarJSON type
*/
package api

import (
	"time"

	"github.com/warp/holiday-engine/factory"
	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ProviderDTO describes one built-in provider.
type ProviderDTO struct {
	ID       string `json:"id"`
	Parent   string `json:"parent,omitempty"`
	Timezone string `json:"timezone"`
	Locale   string `json:"locale"`
}

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Date        string            `json:"date"`
	Weekday     string            `json:"weekday"`
	Type        string            `json:"type"`
	Substitutes string            `json:"substitutes,omitempty"`
	Names       map[string]string `json:"names,omitempty"`
}

// HolidaysResponse is a provider year, optionally filtered.
type HolidaysResponse struct {
	Provider string       `json:"provider"`
	Year     int          `json:"year"`
	Timezone string       `json:"timezone"`
	Count    int          `json:"count"`
	Holidays []HolidayDTO `json:"holidays"`
}

// CheckResponse answers "is this day off?".
type CheckResponse struct {
	Provider   string       `json:"provider"`
	Date       string       `json:"date"`
	IsHoliday  bool         `json:"is_holiday"`
	IsWeekend  bool         `json:"is_weekend"`
	IsWorking  bool         `json:"is_working_day"`
	Holidays   []HolidayDTO `json:"holidays"`
	FromSource string       `json:"source"` // "computed" or "snapshot"
}

// CalendarDTO wraps a stored custom calendar.
type CalendarDTO struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Parent    string               `json:"parent,omitempty"`
	Version   int                  `json:"version"`
	Config    factory.CalendarJSON `json:"config"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
}

// CreateSnapshotRequest asks to persist a resolved provider year.
type CreateSnapshotRequest struct {
	Provider string `json:"provider"`
	Year     int    `json:"year"`
}

// SnapshotDTO represents a saved provider year.
type SnapshotDTO struct {
	ID        string       `json:"id"`
	Provider  string       `json:"provider"`
	Year      int          `json:"year"`
	Timezone  string       `json:"timezone"`
	CreatedAt string       `json:"created_at"`
	Holidays  []HolidayDTO `json:"holidays,omitempty"`
}

// ScenarioDTO describes a demo data set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toHolidayDTO(h generic.Holiday, locale string, withNames bool) HolidayDTO {
	name := h.DisplayName()
	if locale != "" {
		if n, err := h.Name(locale); err == nil {
			name = n
		}
	}
	dto := HolidayDTO{
		Key:         h.Key,
		Name:        name,
		Date:        h.Date.String(),
		Weekday:     h.Date.Weekday().String(),
		Type:        string(h.Type),
		Substitutes: h.Substitutes,
	}
	if withNames {
		dto.Names = h.Names
	}
	return dto
}

func toHolidayDTOs(holidays []generic.Holiday, locale string, withNames bool) []HolidayDTO {
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, h := range holidays {
		dtos = append(dtos, toHolidayDTO(h, locale, withNames))
	}
	return dtos
}

func toSnapshotDTO(s generic.Snapshot, locale string) SnapshotDTO {
	dto := SnapshotDTO{
		ID:        s.ID,
		Provider:  s.Identifier,
		Year:      s.Year,
		Timezone:  s.Timezone,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if len(s.Holidays) > 0 {
		dto.Holidays = toHolidayDTOs(s.Holidays, locale, false)
	}
	return dto
}
