/*
calendar.go - JSON custom calendars

PURPOSE:
  A custom calendar is a blueprint defined in JSON, usually a company
  calendar layered on a built-in country: extra days off, a regional
  override, a dropped holiday. It is stored as JSON (see store/) and parsed
  into a generic.Blueprint whenever it is resolved.

JSON SCHEMA:
  {
    "id": "acme-dublin",
    "name": "ACME Dublin office",
    "parent": "Ireland",
    "holidays": [
      {
        "key": "companyDay",
        "type": "other",
        "rule": {"type": "nth_weekday", "month": 6, "weekday": "friday", "n": -1},
        "established": 2020,
        "substitution": "none",
        "names": {"en": "Company Day"}
      }
    ],
    "overrides": [
      {"key": "goodFriday", "type": "national", "rule": {"type": "easter", "offset": -2}}
    ],
    "exclude": ["octoberHoliday"]
  }

RULE TYPES:
  fixed          - month, day
  nth_weekday    - month, weekday, n (negative counts from the end)
  weekday_before - month, day, weekday
  easter         - offset (days from Easter Sunday)
  equinox        - season (march_equinox, june_solstice, ...)

SUBSTITUTIONS:
  none, sunday_to_monday, saturday_to_monday, saturday_to_friday,
  weekend_to_monday, nearest_weekday, weekend_plus_two
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a custom calendar.
type CalendarJSON struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Parent    string           `json:"parent,omitempty"`
	Timezone  string           `json:"timezone,omitempty"`
	Locale    string           `json:"locale,omitempty"`
	Holidays  []DefinitionJSON `json:"holidays,omitempty"`
	Overrides []DefinitionJSON `json:"overrides,omitempty"`
	Exclude   []string         `json:"exclude,omitempty"`
}

// DefinitionJSON represents one holiday definition.
type DefinitionJSON struct {
	Key          string            `json:"key"`
	Type         string            `json:"type"`
	Rule         RuleJSON          `json:"rule"`
	Established  int               `json:"established,omitempty"`
	Abolished    int               `json:"abolished,omitempty"`
	Except       []int             `json:"except,omitempty"`
	Substitution string            `json:"substitution,omitempty"`
	Names        map[string]string `json:"names,omitempty"`
}

// RuleJSON represents a date rule.
type RuleJSON struct {
	Type    string `json:"type"`
	Month   int    `json:"month,omitempty"`
	Day     int    `json:"day,omitempty"`
	Weekday string `json:"weekday,omitempty"`
	N       int    `json:"n,omitempty"`
	Offset  int    `json:"offset,omitempty"`
	Season  string `json:"season,omitempty"`
}

// =============================================================================
// CALENDAR FACTORY
// =============================================================================

// CalendarFactory converts JSON calendars to blueprints. Parents are looked
// up in the provider factory.
type CalendarFactory struct {
	providers *ProviderFactory
}

// NewCalendarFactory creates a calendar factory; a nil provider factory uses
// the default one.
func NewCalendarFactory(providers *ProviderFactory) *CalendarFactory {
	if providers == nil {
		providers = Default()
	}
	return &CalendarFactory{providers: providers}
}

// ParseCalendar parses a JSON string into a blueprint.
func (f *CalendarFactory) ParseCalendar(jsonStr string) (*generic.Blueprint, error) {
	var cj CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse calendar JSON: %v", generic.ErrInvalidDefinition, err)
	}
	return f.FromJSON(cj)
}

// FromJSON converts CalendarJSON to a blueprint and checks that its plan
// composes with the parent.
func (f *CalendarFactory) FromJSON(cj CalendarJSON) (*generic.Blueprint, error) {
	if strings.TrimSpace(cj.ID) == "" {
		return nil, fmt.Errorf("%w: calendar id is required", generic.ErrInvalidDefinition)
	}

	b := &generic.Blueprint{
		ID:       cj.ID,
		Timezone: cj.Timezone,
		Locale:   cj.Locale,
		Excludes: cj.Exclude,
	}
	if cj.Parent != "" {
		parent, err := f.providers.Blueprint(cj.Parent)
		if err != nil {
			return nil, err
		}
		b.Parent = parent
	}

	for _, dj := range cj.Holidays {
		d, err := parseDefinition(dj)
		if err != nil {
			return nil, err
		}
		b.Steps = append(b.Steps, d)
	}
	for _, dj := range cj.Overrides {
		d, err := parseDefinition(dj)
		if err != nil {
			return nil, err
		}
		b.Overrides = append(b.Overrides, d)
	}

	if _, err := b.Plan(); err != nil {
		return nil, err
	}
	if _, err := b.Location(); err != nil {
		return nil, fmt.Errorf("%w: %v", generic.ErrInvalidDefinition, err)
	}
	return b, nil
}

// ResolveCalendar parses jsonStr and resolves it for year.
func (f *CalendarFactory) ResolveCalendar(jsonStr string, year int) (*generic.Provider, error) {
	b, err := f.ParseCalendar(jsonStr)
	if err != nil {
		return nil, err
	}
	return f.providers.ResolveBlueprint(b, year)
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseDefinition(dj DefinitionJSON) (generic.Definition, error) {
	t, ok := generic.ParseType(dj.Type)
	if !ok {
		return generic.Definition{}, fmt.Errorf("%w: %s has unknown type %q", generic.ErrInvalidDefinition, dj.Key, dj.Type)
	}
	rule, err := parseRule(dj.Rule)
	if err != nil {
		return generic.Definition{}, fmt.Errorf("%s: %w", dj.Key, err)
	}
	policy, err := parseSubstitution(dj.Substitution)
	if err != nil {
		return generic.Definition{}, fmt.Errorf("%s: %w", dj.Key, err)
	}
	d := generic.Definition{
		Key:          dj.Key,
		Rule:         rule,
		Type:         t,
		Established:  dj.Established,
		Abolished:    dj.Abolished,
		Except:       dj.Except,
		Substitution: policy,
		Names:        dj.Names,
	}
	if err := d.Validate(); err != nil {
		return generic.Definition{}, err
	}
	return d, nil
}

func parseRule(rj RuleJSON) (generic.DateRule, error) {
	switch rj.Type {
	case "fixed":
		month, err := parseMonth(rj.Month)
		if err != nil {
			return nil, err
		}
		if rj.Day < 1 || rj.Day > 31 {
			return nil, fmt.Errorf("%w: day %d", generic.ErrInvalidDefinition, rj.Day)
		}
		return generic.Fixed(month, rj.Day), nil

	case "nth_weekday":
		month, err := parseMonth(rj.Month)
		if err != nil {
			return nil, err
		}
		weekday, err := parseWeekday(rj.Weekday)
		if err != nil {
			return nil, err
		}
		if rj.N == 0 || rj.N < -5 || rj.N > 5 {
			return nil, fmt.Errorf("%w: n must be within ±1..5, got %d", generic.ErrInvalidDefinition, rj.N)
		}
		return generic.NthWeekday(month, weekday, rj.N), nil

	case "weekday_before":
		month, err := parseMonth(rj.Month)
		if err != nil {
			return nil, err
		}
		weekday, err := parseWeekday(rj.Weekday)
		if err != nil {
			return nil, err
		}
		return generic.WeekdayBefore(month, rj.Day, weekday), nil

	case "easter":
		return generic.Easter(rj.Offset), nil

	case "equinox":
		season, ok := generic.ParseSeason(rj.Season)
		if !ok {
			return nil, fmt.Errorf("%w: unknown season %q", generic.ErrInvalidDefinition, rj.Season)
		}
		return generic.Equinox(season), nil

	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", generic.ErrInvalidDefinition, rj.Type)
	}
}

func parseMonth(m int) (time.Month, error) {
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("%w: month %d", generic.ErrInvalidDefinition, m)
	}
	return time.Month(m), nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", generic.ErrInvalidDefinition, s)
	}
	return wd, nil
}

func parseSubstitution(s string) (generic.Policy, error) {
	switch s {
	case "", "none":
		return generic.NoSubstitution, nil
	case "sunday_to_monday":
		return generic.SundayToMonday, nil
	case "saturday_to_monday":
		return generic.SaturdayToMonday, nil
	case "saturday_to_friday":
		return generic.SaturdayToFriday, nil
	case "weekend_to_monday":
		return generic.WeekendToMonday, nil
	case "nearest_weekday":
		return generic.NearestWeekday, nil
	case "weekend_plus_two":
		return generic.WeekendPlusTwo, nil
	default:
		return generic.Policy{}, fmt.Errorf("%w: unknown substitution %q", generic.ErrInvalidPolicy, s)
	}
}
