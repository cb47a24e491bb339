/*
Package generic provides the core holiday engine.

PURPOSE:
  This package contains the country-agnostic types and algorithms that turn
  holiday definitions into concrete dates. Whether computing Irish bank
  holidays, Dutch observances, or Japanese substitute days, the same engine
  evaluates rules, applies substitution policies, enforces establishment
  windows, and composes regions on top of their countries.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type: Classification of a holiday (national, observance, season, bank, other)
  - Holiday: One concrete holiday occurrence in one year
  - Translator: Read-only lookup of localized names

DESIGN PRINCIPLES:
  1. Purity: Date rules are deterministic functions of (year, location)
  2. Immutability: A resolved registry is frozen; a new year is a new registry
  3. Composition: Regions apply an explicit diff on their parent's steps
  4. All-or-nothing: A failing step aborts resolution for that year

USAGE:
  provider, err := generic.Resolve(countries.Ireland, 2018, translation.Default())
  for key, h := range provider.Registry().All() {
      fmt.Println(key, h.Date)
  }

SEE ALSO:
  - rules.go: Date rules
  - observe.go: Substitution policies
  - blueprint.go: Provider definitions and region diffs
  - provider.go: Year resolution
*/
package generic

import (
	"maps"
	"strings"
)

// =============================================================================
// HOLIDAY TYPE
// =============================================================================

type Type string

const (
	TypeNational   Type = "national"   // Official public holiday (the "official" filter)
	TypeObservance Type = "observance" // Observed but not a day off, and substitute days
	TypeSeason     Type = "season"     // Seasonal markers (summer time, winter time)
	TypeBank       Type = "bank"       // Bank holidays
	TypeOther      Type = "other"      // Everything else (regional, commercial, cultural)
)

// Types lists every classification in display order.
var Types = []Type{TypeNational, TypeObservance, TypeSeason, TypeBank, TypeOther}

// Valid reports whether t is one of the known classifications.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType accepts the type names plus "official" as an alias of national.
func ParseType(s string) (Type, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "official" {
		return TypeNational, true
	}
	t := Type(s)
	return t, t.Valid()
}

// =============================================================================
// HOLIDAY - One occurrence in one year
// =============================================================================

// Holiday is created by a provider during resolution and never modified
// afterwards. Names is keyed by normalized locale tag ("en", "nl-NL").
type Holiday struct {
	Key             string
	Date            TimePoint
	Type            Type
	Names           map[string]string
	Locale          string
	EstablishedYear int    // 0 = no lower bound
	AbolishedYear   int    // 0 = no upper bound
	Substitutes     string // key of the substituted holiday, "" otherwise
}

// Name returns the holiday's name in locale, falling back to DefaultLocale.
func (h Holiday) Name(locale string) (string, error) {
	if name, ok := resolveName(h.Names, locale); ok {
		return name, nil
	}
	return "", &TranslationNotFoundError{Key: h.Key, Locale: locale}
}

// DisplayName is the name in the provider's locale, or the key when no
// translation exists at all.
func (h Holiday) DisplayName() string {
	if name, err := h.Name(h.Locale); err == nil {
		return name
	}
	return h.Key
}

// IsSubstitute reports whether the holiday is an observed replacement day.
func (h Holiday) IsSubstitute() bool { return h.Substitutes != "" }

// ActiveIn reports whether year lies within the holiday's window.
func (h Holiday) ActiveIn(year int) bool {
	return inWindow(year, h.EstablishedYear, h.AbolishedYear)
}

func (h Holiday) clone() Holiday {
	h.Names = maps.Clone(h.Names)
	return h
}

func inWindow(year, established, abolished int) bool {
	if established != 0 && year < established {
		return false
	}
	if abolished != 0 && year > abolished {
		return false
	}
	return true
}

// =============================================================================
// TRANSLATOR - External name lookup
// =============================================================================

// Translator looks up a holiday name by key and locale. Implementations are
// read-only and safe for concurrent use.
type Translator interface {
	Lookup(key, locale string) (string, bool)
	// Locales lists every locale the translator has names for.
	Locales() []string
}

// SubstituteTemplateKey names the translation entry used to name substitute
// days; "{0}" in the template is replaced by the substituted holiday's name.
const SubstituteTemplateKey = "substituteHoliday"

type noTranslations struct{}

func (noTranslations) Lookup(string, string) (string, bool) { return "", false }
func (noTranslations) Locales() []string                    { return nil }
