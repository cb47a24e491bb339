/*
provider.go - Resolves a blueprint into the holidays of one year

RESOLUTION PROTOCOL:
  1. Validate the year and compute the blueprint's plan (parent chain first)
  2. For each definition: skip it when the year is outside its window,
     otherwise evaluate its date rule
  3. Add the holiday; if its substitution policy applies, add an OBSERVANCE
     entry under the provider's substitute key pointing back to it
  4. Run derivations (holidays computed from other holidays)
  5. Freeze the registry
  6. Collect the previous year's substitutes that fall in this year
     (a Dec 31 holiday moved to January). They are not registry entries,
     but IsHoliday and CarriedIn see them.

  Any error aborts resolution and no provider is returned. A provider is
  bound to one year; Next/Previous resolve a fresh provider.

SEE ALSO:
  - blueprint.go: Definitions and region diffs
  - registry.go: The resulting collection
  - factory/provider.go: Identifier lookup in front of Resolve
*/
package generic

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Provider holds the resolved holidays of one blueprint for one year.
type Provider struct {
	blueprint  *Blueprint
	translator Translator
	year       int
	location   *time.Location
	locale     string
	registry   *Registry
	carried    []Holiday
}

// Resolve computes every holiday of blueprint in year.
func Resolve(b *Blueprint, year int, tr Translator) (*Provider, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil blueprint", ErrInvalidDefinition)
	}
	if year < MinYear {
		return nil, &InvalidYearError{Year: year}
	}
	if tr == nil {
		tr = noTranslations{}
	}

	plan, err := b.Plan()
	if err != nil {
		return nil, err
	}
	loc, err := b.Location()
	if err != nil {
		return nil, err
	}

	p := &Provider{
		blueprint:  b,
		translator: tr,
		year:       year,
		location:   loc,
		locale:     b.EffectiveLocale(),
		registry:   NewRegistry(year),
	}

	subKey := b.substituteKey()
	for _, def := range plan {
		if !def.ActiveIn(year) {
			continue
		}
		day, err := def.Rule.Date(year, loc)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %s: %w", b.ID, year, def.Key, err)
		}

		h := p.newHoliday(def.Key, day, def.Type, def.Names)
		h.EstablishedYear = def.Established
		h.AbolishedYear = def.Abolished
		if err := p.registry.Add(h); err != nil {
			return nil, fmt.Errorf("%s %d: %w", b.ID, year, err)
		}

		if def.Substitution.Applies(day) {
			sub := p.newSubstitute(subKey(def.Key), def.Substitution.Observe(day), h)
			if err := p.registry.Add(sub); err != nil {
				return nil, fmt.Errorf("%s %d: %w", b.ID, year, err)
			}
		}
	}

	for _, derive := range b.derivations() {
		occurrences, err := derive(year, p.registry.snapshot())
		if err != nil {
			return nil, fmt.Errorf("%s %d: derivation: %w", b.ID, year, err)
		}
		for _, o := range occurrences {
			var h Holiday
			if o.Substitutes != "" {
				source, err := p.registry.Get(o.Substitutes)
				if err != nil {
					return nil, fmt.Errorf("%s %d: %w", b.ID, year, err)
				}
				h = p.newSubstitute(o.Key, o.Date, source)
				if o.Type != "" {
					h.Type = o.Type
				}
			} else {
				h = p.newHoliday(o.Key, o.Date, o.Type, nil)
				if o.NameKey != "" {
					h.Names = p.lookupNames(o.NameKey)
				}
			}
			if err := p.registry.Add(h); err != nil {
				return nil, fmt.Errorf("%s %d: %w", b.ID, year, err)
			}
		}
	}

	p.registry.Freeze()
	p.carried = p.carryIn(plan, subKey)
	return p, nil
}

// carryIn evaluates the definitions for year-1 and keeps the substitutes
// observed in year. Rule errors in year-1 are left to that year's resolution.
func (p *Provider) carryIn(plan []Definition, subKey SubstituteKeyFunc) []Holiday {
	prev := p.year - 1
	if prev < MinYear {
		return nil
	}
	var carried []Holiday
	for _, def := range plan {
		if !def.ActiveIn(prev) {
			continue
		}
		day, err := def.Rule.Date(prev, p.location)
		if err != nil || !def.Substitution.Applies(day) {
			continue
		}
		observed := def.Substitution.Observe(day)
		if observed.Year() != p.year {
			continue
		}
		source := p.newHoliday(def.Key, day, def.Type, def.Names)
		source.EstablishedYear = def.Established
		source.AbolishedYear = def.Abolished
		carried = append(carried, p.newSubstitute(subKey(def.Key), observed, source))
	}
	return carried
}

func (p *Provider) newHoliday(key string, day TimePoint, t Type, inline map[string]string) Holiday {
	names := p.lookupNames(key)
	for locale, name := range inline {
		names[NormalizeLocale(locale)] = name
	}
	return Holiday{
		Key:    key,
		Date:   day,
		Type:   t,
		Names:  names,
		Locale: p.locale,
	}
}

// newSubstitute names a substitute day after the substituted holiday using the
// substituteHoliday template of each locale.
func (p *Provider) newSubstitute(key string, day TimePoint, source Holiday) Holiday {
	names := make(map[string]string, len(source.Names))
	for locale, name := range source.Names {
		tmpl, ok := p.translator.Lookup(SubstituteTemplateKey, locale)
		if !ok {
			tmpl, ok = resolveName(p.lookupNames(SubstituteTemplateKey), locale)
		}
		if !ok {
			tmpl = "{0} (observed)"
		}
		names[locale] = strings.ReplaceAll(tmpl, "{0}", name)
	}
	return Holiday{
		Key:             key,
		Date:            day,
		Type:            TypeObservance,
		Names:           names,
		Locale:          p.locale,
		EstablishedYear: source.EstablishedYear,
		AbolishedYear:   source.AbolishedYear,
		Substitutes:     source.Key,
	}
}

func (p *Provider) lookupNames(key string) map[string]string {
	names := make(map[string]string)
	for _, locale := range p.translator.Locales() {
		if name, ok := p.translator.Lookup(key, locale); ok {
			names[NormalizeLocale(locale)] = name
		}
	}
	return names
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (p *Provider) ID() string               { return p.blueprint.ID }
func (p *Provider) Year() int                { return p.year }
func (p *Provider) Locale() string           { return p.locale }
func (p *Provider) Location() *time.Location { return p.location }
func (p *Provider) Registry() *Registry      { return p.registry }
func (p *Provider) Blueprint() *Blueprint    { return p.blueprint }
func (p *Provider) Count() int               { return p.registry.Count() }

// CarriedIn returns the previous year's substitutes observed in this year.
func (p *Provider) CarriedIn() []Holiday { return slices.Clone(p.carried) }

// On returns the holidays on day, including substitutes carried in from the
// previous year.
func (p *Provider) On(day TimePoint) []Holiday {
	out := p.registry.On(day)
	for _, h := range p.carried {
		if h.Date.Equal(day) {
			out = append(out, h)
		}
	}
	return out
}

// Holiday returns the holiday stored under key.
func (p *Provider) Holiday(key string) (Holiday, error) {
	return p.registry.Get(key)
}

// WhenIs returns the day of the holiday stored under key.
func (p *Provider) WhenIs(key string) (TimePoint, error) {
	h, err := p.registry.Get(key)
	if err != nil {
		return TimePoint{}, err
	}
	return h.Date, nil
}

// Dates returns each holiday's day keyed by holiday key.
func (p *Provider) Dates() map[string]TimePoint {
	out := make(map[string]TimePoint, p.registry.Count())
	for key, h := range p.registry.All() {
		out[key] = h.Date
	}
	return out
}

// Names returns each holiday's display name keyed by holiday key.
func (p *Provider) Names() map[string]string {
	out := make(map[string]string, p.registry.Count())
	for key, h := range p.registry.All() {
		out[key] = h.DisplayName()
	}
	return out
}

// =============================================================================
// WORKING DAYS
// =============================================================================

// IsHoliday reports whether t falls on a day off: a national or bank holiday,
// or a substitute day (including one carried in from the previous year).
func (p *Provider) IsHoliday(t time.Time) bool {
	day := FromTime(t, p.location)
	for _, h := range p.On(day) {
		if isDayOff(h) {
			return true
		}
	}
	return false
}

// IsWeekendDay reports whether t falls on one of the provider's weekend days.
func (p *Provider) IsWeekendDay(t time.Time) bool {
	wd := t.In(p.location).Weekday()
	for _, w := range p.blueprint.weekend() {
		if w == wd {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether t is neither a weekend day nor a holiday.
func (p *Provider) IsWorkingDay(t time.Time) bool {
	return !p.IsWeekendDay(t) && !p.IsHoliday(t)
}

func isDayOff(h Holiday) bool {
	return h.Type == TypeNational || h.Type == TypeBank || h.IsSubstitute()
}

// =============================================================================
// ADJACENT YEARS
// =============================================================================

// Next returns the holiday stored under key in the following year.
func (p *Provider) Next(key string) (Holiday, error) {
	return p.adjacent(key, 1)
}

// Previous returns the holiday stored under key in the preceding year.
func (p *Provider) Previous(key string) (Holiday, error) {
	return p.adjacent(key, -1)
}

func (p *Provider) adjacent(key string, delta int) (Holiday, error) {
	other, err := Resolve(p.blueprint, p.year+delta, p.translator)
	if err != nil {
		return Holiday{}, err
	}
	return other.Holiday(key)
}

// Translations returns the names of a holiday in every locale it has.
func (p *Provider) Translations(key string) (map[string]string, error) {
	h, err := p.registry.Get(key)
	if err != nil {
		return nil, err
	}
	return maps.Clone(h.Names), nil
}
