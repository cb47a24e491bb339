/*
blueprint.go - Provider definitions and region composition

PURPOSE:
  A Blueprint is the static description of a country or region: its ordered
  holiday definitions, location, locale, and substitution key convention.
  Blueprints are built once at process start and never modified.

REGIONS:
  A region blueprint names its Parent and applies an explicit diff on the
  parent's effective step list:

    Overrides - Replace a parent definition in place (same key)
    Excludes  - Drop parent keys entirely
    Steps     - Append new definitions

  The diff is applied after the parent's plan is computed, so a region
  always wins over its country. Overriding or excluding a key the parent
  doesn't define is an error, as is adding a key the parent already has.

EXAMPLE:
  scotland := &generic.Blueprint{
      ID:        "UnitedKingdom/Scotland",
      Parent:    unitedKingdom,
      Excludes:  []string{"easterMonday"},
      Overrides: []generic.Definition{{Key: "summerBankHoliday", ...}},
      Steps:     []generic.Definition{{Key: "stAndrewsDay", ...}},
  }

SEE ALSO:
  - provider.go: Resolves a blueprint for one year
  - countries/: Concrete blueprints
*/
package generic

import (
	"fmt"
	"slices"
	"time"
)

// Definition is one holiday-definition step.
type Definition struct {
	Key          string
	Rule         DateRule
	Type         Type
	Established  int   // first year the holiday exists, 0 = always
	Abolished    int   // last year the holiday exists, 0 = never abolished
	Except       []int // years inside the window without the holiday
	Substitution Policy
	// Names adds to or replaces translated names, keyed by locale.
	Names map[string]string
}

// ActiveIn reports whether the definition produces a holiday in year.
func (d Definition) ActiveIn(year int) bool {
	if !inWindow(year, d.Established, d.Abolished) {
		return false
	}
	for _, y := range d.Except {
		if y == year {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of a definition.
func (d Definition) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidDefinition)
	}
	if d.Rule == nil {
		return fmt.Errorf("%w: %s has no date rule", ErrInvalidDefinition, d.Key)
	}
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidDefinition, d.Key, d.Type)
	}
	if d.Established != 0 && d.Abolished != 0 && d.Abolished < d.Established {
		return fmt.Errorf("%w: %s abolished (%d) before established (%d)", ErrInvalidDefinition, d.Key, d.Abolished, d.Established)
	}
	return nil
}

// Occurrence is a holiday produced by a Derivation.
type Occurrence struct {
	Key         string
	Date        TimePoint
	Type        Type
	Substitutes string
	// NameKey is the translation key when it differs from Key ("bridgeDay1"
	// is named through "bridgeDay").
	NameKey string
}

// Derivation computes extra holidays from the holidays resolved so far.
// Derivations run after all steps, in order, each seeing the previous ones'
// output. resolved must not be modified.
type Derivation func(year int, resolved []Holiday) ([]Occurrence, error)

// SubstituteKeyFunc derives the key of a substitute entry.
type SubstituteKeyFunc func(key string) string

// ObservedSuffix is the default substitute key convention: "christmasDayObserved".
func ObservedSuffix(key string) string { return key + "Observed" }

// Blueprint describes a country or region provider.
type Blueprint struct {
	ID       string
	Timezone string // IANA name; inherited from Parent when empty
	Locale   string // display locale; inherited from Parent when empty
	Parent   *Blueprint

	Steps     []Definition
	Overrides []Definition
	Excludes  []string

	Derivations []Derivation

	// SubstituteKey names substitute entries; inherited from Parent, then
	// ObservedSuffix.
	SubstituteKey SubstituteKeyFunc

	// Weekend lists non-working weekdays; inherited from Parent, then Sat+Sun.
	Weekend []time.Weekday
}

// Plan returns the effective ordered step list: the parent's plan with
// overrides replaced in place, exclusions removed, and own steps appended.
func (b *Blueprint) Plan() ([]Definition, error) {
	var plan []Definition
	if b.Parent != nil {
		parentPlan, err := b.Parent.Plan()
		if err != nil {
			return nil, fmt.Errorf("%s: parent %s: %w", b.ID, b.Parent.ID, err)
		}
		plan = parentPlan
	} else if len(b.Overrides) > 0 || len(b.Excludes) > 0 {
		return nil, fmt.Errorf("%w: %s overrides or excludes without a parent", ErrInvalidDefinition, b.ID)
	}

	index := make(map[string]int, len(plan))
	for i, d := range plan {
		index[d.Key] = i
	}

	for _, o := range b.Overrides {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.ID, err)
		}
		i, ok := index[o.Key]
		if !ok {
			return nil, fmt.Errorf("%s: override %q: %w", b.ID, o.Key, ErrUnknownKey)
		}
		plan[i] = o
	}

	excluded := make(map[string]bool, len(b.Excludes))
	for _, key := range b.Excludes {
		if _, ok := index[key]; !ok {
			return nil, fmt.Errorf("%s: exclude %q: %w", b.ID, key, ErrUnknownKey)
		}
		excluded[key] = true
	}
	if len(excluded) > 0 {
		kept := plan[:0]
		for _, d := range plan {
			if !excluded[d.Key] {
				kept = append(kept, d)
			}
		}
		plan = kept
		index = make(map[string]int, len(plan))
		for i, d := range plan {
			index[d.Key] = i
		}
	}

	for _, s := range b.Steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", b.ID, err)
		}
		if _, exists := index[s.Key]; exists {
			return nil, fmt.Errorf("%s: %w", b.ID, &DuplicateKeyError{Key: s.Key})
		}
		index[s.Key] = len(plan)
		plan = append(plan, s)
	}

	return plan, nil
}

// Location loads the effective IANA timezone.
func (b *Blueprint) Location() (*time.Location, error) {
	tz := b.timezone()
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%s: timezone %q: %w", b.ID, tz, err)
	}
	return loc, nil
}

func (b *Blueprint) timezone() string {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur.Timezone != "" {
			return cur.Timezone
		}
	}
	return ""
}

// EffectiveLocale returns the display locale, inherited along the chain.
func (b *Blueprint) EffectiveLocale() string {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur.Locale != "" {
			return cur.Locale
		}
	}
	return DefaultLocale
}

func (b *Blueprint) substituteKey() SubstituteKeyFunc {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur.SubstituteKey != nil {
			return cur.SubstituteKey
		}
	}
	return ObservedSuffix
}

func (b *Blueprint) weekend() []time.Weekday {
	for cur := b; cur != nil; cur = cur.Parent {
		if len(cur.Weekend) > 0 {
			return cur.Weekend
		}
	}
	return []time.Weekday{time.Saturday, time.Sunday}
}

// derivations returns the parent chain's derivations first.
func (b *Blueprint) derivations() []Derivation {
	if b.Parent == nil {
		return slices.Clone(b.Derivations)
	}
	return slices.Concat(b.Parent.derivations(), b.Derivations)
}
