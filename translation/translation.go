/*
Package translation provides localized holiday names.

PURPOSE:
  Holiday definitions only carry keys. This package maps each key to its
  name per locale and implements generic.Translator, so providers can fill
  Holiday.Names during resolution.

FORMAT:
  YAML, one entry per holiday key, locales as nested keys:

    christmasDay:
      en: Christmas Day
      nl: Eerste Kerstdag
      de_DE: 1. Weihnachtsfeiertag

  Locale keys are normalized ("de_DE" -> "de-DE") when parsed. The
  substituteHoliday entry is a template; "{0}" is the substituted name.

USAGE:
  tr := translation.Default()   // embedded tables, parsed once
  name, ok := tr.Lookup("christmasDay", "nl_NL")

SEE ALSO:
  - generic/types.go: The Translator contract
  - generic/locale.go: Locale normalization and fallback
*/
package translation

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/warp/holiday-engine/generic"
)

//go:embed names.yaml
var embeddedNames []byte

var (
	ErrEmptyTable   = errors.New("translation table is empty")
	ErrInvalidEntry = errors.New("invalid translation entry")
)

// Table is an immutable key -> locale -> name lookup.
type Table struct {
	names   map[string]map[string]string
	locales []string
}

var _ generic.Translator = (*Table)(nil)

// Parse reads a YAML translation table.
func Parse(content []byte) (*Table, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{names: make(map[string]map[string]string, len(raw))}
	seen := make(map[string]bool)
	for key, byLocale := range raw {
		if len(byLocale) == 0 {
			return nil, fmt.Errorf("%w: %s has no names", ErrInvalidEntry, key)
		}
		entry := make(map[string]string, len(byLocale))
		for locale, name := range byLocale {
			tag := generic.NormalizeLocale(locale)
			if tag == "" || name == "" {
				return nil, fmt.Errorf("%w: %s/%q", ErrInvalidEntry, key, locale)
			}
			entry[tag] = name
			seen[tag] = true
		}
		t.names[key] = entry
	}
	t.locales = slices.Sorted(maps.Keys(seen))
	return t, nil
}

// Load reads a YAML translation table from disk.
func Load(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return Parse(content)
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(embeddedNames)
	if err != nil {
		panic(fmt.Sprintf("embedded translations: %v", err))
	}
	return t
})

// Default returns the embedded translation table.
func Default() *Table { return defaultTable() }

// Lookup returns the name of key in exactly locale (after normalization).
// Fallback across locales is the caller's concern.
func (t *Table) Lookup(key, locale string) (string, bool) {
	entry, ok := t.names[key]
	if !ok {
		return "", false
	}
	name, ok := entry[generic.NormalizeLocale(locale)]
	return name, ok
}

// Locales lists every locale present in the table, sorted.
func (t *Table) Locales() []string { return slices.Clone(t.locales) }

// Names returns every translation of key.
func (t *Table) Names(key string) map[string]string {
	return maps.Clone(t.names[key])
}

// Keys lists the translated holiday keys, sorted.
func (t *Table) Keys() []string {
	return slices.Sorted(maps.Keys(t.names))
}

// Merge returns a new table with other's names layered over t's.
func (t *Table) Merge(other *Table) *Table {
	merged := &Table{names: make(map[string]map[string]string, len(t.names))}
	for key, entry := range t.names {
		merged.names[key] = maps.Clone(entry)
	}
	for key, entry := range other.names {
		if merged.names[key] == nil {
			merged.names[key] = make(map[string]string, len(entry))
		}
		maps.Copy(merged.names[key], entry)
	}
	merged.locales = slices.Compact(slices.Sorted(slices.Values(slices.Concat(t.locales, other.locales))))
	return merged
}
