/*
Package factory is the entry point for resolving holiday providers.

PURPOSE:
  Maps a country or region identifier ("Ireland", "Germany/Saxony") to its
  blueprint and resolves it for a year. It also turns JSON calendar
  definitions into blueprints (see calendar.go), so custom calendars can be
  layered on a built-in country without code changes.

IDENTIFIERS:
  The identifier map is static and case-sensitive. Regions use
  "<Country>/<Region>". Validate() resolves every identifier over a range of
  years; the test suite runs it so a broken definition fails the build.

USAGE:
  provider, err := factory.Resolve("Netherlands", 2017)
  if errors.Is(err, generic.ErrProviderNotFound) { ... }

  f := factory.NewProviderFactory(factory.WithLogger(logger))
  provider, err = f.Resolve("Japan", 2019)

SEE ALSO:
  - generic/provider.go: Year resolution
  - countries/: Built-in blueprints
  - calendar.go: JSON custom calendars
*/
package factory

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/warp/holiday-engine/countries"
	"github.com/warp/holiday-engine/generic"
	"github.com/warp/holiday-engine/translation"
)

// builtin maps every supported identifier to its blueprint.
var builtin = map[string]*generic.Blueprint{
	"Belgium":                  countries.Belgium,
	"Chile":                    countries.Chile,
	"Germany":                  countries.Germany,
	"Germany/BadenWurttemberg": countries.BadenWurttemberg,
	"Germany/Saxony":           countries.Saxony,
	"Ireland":                  countries.Ireland,
	"Japan":                    countries.Japan,
	"Netherlands":              countries.Netherlands,
	"UnitedKingdom":            countries.UnitedKingdom,
	"UnitedKingdom/Scotland":   countries.Scotland,
}

// =============================================================================
// PROVIDER FACTORY
// =============================================================================

// ProviderFactory resolves providers by identifier.
type ProviderFactory struct {
	blueprints map[string]*generic.Blueprint
	translator generic.Translator
	logger     *slog.Logger
}

// Option configures a ProviderFactory.
type Option func(*ProviderFactory)

// WithTranslator replaces the embedded translation table.
func WithTranslator(tr generic.Translator) Option {
	return func(f *ProviderFactory) { f.translator = tr }
}

// WithLogger sets the logger used for resolution failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *ProviderFactory) { f.logger = logger }
}

// WithBlueprint registers an extra blueprint under its ID.
func WithBlueprint(b *generic.Blueprint) Option {
	return func(f *ProviderFactory) { f.blueprints[b.ID] = b }
}

// NewProviderFactory creates a factory over the built-in blueprints.
func NewProviderFactory(opts ...Option) *ProviderFactory {
	f := &ProviderFactory{
		blueprints: maps.Clone(builtin),
		translator: translation.Default(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Translator returns the translator providers are resolved with.
func (f *ProviderFactory) Translator() generic.Translator { return f.translator }

// Identifiers lists the known identifiers, sorted.
func (f *ProviderFactory) Identifiers() []string {
	return slices.Sorted(maps.Keys(f.blueprints))
}

// Blueprint returns the blueprint registered under identifier.
func (f *ProviderFactory) Blueprint(identifier string) (*generic.Blueprint, error) {
	b, ok := f.blueprints[identifier]
	if !ok {
		return nil, &generic.ProviderNotFoundError{Identifier: identifier}
	}
	return b, nil
}

// Resolve computes the holidays of identifier for year.
func (f *ProviderFactory) Resolve(identifier string, year int) (*generic.Provider, error) {
	b, err := f.Blueprint(identifier)
	if err != nil {
		return nil, err
	}
	return f.ResolveBlueprint(b, year)
}

// ResolveBlueprint computes the holidays of an unregistered blueprint, such
// as a parsed custom calendar.
func (f *ProviderFactory) ResolveBlueprint(b *generic.Blueprint, year int) (*generic.Provider, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil blueprint", generic.ErrInvalidDefinition)
	}
	p, err := generic.Resolve(b, year, f.translator)
	if err != nil {
		f.logger.Debug("resolve provider failed",
			slog.String("provider", b.ID),
			slog.Int("year", year),
			slog.String("error", err.Error()))
		return nil, err
	}
	return p, nil
}

// Validate resolves every identifier for every year and joins the failures.
func (f *ProviderFactory) Validate(years ...int) error {
	var errs []error
	for _, id := range f.Identifiers() {
		for _, year := range years {
			if _, err := f.Resolve(id, year); err != nil {
				errs = append(errs, fmt.Errorf("%s/%d: %w", id, year, err))
			}
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// DEFAULT FACTORY
// =============================================================================

var defaultFactory = sync.OnceValue(func() *ProviderFactory {
	return NewProviderFactory()
})

// Default returns the process-wide factory over the built-in blueprints.
func Default() *ProviderFactory { return defaultFactory() }

// Resolve computes the holidays of identifier for year using the default
// factory.
func Resolve(identifier string, year int) (*generic.Provider, error) {
	return Default().Resolve(identifier, year)
}

// Identifiers lists the built-in identifiers, sorted.
func Identifiers() []string { return Default().Identifiers() }
