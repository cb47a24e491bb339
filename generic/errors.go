/*
errors.go - Centralized error types for the holiday engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Country packages, the factory, and the API wrap these errors with
  additional context.

ERROR CATEGORIES:
  1. Calendar errors - Years or dates a rule cannot represent
  2. Composition errors - Duplicate keys, bad overrides, frozen registries
  3. Lookup errors - Unknown providers, holidays, translations, records

USAGE:
  Callers classify with errors.Is / errors.As:

    if errors.Is(err, generic.ErrProviderNotFound) {
        // 404
    }

    var dup *generic.DuplicateKeyError
    if errors.As(err, &dup) {
        log.Printf("key %s defined twice for %d", dup.Key, dup.Year)
    }

SEE ALSO:
  - rules.go: Raises InvalidYearError / InvalidDateError
  - registry.go: Raises DuplicateKeyError / NotFoundError
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidYear is returned when a year falls outside the representable
	// range of a rule ([1, 9999]) or is not positive at resolution time.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidDate is returned when a rule produces or receives a calendar
	// date that does not exist.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDuplicateKey is returned when two steps yield the same key in one year.
	ErrDuplicateKey = errors.New("duplicate holiday key")

	// ErrProviderNotFound is returned for an unknown country/region identifier.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrTranslationNotFound is returned when neither the requested locale nor
	// the default locale carries a name for a holiday.
	ErrTranslationNotFound = errors.New("translation not found")

	// ErrNotFound is returned by Registry.Get for an absent key.
	ErrNotFound = errors.New("holiday not found")

	// ErrUnknownKey is returned when a region overrides or excludes a key its
	// parent does not define.
	ErrUnknownKey = errors.New("unknown holiday key")

	// ErrInvalidPolicy is returned for a substitution policy that would not be
	// idempotent or shifts by zero days.
	ErrInvalidPolicy = errors.New("invalid substitution policy")

	// ErrInvalidDefinition is returned for a malformed holiday definition.
	ErrInvalidDefinition = errors.New("invalid holiday definition")

	// ErrRegistryFrozen is returned when adding to a registry after resolution.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrSnapshotNotFound is returned when no snapshot exists for identifier+year.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrCalendarNotFound is returned when a custom calendar doesn't exist.
	ErrCalendarNotFound = errors.New("calendar not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidYearError reports the offending year.
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %d: supported range is [%d, %d]", e.Year, MinYear, MaxYear)
}

func (e *InvalidYearError) Unwrap() error {
	return ErrInvalidYear
}

// InvalidDateError reports a date that does not exist in the given year.
type InvalidDateError struct {
	Year   int
	Month  time.Month
	Day    int
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid date %04d-%02d-%02d: %s", e.Year, int(e.Month), e.Day, e.Reason)
	}
	return fmt.Sprintf("invalid date %04d-%02d-%02d", e.Year, int(e.Month), e.Day)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// DuplicateKeyError provides details about a key uniqueness violation.
type DuplicateKeyError struct {
	Key  string
	Year int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("holiday %q already defined for %d", e.Key, e.Year)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// ProviderNotFoundError names the identifier that failed to resolve.
type ProviderNotFoundError struct {
	Identifier string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("provider not found: %q", e.Identifier)
}

func (e *ProviderNotFoundError) Unwrap() error {
	return ErrProviderNotFound
}

// TranslationNotFoundError names the holiday and the locale that was asked for.
type TranslationNotFoundError struct {
	Key    string
	Locale string
}

func (e *TranslationNotFoundError) Error() string {
	return fmt.Sprintf("no name for %q in locale %q or default locale %q", e.Key, e.Locale, DefaultLocale)
}

func (e *TranslationNotFoundError) Unwrap() error {
	return ErrTranslationNotFound
}

// NotFoundError is returned by Registry.Get.
type NotFoundError struct {
	Key  string
	Year int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("holiday %q not found in %d", e.Key, e.Year)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrInvalidDefinition) ||
		errors.Is(err, ErrUnknownKey)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProviderNotFound) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTranslationNotFound) ||
		errors.Is(err, ErrSnapshotNotFound) ||
		errors.Is(err, ErrCalendarNotFound)
}
