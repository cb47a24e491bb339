package generic

import (
	"iter"
	"slices"
)

// =============================================================================
// REGISTRY - Insertion-ordered holidays of one provider for one year
// =============================================================================

// Registry is append-only while its provider resolves the year and frozen
// afterwards. A frozen registry is safe for concurrent reads.
type Registry struct {
	year     int
	keys     []string
	holidays map[string]Holiday
	frozen   bool
}

// NewRegistry creates an empty registry bound to year.
func NewRegistry(year int) *Registry {
	return &Registry{
		year:     year,
		holidays: make(map[string]Holiday),
	}
}

// Year returns the year the registry is bound to.
func (r *Registry) Year() int { return r.year }

// Add appends a holiday. Fails with DuplicateKeyError if the key is present.
func (r *Registry) Add(h Holiday) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, exists := r.holidays[h.Key]; exists {
		return &DuplicateKeyError{Key: h.Key, Year: r.year}
	}
	r.keys = append(r.keys, h.Key)
	r.holidays[h.Key] = h.clone()
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Add is still allowed.
func (r *Registry) Frozen() bool { return r.frozen }

// Get returns the holiday stored under key.
func (r *Registry) Get(key string) (Holiday, error) {
	h, ok := r.holidays[key]
	if !ok {
		return Holiday{}, &NotFoundError{Key: key, Year: r.year}
	}
	return h.clone(), nil
}

// Has reports whether key is present.
func (r *Registry) Has(key string) bool {
	_, ok := r.holidays[key]
	return ok
}

// Count returns the number of holidays.
func (r *Registry) Count() int { return len(r.keys) }

// Keys returns the keys in insertion order.
func (r *Registry) Keys() []string { return slices.Clone(r.keys) }

// All iterates (key, holiday) pairs in insertion order.
func (r *Registry) All() iter.Seq2[string, Holiday] {
	return func(yield func(string, Holiday) bool) {
		for _, key := range r.keys {
			if !yield(key, r.holidays[key].clone()) {
				return
			}
		}
	}
}

// Holidays returns all holidays in insertion order.
func (r *Registry) Holidays() []Holiday {
	out := make([]Holiday, 0, len(r.keys))
	for _, h := range r.All() {
		out = append(out, h)
	}
	return out
}

// FilterByType returns a lazy view of the holidays of type t.
func (r *Registry) FilterByType(t Type) Filter {
	return ByType(r, t)
}

// On returns the holidays falling on day, in insertion order.
func (r *Registry) On(day TimePoint) []Holiday {
	return On(r, day).ToSlice()
}

// Equal reports whether both registries cover the same year with the same
// keys, each on the same day with the same type.
func (r *Registry) Equal(other *Registry) bool {
	if other == nil || r.year != other.year || r.Count() != other.Count() {
		return false
	}
	for key, h := range r.holidays {
		o, ok := other.holidays[key]
		if !ok || !o.Date.Equal(h.Date) || o.Type != h.Type || o.Substitutes != h.Substitutes {
			return false
		}
	}
	return true
}

// snapshot returns the holidays in insertion order without cloning names;
// callers must not mutate the result.
func (r *Registry) snapshot() []Holiday {
	out := make([]Holiday, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, r.holidays[key])
	}
	return out
}
