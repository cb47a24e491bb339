package generic

import (
	"iter"
)

// =============================================================================
// FILTER VIEWS - Lazy, restartable projections over a registry
// =============================================================================

// Filter selects holidays from a snapshot taken when the filter was created.
// Every method walks the snapshot again, so All, Count and ToSlice always
// agree and a filter can be iterated any number of times.
type Filter struct {
	source []Holiday
	match  func(Holiday) bool
}

// NewFilter builds a filter over the registry's current contents.
func NewFilter(r *Registry, match func(Holiday) bool) Filter {
	return Filter{source: r.snapshot(), match: match}
}

// ByType selects holidays of one classification.
func ByType(r *Registry, t Type) Filter {
	return NewFilter(r, func(h Holiday) bool { return h.Type == t })
}

// Official selects national holidays.
func Official(r *Registry) Filter { return ByType(r, TypeNational) }

// Observed selects observances, including substitute days.
func Observed(r *Registry) Filter { return ByType(r, TypeObservance) }

// Seasonal selects seasonal markers.
func Seasonal(r *Registry) Filter { return ByType(r, TypeSeason) }

// Bank selects bank holidays.
func Bank(r *Registry) Filter { return ByType(r, TypeBank) }

// Other selects holidays of type other.
func Other(r *Registry) Filter { return ByType(r, TypeOther) }

// Between selects holidays within period.
func Between(r *Registry, period Period) Filter {
	return NewFilter(r, func(h Holiday) bool { return period.Contains(h.Date) })
}

// On selects holidays falling on day.
func On(r *Registry, day TimePoint) Filter {
	return NewFilter(r, func(h Holiday) bool { return h.Date.Equal(day) })
}

// All iterates matching (key, holiday) pairs in registry order.
func (f Filter) All() iter.Seq2[string, Holiday] {
	return func(yield func(string, Holiday) bool) {
		for _, h := range f.source {
			if !f.match(h) {
				continue
			}
			if !yield(h.Key, h.clone()) {
				return
			}
		}
	}
}

// Count returns the number of matching holidays.
func (f Filter) Count() int {
	n := 0
	for _, h := range f.source {
		if f.match(h) {
			n++
		}
	}
	return n
}

// ToSlice materializes the matching holidays.
func (f Filter) ToSlice() []Holiday {
	var out []Holiday
	for _, h := range f.All() {
		out = append(out, h)
	}
	return out
}

// ToMap materializes the matching holidays keyed by holiday key.
func (f Filter) ToMap() map[string]Holiday {
	out := make(map[string]Holiday)
	for key, h := range f.All() {
		out[key] = h
	}
	return out
}

// Keys returns the matching keys in registry order.
func (f Filter) Keys() []string {
	var out []string
	for key := range f.All() {
		out = append(out, key)
	}
	return out
}
