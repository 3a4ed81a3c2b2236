// Package orderedset provides a small insertion-ordered string set used by
// the resolver core. Lookup is map-backed; iteration and Values follow first
// insertion order, which keeps query results deterministic without sorting.
package orderedset

// Set is an insertion-ordered set of string-like values.
// The zero value is not usable; construct with [New].
type Set[T ~string] struct {
	index map[T]struct{}
	order []T
}

// New creates a [Set] seeded with vals. Duplicates collapse onto their first
// occurrence.
func New[T ~string](vals ...T) *Set[T] {
	s := &Set[T]{
		index: make(map[T]struct{}, len(vals)),
	}
	s.Add(vals...)
	return s
}

// Add inserts vals, skipping values already present. Insertion order of new
// values is preserved.
func (s *Set[T]) Add(vals ...T) {
	for _, v := range vals {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = struct{}{}
		s.order = append(s.order, v)
	}
}

// Remove deletes vals. Values not present are ignored. Remaining elements
// keep their relative order.
func (s *Set[T]) Remove(vals ...T) {
	removed := false
	for _, v := range vals {
		if _, ok := s.index[v]; !ok {
			continue
		}
		delete(s.index, v)
		removed = true
	}
	if !removed {
		return
	}

	kept := s.order[:0]
	for _, v := range s.order {
		if _, ok := s.index[v]; ok {
			kept = append(kept, v)
		}
	}
	s.order = kept
}

// Replace discards the current contents and inserts vals as if into a fresh
// set.
func (s *Set[T]) Replace(vals ...T) {
	s.index = make(map[T]struct{}, len(vals))
	s.order = s.order[:0]
	s.Add(vals...)
}

// Has reports membership.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns a copy of the elements in insertion order, or nil when the
// set is empty. Mutating the returned slice does not affect the set.
func (s *Set[T]) Values() []T {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

// Range calls fn for each element in insertion order until fn returns false.
// Range does not allocate; the set must not be mutated during iteration.
func (s *Set[T]) Range(fn func(T) bool) {
	for _, v := range s.order {
		if !fn(v) {
			return
		}
	}
}
