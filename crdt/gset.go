package crdt

import (
	"iter"
	"maps"
)

// Structs

// GSet is a grow-only set: elements are only ever added,
// never removed, so the set only grows over a replica's
// lifetime and the merger of two GSets is their union.
type GSet[E comparable] struct {
	elements map[E]struct{}
}

// Functions

// NewGSet returns an empty initialized grow-only set.
func NewGSet[E comparable]() *GSet[E] {

	return &GSet[E]{
		elements: make(map[E]struct{}),
	}
}

// Add inserts elem into the set. Adding an element that is
// already present has no observable effect.
func (s *GSet[E]) Add(elem E) {

	s.elements[elem] = struct{}{}
}

// Contains reports whether elem is present in the set.
func (s *GSet[E]) Contains(elem E) bool {

	_, found := s.elements[elem]

	return found
}

// Len returns the number of elements in the set.
func (s *GSet[E]) Len() int {

	return len(s.elements)
}

// Elements returns a restartable iterator over all elements
// of the set in no particular order.
func (s *GSet[E]) Elements() iter.Seq[E] {

	return maps.Keys(s.elements)
}

// Merge folds the read-only snapshot other into the receiver
// by taking the union of both element sets.
func (s *GSet[E]) Merge(other *GSet[E]) {

	for elem := range other.elements {
		s.elements[elem] = struct{}{}
	}
}

// SubsetOf reports whether the receiver precedes other in the
// partial order induced by Merge, that is, whether every
// element of the receiver is also present in other. The test
// probes membership element by element because the underlying
// hash sets share no iteration order. The empty set is a
// subset of everything.
func (s *GSet[E]) SubsetOf(other *GSet[E]) bool {

	for elem := range s.elements {
		if _, found := other.elements[elem]; !found {
			return false
		}
	}

	return true
}

// Equal reports structural equality of two sets.
func (s *GSet[E]) Equal(other *GSet[E]) bool {

	return maps.Equal(s.elements, other.elements)
}

// Clone returns an independent deep copy of the set, suitable
// as a snapshot handed to another replica's Merge.
func (s *GSet[E]) Clone() *GSet[E] {

	return &GSet[E]{
		elements: maps.Clone(s.elements),
	}
}
