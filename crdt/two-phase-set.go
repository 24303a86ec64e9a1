package crdt

// Structs

// TwoPhaseSet combines two grow-only sets to support removal
// of elements. An element has to be observed in the add set
// before it can be removed, and a removal is permanent: once
// an element entered the remove set, re-adding it never makes
// it a member again. Removals take precedence over additions.
type TwoPhaseSet[E comparable] struct {
	adds    *GSet[E]
	removes *GSet[E]
}

// Functions

// NewTwoPhaseSet returns an empty initialized two-phase set.
func NewTwoPhaseSet[E comparable]() *TwoPhaseSet[E] {

	return &TwoPhaseSet[E]{
		adds:    NewGSet[E](),
		removes: NewGSet[E](),
	}
}

// Add inserts elem into the add set. The call is always
// permitted, but if elem was removed before, it stays
// logically absent: membership is evaluated against the
// remove set, not enforced by rejecting the add.
func (s *TwoPhaseSet[E]) Add(elem E) {

	s.adds.Add(elem)
}

// Remove marks elem as removed if it has been observed in the
// add set. Removing a never-added element is a no-op, which
// keeps Remove total and idempotent; callers preferring a
// strict policy can treat that case as ErrElementNotObserved
// by checking Contains first.
func (s *TwoPhaseSet[E]) Remove(elem E) {

	if s.adds.Contains(elem) {
		s.removes.Add(elem)
	}
}

// Contains reports whether elem is a logical member of the
// set: added and not removed.
func (s *TwoPhaseSet[E]) Contains(elem E) bool {

	return s.adds.Contains(elem) && !s.removes.Contains(elem)
}

// Len returns the number of logical members.
func (s *TwoPhaseSet[E]) Len() int {

	return s.adds.Len() - s.removes.Len()
}

// Value materializes the logical set as the difference
// between the add and the remove set. This is not a cheap
// accessor: every call walks the entire add set and allocates
// the result anew, so the view never goes stale after further
// mutation.
func (s *TwoPhaseSet[E]) Value() []E {

	value := make([]E, 0, s.adds.Len()-s.removes.Len())

	for elem := range s.adds.Elements() {
		if !s.removes.Contains(elem) {
			value = append(value, elem)
		}
	}

	return value
}

// Merge folds the read-only snapshot other into the receiver
// by merging the add and the remove set independently.
func (s *TwoPhaseSet[E]) Merge(other *TwoPhaseSet[E]) {

	s.adds.Merge(other.adds)
	s.removes.Merge(other.removes)
}

// SubsetOf reports whether the receiver precedes other in the
// partial order induced by Merge: both the add and the remove
// set have to be subsets of their counterpart.
func (s *TwoPhaseSet[E]) SubsetOf(other *TwoPhaseSet[E]) bool {

	return s.adds.SubsetOf(other.adds) && s.removes.SubsetOf(other.removes)
}

// Equal reports structural equality of two sets.
func (s *TwoPhaseSet[E]) Equal(other *TwoPhaseSet[E]) bool {

	return s.adds.Equal(other.adds) && s.removes.Equal(other.removes)
}

// Clone returns an independent deep copy of the set, suitable
// as a snapshot handed to another replica's Merge.
func (s *TwoPhaseSet[E]) Clone() *TwoPhaseSet[E] {

	return &TwoPhaseSet[E]{
		adds:    s.adds.Clone(),
		removes: s.removes.Clone(),
	}
}
