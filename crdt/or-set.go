package crdt

import (
	"fmt"
	"iter"
	"maps"

	"github.com/satori/go.uuid"
)

// Structs

// Tag uniquely identifies a single add operation across all
// replicas of an ORSet. A tag is never reused: once it has
// been tombstoned it stays tombstoned forever.
type Tag string

// TagSource produces a fresh tag for every call. Each drawn
// tag has to be unique across every replica of the set over
// its whole lifetime, otherwise convergence is violated.
type TagSource func() Tag

// ORSet is a state-based observed-removed set. Every add
// inserts the element under a fresh unique tag; a remove
// tombstones exactly the tags observed locally at that point.
// An add running concurrently with a remove therefore wins
// after merge, because the remove cannot have observed the
// add's fresh tag: this is what distinguishes the ORSet from
// the two-phase set, whose removals are permanent.
type ORSet[E comparable] struct {
	elements   map[Tag]E
	tombstones map[Tag]struct{}
	newTag     TagSource
}

// Functions

// NewORSet returns an empty initialized observed-removed set
// drawing version 4 UUIDs as tags.
func NewORSet[E comparable]() *ORSet[E] {

	return NewORSetWithTags[E](func() Tag {
		return Tag(uuid.NewV4().String())
	})
}

// NewORSetWithTags returns an empty initialized observed-
// removed set drawing tags from src, e.g. a replica identity
// combined with a monotonically increasing sequence number.
// Tag uniqueness is the caller's obligation.
func NewORSetWithTags[E comparable](src TagSource) *ORSet[E] {

	return &ORSet[E]{
		elements:   make(map[Tag]E),
		tombstones: make(map[Tag]struct{}),
		newTag:     src,
	}
}

// Add inserts elem into the set under a freshly drawn tag and
// returns that tag. Adding an element that is already present
// makes it present under one more tag.
func (s *ORSet[E]) Add(elem E) Tag {

	tag := s.newTag()
	s.elements[tag] = elem

	return tag
}

// Remove tombstones every tag currently observed locally for
// elem. It never speculatively tombstones tags added
// concurrently on other replicas and not yet merged in, so a
// concurrent add survives the remove. Removing an absent
// element is a no-op.
func (s *ORSet[E]) Remove(elem E) {

	for tag, value := range s.elements {
		if value == elem {
			delete(s.elements, tag)
			s.tombstones[tag] = struct{}{}
		}
	}
}

// Contains reports whether at least one surviving tag for
// elem is present in the set.
func (s *ORSet[E]) Contains(elem E) bool {

	for _, value := range s.elements {
		if value == elem {
			return true
		}
	}

	return false
}

// Tags returns all surviving tags under which elem is
// currently present, in no particular order.
func (s *ORSet[E]) Tags(elem E) []Tag {

	var tags []Tag
	for tag, value := range s.elements {
		if value == elem {
			tags = append(tags, tag)
		}
	}

	return tags
}

// Len returns the number of distinct elements currently
// present in the set.
func (s *ORSet[E]) Len() int {

	distinct := make(map[E]struct{}, len(s.elements))
	for _, value := range s.elements {
		distinct[value] = struct{}{}
	}

	return len(distinct)
}

// Elements returns a restartable iterator over the distinct
// elements currently present, in no particular order.
func (s *ORSet[E]) Elements() iter.Seq[E] {

	return func(yield func(E) bool) {

		seen := make(map[E]struct{}, len(s.elements))

		for _, value := range s.elements {

			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}

			if !yield(value) {
				return
			}
		}
	}
}

// Merge folds the read-only snapshot other into the receiver:
// the union of both tombstone sets shadows the union of both
// add sets, so a tag tombstoned anywhere stays absent
// everywhere. Tags that remain unseen by the peer's remove
// survive, which resolves a concurrent add and remove of the
// same element to present.
func (s *ORSet[E]) Merge(other *ORSet[E]) {

	for tag := range other.tombstones {
		s.tombstones[tag] = struct{}{}
	}

	for tag, value := range other.elements {
		if _, dead := s.tombstones[tag]; dead {
			continue
		}
		s.elements[tag] = value
	}

	// Drop own tags shadowed by merged-in tombstones.
	for tag := range s.elements {
		if _, dead := s.tombstones[tag]; dead {
			delete(s.elements, tag)
		}
	}
}

// SubsetOf reports whether the receiver precedes other in the
// partial order induced by Merge: the historical add set
// (surviving tags plus tombstoned tags) and the tombstone set
// each have to be subsets of their counterpart.
func (s *ORSet[E]) SubsetOf(other *ORSet[E]) bool {

	for tag := range s.tombstones {
		if _, found := other.tombstones[tag]; !found {
			return false
		}
	}

	for tag := range s.elements {

		if _, found := other.elements[tag]; found {
			continue
		}

		// A tag the peer has already tombstoned was still
		// added there, so the add-set order is kept.
		if _, found := other.tombstones[tag]; found {
			continue
		}

		return false
	}

	return true
}

// Equal reports structural equality of two sets: the same
// surviving tag-element pairs and the same tombstones.
func (s *ORSet[E]) Equal(other *ORSet[E]) bool {

	return maps.Equal(s.elements, other.elements) && maps.Equal(s.tombstones, other.tombstones)
}

// Clone returns an independent deep copy of the set, suitable
// as a snapshot handed to another replica's Merge. The clone
// shares the tag source of the original and is meant as a
// read-only snapshot, not as a second live replica.
func (s *ORSet[E]) Clone() *ORSet[E] {

	return &ORSet[E]{
		elements:   maps.Clone(s.elements),
		tombstones: maps.Clone(s.tombstones),
		newTag:     s.newTag,
	}
}

// String renders a compact human-readable view of the set,
// mainly useful in logs and test failures.
func (s *ORSet[E]) String() string {

	return fmt.Sprintf("orset{%d tags, %d tombstones}", len(s.elements), len(s.tombstones))
}
