package crdt

import (
	"github.com/pkg/errors"
)

// Structs

// GCounter is a grow-only counter for a cluster of a fixed
// number of replicas. Slot i is owned by replica i and is
// only ever incremented by it; all other slots are replicated
// copies that advance exclusively through Merge.
type GCounter struct {
	slots []uint64
}

// Functions

// NewGCounter returns a zeroed grow-only counter
// accounting for size replicas.
func NewGCounter(size int) *GCounter {

	return &GCounter{
		slots: make([]uint64, size),
	}
}

// Size returns the number of replica slots this
// counter was created for.
func (c *GCounter) Size() int {

	return len(c.slots)
}

// Increment adds one to the slot owned by replica index.
// An out-of-range index fails with ErrInvalidIndex and
// leaves the counter unchanged.
func (c *GCounter) Increment(index int) error {

	if (index < 0) || (index >= len(c.slots)) {
		return errors.Wrapf(ErrInvalidIndex, "increment of slot %d in counter of size %d", index, len(c.slots))
	}

	c.slots[index]++

	return nil
}

// Value returns the sum over all replica slots.
func (c *GCounter) Value() uint64 {

	var sum uint64
	for _, slot := range c.slots {
		sum += slot
	}

	return sum
}

// Merge folds the read-only snapshot other into the receiver
// by taking the slot-wise maximum. Both counters have to be
// created for the same number of replicas, otherwise Merge
// fails with ErrIncompatibleShape and changes nothing.
func (c *GCounter) Merge(other *GCounter) error {

	if len(other.slots) != len(c.slots) {
		return errors.Wrapf(ErrIncompatibleShape, "merge of counters of size %d and %d", len(c.slots), len(other.slots))
	}

	for i := range c.slots {
		if other.slots[i] > c.slots[i] {
			c.slots[i] = other.slots[i]
		}
	}

	return nil
}

// LessOrEqual reports whether the receiver precedes other in
// the partial order induced by Merge, that is, whether every
// slot of the receiver is at most the corresponding slot of
// other. Two empty counters are vacuously ordered. Counters
// of differing size fail with ErrIncompatibleShape.
func (c *GCounter) LessOrEqual(other *GCounter) (bool, error) {

	if len(other.slots) != len(c.slots) {
		return false, errors.Wrapf(ErrIncompatibleShape, "order comparison of counters of size %d and %d", len(c.slots), len(other.slots))
	}

	for i := range c.slots {
		if c.slots[i] > other.slots[i] {
			return false, nil
		}
	}

	return true, nil
}

// Equal reports structural equality of two counters.
func (c *GCounter) Equal(other *GCounter) bool {

	if len(other.slots) != len(c.slots) {
		return false
	}

	for i := range c.slots {
		if c.slots[i] != other.slots[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent deep copy of the counter,
// suitable as a snapshot handed to another replica's Merge.
func (c *GCounter) Clone() *GCounter {

	cloned := &GCounter{
		slots: make([]uint64, len(c.slots)),
	}
	copy(cloned.slots, c.slots)

	return cloned
}
