package crdt

import (
	"github.com/pkg/errors"
)

// Structs

// PNCounter combines two grow-only counters into a counter
// that supports increment and decrement. Its value is the
// difference between the increment and the decrement counter
// and may be negative.
type PNCounter struct {
	inc *GCounter
	dec *GCounter
}

// Functions

// NewPNCounter returns a zeroed positive-negative counter
// accounting for size replicas.
func NewPNCounter(size int) *PNCounter {

	return &PNCounter{
		inc: NewGCounter(size),
		dec: NewGCounter(size),
	}
}

// Size returns the number of replica slots this
// counter was created for.
func (c *PNCounter) Size() int {

	return c.inc.Size()
}

// Increment adds one to the increment counter slot owned by
// replica index. An out-of-range index fails with
// ErrInvalidIndex and leaves the counter unchanged.
func (c *PNCounter) Increment(index int) error {

	return c.inc.Increment(index)
}

// Decrement adds one to the decrement counter slot owned by
// replica index. An out-of-range index fails with
// ErrInvalidIndex and leaves the counter unchanged.
func (c *PNCounter) Decrement(index int) error {

	return c.dec.Increment(index)
}

// Value returns the difference between all observed
// increments and all observed decrements.
func (c *PNCounter) Value() int64 {

	return int64(c.inc.Value()) - int64(c.dec.Value())
}

// Merge folds the read-only snapshot other into the receiver
// by merging the increment and the decrement counter
// component-wise. Counters of differing size fail with
// ErrIncompatibleShape and change nothing.
func (c *PNCounter) Merge(other *PNCounter) error {

	// Check the shape up front so that a failed merge
	// never applies only one of the two components.
	if other.Size() != c.Size() {
		return errors.Wrapf(ErrIncompatibleShape, "merge of counters of size %d and %d", c.Size(), other.Size())
	}

	if err := c.inc.Merge(other.inc); err != nil {
		return err
	}

	return c.dec.Merge(other.dec)
}

// LessOrEqual reports whether the receiver precedes other in
// the partial order induced by Merge: both the increment and
// the decrement counter have to be ordered. Counters of
// differing size fail with ErrIncompatibleShape.
func (c *PNCounter) LessOrEqual(other *PNCounter) (bool, error) {

	le, err := c.inc.LessOrEqual(other.inc)
	if err != nil {
		return false, err
	}

	if !le {
		return false, nil
	}

	return c.dec.LessOrEqual(other.dec)
}

// Equal reports structural equality of two counters.
func (c *PNCounter) Equal(other *PNCounter) bool {

	return c.inc.Equal(other.inc) && c.dec.Equal(other.dec)
}

// Clone returns an independent deep copy of the counter,
// suitable as a snapshot handed to another replica's Merge.
func (c *PNCounter) Clone() *PNCounter {

	return &PNCounter{
		inc: c.inc.Clone(),
		dec: c.dec.Clone(),
	}
}
