package crdt

import (
	"testing"

	"github.com/pkg/errors"
)

// Functions

// TestGCounterIncrement executes a white-box unit test
// on implemented Increment() function.
func TestGCounterIncrement(t *testing.T) {

	// Create new GCounter for three replicas.
	c := NewGCounter(3)

	if c.Value() != 0 {
		t.Fatalf("[crdt.TestGCounterIncrement] Expected fresh counter to have value 0 but Value() returned %d\n", c.Value())
	}

	// Increment five times across the three slots.
	for _, index := range []int{0, 1, 1, 2, 0} {

		if err := c.Increment(index); err != nil {
			t.Fatalf("[crdt.TestGCounterIncrement] Expected increment of slot %d to succeed but received: %v\n", index, err)
		}
	}

	if c.Value() != 5 {
		t.Fatalf("[crdt.TestGCounterIncrement] Expected counter value 5 after five increments but Value() returned %d\n", c.Value())
	}
}

// TestGCounterIncrementInvalidIndex verifies that an
// out-of-range increment fails with ErrInvalidIndex
// and leaves the counter untouched.
func TestGCounterIncrementInvalidIndex(t *testing.T) {

	c := NewGCounter(3)

	if err := c.Increment(0); err != nil {
		t.Fatalf("[crdt.TestGCounterIncrementInvalidIndex] Expected in-range increment to succeed but received: %v\n", err)
	}

	before := c.Clone()

	for _, index := range []int{3, 7, -1} {

		err := c.Increment(index)
		if !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("[crdt.TestGCounterIncrementInvalidIndex] Expected increment of slot %d to fail with ErrInvalidIndex but received: %v\n", index, err)
		}
	}

	// State has to be completely unchanged by the failures.
	if !c.Equal(before) {
		t.Fatalf("[crdt.TestGCounterIncrementInvalidIndex] Expected counter state to be unchanged after failed increments\n")
	}
}

// TestGCounterMerge executes a white-box unit test
// on implemented Merge() function.
func TestGCounterMerge(t *testing.T) {

	// Build counters with slots [1, 0, 2] and [0, 3, 1].
	a := NewGCounter(3)
	a.slots = []uint64{1, 0, 2}

	b := NewGCounter(3)
	b.slots = []uint64{0, 3, 1}

	if err := a.Merge(b); err != nil {
		t.Fatalf("[crdt.TestGCounterMerge] Expected merge of equally sized counters to succeed but received: %v\n", err)
	}

	// Slot-wise maximum is [1, 3, 2], value 6.
	for i, expected := range []uint64{1, 3, 2} {
		if a.slots[i] != expected {
			t.Fatalf("[crdt.TestGCounterMerge] Expected slot %d to hold %d after merge but found %d\n", i, expected, a.slots[i])
		}
	}

	if a.Value() != 6 {
		t.Fatalf("[crdt.TestGCounterMerge] Expected merged counter value 6 but Value() returned %d\n", a.Value())
	}

	// The merge consumed a read-only snapshot of b.
	for i, expected := range []uint64{0, 3, 1} {
		if b.slots[i] != expected {
			t.Fatalf("[crdt.TestGCounterMerge] Expected merge argument to stay untouched but slot %d changed to %d\n", i, b.slots[i])
		}
	}
}

// TestGCounterMergeIncompatibleShape verifies that counters
// created for a different number of replicas refuse to merge.
func TestGCounterMergeIncompatibleShape(t *testing.T) {

	a := NewGCounter(3)
	b := NewGCounter(4)

	err := a.Merge(b)
	if !errors.Is(err, ErrIncompatibleShape) {
		t.Fatalf("[crdt.TestGCounterMergeIncompatibleShape] Expected merge of differently sized counters to fail with ErrIncompatibleShape but received: %v\n", err)
	}

	if _, err = a.LessOrEqual(b); !errors.Is(err, ErrIncompatibleShape) {
		t.Fatalf("[crdt.TestGCounterMergeIncompatibleShape] Expected order comparison of differently sized counters to fail with ErrIncompatibleShape but received: %v\n", err)
	}
}

// TestGCounterLessOrEqual executes a white-box unit test
// on implemented LessOrEqual() function.
func TestGCounterLessOrEqual(t *testing.T) {

	a := NewGCounter(3)
	b := NewGCounter(3)

	// Two zeroed counters are vacuously ordered both ways.
	le, err := a.LessOrEqual(b)
	if err != nil {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected comparison of zeroed counters to succeed but received: %v\n", err)
	}
	if le != true {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected zeroed counters to compare as ordered but LessOrEqual() returned false\n")
	}

	// Advance b past a in one slot.
	if err := b.Increment(1); err != nil {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected increment to succeed but received: %v\n", err)
	}

	if le, _ = a.LessOrEqual(b); le != true {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected zeroed counter to precede incremented one but LessOrEqual() returned false\n")
	}

	if le, _ = b.LessOrEqual(a); le != false {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected incremented counter not to precede zeroed one but LessOrEqual() returned true\n")
	}

	// Make the counters concurrent: each is ahead in one slot.
	if err := a.Increment(0); err != nil {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected increment to succeed but received: %v\n", err)
	}

	if le, _ = a.LessOrEqual(b); le != false {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected concurrent counters not to be ordered but LessOrEqual() returned true\n")
	}

	if le, _ = b.LessOrEqual(a); le != false {
		t.Fatalf("[crdt.TestGCounterLessOrEqual] Expected concurrent counters not to be ordered but LessOrEqual() returned true\n")
	}
}
