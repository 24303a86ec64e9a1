package crdt

import (
	"github.com/pkg/errors"
)

// Variables

var (
	// ErrInvalidIndex is returned by counter operations that
	// address a replica slot outside the configured size. The
	// failed operation leaves the counter untouched.
	ErrInvalidIndex = errors.New("replica index out of range")

	// ErrIncompatibleShape is returned when two values of
	// mismatched static configuration are combined, e.g. two
	// counters created for a different number of replicas.
	ErrIncompatibleShape = errors.New("incompatible replica configuration")

	// ErrElementNotObserved describes the removal of an element
	// that was never added. TwoPhaseSet.Remove treats this case
	// as a no-op instead of failing; the sentinel exists for
	// callers that prefer the strict policy and check membership
	// themselves before removing.
	ErrElementNotObserved = errors.New("element was not observed in set")
)
