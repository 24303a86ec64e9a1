/*
Package crdt implements the family of state-based convergent replicated
data types (CvRDTs) this library is built around: a grow-only counter
(GCounter), a positive-negative counter (PNCounter), a grow-only set
(GSet), a two-phase set (TwoPhaseSet) and an observed-removed set (ORSet).

Every type forms a bounded join-semilattice: its Merge operation is
commutative, associative and idempotent, and induces the partial order
exposed as LessOrEqual or SubsetOf. Two replicas that have seen the same
updates therefore reach the same state no matter in which order, or how
often, their snapshots are merged.

CAUTION! Consider these two requirements:
* Merge consumes a read-only snapshot of the peer's state. It never takes
  a live handle and never mutates its argument.
* Access to the functions this package provides is expected to be
  synchronized explicitly by some outside measures, e.g. by wrapping calls
  to this package with a mutex lock if concurrent access is possible. This
  package does not(!) synchronize access by itself. Package replica offers
  such a wrapper.

The state-based implementations of this package are practical derivations
from their specification by Shapiro, Preguiça, Baquero and Zawirski,
available under: https://hal.inria.fr/inria-00555588/document
*/
package crdt
