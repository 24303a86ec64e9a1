// Package replica wraps the plain value types of package crdt
// into a lock-guarded participant of a replica group. It owns
// the process-wide state a replica carries for its lifetime:
// a stable name, its counter slot index and the monotonic
// sequence number its observed-removed set tags are drawn
// from. All cross-replica exchange happens through Sync,
// which merges read-only snapshots in both directions.
package replica

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/pkg/errors"
	"github.com/undisputed-seraphim/crdt/crdt"
)

// Structs

// Metrics bundles the instrumentation counters of one replica
// group. Use NopMetrics when no backend is configured.
type Metrics struct {
	Operations metrics.Counter
	Merges     metrics.Counter
}

// Replica is one participant of a replica group of fixed
// size. It holds a positive-negative counter and an observed-
// removed set of strings and synchronizes all access with an
// internal read-write mutex, because the underlying crdt
// types deliberately do not.
type Replica struct {
	name  string
	index int
	size  int
	seq   uint64

	lock    sync.RWMutex
	logger  log.Logger
	metrics *Metrics

	counter *crdt.PNCounter
	set     *crdt.ORSet[string]
}

// Functions

// NopMetrics returns metrics that discard every update.
func NopMetrics() *Metrics {

	return &Metrics{
		Operations: discard.NewCounter(),
		Merges:     discard.NewCounter(),
	}
}

// New initializes a replica called name owning counter slot
// index in a group of size replicas. The name has to be
// unique in the group for the lifetime of the process: the
// set tags derived from it would otherwise collide and break
// convergence.
func New(name string, index int, size int, logger log.Logger, m *Metrics) (*Replica, error) {

	if name == "" {
		return nil, errors.New("replica name must not be empty")
	}

	if (index < 0) || (index >= size) {
		return nil, errors.Errorf("replica index %d out of range for group size %d", index, size)
	}

	if m == nil {
		m = NopMetrics()
	}

	r := &Replica{
		name:    name,
		index:   index,
		size:    size,
		logger:  log.With(logger, "replica", name),
		metrics: m,
		counter: crdt.NewPNCounter(size),
	}

	// Tags combine the replica identity with a sequence
	// number that only ever advances, guarded by the
	// replica lock held during Add.
	r.set = crdt.NewORSetWithTags[string](func() crdt.Tag {
		r.seq++
		return crdt.Tag(fmt.Sprintf("%s-%d", r.name, r.seq))
	})

	return r, nil
}

// Name returns the stable identity of this replica.
func (r *Replica) Name() string {

	return r.name
}

// Increment advances this replica's own counter slot.
func (r *Replica) Increment() error {

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.counter.Increment(r.index); err != nil {
		return errors.Wrapf(err, "replica %s", r.name)
	}

	r.metrics.Operations.Add(1)

	return nil
}

// Decrement lowers this replica's own counter slot.
func (r *Replica) Decrement() error {

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.counter.Decrement(r.index); err != nil {
		return errors.Wrapf(err, "replica %s", r.name)
	}

	r.metrics.Operations.Add(1)

	return nil
}

// CounterValue returns the counter value as currently
// observed by this replica.
func (r *Replica) CounterValue() int64 {

	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.counter.Value()
}

// AddItem inserts item into this replica's set.
func (r *Replica) AddItem(item string) {

	r.lock.Lock()
	defer r.lock.Unlock()

	tag := r.set.Add(item)
	r.metrics.Operations.Add(1)

	level.Debug(r.logger).Log(
		"msg", "added item to set",
		"item", item,
		"tag", tag,
	)
}

// RemoveItem removes every locally observed occurrence of
// item from this replica's set.
func (r *Replica) RemoveItem(item string) {

	r.lock.Lock()
	defer r.lock.Unlock()

	r.set.Remove(item)
	r.metrics.Operations.Add(1)

	level.Debug(r.logger).Log(
		"msg", "removed item from set",
		"item", item,
	)
}

// ContainsItem reports whether item is currently present in
// this replica's view of the set.
func (r *Replica) ContainsItem(item string) bool {

	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.set.Contains(item)
}

// Items returns the distinct set members as currently
// observed by this replica.
func (r *Replica) Items() []string {

	r.lock.RLock()
	defer r.lock.RUnlock()

	items := make([]string, 0, r.set.Len())
	for item := range r.set.Elements() {
		items = append(items, item)
	}

	return items
}

// Sync exchanges state with peer: each side merges a snapshot
// of the other, after which both hold the join of the two
// previous states. Both replica locks are taken in a fixed
// order so that concurrent syncs cannot deadlock.
func (r *Replica) Sync(peer *Replica) error {

	if r == peer {
		return nil
	}

	first, second := r, peer
	if peer.name < r.name {
		first, second = peer, r
	}

	first.lock.Lock()
	defer first.lock.Unlock()
	second.lock.Lock()
	defer second.lock.Unlock()

	// Merge consumes read-only snapshots, never live
	// handles on the peer's state.
	counterSnap := peer.counter.Clone()
	setSnap := peer.set.Clone()

	if err := r.counter.Merge(counterSnap); err != nil {
		return errors.Wrapf(err, "replica %s merging counter of %s", r.name, peer.name)
	}
	r.set.Merge(setSnap)

	if err := peer.counter.Merge(r.counter.Clone()); err != nil {
		return errors.Wrapf(err, "replica %s merging counter of %s", peer.name, r.name)
	}
	peer.set.Merge(r.set.Clone())

	r.metrics.Merges.Add(1)
	peer.metrics.Merges.Add(1)

	level.Debug(r.logger).Log(
		"msg", "synchronized state with peer",
		"peer", peer.name,
		"counter", r.counter.Value(),
		"items", r.set.Len(),
	)

	return nil
}

// Converged reports whether this replica and peer currently
// hold structurally equal state.
func (r *Replica) Converged(peer *Replica) bool {

	if r == peer {
		return true
	}

	first, second := r, peer
	if peer.name < r.name {
		first, second = peer, r
	}

	first.lock.RLock()
	defer first.lock.RUnlock()
	second.lock.RLock()
	defer second.lock.RUnlock()

	return r.counter.Equal(peer.counter) && r.set.Equal(peer.set)
}
