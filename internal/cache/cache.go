// Package cache holds the in-memory mirror of one remote document family.
// A Cache maps entity ids to their last-known records, tracks a loading flag
// per operation kind and a last-error slot, and keeps a monotonic version
// counter that derived views key their memoization on.
//
// Entries are two-state: a confirmed value (what the store last acknowledged)
// and an optional pending value staged by an in-flight mutation. Readers see
// the pending value while it exists; a failed settlement reverts to the
// confirmed value instead of leaving an unconfirmed write cached.
//
// All methods are synchronous and perform no I/O. Only the mutation
// dispatcher and the fetch orchestrator write; views and the UI read.
package cache

import (
	"sync"
)

// Entity is anything the cache can hold, keyed by its store-assigned id.
type Entity interface {
	EntityID() string
}

// OpKind names one kind of dispatched operation. Each kind has its own
// loading flag, reflecting only the most recently dispatched operation of
// that kind.
type OpKind string

const (
	OpFetch     OpKind = "fetch"
	OpCreate    OpKind = "create"
	OpUpdate    OpKind = "update"
	OpDelete    OpKind = "delete"
	OpToggle    OpKind = "toggle"
	OpSubAppend OpKind = "sub_append"
	OpSubRemove OpKind = "sub_remove"
)

type entry[T Entity] struct {
	confirmed    T
	hasConfirmed bool
	pending      *T
	intentID     string
}

// value returns what a reader should see: pending if staged, else confirmed.
func (e *entry[T]) value() T {
	if e.pending != nil {
		return *e.pending
	}
	return e.confirmed
}

// Cache is the in-memory state of one entity family.
type Cache[T Entity] struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*entry[T]
	loading map[OpKind]bool
	lastErr string
	version uint64
}

// New creates an empty cache.
func New[T Entity]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]*entry[T]),
		loading: make(map[OpKind]bool),
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Get returns the entity with the given id, pending value preferred.
func (c *Cache[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value(), true
}

// All returns every cached entity in insertion order.
func (c *Cache[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		if e, ok := c.entries[id]; ok {
			out = append(out, e.value())
		}
	}
	return out
}

// Len returns the number of cached entities.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Loading reports whether an operation of the given kind is in flight.
func (c *Cache[T]) Loading(kind OpKind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading[kind]
}

// Err returns the last error message, or "" when the last settlement
// succeeded.
func (c *Cache[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Version returns the monotonic mutation counter. It changes on every
// content mutation, so equal versions imply identical cached content.
func (c *Cache[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// ---------------------------------------------------------------------------
// Confirmed writes
// ---------------------------------------------------------------------------

// UpsertOne inserts or replaces a confirmed entity by id.
func (c *Cache[T]) UpsertOne(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertLocked(v)
	c.version++
}

// UpsertMany inserts or replaces a batch of confirmed entities. The batch is
// additive: entities absent from it are kept. Calling it twice with the same
// batch leaves the cache identical to calling it once.
func (c *Cache[T]) UpsertMany(vs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range vs {
		c.upsertLocked(v)
	}
	c.version++
}

// ReplaceAll drops every cached entity and installs the batch as the new
// authoritative content, in batch order. Loading flags and the error slot
// are kept.
func (c *Cache[T]) ReplaceAll(vs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = c.order[:0]
	c.entries = make(map[string]*entry[T], len(vs))
	for _, v := range vs {
		c.upsertLocked(v)
	}
	c.version++
}

// RemoveOne deletes an entity by id. Removing an absent id is a no-op.
func (c *Cache[T]) RemoveOne(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return
	}
	delete(c.entries, id)
	c.removeFromOrderLocked(id)
	c.version++
}

// Clear empties the cache entirely, including flags and the error slot.
// Used when the principal signs out.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = nil
	c.entries = make(map[string]*entry[T])
	c.loading = make(map[OpKind]bool)
	c.lastErr = ""
	c.version++
}

// ---------------------------------------------------------------------------
// Pending writes (optimistic staging)
// ---------------------------------------------------------------------------

// StagePending records an optimistic value for the entity, keyed by the
// value's own id, tagged with the dispatching intent. For creates the id is
// a temporary one; readers see the staged value until the store settles.
func (c *Cache[T]) StagePending(v T, intentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := v.EntityID()
	e, ok := c.entries[id]
	if !ok {
		e = &entry[T]{}
		c.entries[id] = e
		c.order = append(c.order, id)
	}
	val := v
	e.pending = &val
	e.intentID = intentID
	c.version++
}

// ConfirmPending installs the store-acknowledged value for a previously
// staged entity. If the store assigned a different id (creates), the entry
// is re-keyed in place, keeping its insertion position. The staged value is
// dropped only when it belongs to the confirming intent; a newer intent's
// staging stays, so the last settlement still wins.
func (c *Cache[T]) ConfirmPending(stagedID string, confirmed T, intentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := confirmed.EntityID()
	e, ok := c.entries[stagedID]
	if !ok {
		// The entry vanished (e.g. cleared on sign-out mid-flight);
		// settlement still applies the confirmed value.
		e = &entry[T]{}
		c.entries[id] = e
		c.order = append(c.order, id)
	} else if id != stagedID {
		delete(c.entries, stagedID)
		c.entries[id] = e
		c.rekeyOrderLocked(stagedID, id)
	}

	e.confirmed = confirmed
	e.hasConfirmed = true
	if e.intentID == intentID {
		e.pending = nil
		e.intentID = ""
	}
	c.version++
}

// RevertPending drops the staged value after a failed settlement, restoring
// the last confirmed value. A staged create with no confirmed value is
// removed entirely. Staging owned by a different intent is left untouched.
func (c *Cache[T]) RevertPending(stagedID string, intentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[stagedID]
	if !ok || e.intentID != intentID {
		return
	}
	e.pending = nil
	e.intentID = ""
	if !e.hasConfirmed {
		delete(c.entries, stagedID)
		c.removeFromOrderLocked(stagedID)
	}
	c.version++
}

// ---------------------------------------------------------------------------
// Lifecycle flags
// ---------------------------------------------------------------------------

// SetLoading flips the loading flag for one operation kind.
func (c *Cache[T]) SetLoading(kind OpKind, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading[kind] = v
}

// SetError records the last settlement's error message. Empty clears it.
func (c *Cache[T]) SetError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = msg
}

// ---------------------------------------------------------------------------
// internals (callers hold c.mu)
// ---------------------------------------------------------------------------

func (c *Cache[T]) upsertLocked(v T) {
	id := v.EntityID()
	e, ok := c.entries[id]
	if !ok {
		e = &entry[T]{}
		c.entries[id] = e
		c.order = append(c.order, id)
	}
	e.confirmed = v
	e.hasConfirmed = true
	e.pending = nil
	e.intentID = ""
}

func (c *Cache[T]) removeFromOrderLocked(id string) {
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Cache[T]) rekeyOrderLocked(oldID, newID string) {
	for i, o := range c.order {
		if o == oldID {
			c.order[i] = newID
			return
		}
	}
	c.order = append(c.order, newID)
}
