// Package dispatch issues remote mutations for one entity family and keeps
// its cache reconciled. Each intent kind follows the same lifecycle: the
// family's loading flag for that kind goes up and the error slot clears, an
// optimistic value is staged where one can be computed, the remote call runs,
// and on settlement the cache is confirmed (success) or reverted (failure)
// before the flag drops. Date-bearing payload fields are wire-converted on
// copies; the caller's values keep their epoch-ms integers.
//
// No retries, timeouts, or cancellation: a dispatched call runs to
// settlement, and its settlement always applies, even if the view that
// triggered it is gone. Operations on the same id are not serialized;
// whichever settlement applies last wins.
package dispatch

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/docmap"
	"github.com/taranenko/taskfeed/internal/remote"
)

// Dispatcher mutates one entity family. Writes to the family's cache happen
// only here and in the fetch orchestrator.
type Dispatcher[T cache.Entity] struct {
	store remote.Store
	cache *cache.Cache[T]
	codec docmap.Codec[T]
	log   *slog.Logger
}

// New creates a dispatcher for one family.
func New[T cache.Entity](log *slog.Logger, store remote.Store, c *cache.Cache[T], codec docmap.Codec[T]) *Dispatcher[T] {
	return &Dispatcher[T]{
		store: store,
		cache: c,
		codec: codec,
		log:   log.With("component", "dispatch", "collection", codec.Collection()),
	}
}

// Cache exposes the family cache for read-side consumers (views).
func (d *Dispatcher[T]) Cache() *cache.Cache[T] { return d.cache }

// begin marks a dispatch of the given kind in flight and clears the error
// left by a previous settlement.
func (d *Dispatcher[T]) begin(kind cache.OpKind) {
	d.cache.SetError("")
	d.cache.SetLoading(kind, true)
}

// fail records the settlement error. The cache content was already reverted
// by the caller where staging occurred.
func (d *Dispatcher[T]) fail(kind cache.OpKind, err error) {
	d.cache.SetError(err.Error())
	d.cache.SetLoading(kind, false)
}

// done drops the loading flag. Callers apply the confirmed cache update
// first, so the update is visible by the time the flag reads false.
func (d *Dispatcher[T]) done(kind cache.OpKind) {
	d.cache.SetLoading(kind, false)
}

func newIntentID() string { return uuid.NewString() }

// tempID builds the distinguishable temporary id an optimistic create is
// staged under until the store assigns the real one.
func tempID(intentID string) string { return "pending-" + intentID }
