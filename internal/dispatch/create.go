package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taranenko/taskfeed/internal/cache"
)

// Create stores a new entity and returns it with the store-assigned id.
// The entity is staged optimistically under a temporary id; a failed
// settlement removes the staged entry entirely.
func (d *Dispatcher[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T

	d.begin(cache.OpCreate)
	intentID := newIntentID()
	staged := d.codec.WithID(v, tempID(intentID))
	d.cache.StagePending(staged, intentID)

	id, err := d.store.Add(ctx, d.codec.Collection(), d.codec.Encode(v))
	if err != nil {
		d.cache.RevertPending(tempID(intentID), intentID)
		d.fail(cache.OpCreate, err)
		return zero, fmt.Errorf("create %s: %w", d.codec.Collection(), err)
	}

	confirmed := d.codec.WithID(v, id)
	d.cache.ConfirmPending(tempID(intentID), confirmed, intentID)
	d.done(cache.OpCreate)

	d.log.InfoContext(ctx, "entity created", slog.String("id", id))
	return confirmed, nil
}
