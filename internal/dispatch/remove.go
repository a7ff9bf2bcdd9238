package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/remote"
)

// Remove deletes an entity. The cached entry is dropped only after the
// store confirms; a failed settlement leaves the cache untouched.
func (d *Dispatcher[T]) Remove(ctx context.Context, id string) error {
	d.begin(cache.OpDelete)

	if err := d.store.Delete(ctx, remote.DocPath(d.codec.Collection(), id)); err != nil {
		d.fail(cache.OpDelete, err)
		return fmt.Errorf("delete %s/%s: %w", d.codec.Collection(), id, err)
	}

	d.cache.RemoveOne(id)
	d.done(cache.OpDelete)

	d.log.InfoContext(ctx, "entity deleted", slog.String("id", id))
	return nil
}
