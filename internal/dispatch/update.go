package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
)

// Update applies a partial patch to an entity. Patch values use cache
// representations (epoch-ms for dates); the wire conversion happens on a
// copy. When the entity is cached, the patched value is staged
// optimistically and reverted on failure; when it is not, the remote call
// still goes out and the cache stays untouched.
func (d *Dispatcher[T]) Update(ctx context.Context, id string, patch map[string]any) error {
	return d.update(ctx, cache.OpUpdate, id, patch)
}

// ToggleField flips a boolean field, reading the current value from the
// cache. Returns domain.ErrNotFound when the id is not cached: the toggle
// contract is read-modify-write over cached state, so there is nothing to
// read. A stale cache makes this last-writer-wins against the true remote
// value; that is the accepted policy for single-owner entities.
func (d *Dispatcher[T]) ToggleField(ctx context.Context, id string, field string) error {
	cur, ok := d.cache.Get(id)
	if !ok {
		d.begin(cache.OpToggle)
		err := fmt.Errorf("toggle %s/%s: %w", d.codec.Collection(), id, domain.ErrNotFound)
		d.fail(cache.OpToggle, err)
		return err
	}

	raw, ok := d.codec.Encode(cur)[field]
	if !ok {
		d.begin(cache.OpToggle)
		err := fmt.Errorf("toggle %s/%s: field %q absent", d.codec.Collection(), id, field)
		d.fail(cache.OpToggle, err)
		return err
	}
	b, ok := raw.(bool)
	if !ok {
		d.begin(cache.OpToggle)
		err := fmt.Errorf("toggle %s/%s: field %q is %T, not bool", d.codec.Collection(), id, field, raw)
		d.fail(cache.OpToggle, err)
		return err
	}

	return d.update(ctx, cache.OpToggle, id, map[string]any{field: !b})
}

func (d *Dispatcher[T]) update(ctx context.Context, kind cache.OpKind, id string, patch map[string]any) error {
	d.begin(kind)
	intentID := newIntentID()

	var next T
	staged := false
	if cur, ok := d.cache.Get(id); ok {
		patched, err := d.codec.ApplyPatch(cur, patch)
		if err != nil {
			d.fail(kind, err)
			return fmt.Errorf("update %s/%s: %w", d.codec.Collection(), id, err)
		}
		next = patched
		d.cache.StagePending(next, intentID)
		staged = true
	}

	err := d.store.Update(ctx, remote.DocPath(d.codec.Collection(), id), d.codec.EncodePatch(patch))
	if err != nil {
		if staged {
			d.cache.RevertPending(id, intentID)
		}
		d.fail(kind, err)
		return fmt.Errorf("update %s/%s: %w", d.codec.Collection(), id, err)
	}

	if staged {
		d.cache.ConfirmPending(id, next, intentID)
	}
	d.done(kind)

	d.log.InfoContext(ctx, "entity updated",
		slog.String("id", id),
		slog.Int("fields", len(patch)),
	)
	return nil
}
