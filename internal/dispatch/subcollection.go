package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/docmap"
	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
)

// AppendToSubcollection creates a child document (comment, like) under a
// cached parent and merges it into the parent's embedded array. The parent
// must already be cached: appending under a never-fetched parent indicates
// a state bug upstream, so the dispatcher returns domain.ErrParentNotCached
// before any remote call instead of half-applying the write.
func (d *Dispatcher[T]) AppendToSubcollection(ctx context.Context, parentID, sub string, payload map[string]any) (string, error) {
	sc, err := d.subCodec()
	if err != nil {
		return "", err
	}

	parent, ok := d.cache.Get(parentID)
	if !ok {
		return "", fmt.Errorf("append %s: %w", remote.SubcollectionPath(d.codec.Collection(), parentID, sub), domain.ErrParentNotCached)
	}

	d.begin(cache.OpSubAppend)

	wire, err := sc.EncodeChild(sub, payload)
	if err != nil {
		d.fail(cache.OpSubAppend, err)
		return "", fmt.Errorf("append %s/%s/%s: %w", d.codec.Collection(), parentID, sub, err)
	}

	path := remote.SubcollectionPath(d.codec.Collection(), parentID, sub)
	childID := sc.ChildID(sub, payload)
	if childID != "" {
		err = d.store.Set(ctx, path+"/"+childID, wire)
	} else {
		childID, err = d.store.Add(ctx, path, wire)
	}
	if err != nil {
		d.fail(cache.OpSubAppend, err)
		return "", fmt.Errorf("append %s/%s/%s: %w", d.codec.Collection(), parentID, sub, err)
	}

	updated, err := sc.ApplyChild(parent, sub, remote.Document{ID: childID, Fields: wire})
	if err != nil {
		// The remote write landed; only the local merge failed.
		d.fail(cache.OpSubAppend, err)
		return childID, fmt.Errorf("append %s/%s/%s: merge: %w", d.codec.Collection(), parentID, sub, err)
	}
	d.cache.UpsertOne(updated)
	d.done(cache.OpSubAppend)

	d.log.InfoContext(ctx, "subcollection child appended",
		slog.String("parent_id", parentID),
		slog.String("sub", sub),
		slog.String("child_id", childID),
	)
	return childID, nil
}

// RemoveFromSubcollection deletes a child document under a cached parent
// and removes it from the parent's embedded array. Like appends, it
// requires the parent to be cached.
func (d *Dispatcher[T]) RemoveFromSubcollection(ctx context.Context, parentID, sub, childID string) error {
	sc, err := d.subCodec()
	if err != nil {
		return err
	}

	parent, ok := d.cache.Get(parentID)
	if !ok {
		return fmt.Errorf("remove %s: %w", remote.SubcollectionPath(d.codec.Collection(), parentID, sub), domain.ErrParentNotCached)
	}

	d.begin(cache.OpSubRemove)

	path := remote.SubcollectionPath(d.codec.Collection(), parentID, sub) + "/" + childID
	if err := d.store.Delete(ctx, path); err != nil {
		d.fail(cache.OpSubRemove, err)
		return fmt.Errorf("remove %s: %w", path, err)
	}

	updated, err := sc.RemoveChild(parent, sub, childID)
	if err != nil {
		d.fail(cache.OpSubRemove, err)
		return fmt.Errorf("remove %s: merge: %w", path, err)
	}
	d.cache.UpsertOne(updated)
	d.done(cache.OpSubRemove)

	d.log.InfoContext(ctx, "subcollection child removed",
		slog.String("parent_id", parentID),
		slog.String("sub", sub),
		slog.String("child_id", childID),
	)
	return nil
}

func (d *Dispatcher[T]) subCodec() (docmap.SubcollectionCodec[T], error) {
	sc, ok := d.codec.(docmap.SubcollectionCodec[T])
	if !ok {
		return nil, fmt.Errorf("%s: family has no subcollections", d.codec.Collection())
	}
	return sc, nil
}
