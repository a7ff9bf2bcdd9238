package syncer

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/taranenko/taskfeed/internal/docmap"
	"github.com/taranenko/taskfeed/internal/remote"
)

const (
	loaderWait          = 2 * time.Millisecond
	loaderMaxBatch      = 100
	subFetchConcurrency = 8
)

// feedLoaders batches per-post subcollection reads during a feed fetch.
// Created per fetch: the loader cache dedups within one pass only.
type feedLoaders struct {
	comments *dataloader.Loader[string, []remote.Document]
	likes    *dataloader.Loader[string, []remote.Document]
}

func newFeedLoaders(store remote.Store, collection string) *feedLoaders {
	return &feedLoaders{
		comments: newSubLoader(store, collection, docmap.SubComments,
			[]remote.Order{{Field: "timeCreated"}}),
		likes: newSubLoader(store, collection, docmap.SubLikes, nil),
	}
}

func newSubLoader(store remote.Store, collection, sub string, orderBy []remote.Order) *dataloader.Loader[string, []remote.Document] {
	return dataloader.NewBatchedLoader(
		newSubBatchFn(store, collection, sub, orderBy),
		dataloader.WithWait[string, []remote.Document](loaderWait),
		dataloader.WithBatchCapacity[string, []remote.Document](loaderMaxBatch),
	)
}

// newSubBatchFn reads one subcollection for every parent in the batch. The
// store addresses subcollections per parent, so the batch fans out with
// bounded concurrency; per-parent errors travel in the result slots.
func newSubBatchFn(store remote.Store, collection, sub string, orderBy []remote.Order) dataloader.BatchFunc[string, []remote.Document] {
	return func(ctx context.Context, parentIDs []string) []*dataloader.Result[[]remote.Document] {
		results := make([]*dataloader.Result[[]remote.Document], len(parentIDs))

		var g errgroup.Group
		g.SetLimit(subFetchConcurrency)
		for i, parentID := range parentIDs {
			g.Go(func() error {
				docs, err := store.Query(ctx, remote.SubcollectionPath(collection, parentID, sub), nil, orderBy, 0)
				results[i] = &dataloader.Result[[]remote.Document]{Data: docs, Error: err}
				return nil
			})
		}
		_ = g.Wait()
		return results
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
