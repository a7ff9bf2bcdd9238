// Package syncer keys cache content on the signed-in principal. Setting a
// principal runs one parallel fetch pass filling the task, profile and feed
// caches with replace semantics; clearing the principal empties them. There
// is no polling and no push channel, a pass runs once per principal change.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taranenko/taskfeed/internal/cache"
	"github.com/taranenko/taskfeed/internal/docmap"
	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
)

// DefaultFeedLimit bounds the public feed fetch.
const DefaultFeedLimit = 50

// Orchestrator owns the fetch side of the cache trio.
type Orchestrator struct {
	store        remote.Store
	tasks        *cache.Cache[domain.Task]
	posts        *cache.Cache[domain.Post]
	profiles     *cache.Cache[domain.UserProfile]
	taskCodec    docmap.TaskCodec
	postCodec    docmap.PostCodec
	profileCodec docmap.ProfileCodec
	feedLimit    int
	log          *slog.Logger

	mu        sync.Mutex
	principal string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFeedLimit overrides the public feed fetch limit.
func WithFeedLimit(n int) Option {
	return func(o *Orchestrator) { o.feedLimit = n }
}

// New creates a fetch orchestrator over the given store and caches.
func New(
	store remote.Store,
	tasks *cache.Cache[domain.Task],
	posts *cache.Cache[domain.Post],
	profiles *cache.Cache[domain.UserProfile],
	log *slog.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		store:     store,
		tasks:     tasks,
		posts:     posts,
		profiles:  profiles,
		feedLimit: DefaultFeedLimit,
		log:       log.With(slog.String("component", "syncer")),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetPrincipal reacts to an auth state change. A non-empty id triggers one
// parallel fetch pass for that principal, replacing all cached content; the
// empty id means sign-out and clears every cache. Setting the current
// principal again is a no-op.
//
// The three family fetches run independently: a failure in one is recorded
// in that family's error slot and does not cancel the others. The first
// failure is also returned.
func (o *Orchestrator) SetPrincipal(ctx context.Context, id string) error {
	o.mu.Lock()
	if id == o.principal {
		o.mu.Unlock()
		return nil
	}
	o.principal = id
	o.mu.Unlock()

	if id == "" {
		o.tasks.Clear()
		o.posts.Clear()
		o.profiles.Clear()
		o.log.InfoContext(ctx, "principal cleared, caches emptied")
		return nil
	}

	o.log.InfoContext(ctx, "principal changed, fetch pass started", slog.String("principal_id", id))

	// Tasks and profiles are keyed to the principal. Empty them before the
	// pass runs: a failed fetch must leave these families empty, never
	// serving the previous principal's entities. The feed is public and
	// keeps its content until the new page lands.
	o.tasks.ReplaceAll(nil)
	o.profiles.ReplaceAll(nil)

	var g errgroup.Group
	g.Go(func() error { return o.fetchTasks(ctx, id) })
	g.Go(func() error { return o.fetchProfile(ctx, id) })
	g.Go(func() error { return o.fetchFeed(ctx) })
	return g.Wait()
}

// Principal returns the currently active principal id, "" when signed out.
func (o *Orchestrator) Principal() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.principal
}

func (o *Orchestrator) fetchTasks(ctx context.Context, principalID string) error {
	o.tasks.SetError("")
	o.tasks.SetLoading(cache.OpFetch, true)

	docs, err := o.store.Query(ctx, o.taskCodec.Collection(),
		[]remote.Filter{{Field: "userId", Op: remote.OpEqual, Value: principalID}},
		nil, 0)
	if err != nil {
		return o.failTasks(fmt.Errorf("fetch tasks: %w", err))
	}

	out := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		t, err := o.taskCodec.Decode(doc)
		if err != nil {
			return o.failTasks(fmt.Errorf("fetch tasks: %w", err))
		}
		out = append(out, t)
	}

	o.tasks.ReplaceAll(out)
	o.tasks.SetLoading(cache.OpFetch, false)

	o.log.InfoContext(ctx, "tasks fetched", slog.Int("count", len(out)))
	return nil
}

func (o *Orchestrator) fetchProfile(ctx context.Context, principalID string) error {
	o.profiles.SetError("")
	o.profiles.SetLoading(cache.OpFetch, true)

	doc, err := o.store.Get(ctx, remote.DocPath(o.profileCodec.Collection(), principalID))
	if err != nil {
		return o.failProfile(fmt.Errorf("fetch profile: %w", err))
	}

	profile, err := o.profileCodec.Decode(*doc)
	if err != nil {
		return o.failProfile(fmt.Errorf("fetch profile: %w", err))
	}

	// Replace, not upsert: the cache holds exactly the active principal.
	o.profiles.ReplaceAll([]domain.UserProfile{profile})
	o.profiles.SetLoading(cache.OpFetch, false)

	o.log.InfoContext(ctx, "profile fetched", slog.String("profile_id", profile.ID))
	return nil
}

func (o *Orchestrator) fetchFeed(ctx context.Context) error {
	o.posts.SetError("")
	o.posts.SetLoading(cache.OpFetch, true)

	docs, err := o.store.Query(ctx, o.postCodec.Collection(),
		[]remote.Filter{{Field: "isPublic", Op: remote.OpEqual, Value: true}},
		[]remote.Order{{Field: "timeCreated", Desc: true}},
		o.feedLimit)
	if err != nil {
		return o.failFeed(fmt.Errorf("fetch feed: %w", err))
	}

	posts := make([]domain.Post, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		p, err := o.postCodec.Decode(doc)
		if err != nil {
			return o.failFeed(fmt.Errorf("fetch feed: %w", err))
		}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}

	if len(posts) > 0 {
		if err := o.hydrateFeed(ctx, posts, ids); err != nil {
			return o.failFeed(fmt.Errorf("fetch feed: %w", err))
		}
	}

	o.posts.ReplaceAll(posts)
	o.posts.SetLoading(cache.OpFetch, false)

	o.log.InfoContext(ctx, "feed fetched", slog.Int("count", len(posts)))
	return nil
}

// hydrateFeed fills each post's comments and likes from their
// subcollections, batched per subcollection across the whole feed page.
func (o *Orchestrator) hydrateFeed(ctx context.Context, posts []domain.Post, ids []string) error {
	loaders := newFeedLoaders(o.store, o.postCodec.Collection())
	commentThunk := loaders.comments.LoadMany(ctx, ids)
	likeThunk := loaders.likes.LoadMany(ctx, ids)

	commentDocs, errs := commentThunk()
	if err := firstError(errs); err != nil {
		return fmt.Errorf("comments: %w", err)
	}
	likeDocs, errs := likeThunk()
	if err := firstError(errs); err != nil {
		return fmt.Errorf("likes: %w", err)
	}

	for i := range posts {
		for _, doc := range commentDocs[i] {
			cm, err := o.postCodec.DecodeComment(posts[i].ID, doc)
			if err != nil {
				return err
			}
			posts[i].Comments = append(posts[i].Comments, cm)
		}
		for _, doc := range likeDocs[i] {
			posts[i].Likes = append(posts[i].Likes, doc.ID)
		}
	}
	return nil
}

func (o *Orchestrator) failTasks(err error) error {
	o.tasks.SetError(err.Error())
	o.tasks.SetLoading(cache.OpFetch, false)
	return err
}

func (o *Orchestrator) failProfile(err error) error {
	o.profiles.SetError(err.Error())
	o.profiles.SetLoading(cache.OpFetch, false)
	return err
}

func (o *Orchestrator) failFeed(err error) error {
	o.posts.SetError(err.Error())
	o.posts.SetLoading(cache.OpFetch, false)
	return err
}
