package services

import (
	"context"

	"gamehub/internal/models"
)

// FeedAggregator builds the main feed. It never writes.
type FeedAggregator struct {
	store  Store
	fanout *Fanout
}

func NewFeedAggregator(st Store, f *Fanout) *FeedAggregator {
	return &FeedAggregator{store: st, fanout: f}
}

// List returns every post, newest first, enriched for viewerID (0 = anonymous).
// Only a failure to list posts is an error; enrichment failures degrade per post.
func (a *FeedAggregator) List(ctx context.Context, viewerID uint) ([]models.EnrichedPost, error) {
	posts, err := read(ctx, a.fanout, "posts", a.store.ListPosts)
	if err != nil {
		return nil, err
	}
	return enrichPosts(ctx, a.store, a.fanout, viewerID, posts, nil), nil
}

// ListByAuthor is List restricted to one author.
func (a *FeedAggregator) ListByAuthor(ctx context.Context, viewerID, authorID uint) ([]models.EnrichedPost, error) {
	posts, err := read(ctx, a.fanout, "posts_by_author", func(ctx context.Context) ([]models.Post, error) {
		return a.store.ListPostsByAuthor(ctx, authorID)
	})
	if err != nil {
		return nil, err
	}
	return enrichPosts(ctx, a.store, a.fanout, viewerID, posts, nil), nil
}
