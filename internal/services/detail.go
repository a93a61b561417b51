package services

import (
	"context"
	"log/slog"

	"gamehub/internal/models"
)

// PostDetailAggregator builds one post with its enriched comment thread.
type PostDetailAggregator struct {
	store  Store
	fanout *Fanout
}

func NewPostDetailAggregator(st Store, f *Fanout) *PostDetailAggregator {
	return &PostDetailAggregator{store: st, fanout: f}
}

// Get returns apperr.ErrNotFound when the post does not exist. A failing
// comment listing yields an empty thread rather than an error.
func (a *PostDetailAggregator) Get(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error) {
	post, err := read(ctx, a.fanout, "post", func(ctx context.Context) (*models.Post, error) {
		return a.store.GetPost(ctx, postID)
	})
	if err != nil {
		return nil, err
	}

	comments, err := read(ctx, a.fanout, "comments", func(ctx context.Context) ([]models.Comment, error) {
		return a.store.ListComments(ctx, postID)
	})
	if err != nil {
		enrichmentDegraded.WithLabelValues("comments").Inc()
		slog.WarnContext(ctx, "comment listing failed", "post_id", postID, "error", err)
		comments = nil
	}

	counts := map[uint]int64{post.ID: int64(len(comments))}
	enriched := enrichPosts(ctx, a.store, a.fanout, viewerID, []models.Post{*post}, counts)

	return &models.PostDetail{
		EnrichedPost: enriched[0],
		Comments:     enrichComments(ctx, a.store, a.fanout, viewerID, comments),
	}, nil
}
