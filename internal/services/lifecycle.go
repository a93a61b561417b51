package services

import (
	"context"
	"log/slog"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
)

// PostLifecycle deletes posts together with their likes, comments and comment
// likes. Reports about the post are kept.
type PostLifecycle struct {
	store  Store
	fanout *Fanout
}

func NewPostLifecycle(st Store, f *Fanout) *PostLifecycle {
	return &PostLifecycle{store: st, fanout: f}
}

func (l *PostLifecycle) Delete(ctx context.Context, requesterID, postID uint, confirm Confirm) error {
	if requesterID == 0 {
		return apperr.ErrUnauthenticated
	}
	post, err := timed(ctx, l.fanout, func(ctx context.Context) (*models.Post, error) {
		return l.store.GetPost(ctx, postID)
	})
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return apperr.Forbidden("post %d belongs to another user", postID)
	}
	if !confirmed(ctx, confirm, "Delete this post?") {
		return apperr.ErrDeclined
	}
	err = timedExec(ctx, l.fanout, func(ctx context.Context) error {
		return l.store.DeletePost(ctx, postID)
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "post deleted", "post_id", postID, "author_id", requesterID)
	return nil
}

// DeleteFromFeed deletes the post and splices it out of an already loaded feed
// without re-reading. On any failure the feed comes back unchanged.
func (l *PostLifecycle) DeleteFromFeed(ctx context.Context, requesterID, postID uint, feed []models.EnrichedPost, confirm Confirm) ([]models.EnrichedPost, error) {
	if err := l.Delete(ctx, requesterID, postID, confirm); err != nil {
		return feed, err
	}
	return RemovePost(feed, postID), nil
}

// RemovePost returns a copy of feed without postID.
func RemovePost(feed []models.EnrichedPost, postID uint) []models.EnrichedPost {
	out := make([]models.EnrichedPost, 0, len(feed))
	for _, p := range feed {
		if p.ID != postID {
			out = append(out, p)
		}
	}
	return out
}
