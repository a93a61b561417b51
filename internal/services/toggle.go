package services

import (
	"context"

	"gamehub/internal/apperr"
)

// relation is one (actor, target) membership row that can be flipped.
type relation struct {
	target string // metric label and error noun
	id     uint
	exists func(ctx context.Context) (bool, error)
	has    func(ctx context.Context) (bool, error)
	insert func(ctx context.Context) (bool, error)
	remove func(ctx context.Context) error
}

// toggle flips a relation and returns the new state. Each store call gets its
// own timeout. Writes are not retried.
// A unique-index conflict on insert means a concurrent request created the row,
// so the relation is reported as set.
func toggle(ctx context.Context, f *Fanout, r relation) (on bool, err error) {
	defer func() {
		result := "off"
		switch {
		case err != nil:
			result = "error"
		case on:
			result = "on"
		}
		toggleTotal.WithLabelValues(r.target, result).Inc()
	}()

	ok, err := timed(ctx, f, r.exists)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound(r.target, r.id)
	}

	has, err := timed(ctx, f, r.has)
	if err != nil {
		return false, err
	}
	if has {
		if err := timedExec(ctx, f, r.remove); err != nil {
			return false, err
		}
		return false, nil
	}
	if _, err := timed(ctx, f, r.insert); err != nil {
		return false, err
	}
	return true, nil
}

// InteractionToggle flips likes on posts and comments.
type InteractionToggle struct {
	store  Store
	fanout *Fanout
}

func NewInteractionToggle(st Store, f *Fanout) *InteractionToggle {
	return &InteractionToggle{store: st, fanout: f}
}

func (t *InteractionToggle) TogglePostLike(ctx context.Context, viewerID, postID uint) (bool, error) {
	if viewerID == 0 {
		return false, apperr.ErrUnauthenticated
	}
	return toggle(ctx, t.fanout, relation{
		target: "post",
		id:     postID,
		exists: func(ctx context.Context) (bool, error) { return t.store.PostExists(ctx, postID) },
		has:    func(ctx context.Context) (bool, error) { return t.store.HasPostLike(ctx, viewerID, postID) },
		insert: func(ctx context.Context) (bool, error) { return t.store.InsertPostLike(ctx, viewerID, postID) },
		remove: func(ctx context.Context) error { return t.store.DeletePostLike(ctx, viewerID, postID) },
	})
}

func (t *InteractionToggle) ToggleCommentLike(ctx context.Context, viewerID, commentID uint) (bool, error) {
	if viewerID == 0 {
		return false, apperr.ErrUnauthenticated
	}
	return toggle(ctx, t.fanout, relation{
		target: "comment",
		id:     commentID,
		exists: func(ctx context.Context) (bool, error) { return t.store.CommentExists(ctx, commentID) },
		has:    func(ctx context.Context) (bool, error) { return t.store.HasCommentLike(ctx, viewerID, commentID) },
		insert: func(ctx context.Context) (bool, error) { return t.store.InsertCommentLike(ctx, viewerID, commentID) },
		remove: func(ctx context.Context) error { return t.store.DeleteCommentLike(ctx, viewerID, commentID) },
	})
}

// PostLikeCount and CommentLikeCount re-read the count after a toggle.
func (t *InteractionToggle) PostLikeCount(ctx context.Context, postID uint) int64 {
	m, err := batch(ctx, t.fanout, "post_like_counts", []uint{postID}, t.store.CountPostLikes)
	return settle(ctx, "post_like_counts", m, err)[postID]
}

func (t *InteractionToggle) CommentLikeCount(ctx context.Context, commentID uint) int64 {
	m, err := batch(ctx, t.fanout, "comment_like_counts", []uint{commentID}, t.store.CountCommentLikes)
	return settle(ctx, "comment_like_counts", m, err)[commentID]
}
