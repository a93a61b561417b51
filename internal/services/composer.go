package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
)

const MaxCommentRunes = 2000

// CommentComposer adds comments and single-level replies.
type CommentComposer struct {
	store  Store
	fanout *Fanout
	detail *PostDetailAggregator
}

func NewCommentComposer(st Store, f *Fanout, detail *PostDetailAggregator) *CommentComposer {
	return &CommentComposer{store: st, fanout: f, detail: detail}
}

// Submit stores a comment on postID, or a reply to replyToID when set, and
// returns it as it appears in a freshly loaded detail view.
func (c *CommentComposer) Submit(ctx context.Context, viewerID, postID uint, content string, replyToID *uint) (*models.EnrichedComment, error) {
	if viewerID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, apperr.Validation("comment content is empty")
	}
	if utf8.RuneCountInString(text) > MaxCommentRunes {
		return nil, apperr.Validation("comment is longer than %d characters", MaxCommentRunes)
	}

	comment, err := c.insert(ctx, viewerID, postID, text, replyToID)
	if err != nil {
		return nil, err
	}

	detail, err := c.detail.Get(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	for i := range detail.Comments {
		if detail.Comments[i].ID == comment.ID {
			return &detail.Comments[i], nil
		}
	}
	// deleted between insert and read-back
	return nil, apperr.NotFound("comment", comment.ID)
}

func (c *CommentComposer) insert(ctx context.Context, viewerID, postID uint, text string, replyToID *uint) (*models.Comment, error) {
	ok, err := timed(ctx, c.fanout, func(ctx context.Context) (bool, error) {
		return c.store.PostExists(ctx, postID)
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("post", postID)
	}

	comment := &models.Comment{PostID: postID, UserID: viewerID, Content: text}
	if replyToID != nil {
		parent, err := timed(ctx, c.fanout, func(ctx context.Context) (*models.Comment, error) {
			return c.store.GetComment(ctx, *replyToID)
		})
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.Validation("comment %d belongs to another post", parent.ID)
		}
		comment.ParentID = &parent.ID
		comment.Content = "@" + c.username(ctx, parent.UserID) + ", " + text
	}

	err = timedExec(ctx, c.fanout, func(ctx context.Context) error {
		return c.store.CreateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (c *CommentComposer) username(ctx context.Context, profileID uint) string {
	p, err := timed(ctx, c.fanout, func(ctx context.Context) (*models.Profile, error) {
		return c.store.GetProfile(ctx, profileID)
	})
	if err != nil {
		slog.WarnContext(ctx, "reply parent author lookup failed", "profile_id", profileID, "error", err)
		return models.PlaceholderUsername
	}
	return p.Username
}

// CommentLifecycle deletes comments. Replies to a deleted comment stay and
// render with a deleted parent reference.
type CommentLifecycle struct {
	store  Store
	fanout *Fanout
}

func NewCommentLifecycle(st Store, f *Fanout) *CommentLifecycle {
	return &CommentLifecycle{store: st, fanout: f}
}

func (l *CommentLifecycle) Delete(ctx context.Context, requesterID, commentID uint, confirm Confirm) error {
	if requesterID == 0 {
		return apperr.ErrUnauthenticated
	}
	comment, err := timed(ctx, l.fanout, func(ctx context.Context) (*models.Comment, error) {
		return l.store.GetComment(ctx, commentID)
	})
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return apperr.Forbidden("comment %d belongs to another user", commentID)
	}
	if !confirmed(ctx, confirm, "Delete this comment?") {
		return apperr.ErrDeclined
	}
	return timedExec(ctx, l.fanout, func(ctx context.Context) error {
		return l.store.DeleteComment(ctx, commentID)
	})
}
