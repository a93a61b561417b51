package services

import (
	"context"

	"gamehub/internal/models"
	"gamehub/internal/utils"

	"golang.org/x/sync/errgroup"
)

type postEnrichStore interface {
	ProfilesByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error)
	CountPostLikes(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	PostsLikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

type commentEnrichStore interface {
	ProfilesByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error)
	CountCommentLikes(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
	CommentsLikedBy(ctx context.Context, userID uint, commentIDs []uint) (map[uint]bool, error)
}

// enrichPosts joins posts with authors, like counts, comment counts and the
// viewer's like state. Every lookup degrades on its own. When commentCounts is
// non-nil it is used instead of querying.
func enrichPosts(ctx context.Context, st postEnrichStore, f *Fanout, viewerID uint, posts []models.Post, commentCounts map[uint]int64) []models.EnrichedPost {
	postIDs := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}
	postIDs = uniqueIDs(postIDs)
	authorIDs = uniqueIDs(authorIDs)

	var (
		profiles map[uint]models.Profile
		likes    map[uint]int64
		comments = commentCounts
		liked    map[uint]bool
	)

	var g errgroup.Group
	g.Go(func() error {
		m, err := batch(ctx, f, "profiles", authorIDs, st.ProfilesByIDs)
		profiles = settle(ctx, "post_authors", m, err)
		return nil
	})
	g.Go(func() error {
		m, err := batch(ctx, f, "post_like_counts", postIDs, st.CountPostLikes)
		likes = settle(ctx, "post_like_counts", m, err)
		return nil
	})
	if comments == nil {
		g.Go(func() error {
			m, err := batch(ctx, f, "comment_counts", postIDs, st.CountComments)
			comments = settle(ctx, "comment_counts", m, err)
			return nil
		})
	}
	if viewerID != 0 {
		g.Go(func() error {
			m, err := batch(ctx, f, "post_likes_by_viewer", postIDs, func(ctx context.Context, ids []uint) (map[uint]bool, error) {
				return st.PostsLikedBy(ctx, viewerID, ids)
			})
			liked = settle(ctx, "post_likes_by_viewer", m, err)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.EnrichedPost, len(posts))
	for i, p := range posts {
		out[i] = models.EnrichedPost{
			Post:           p,
			Author:         authorFor(profiles, p.AuthorID),
			ContentHTML:    utils.RenderMarkdown(p.Content),
			LikeCount:      likes[p.ID],
			CommentCount:   comments[p.ID],
			ViewerHasLiked: liked[p.ID],
		}
	}
	return out
}

// enrichComments keeps the input order and resolves reply parents against the
// same slice.
func enrichComments(ctx context.Context, st commentEnrichStore, f *Fanout, viewerID uint, comments []models.Comment) []models.EnrichedComment {
	ids := make([]uint, 0, len(comments))
	authorIDs := make([]uint, 0, len(comments))
	index := make(map[uint]int, len(comments))
	for i, c := range comments {
		ids = append(ids, c.ID)
		authorIDs = append(authorIDs, c.UserID)
		index[c.ID] = i
	}
	ids = uniqueIDs(ids)
	authorIDs = uniqueIDs(authorIDs)

	var (
		profiles map[uint]models.Profile
		likes    map[uint]int64
		liked    map[uint]bool
	)

	var g errgroup.Group
	g.Go(func() error {
		m, err := batch(ctx, f, "profiles", authorIDs, st.ProfilesByIDs)
		profiles = settle(ctx, "comment_authors", m, err)
		return nil
	})
	g.Go(func() error {
		m, err := batch(ctx, f, "comment_like_counts", ids, st.CountCommentLikes)
		likes = settle(ctx, "comment_like_counts", m, err)
		return nil
	})
	if viewerID != 0 {
		g.Go(func() error {
			m, err := batch(ctx, f, "comment_likes_by_viewer", ids, func(ctx context.Context, ids []uint) (map[uint]bool, error) {
				return st.CommentsLikedBy(ctx, viewerID, ids)
			})
			liked = settle(ctx, "comment_likes_by_viewer", m, err)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.EnrichedComment, len(comments))
	for i, c := range comments {
		ec := models.EnrichedComment{
			Comment:        c,
			Author:         authorFor(profiles, c.UserID),
			ContentHTML:    utils.RenderMarkdown(c.Content),
			LikeCount:      likes[c.ID],
			ViewerHasLiked: liked[c.ID],
		}
		if c.ParentID != nil {
			ec.Depth = 1
			ref := &models.ParentRef{ID: *c.ParentID}
			if j, ok := index[*c.ParentID]; ok {
				ref.Username = authorFor(profiles, comments[j].UserID).Username
			} else {
				ref.Deleted = true
			}
			ec.Parent = ref
		}
		out[i] = ec
	}
	return out
}

func authorFor(profiles map[uint]models.Profile, id uint) models.Author {
	if p, ok := profiles[id]; ok {
		return models.AuthorFromProfile(p)
	}
	return models.PlaceholderAuthor(id)
}
