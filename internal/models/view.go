package models

import (
	"html/template"
	"time"
)

// PlaceholderUsername is shown whenever an author cannot be resolved.
const PlaceholderUsername = "Gamer"

// Author is the public slice of a Profile embedded in read views.
type Author struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// PlaceholderAuthor keeps a view renderable when the profile lookup fails.
func PlaceholderAuthor(id uint) Author {
	return Author{ID: id, Username: PlaceholderUsername}
}

func AuthorFromProfile(p Profile) Author {
	return Author{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
}

type EnrichedPost struct {
	Post
	Author         Author        `json:"author"`
	ContentHTML    template.HTML `json:"content_html"`
	LikeCount      int64         `json:"like_count"`
	CommentCount   int64         `json:"comment_count"`
	ViewerHasLiked bool          `json:"viewer_has_liked"`
}

// ParentRef describes the comment a reply points at. Deleted is set when the
// parent row no longer exists; the reply still renders.
type ParentRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username,omitempty"`
	Deleted  bool   `json:"deleted"`
}

type EnrichedComment struct {
	Comment
	Author         Author        `json:"author"`
	ContentHTML    template.HTML `json:"content_html"`
	LikeCount      int64         `json:"like_count"`
	ViewerHasLiked bool          `json:"viewer_has_liked"`
	Depth          int           `json:"depth"` // 0 or 1
	Parent         *ParentRef    `json:"parent,omitempty"`
}

type PostDetail struct {
	EnrichedPost
	Comments []EnrichedComment `json:"comments"`
}

// ProfileSummary is a profile with its follow/post counters.
type ProfileSummary struct {
	Author
	CoverURL  *string   `json:"cover_url"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	Posts     int64     `json:"posts"`
}
