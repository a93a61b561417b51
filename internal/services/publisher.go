package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
)

const MaxPostRunes = 5000

// PostPublisher creates posts.
type PostPublisher struct {
	store  Store
	fanout *Fanout
}

func NewPostPublisher(st Store, f *Fanout) *PostPublisher {
	return &PostPublisher{store: st, fanout: f}
}

// Create stores a post. imageURL is an Object Store URL kept verbatim; empty
// means no image.
func (p *PostPublisher) Create(ctx context.Context, viewerID uint, content, imageURL string) (*models.Post, error) {
	if viewerID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, apperr.Validation("post content is empty")
	}
	if utf8.RuneCountInString(text) > MaxPostRunes {
		return nil, apperr.Validation("post is longer than %d characters", MaxPostRunes)
	}

	post := &models.Post{AuthorID: viewerID, Content: text}
	if imageURL = strings.TrimSpace(imageURL); imageURL != "" {
		post.ImageURL = &imageURL
	}

	ctx, cancel := p.fanout.withTimeout(ctx)
	defer cancel()
	if err := p.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
