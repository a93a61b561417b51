package services

import "time"

// Services bundles every component the HTTP layer talks to.
type Services struct {
	Feed      *FeedAggregator
	Detail    *PostDetailAggregator
	Toggle    *InteractionToggle
	Composer  *CommentComposer
	Comments  *CommentLifecycle
	Reporter  *ModerationReporter
	Posts     *PostLifecycle
	Publisher *PostPublisher
	Profiles  *ProfileService
	Auth      *AuthService
	Uploads   ObjectStore
}

type Options struct {
	Fanout      FanoutOptions
	JWTSecret   string
	JWTExpiry   time.Duration
	ObjectStore ObjectStore
}

func New(st Store, opts Options) *Services {
	f := NewFanout(opts.Fanout)
	detail := NewPostDetailAggregator(st, f)
	return &Services{
		Feed:      NewFeedAggregator(st, f),
		Detail:    detail,
		Toggle:    NewInteractionToggle(st, f),
		Composer:  NewCommentComposer(st, f, detail),
		Comments:  NewCommentLifecycle(st, f),
		Reporter:  NewModerationReporter(st, f),
		Posts:     NewPostLifecycle(st, f),
		Publisher: NewPostPublisher(st, f),
		Profiles:  NewProfileService(st, f),
		Auth:      NewAuthService(st, f, opts.JWTSecret, opts.JWTExpiry),
		Uploads:   opts.ObjectStore,
	}
}
