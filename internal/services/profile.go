package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gamehub/internal/apperr"
	"gamehub/internal/models"

	"golang.org/x/sync/errgroup"
)

const MaxBioRunes = 200

// ProfileService serves profile pages and profile edits.
type ProfileService struct {
	store  Store
	fanout *Fanout
}

func NewProfileService(st Store, f *Fanout) *ProfileService {
	return &ProfileService{store: st, fanout: f}
}

// Get returns the profile with its counters. Counter failures read as 0.
func (s *ProfileService) Get(ctx context.Context, profileID uint) (*models.ProfileSummary, error) {
	profile, err := read(ctx, s.fanout, "profile", func(ctx context.Context) (*models.Profile, error) {
		return s.store.GetProfile(ctx, profileID)
	})
	if err != nil {
		return nil, err
	}

	summary := &models.ProfileSummary{
		Author:    models.AuthorFromProfile(*profile),
		CoverURL:  profile.CoverURL,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt,
	}
	counters := []struct {
		lookup string
		dst    *int64
		count  func(context.Context, uint) (int64, error)
	}{
		{"followers", &summary.Followers, s.store.CountFollowers},
		{"following", &summary.Following, s.store.CountFollowing},
		{"posts_by_author", &summary.Posts, s.store.CountPostsByAuthor},
	}

	var g errgroup.Group
	for _, c := range counters {
		g.Go(func() error {
			n, err := read(ctx, s.fanout, c.lookup, func(ctx context.Context) (int64, error) {
				return c.count(ctx, profileID)
			})
			m := settle(ctx, c.lookup, map[uint]int64{profileID: n}, err)
			*c.dst = m[profileID]
			return nil
		})
	}
	_ = g.Wait()
	return summary, nil
}

// Update replaces username and bio of the viewer's own profile.
func (s *ProfileService) Update(ctx context.Context, viewerID uint, username, bio string) (*models.Profile, error) {
	if viewerID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	username = strings.TrimSpace(username)
	bio = strings.TrimSpace(bio)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(bio) > MaxBioRunes {
		return nil, apperr.Validation("bio is longer than %d characters", MaxBioRunes)
	}
	return s.update(ctx, viewerID, map[string]any{"username": username, "bio": bio})
}

// SetAvatar and SetCover store an Object Store URL verbatim.
func (s *ProfileService) SetAvatar(ctx context.Context, viewerID uint, url string) (*models.Profile, error) {
	return s.setImage(ctx, viewerID, "avatar", url)
}

func (s *ProfileService) SetCover(ctx context.Context, viewerID uint, url string) (*models.Profile, error) {
	return s.setImage(ctx, viewerID, "cover", url)
}

func (s *ProfileService) setImage(ctx context.Context, viewerID uint, kind, url string) (*models.Profile, error) {
	if viewerID == 0 {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(url) == "" {
		return nil, apperr.Validation("%s url is empty", kind)
	}
	return s.update(ctx, viewerID, map[string]any{kind + "_url": url})
}

func (s *ProfileService) update(ctx context.Context, viewerID uint, updates map[string]any) (*models.Profile, error) {
	err := timedExec(ctx, s.fanout, func(ctx context.Context) error {
		return s.store.UpdateProfile(ctx, viewerID, updates)
	})
	if err != nil {
		return nil, err
	}
	return timed(ctx, s.fanout, func(ctx context.Context) (*models.Profile, error) {
		return s.store.GetProfile(ctx, viewerID)
	})
}

// ToggleFollow flips whether the viewer follows targetID.
func (s *ProfileService) ToggleFollow(ctx context.Context, viewerID, targetID uint) (bool, error) {
	if viewerID == 0 {
		return false, apperr.ErrUnauthenticated
	}
	if viewerID == targetID {
		return false, apperr.Validation("cannot follow yourself")
	}
	return toggle(ctx, s.fanout, relation{
		target: "profile",
		id:     targetID,
		exists: func(ctx context.Context) (bool, error) {
			_, err := s.store.GetProfile(ctx, targetID)
			if errors.Is(err, apperr.ErrNotFound) {
				return false, nil
			}
			return err == nil, err
		},
		has:    func(ctx context.Context) (bool, error) { return s.store.HasFollow(ctx, viewerID, targetID) },
		insert: func(ctx context.Context) (bool, error) { return s.store.InsertFollow(ctx, viewerID, targetID) },
		remove: func(ctx context.Context) error { return s.store.DeleteFollow(ctx, viewerID, targetID) },
	})
}

// FollowerCount re-reads the follower counter after a toggle.
func (s *ProfileService) FollowerCount(ctx context.Context, profileID uint) int64 {
	n, err := read(ctx, s.fanout, "followers", func(ctx context.Context) (int64, error) {
		return s.store.CountFollowers(ctx, profileID)
	})
	return settle(ctx, "followers", map[uint]int64{profileID: n}, err)[profileID]
}
