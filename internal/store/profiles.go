package store

import (
	"context"

	"gamehub/internal/apperr"
	"gamehub/internal/models"
)

func (s *Store) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.conn(ctx).First(&profile, id).Error; err != nil {
		return nil, classify(err)
	}
	return &profile, nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.conn(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, classify(err)
	}
	return &profile, nil
}

// ProfilesByIDs loads a set of profiles in one query. Missing ids are simply
// absent from the map.
func (s *Store) ProfilesByIDs(ctx context.Context, ids []uint) (map[uint]models.Profile, error) {
	out := make(map[uint]models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var profiles []models.Profile
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, classify(err)
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

func (s *Store) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return classify(s.conn(ctx).Create(profile).Error)
}

// UpdateProfile writes the given columns; zero values are written too.
func (s *Store) UpdateProfile(ctx context.Context, id uint, updates map[string]any) error {
	res := s.conn(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.conn(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return classify(err)
		}
		if count == 0 {
			return apperr.NotFound("profile", id)
		}
	}
	return nil
}
