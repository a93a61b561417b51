package store

import (
	"context"

	"gamehub/internal/models"
)

func (s *Store) CreateReport(ctx context.Context, report *models.Report) error {
	return classify(s.conn(ctx).Create(report).Error)
}
