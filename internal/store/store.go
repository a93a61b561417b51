// Package store is the gorm-backed data store. It exposes point reads, filtered
// reads, grouped counts over id sets, inserts and deletes, and translates driver
// errors into the apperr taxonomy.
package store

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// countRow receives "SELECT x AS id, COUNT(*) AS count ... GROUP BY x" rows.
type countRow struct {
	ID    uint
	Count int64
}

func (s *Store) groupCount(ctx context.Context, model any, column string, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []countRow
	err := s.conn(ctx).Model(model).
		Select(column+" AS id, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	for _, r := range rows {
		counts[r.ID] = r.Count
	}
	return counts, nil
}

// memberSet returns which of ids appear in column for rows owned by userID.
func (s *Store) memberSet(ctx context.Context, model any, column string, userID uint, ids []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(ids))
	if userID == 0 || len(ids) == 0 {
		return set, nil
	}
	var hits []uint
	err := s.conn(ctx).Model(model).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &hits).Error
	if err != nil {
		return nil, classify(err)
	}
	for _, id := range hits {
		set[id] = true
	}
	return set, nil
}
