package stats

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Storage interface {
	Count(ctx context.Context, table, where string, args ...interface{}) (int64, error)
	OrdersByStatus(ctx context.Context) (map[string]int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

// StatsStorage reads the other packages' tables by name so it does not
// depend on their models.
type StatsStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) Storage {
	return &StatsStorage{
		db: db,
	}
}

func (s *StatsStorage) Count(ctx context.Context, table, where string, args ...interface{}) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	err := q.Count(&count).Error
	return count, err
}

func (s *StatsStorage) OrdersByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func (s *StatsStorage) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", "cancelled").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
