package repository

import (
	"Planting/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.BoardMetric) error
	GetBoardMetricsSince(ctx context.Context, boardID uint64, since time.Time) ([]*model.BoardMetric, error)
}

type boardMetricRepoImpl struct {
	db *gorm.DB
}

func NewBoardMetricRepository(db *gorm.DB) BoardMetricRepo {
	return &boardMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric 采用 Upsert 逻辑。如果 board_id + metric_date 已存在，则更新各项数值
func (r *boardMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.BoardMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "board_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_topics",
			"total_posts",
			"total_views",
		}),
	}).Create(metric).Error
}

// GetBoardMetricsSince 按日期升序返回趋势数据
func (r *boardMetricRepoImpl) GetBoardMetricsSince(ctx context.Context, boardID uint64, since time.Time) ([]*model.BoardMetric, error) {
	metrics := make([]*model.BoardMetric, 0)
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Where("metric_date >= ?", since).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
