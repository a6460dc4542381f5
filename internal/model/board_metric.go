package model

import (
	"time"
)

type BoardMetric struct {
	ID          uint64    `gorm:"primaryKey"`
	BoardID     uint64    `gorm:"not null;index:idx_board_date,unique"`
	MetricDate  time.Time `gorm:"not null;index:idx_board_date,unique;column:metric_date"`
	TotalTopics int64     `gorm:"not null;default:0"`
	TotalPosts  int64     `gorm:"not null;default:0"`
	TotalViews  int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (BoardMetric) TableName() string {
	return "board_daily_metrics"
}

// All 需要迁移的全部模型
func All() []any {
	return []any{&User{}, &Board{}, &Topic{}, &Post{}, &BoardMetric{}}
}
