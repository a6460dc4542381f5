package model

import (
	"time"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	TopicID     uint64     `gorm:"not null;index:idx_topic_id" json:"topic_id"`
	CreatedByID uint64     `gorm:"not null;index:idx_created_by_id" json:"created_by_id"`
	UpdatedByID *uint64    `json:"updated_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"` // 仅在编辑时写入

	// 关联关系
	Topic     Topic `gorm:"foreignKey:TopicID;references:ID"`
	CreatedBy User  `gorm:"foreignKey:CreatedByID;references:ID"`
	UpdatedBy *User `gorm:"foreignKey:UpdatedByID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
