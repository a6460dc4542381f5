package model

import (
	"time"
)

type Topic struct {
	ID          uint64    `gorm:"primaryKey"`
	Subject     string    `gorm:"type:varchar(255);not null" json:"subject"`
	BoardID     uint64    `gorm:"not null;index:idx_board_last_updated,priority:1" json:"board_id"`
	StarterID   uint64    `gorm:"not null;index:idx_starter_id" json:"starter_id"`
	Views       int64     `gorm:"not null;default:0" json:"views"`
	LastUpdated time.Time `gorm:"not null;index:idx_board_last_updated,priority:2" json:"last_updated"`

	// 关联关系
	Board   Board  `gorm:"foreignKey:BoardID;references:ID"`
	Starter User   `gorm:"foreignKey:StarterID;references:ID"`
	Posts   []Post `gorm:"foreignKey:TopicID;references:ID"`
}

func (Topic) TableName() string {
	return "topics"
}

// TopicWithReplies 带回复数的主题，Replies = 帖子数 - 1
type TopicWithReplies struct {
	Topic
	Replies int64
}
