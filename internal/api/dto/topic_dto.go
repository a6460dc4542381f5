package dto

import (
	"strings"
	"time"
)

// NewTopicDTO 新建主题表单
type NewTopicDTO struct {
	Subject string `form:"subject" validate:"required,max=255"`
	Message string `form:"message" validate:"required,max=4000"`
}

// Normalize 去掉首尾空白，纯空白视为未填写
func (s *NewTopicDTO) Normalize() {
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
}

// TopicDTO 主题列表/详情展示
type TopicDTO struct {
	ID          uint64    `json:"id"`
	Subject     string    `json:"subject"`
	BoardID     uint64    `json:"board_id"`
	BoardName   string    `json:"board_name"`
	StarterID   uint64    `json:"starter_id"`
	StarterName string    `json:"starter_name"`
	Views       int64     `json:"views"`
	Replies     int64     `json:"replies"`
	LastUpdated time.Time `json:"last_updated"`
}

// TopicDetailDTO 主题详情页
type TopicDetailDTO struct {
	Topic *TopicDTO  `json:"topic"`
	Posts []*PostDTO `json:"posts"`
}
