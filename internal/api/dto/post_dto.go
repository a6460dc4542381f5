package dto

import (
	"strings"
	"time"
)

// PostFormDTO 回复/编辑帖子表单
type PostFormDTO struct {
	Message string `form:"message" validate:"required,max=4000"`
}

func (s *PostFormDTO) Normalize() {
	s.Message = strings.TrimSpace(s.Message)
}

// PostDTO 帖子展示
type PostDTO struct {
	ID            uint64     `json:"id"`
	TopicID       uint64     `json:"topic_id"`
	BoardID       uint64     `json:"board_id"`
	Message       string     `json:"message"`
	CreatedByID   uint64     `json:"created_by_id"`
	CreatedByName string     `json:"created_by_name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedByID   *uint64    `json:"updated_by_id,omitempty"`
	UpdatedByName string     `json:"updated_by_name,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
