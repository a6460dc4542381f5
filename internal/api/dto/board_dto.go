package dto

import "time"

// BoardDTO 首页版块
type BoardDTO struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TopicsCount int64    `json:"topics_count"`
	PostsCount  int64    `json:"posts_count"`
	LastPost    *PostDTO `json:"last_post,omitempty"`
}

// BoardTopicsDTO 版块主题列表页
type BoardTopicsDTO struct {
	Board  *BoardDTO   `json:"board"`
	Topics []*TopicDTO `json:"topics"`
}

// BoardMetricDTO 版块每日统计
type BoardMetricDTO struct {
	BoardID     uint64    `json:"board_id"`
	MetricDate  time.Time `json:"metric_date"`
	TotalTopics int64     `json:"total_topics"`
	TotalPosts  int64     `json:"total_posts"`
	TotalViews  int64     `json:"total_views"`
}
