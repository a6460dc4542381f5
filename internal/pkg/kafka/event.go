package kafka

import "time"

const (
	EventTopicCreated = "topic_created"
	EventPostReplied  = "post_replied"
	EventPostEdited   = "post_edited"
)

// ForumEvent 论坛写操作事件，按版块 id 分区
type ForumEvent struct {
	Type       string    `json:"type"`
	BoardID    uint64    `json:"board_id"`
	TopicID    uint64    `json:"topic_id"`
	PostID     uint64    `json:"post_id"`
	UserID     uint64    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
