package repository

import (
	"Planting/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type TopicRepo interface {
	GetTopicsByBoard(ctx context.Context, boardID uint64) ([]*model.TopicWithReplies, error)
	GetTopicInBoard(ctx context.Context, boardID uint64, topicID uint64) (*model.Topic, error)
	CreateTopic(ctx context.Context, topic *model.Topic, post *model.Post) error
	IncrementViews(ctx context.Context, topicID uint64) error
}

type TopicRepoImpl struct {
	db *gorm.DB
}

func NewTopicRepo(db *gorm.DB) TopicRepo {
	return &TopicRepoImpl{db: db}
}

type topicPostCount struct {
	TopicID uint64
	Total   int64
}

// GetTopicsByBoard 按最后更新时间倒序，回复数 = 帖子数 - 1
func (s *TopicRepoImpl) GetTopicsByBoard(ctx context.Context, boardID uint64) ([]*model.TopicWithReplies, error) {
	topics := make([]*model.Topic, 0)
	err := s.db.WithContext(ctx).
		Preload("Starter").
		Where("board_id = ?", boardID).
		Order("last_updated DESC").
		Order("id DESC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return []*model.TopicWithReplies{}, nil
	}

	ids := make([]uint64, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}

	var counts []topicPostCount
	err = s.db.WithContext(ctx).Model(&model.Post{}).
		Select("topic_id, COUNT(*) AS total").
		Where("topic_id IN ?", ids).
		Group("topic_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	postsByTopic := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		postsByTopic[c.TopicID] = c.Total
	}

	result := make([]*model.TopicWithReplies, 0, len(topics))
	for _, t := range topics {
		result = append(result, &model.TopicWithReplies{
			Topic:   *t,
			Replies: ReplyCount(postsByTopic[t.ID]),
		})
	}
	return result, nil
}

// ReplyCount 首帖不算回复；没有帖子的主题记为 0
func ReplyCount(posts int64) int64 {
	if posts <= 1 {
		return 0
	}
	return posts - 1
}

func (s *TopicRepoImpl) GetTopicInBoard(ctx context.Context, boardID uint64, topicID uint64) (*model.Topic, error) {
	topic := &model.Topic{}
	err := s.db.WithContext(ctx).
		Preload("Board").
		Preload("Starter").
		Where("id = ? AND board_id = ?", topicID, boardID).
		First(topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return topic, nil
}

// CreateTopic 主题和首帖在同一事务中写入
func (s *TopicRepoImpl) CreateTopic(ctx context.Context, topic *model.Topic, post *model.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Board", "Starter", "Posts").Create(topic).Error; err != nil {
			return err
		}
		post.TopicID = topic.ID
		if err := tx.Omit("Topic", "CreatedBy", "UpdatedBy").Create(post).Error; err != nil {
			return err
		}
		return nil
	})
}

// IncrementViews 原子自增，不修改 last_updated
func (s *TopicRepoImpl) IncrementViews(ctx context.Context, topicID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Topic{}).
		Where("id = ?", topicID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
