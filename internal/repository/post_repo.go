package repository

import (
	"Planting/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	GetPostsByTopic(ctx context.Context, topicID uint64) ([]*model.Post, error)
	GetRecentPostsByTopic(ctx context.Context, topicID uint64, limit int) ([]*model.Post, error)
	GetOwnedPost(ctx context.Context, boardID, topicID, postID, userID uint64) (*model.Post, error)
	CreateReply(ctx context.Context, post *model.Post, repliedAt time.Time) error
	UpdatePostMessage(ctx context.Context, post *model.Post) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) GetPostsByTopic(ctx context.Context, topicID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetRecentPostsByTopic 回复页展示的最近帖子，新的在前
func (s *PostRepoImpl) GetRecentPostsByTopic(ctx context.Context, topicID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetOwnedPost 只能查到当前用户自己发的、且属于该版块该主题的帖子
func (s *PostRepoImpl) GetOwnedPost(ctx context.Context, boardID, topicID, postID, userID uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("Topic").
		Joins("JOIN topics ON topics.id = posts.topic_id").
		Where("posts.id = ? AND posts.topic_id = ? AND topics.board_id = ? AND posts.created_by_id = ?",
			postID, topicID, boardID, userID).
		Take(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// CreateReply 写入回复并刷新主题的 last_updated
func (s *PostRepoImpl) CreateReply(ctx context.Context, post *model.Post, repliedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Topic", "CreatedBy", "UpdatedBy").Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&model.Topic{}).
			Where("id = ?", post.TopicID).
			UpdateColumn("last_updated", repliedAt).Error
	})
}

func (s *PostRepoImpl) UpdatePostMessage(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"message":       post.Message,
			"updated_by_id": post.UpdatedByID,
			"updated_at":    post.UpdatedAt,
		}).Error
}
