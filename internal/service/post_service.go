package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/model"
	"Planting/internal/pkg/kafka"
	"Planting/internal/pkg/metrics"
	"Planting/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type PostService interface {
	GetOwnedPost(ctx context.Context, userID, boardID, topicID, postID uint64) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID, boardID, topicID, postID uint64, form *dto.PostFormDTO) (*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	publisher kafka.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewPostService(postRepo repository.PostRepo, publisher kafka.Publisher, m *metrics.Metrics) PostService {
	return &postServiceImpl{
		postRepo:  postRepo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// getOwnedPost 不是自己的帖子同样视为不存在
func (s *postServiceImpl) getOwnedPost(ctx context.Context, userID, boardID, topicID, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetOwnedPost(ctx, boardID, topicID, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) GetOwnedPost(ctx context.Context, userID, boardID, topicID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, boardID, topicID, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post, boardID)
}

// UpdatePost 编辑帖子内容，记录编辑人和编辑时间
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, boardID, topicID, postID uint64, form *dto.PostFormDTO) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, boardID, topicID, postID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post.Message = form.Message
	post.UpdatedByID = &userID
	post.UpdatedAt = &now
	if err = s.postRepo.UpdatePostMessage(ctx, post); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "post edited", "board_id", boardID, "topic_id", topicID, "post_id", post.ID)
	s.metrics.IncrementPostEdited()
	invalidateBoardCache(ctx)
	publishEvent(ctx, s.publisher, s.metrics, &kafka.ForumEvent{
		Type:       kafka.EventPostEdited,
		BoardID:    boardID,
		TopicID:    topicID,
		PostID:     post.ID,
		UserID:     userID,
		OccurredAt: now,
	})

	return toPostDTO(post, boardID)
}
