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

// RecentPostsLimit 回复页展示的最近帖子数
const RecentPostsLimit = 10

type TopicService interface {
	CreateTopic(ctx context.Context, userID uint64, boardID uint64, form *dto.NewTopicDTO) (*dto.TopicDTO, error)
	GetTopic(ctx context.Context, boardID uint64, topicID uint64) (*dto.TopicDTO, error)
	ViewTopic(ctx context.Context, boardID uint64, topicID uint64) (*dto.TopicDetailDTO, error)
	ReplyTopic(ctx context.Context, userID uint64, boardID uint64, topicID uint64, form *dto.PostFormDTO) (*dto.PostDTO, error)
	GetRecentPosts(ctx context.Context, boardID uint64, topicID uint64) ([]*dto.PostDTO, error)
}

type topicServiceImpl struct {
	boardRepo repository.BoardRepo
	topicRepo repository.TopicRepo
	postRepo  repository.PostRepo
	publisher kafka.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewTopicService(
	boardRepo repository.BoardRepo,
	topicRepo repository.TopicRepo,
	postRepo repository.PostRepo,
	publisher kafka.Publisher,
	m *metrics.Metrics,
) TopicService {
	return &topicServiceImpl{
		boardRepo: boardRepo,
		topicRepo: topicRepo,
		postRepo:  postRepo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateTopic 新建主题，表单中的 message 作为首帖
func (s *topicServiceImpl) CreateTopic(ctx context.Context, userID uint64, boardID uint64, form *dto.NewTopicDTO) (*dto.TopicDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}

	now := s.now()
	topic := &model.Topic{
		Subject:     form.Subject,
		BoardID:     board.ID,
		StarterID:   userID,
		LastUpdated: now,
	}
	post := &model.Post{
		Message:     form.Message,
		CreatedByID: userID,
		CreatedAt:   now,
	}
	if err = s.topicRepo.CreateTopic(ctx, topic, post); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "topic created", "board_id", board.ID, "topic_id", topic.ID, "post_id", post.ID)
	s.metrics.IncrementTopicCreated()
	invalidateBoardCache(ctx)
	publishEvent(ctx, s.publisher, s.metrics, &kafka.ForumEvent{
		Type:       kafka.EventTopicCreated,
		BoardID:    board.ID,
		TopicID:    topic.ID,
		PostID:     post.ID,
		UserID:     userID,
		OccurredAt: now,
	})

	topic.Board = *board
	return toTopicDTO(topic, 0)
}

func (s *topicServiceImpl) getTopic(ctx context.Context, boardID uint64, topicID uint64) (*model.Topic, error) {
	topic, err := s.topicRepo.GetTopicInBoard(ctx, boardID, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	return topic, nil
}

func (s *topicServiceImpl) GetTopic(ctx context.Context, boardID uint64, topicID uint64) (*dto.TopicDTO, error) {
	topic, err := s.getTopic(ctx, boardID, topicID)
	if err != nil {
		return nil, err
	}
	return toTopicDTO(topic, 0)
}

// ViewTopic 主题详情，每次成功加载浏览数 +1
func (s *topicServiceImpl) ViewTopic(ctx context.Context, boardID uint64, topicID uint64) (*dto.TopicDetailDTO, error) {
	topic, err := s.getTopic(ctx, boardID, topicID)
	if err != nil {
		return nil, err
	}

	if err = s.topicRepo.IncrementViews(ctx, topic.ID); err != nil {
		return nil, err
	}
	topic.Views++
	s.metrics.IncrementTopicView()

	posts, err := s.postRepo.GetPostsByTopic(ctx, topic.ID)
	if err != nil {
		return nil, err
	}

	topicDTO, err := toTopicDTO(topic, repository.ReplyCount(int64(len(posts))))
	if err != nil {
		return nil, err
	}
	postDTOs, err := toPostDTOs(posts, boardID)
	if err != nil {
		return nil, err
	}
	return &dto.TopicDetailDTO{Topic: topicDTO, Posts: postDTOs}, nil
}

// ReplyTopic 追加回复并刷新主题的最后更新时间
func (s *topicServiceImpl) ReplyTopic(ctx context.Context, userID uint64, boardID uint64, topicID uint64, form *dto.PostFormDTO) (*dto.PostDTO, error) {
	topic, err := s.getTopic(ctx, boardID, topicID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{
		Message:     form.Message,
		TopicID:     topic.ID,
		CreatedByID: userID,
		CreatedAt:   now,
	}
	if err = s.postRepo.CreateReply(ctx, post, now); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "topic replied", "board_id", boardID, "topic_id", topic.ID, "post_id", post.ID)
	s.metrics.IncrementPostCreated()
	invalidateBoardCache(ctx)
	publishEvent(ctx, s.publisher, s.metrics, &kafka.ForumEvent{
		Type:       kafka.EventPostReplied,
		BoardID:    boardID,
		TopicID:    topic.ID,
		PostID:     post.ID,
		UserID:     userID,
		OccurredAt: now,
	})

	return toPostDTO(post, boardID)
}

func (s *topicServiceImpl) GetRecentPosts(ctx context.Context, boardID uint64, topicID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetRecentPostsByTopic(ctx, topicID, RecentPostsLimit)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts, boardID)
}
