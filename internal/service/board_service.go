package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/redis"
	"Planting/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// BoardListTTL 首页缓存时间
const BoardListTTL = time.Minute

type BoardService interface {
	GetBoards(ctx context.Context) ([]*dto.BoardDTO, error)
	GetBoard(ctx context.Context, boardID uint64) (*dto.BoardDTO, error)
	GetBoardTopics(ctx context.Context, boardID uint64) (*dto.BoardTopicsDTO, error)
}

type boardServiceImpl struct {
	boardRepo repository.BoardRepo
	topicRepo repository.TopicRepo
}

func NewBoardService(boardRepo repository.BoardRepo, topicRepo repository.TopicRepo) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		topicRepo: topicRepo,
	}
}

// GetBoards 首页版块列表，带主题数/帖子数/最新帖子
func (s *boardServiceImpl) GetBoards(ctx context.Context) ([]*dto.BoardDTO, error) {
	value, err := redis.GetValue(ctx, consts.BoardListKey)
	if err != nil {
		log.WarnContext(ctx, "read board cache failed", "err", err)
	}
	if value != "" {
		var cached []*dto.BoardDTO
		if err = json.Unmarshal([]byte(value), &cached); err == nil {
			return cached, nil
		}
		log.WarnContext(ctx, "decode board cache failed", "err", err)
	}

	summaries, err := s.boardRepo.GetBoardSummaries(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]*dto.BoardDTO, 0, len(summaries))
	for _, summary := range summaries {
		boardDTO, err := toBoardDTO(&summary.Board)
		if err != nil {
			return nil, err
		}
		boardDTO.TopicsCount = summary.TopicsCount
		boardDTO.PostsCount = summary.PostsCount
		if summary.LastPost != nil {
			boardDTO.LastPost, err = toPostDTO(summary.LastPost, summary.ID)
			if err != nil {
				return nil, err
			}
		}
		boards = append(boards, boardDTO)
	}

	if redis.Enabled() {
		if jsonStr, err := json.Marshal(boards); err == nil {
			if err = redis.SetWithExpiration(ctx, consts.BoardListKey, string(jsonStr), BoardListTTL); err != nil {
				log.WarnContext(ctx, "write board cache failed", "err", err)
			}
		}
	}
	return boards, nil
}

func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uint64) (*dto.BoardDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return toBoardDTO(board)
}

// GetBoardTopics 版块下的主题，最近更新的在前
func (s *boardServiceImpl) GetBoardTopics(ctx context.Context, boardID uint64) (*dto.BoardTopicsDTO, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	topics, err := s.topicRepo.GetTopicsByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	result := &dto.BoardTopicsDTO{
		Board:  board,
		Topics: make([]*dto.TopicDTO, 0, len(topics)),
	}
	for _, topic := range topics {
		topicDTO, err := toTopicDTO(&topic.Topic, topic.Replies)
		if err != nil {
			return nil, err
		}
		topicDTO.BoardName = board.Name
		result.Topics = append(result.Topics, topicDTO)
	}
	return result, nil
}
