package repository

import (
	"Planting/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type BoardRepo interface {
	GetBoards(ctx context.Context) ([]*model.Board, error)
	GetBoardById(ctx context.Context, id uint64) (*model.Board, error)
	GetBoardSummaries(ctx context.Context) ([]*model.BoardSummary, error)
	GetBoardStats(ctx context.Context, id uint64) (*BoardStats, error)
}

// BoardStats 版块累计数据
type BoardStats struct {
	Topics int64
	Posts  int64
	Views  int64
}

type BoardRepoImpl struct {
	db *gorm.DB
}

func NewBoardRepo(db *gorm.DB) BoardRepo {
	return &BoardRepoImpl{db: db}
}

func (s *BoardRepoImpl) GetBoards(ctx context.Context) ([]*model.Board, error) {
	boards := make([]*model.Board, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *BoardRepoImpl) GetBoardById(ctx context.Context, id uint64) (*model.Board, error) {
	board := &model.Board{}
	err := s.db.WithContext(ctx).First(board, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return board, nil
}

type boardCount struct {
	BoardID uint64
	Total   int64
}

// GetBoardSummaries 首页数据：版块 + 主题数 + 帖子数 + 最新帖子
func (s *BoardRepoImpl) GetBoardSummaries(ctx context.Context) ([]*model.BoardSummary, error) {
	boards, err := s.GetBoards(ctx)
	if err != nil {
		return nil, err
	}

	var topicCounts []boardCount
	err = s.db.WithContext(ctx).Model(&model.Topic{}).
		Select("board_id, COUNT(*) AS total").
		Group("board_id").
		Scan(&topicCounts).Error
	if err != nil {
		return nil, err
	}

	var postCounts []boardCount
	err = s.db.WithContext(ctx).Model(&model.Post{}).
		Select("topics.board_id AS board_id, COUNT(posts.id) AS total").
		Joins("JOIN topics ON topics.id = posts.topic_id").
		Group("topics.board_id").
		Scan(&postCounts).Error
	if err != nil {
		return nil, err
	}

	topicsByBoard := make(map[uint64]int64, len(topicCounts))
	for _, c := range topicCounts {
		topicsByBoard[c.BoardID] = c.Total
	}
	postsByBoard := make(map[uint64]int64, len(postCounts))
	for _, c := range postCounts {
		postsByBoard[c.BoardID] = c.Total
	}

	summaries := make([]*model.BoardSummary, 0, len(boards))
	for _, board := range boards {
		summary := &model.BoardSummary{
			Board:       *board,
			TopicsCount: topicsByBoard[board.ID],
			PostsCount:  postsByBoard[board.ID],
		}
		if summary.PostsCount > 0 {
			summary.LastPost, err = s.getLastPost(ctx, board.ID)
			if err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *BoardRepoImpl) getLastPost(ctx context.Context, boardID uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Topic").
		Joins("JOIN topics ON topics.id = posts.topic_id").
		Where("topics.board_id = ?", boardID).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Take(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (s *BoardRepoImpl) GetBoardStats(ctx context.Context, id uint64) (*BoardStats, error) {
	stats := &BoardStats{}
	err := s.db.WithContext(ctx).Model(&model.Topic{}).
		Select("COUNT(*) AS topics, COALESCE(SUM(views), 0) AS views").
		Where("board_id = ?", id).
		Scan(stats).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&model.Post{}).
		Joins("JOIN topics ON topics.id = posts.topic_id").
		Where("topics.board_id = ?", id).
		Count(&stats.Posts).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
