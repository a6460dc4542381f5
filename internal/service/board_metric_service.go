package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/model"
	"Planting/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type BoardMetricService interface {
	SyncBoardMetrics(ctx context.Context, date time.Time) (int, error)
	GetBoardMetrics(ctx context.Context, boardID uint64, days int) ([]*dto.BoardMetricDTO, error)
}

type boardMetricServiceImpl struct {
	boardRepo  repository.BoardRepo
	metricRepo repository.BoardMetricRepo
}

func NewBoardMetricService(boardRepo repository.BoardRepo, metricRepo repository.BoardMetricRepo) BoardMetricService {
	return &boardMetricServiceImpl{
		boardRepo:  boardRepo,
		metricRepo: metricRepo,
	}
}

// MetricDay 统计日期按天截断
func MetricDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SyncBoardMetrics 为每个版块写入当天的累计快照，重复执行覆盖同一行
func (s *boardMetricServiceImpl) SyncBoardMetrics(ctx context.Context, date time.Time) (int, error) {
	boards, err := s.boardRepo.GetBoards(ctx)
	if err != nil {
		return 0, err
	}

	day := MetricDay(date)
	synced := 0
	for _, board := range boards {
		stats, err := s.boardRepo.GetBoardStats(ctx, board.ID)
		if err != nil {
			log.ErrorContext(ctx, "get board stats error", "board_id", board.ID, "err", err)
			continue
		}

		metric := &model.BoardMetric{
			BoardID:     board.ID,
			MetricDate:  day,
			TotalTopics: stats.Topics,
			TotalPosts:  stats.Posts,
			TotalViews:  stats.Views,
		}
		if err = s.metricRepo.SaveOrUpdateMetric(ctx, metric); err != nil {
			log.ErrorContext(ctx, "save board metric error", "board_id", board.ID, "err", err)
			continue
		}
		synced++
	}
	return synced, nil
}

func (s *boardMetricServiceImpl) GetBoardMetrics(ctx context.Context, boardID uint64, days int) ([]*dto.BoardMetricDTO, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}

	since := MetricDay(time.Now()).AddDate(0, 0, -(days - 1))
	metrics, err := s.metricRepo.GetBoardMetricsSince(ctx, boardID, since)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.BoardMetricDTO, 0, len(metrics))
	for _, metric := range metrics {
		result = append(result, &dto.BoardMetricDTO{
			BoardID:     metric.BoardID,
			MetricDate:  metric.MetricDate,
			TotalTopics: metric.TotalTopics,
			TotalPosts:  metric.TotalPosts,
			TotalViews:  metric.TotalViews,
		})
	}
	return result, nil
}
