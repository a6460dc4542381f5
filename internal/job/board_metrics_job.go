package job

import (
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/logger"
	"Planting/internal/pkg/redis"
	"Planting/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// BoardMetricsLockTTL 多实例部署时只允许一个实例执行
const BoardMetricsLockTTL = 10 * time.Minute

type BoardMetricsJob struct {
	metricSvc service.BoardMetricService
}

func NewBoardMetricsJob(metricSvc service.BoardMetricService) *BoardMetricsJob {
	return &BoardMetricsJob{
		metricSvc: metricSvc,
	}
}

func (s *BoardMetricsJob) Run() {
	traceID := "job-board-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.BoardMetricsLock, traceID, BoardMetricsLockTTL, 0)
	if err != nil {
		log.ErrorContext(ctx, "acquire board metrics lock error", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "BoardMetricsJob skipped, lock held by another instance")
		return
	}
	defer redis.UnLock(ctx, consts.BoardMetricsLock, traceID)

	synced, err := s.metricSvc.SyncBoardMetrics(ctx, time.Now())
	if err != nil {
		log.ErrorContext(ctx, "sync board metrics error", "err", err)
		return
	}

	log.InfoContext(ctx, "BoardMetricsJob finished", "synced_count", synced)
}
