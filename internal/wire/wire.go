package wire

import (
	"Planting/internal/api"
	"Planting/internal/api/config"
	"Planting/internal/api/handler"
	"Planting/internal/job"
	"Planting/internal/pkg/cron"
	"Planting/internal/pkg/kafka"
	"Planting/internal/pkg/metrics"
	"Planting/internal/repository"
	"Planting/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	DB        *gorm.DB
	CronMgr   *cron.Manager
	Publisher kafka.Publisher
	Metrics   *metrics.Metrics
}

func BuildApplication(db *gorm.DB, cfg *config.Config, publisher kafka.Publisher, m *metrics.Metrics) (*ApplicationContainer, error) {
	boardRepo := repository.NewBoardRepo(db)
	topicRepo := repository.NewTopicRepo(db)
	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepo(db)
	boardMetricRepo := repository.NewBoardMetricRepository(db)

	boardService := service.NewBoardService(boardRepo, topicRepo)
	topicService := service.NewTopicService(boardRepo, topicRepo, postRepo, publisher, m)
	postService := service.NewPostService(postRepo, publisher, m)
	userService := service.NewUserService(userRepo)
	boardMetricService := service.NewBoardMetricService(boardRepo, boardMetricRepo)

	handlers := &api.HandlersGroup{
		BoardHandler:       handler.NewBoardHandler(boardService),
		TopicHandler:       handler.NewTopicHandler(boardService, topicService),
		PostHandler:        handler.NewPostHandler(topicService, postService),
		AccountHandler:     handler.NewAccountHandler(userService, cfg.JWT.CookieSecure),
		BoardMetricHandler: handler.NewBoardMetricHandler(boardService, boardMetricService),
	}

	router, err := api.SetupRouter(handlers, api.RouterOptions{
		LoginURL: cfg.Server.LoginURL,
		LogIndex: cfg.Logstash.Index,
		Metrics:  m,
	})
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(cfg.Cron.BoardMetrics, job.NewBoardMetricsJob(boardMetricService))

	return &ApplicationContainer{
		Router:    router,
		DB:        db,
		CronMgr:   cronMgr,
		Publisher: publisher,
		Metrics:   m,
	}, nil
}
