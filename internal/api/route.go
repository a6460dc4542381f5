package api

import (
	"Planting/internal/api/middleware"
	"Planting/internal/pkg/logger"
	"Planting/internal/pkg/metrics"
	"Planting/internal/pkg/response"
	"Planting/internal/web"

	"github.com/gin-gonic/gin"
)

// RouterOptions 路由依赖的配置
type RouterOptions struct {
	LoginURL string
	LogIndex string
	Metrics  *metrics.Metrics
}

func SetupRouter(group *HandlersGroup, opts RouterOptions) (*gin.Engine, error) {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// TraceId & Logger & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	logger.SetupGin(r, opts.LogIndex)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, "pong", nil)
		})

		metricsGroup := apiGroup.Group("/boards/:board_id/metrics")
		{
			metricsGroup.GET("/7d", group.BoardMetricHandler.GetMetrics7Days)
			metricsGroup.GET("/30d", group.BoardMetricHandler.GetMetrics30Days)
		}
	}

	// 页面：所有页面都尝试识别当前用户
	site := r.Group("")
	site.Use(middleware.AuthOptionalMiddleware())
	{
		site.GET("/", group.BoardHandler.Home)
		site.GET("/boards/:board_id/", group.BoardHandler.BoardTopics)
		site.GET("/boards/:board_id/topics/:topic_id/", group.TopicHandler.TopicPosts)

		site.GET("/login/", group.AccountHandler.LoginPage)
		site.POST("/login/", group.AccountHandler.Login)
		site.GET("/signup/", group.AccountHandler.SignUpPage)
		site.POST("/signup/", group.AccountHandler.SignUp)
		site.POST("/logout/", group.AccountHandler.Logout)
	}

	authGroup := r.Group("/boards/:board_id")
	authGroup.Use(middleware.AuthMiddleware(opts.LoginURL))
	{
		authGroup.GET("/new/", group.TopicHandler.NewTopicPage)
		authGroup.POST("/new/", group.TopicHandler.CreateTopic)
		authGroup.GET("/topics/:topic_id/reply/", group.TopicHandler.ReplyPage)
		authGroup.POST("/topics/:topic_id/reply/", group.TopicHandler.ReplyTopic)
		authGroup.GET("/topics/:topic_id/posts/:post_id/edit/", group.PostHandler.EditPostPage)
		authGroup.POST("/topics/:topic_id/posts/:post_id/edit/", group.PostHandler.UpdatePost)
	}

	r.NoRoute(middleware.AuthOptionalMiddleware(), response.PageNotFound)

	return r, nil
}
