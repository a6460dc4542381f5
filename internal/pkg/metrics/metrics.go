package metrics

import (
	log "log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "planting"

// Metrics 应用指标，所有方法允许 nil 接收者
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TopicsCreatedTotal prometheus.Counter
	PostsCreatedTotal  prometheus.Counter
	PostsEditedTotal   prometheus.Counter
	TopicViewsTotal    prometheus.Counter
	EventPublishErrors prometheus.Counter
}

// New 使用独立的 Registry，附带 Go 运行时与进程指标
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(registry)
}

func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),

		TopicsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_created_total",
			Help:      "Total number of topics created",
		}),
		PostsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Total number of posts created, opening posts included",
		}),
		PostsEditedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_edited_total",
			Help:      "Total number of post edits",
		}),
		TopicViewsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topic_views_total",
			Help:      "Total number of topic detail page views",
		}),
		EventPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "Total number of forum events that failed to publish",
		}),
	}
}

// Handler /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 测试中读取指标
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// safeExecute 指标异常不能影响业务
func (m *Metrics) safeExecute(operation string, fn func()) {
	if m == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in metrics operation", "operation", operation, "panic", r)
		}
	}()
	fn()
}
