// Package metrics регистрирует метрики prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics: набор коллекторов сервиса.
type Metrics struct {
	FeedFetchFailures prometheus.Counter
	FeedPosts         prometheus.Histogram
	UploadRejections  *prometheus.CounterVec
	CacheResults      *prometheus.CounterVec
	EventsPublished   *prometheus.CounterVec
}

// New регистрирует коллекторы в reg. Для основного процесса передаётся
// prometheus.DefaultRegisterer, в тестах: отдельный реестр.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FeedFetchFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "creator_hub_feed_fetch_failures_total",
			Help: "Number of per-creator media fetches that failed while composing a feed.",
		}),
		FeedPosts: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "creator_hub_feed_posts",
			Help:    "Number of posts in a composed feed.",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		UploadRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "creator_hub_upload_rejections_total",
			Help: "Number of rejected upload batches by reason.",
		}, []string{"reason"}),
		CacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "creator_hub_cache_requests_total",
			Help: "Catalog cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "creator_hub_events_published_total",
			Help: "Published events by routing key and outcome.",
		}, []string{"routing_key", "outcome"}),
	}
}

// FeedFailure учитывает неудачную загрузку медиа автора.
func (m *Metrics) FeedFailure(string, error) {
	m.FeedFetchFailures.Inc()
}

// FeedComposed учитывает размер собранной ленты.
func (m *Metrics) FeedComposed(posts int) {
	m.FeedPosts.Observe(float64(posts))
}

// UploadRejected учитывает отклонённый пакет загрузки.
func (m *Metrics) UploadRejected(reason string) {
	m.UploadRejections.WithLabelValues(reason).Inc()
}

// CacheResult учитывает обращение к кешу каталога.
func (m *Metrics) CacheResult(result string) {
	m.CacheResults.WithLabelValues(result).Inc()
}

// EventPublished учитывает публикацию события.
func (m *Metrics) EventPublished(routingKey string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublished.WithLabelValues(routingKey, outcome).Inc()
}
