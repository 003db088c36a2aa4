package creatorhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/creator-hub/internal/cache"
	"github.com/magabrotheeeer/creator-hub/internal/config"
	feedcomposer "github.com/magabrotheeeer/creator-hub/internal/feed"
	"github.com/magabrotheeeer/creator-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/metrics"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/rabbitmq"
	catalogservice "github.com/magabrotheeeer/creator-hub/internal/services/catalog"
	feedservice "github.com/magabrotheeeer/creator-hub/internal/services/feed"
	mediaservice "github.com/magabrotheeeer/creator-hub/internal/services/media"
	subservice "github.com/magabrotheeeer/creator-hub/internal/services/subscription"
	"github.com/magabrotheeeer/creator-hub/internal/session"
	"github.com/magabrotheeeer/creator-hub/internal/upload"
	"github.com/magabrotheeeer/creator-hub/internal/upstream"
)

const shutdownTimeout = 15 * time.Second

var errJWTSecret = errors.New("creatorhub.New: jwt secret key is not set")

// App: HTTP-сервер со всеми зависимостями.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	cache    *cache.Cache
	broker   *rabbitmq.Broker
	registry *upload.Registry
	store    *session.Store
	consumer func()

	sweepEvery time.Duration
	batchIdle  time.Duration
}

// New собирает приложение. Redis и RabbitMQ необязательны: без адреса или
// при ошибке подключения сервис работает без кеша и без событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errJWTSecret
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	app := &App{
		logger:     logger,
		sweepEvery: cfg.SweepInterval,
		batchIdle:  cfg.BatchIdleTTL,
	}

	var catalogCache catalogservice.Cache
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, catalog cache disabled", sl.Err(err))
		} else {
			app.cache = cacheRedis
			catalogCache = cacheRedis
		}
	}

	var publisher rabbitmq.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		broker, err := rabbitmq.Dial(ctx, cfg.RabbitMQ, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
		} else {
			app.broker = broker
			publisher = broker.Publisher(m.EventPublished)
		}
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout).
		WithUploadTimeout(cfg.Upstream.UploadTimeout)
	store := session.NewStore(subservice.NewFetcher(client), cfg.SubscriptionsTTL, time.Now, logger)
	app.store = store

	if app.broker != nil {
		wait, err := app.broker.ConsumeSubscriptionChanges(ctx, store)
		if err != nil {
			app.close()
			return nil, err
		}
		app.consumer = wait
	}

	catalog := catalogservice.NewCatalogService(client, catalogCache, store, cfg.CacheTTL, time.Now, logger, m.CacheResult)
	subscriptions := subservice.NewSubscriptionService(client, store, publisher, time.Now, logger)

	validator := upload.NewValidator(upload.Limits{
		MaxFiles:         cfg.MaxFiles,
		MaxFileSize:      cfg.MaxFileSize,
		MaxVideoSeconds:  cfg.MaxVideoDuration.Seconds(),
		ProbeConcurrency: cfg.ProbeConcurrency,
	}, upload.NewFFProbe(cfg.FFProbePath))
	app.registry = upload.NewRegistry(validator, time.Now)
	media := mediaservice.NewMediaService(
		app.registry,
		upload.NewStager(cfg.TempDir, cfg.MaxFileSize),
		client,
		catalog,
		publisher,
		logger,
		m.UploadRejected,
	)

	composer := feedcomposer.NewComposer(logger, cfg.FetchConcurrency, m.FeedFailure)
	feeds := &observedFeed{
		FeedService: feedservice.NewFeedService(catalog, store, composer, time.Now, logger),
		metrics:     m,
	}

	router := chi.NewRouter()
	RegisterRoutes(
		router,
		logger,
		jwt.NewJWTMaker(cfg.JWTSecretKey, 0),
		middlewarectx.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		reg,
		Services{
			Catalog:       catalog,
			Subscriptions: subscriptions,
			Media:         media,
			Feed:          feeds,
		},
		UploadOptions{
			MaxBody: cfg.Upload.MaxRequestBody(),
			Timeout: cfg.HTTPServer.UploadTimeout,
		},
	)

	app.server = &http.Server{
		Addr:              cfg.AddressHTTP,
		Handler:           router,
		ReadHeaderTimeout: cfg.TimeoutHTTP,
		ReadTimeout:       cfg.TimeoutHTTP,
		WriteTimeout:      cfg.TimeoutHTTP,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweep(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// sweep периодически удаляет брошенные пакеты загрузки и устаревшие снимки подписок.
func (a *App) sweep(ctx context.Context) {
	if a.sweepEvery <= 0 {
		return
	}
	ticker := time.NewTicker(a.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			batches := a.registry.Sweep(a.batchIdle)
			snapshots := a.store.Prune()
			if batches > 0 || snapshots > 0 {
				a.logger.Debug("idle state swept",
					slog.Int("batches", batches),
					slog.Int("snapshots", snapshots),
					slog.Int("batches_left", a.registry.Len()),
					slog.Int("snapshots_left", a.store.Len()),
				)
			}
		}
	}
}

func (a *App) close() {
	if a.registry != nil {
		a.registry.Close()
	}
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
		if a.consumer != nil {
			a.consumer()
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
}

// observedFeed учитывает размер каждой собранной ленты.
type observedFeed struct {
	*feedservice.FeedService
	metrics *metrics.Metrics
}

func (f *observedFeed) Feed(ctx context.Context, viewer session.Viewer) ([]models.FeedPost, error) {
	posts, err := f.FeedService.Feed(ctx, viewer)
	if err == nil {
		f.metrics.FeedComposed(len(posts))
	}
	return posts, err
}
