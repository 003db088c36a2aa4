// Package creatorhub собирает HTTP-приложение: маршруты, сервисы и их зависимости.
package creatorhub

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/account/me"
	creatorslist "github.com/magabrotheeeer/creator-hub/internal/http/handlers/creators/list"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/creators/popular"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/creators/profile"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/feed"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/health"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/media/remove"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/media/reset"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/media/stage"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/media/submit"
	"github.com/magabrotheeeer/creator-hub/internal/http/handlers/subscriptions/checkout"
	subscriptionslist "github.com/magabrotheeeer/creator-hub/internal/http/handlers/subscriptions/list"
	"github.com/magabrotheeeer/creator-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// CatalogService объединяет методы каталога, нужные обработчикам.
type CatalogService interface {
	creatorslist.Service
	popular.Service
	profile.Service
	me.Service
}

// SubscriptionService объединяет методы подписок, нужные обработчикам.
type SubscriptionService interface {
	subscriptionslist.Service
	checkout.Service
}

// MediaService объединяет методы загрузки, нужные обработчикам.
type MediaService interface {
	stage.Service
	remove.Service
	reset.Service
	submit.Service
}

// Services: сервисы, которые обслуживают маршруты.
type Services struct {
	Catalog       CatalogService
	Subscriptions SubscriptionService
	Media         MediaService
	Feed          feed.Service
}

// UploadOptions: ограничения маршрутов, принимающих и отправляющих файлы.
type UploadOptions struct {
	// MaxBody максимальный размер тела запроса с файлами, 0 без ограничения.
	MaxBody int64
	// Timeout дедлайн соединения для маршрутов загрузки.
	Timeout time.Duration
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, parser middlewarectx.TokenParser, limiter *middlewarectx.Limiter, gatherer prometheus.Gatherer, svc Services, uploads UploadOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New().ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(parser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			// Каталог доступен и без входа
			r.Get("/creators", creatorslist.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/creators/popular", popular.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/creators/{id}", profile.New(logger, svc.Catalog).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireViewer(logger))
				r.Get("/me", me.New(logger, svc.Catalog).ServeHTTP)
				r.Get("/feed", feed.New(logger, svc.Feed).ServeHTTP)
				r.Get("/subscriptions", subscriptionslist.New(logger, svc.Subscriptions).ServeHTTP)
				r.Post("/subscriptions/checkout", checkout.New(logger, svc.Subscriptions).ServeHTTP)

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireRole(logger, models.RoleCreator))
					r.Delete("/media/batch", reset.New(logger, svc.Media).ServeHTTP)
					r.Delete("/media/batch/{previewID}", remove.New(logger, svc.Media).ServeHTTP)

					r.Group(func(r chi.Router) {
						r.Use(middlewarectx.ExtendDeadlines(uploads.Timeout, logger))
						r.Post("/media/batch", stage.New(logger, svc.Media, uploads.MaxBody).ServeHTTP)
						r.Post("/media/batch/submit", submit.New(logger, svc.Media).ServeHTTP)
					})
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
