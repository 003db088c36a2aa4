// Package services содержит логику каталога авторов: поиск, профиль с
// разграничением доступа к медиа и кеширование ответов API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/creator-hub/internal/access"
	"github.com/magabrotheeeer/creator-hub/internal/cache"
	"github.com/magabrotheeeer/creator-hub/internal/discovery"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Upstream описывает методы API каталога.
type Upstream interface {
	FetchCreators(ctx context.Context, token string) ([]models.Creator, error)
	FetchCreator(ctx context.Context, token, creatorID string) (*models.Creator, error)
	FetchCreatorMedia(ctx context.Context, token, creatorID string) ([]models.Media, error)
	FetchCurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// Subscriptions отдаёт снимок подписок зрителя.
type Subscriptions interface {
	Subscriptions(ctx context.Context, viewer session.Viewer) ([]models.Subscription, error)
}

// CacheObserver получает результат каждого обращения к кешу: "hit", "miss" или "error".
type CacheObserver func(result string)

// CatalogService отдаёт авторов и их медиа. Ответы API кешируются без учёта
// зрителя, решение о доступе принимается при каждом запросе.
type CatalogService struct {
	upstream Upstream
	cache    Cache
	subs     Subscriptions
	ttl      time.Duration
	now      func() time.Time
	log      *slog.Logger
	observe  CacheObserver
}

// NewCatalogService создает новый экземпляр CatalogService. cache может быть nil.
func NewCatalogService(upstream Upstream, cache Cache, subs Subscriptions, ttl time.Duration, now func() time.Time, log *slog.Logger, observe CacheObserver) *CatalogService {
	if now == nil {
		now = time.Now
	}
	return &CatalogService{
		upstream: upstream,
		cache:    cache,
		subs:     subs,
		ttl:      ttl,
		now:      now,
		log:      log,
		observe:  observe,
	}
}

// Creators возвращает авторов, отфильтрованных по query и упорядоченных по sortKey.
func (s *CatalogService) Creators(ctx context.Context, viewer session.Viewer, query string, sortKey discovery.SortKey) ([]models.Creator, error) {
	const op = "services.Creators"
	creators, err := s.allCreators(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return discovery.FilterAndSort(creators, query, sortKey), nil
}

// Popular возвращает limit авторов с наибольшим числом подписчиков.
func (s *CatalogService) Popular(ctx context.Context, viewer session.Viewer, limit int) ([]models.Creator, error) {
	const op = "services.Popular"
	creators, err := s.allCreators(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return discovery.Popular(creators, limit), nil
}

// AllCreators возвращает всех авторов без фильтрации.
func (s *CatalogService) AllCreators(ctx context.Context, viewer session.Viewer) ([]models.Creator, error) {
	return s.allCreators(ctx, viewer)
}

// CurrentUser возвращает профиль зрителя. Ответ зависит от токена и не кешируется.
func (s *CatalogService) CurrentUser(ctx context.Context, viewer session.Viewer) (*models.User, error) {
	const op = "services.CurrentUser"
	user, err := s.upstream.FetchCurrentUser(ctx, viewer.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// CreatorMedia возвращает все медиа автора без разграничения доступа.
// Предназначен для внутренних потребителей, которые сами проверяют доступ.
func (s *CatalogService) CreatorMedia(ctx context.Context, viewer session.Viewer, creatorID string) ([]models.Media, error) {
	const op = "services.CreatorMedia"
	var media []models.Media
	err := s.cached(ctx, cache.CreatorMediaKey(creatorID), &media, func() error {
		var err error
		media, err = s.upstream.FetchCreatorMedia(ctx, viewer.Token, creatorID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return media, nil
}

// Profile собирает профиль автора глазами зрителя. Премиальные медиа без
// активной подписки возвращаются закрытыми, со стёртыми ссылками.
// Автор всегда видит свои медиа.
func (s *CatalogService) Profile(ctx context.Context, viewer session.Viewer, creatorID string) (*models.ProfileView, error) {
	const op = "services.Profile"

	var creator models.Creator
	err := s.cached(ctx, cache.CreatorKey(creatorID), &creator, func() error {
		c, err := s.upstream.FetchCreator(ctx, viewer.Token, creatorID)
		if err != nil {
			return err
		}
		creator = *c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := s.CreatorMedia(ctx, viewer, creatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.subs.Subscriptions(ctx, viewer)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		}
		s.log.Warn("failed to load viewer subscriptions, premium media stays locked",
			slog.String("op", op), slog.String("viewer_id", viewer.ID), sl.Err(err))
		subs = nil
	}

	now := s.now()
	owner := viewer.Owns(creatorID)
	view := &models.ProfileView{
		Creator:      creator,
		Media:        make([]models.GatedMedia, 0, len(media)),
		IsSubscribed: access.HasAccess(subs, creatorID, nil, now),
		IsOwner:      owner,
	}
	for _, m := range media {
		if m.IsPublic {
			view.PublicCount++
		} else {
			view.PremiumCount++
		}
		locked := !owner && !access.HasAccess(subs, creatorID, &m, now)
		view.Media = append(view.Media, gate(m, locked))
	}
	return view, nil
}

// InvalidateCreator сбрасывает кеш автора после изменения его медиа.
func (s *CatalogService) InvalidateCreator(ctx context.Context, creatorID string) {
	if s.cache == nil {
		return
	}
	keys := []string{cache.CreatorKey(creatorID), cache.CreatorMediaKey(creatorID), cache.CreatorsKey}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate creator cache", slog.String("creator_id", creatorID), sl.Err(err))
	}
}

func (s *CatalogService) allCreators(ctx context.Context, viewer session.Viewer) ([]models.Creator, error) {
	var creators []models.Creator
	err := s.cached(ctx, cache.CreatorsKey, &creators, func() error {
		var err error
		creators, err = s.upstream.FetchCreators(ctx, viewer.Token)
		return err
	})
	return creators, err
}

// cached читает key в result; при промахе вызывает load, который заполняет result,
// и сохраняет его в кеш. Ошибки кеша не прерывают запрос.
func (s *CatalogService) cached(ctx context.Context, key string, result any, load func() error) error {
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, result)
		switch {
		case err != nil:
			s.record("error")
			s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		case found:
			s.record("hit")
			return nil
		default:
			s.record("miss")
		}
	}

	if err := load(); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			s.log.Warn("failed to cache value", slog.String("key", key), sl.Err(err))
		}
	}
	return nil
}

func (s *CatalogService) record(result string) {
	if s.observe != nil {
		s.observe(result)
	}
}

func gate(m models.Media, locked bool) models.GatedMedia {
	if locked {
		m.URL = ""
		m.ThumbnailURL = nil
	}
	return models.GatedMedia{Media: m, Locked: locked}
}
