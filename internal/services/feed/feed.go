// Package services собирает персональную ленту зрителя.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/creator-hub/internal/access"
	"github.com/magabrotheeeer/creator-hub/internal/feed"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Catalog отдаёт авторов и их медиа.
type Catalog interface {
	AllCreators(ctx context.Context, viewer session.Viewer) ([]models.Creator, error)
	CreatorMedia(ctx context.Context, viewer session.Viewer, creatorID string) ([]models.Media, error)
}

// Store отдаёт снимок подписок зрителя.
type Store interface {
	Subscriptions(ctx context.Context, viewer session.Viewer) ([]models.Subscription, error)
}

// FeedService строит ленту из медиа авторов, на которых подписан зритель.
type FeedService struct {
	catalog  Catalog
	store    Store
	composer *feed.Composer
	now      func() time.Time
	log      *slog.Logger
}

// NewFeedService создает новый экземпляр FeedService.
func NewFeedService(catalog Catalog, store Store, composer *feed.Composer, now func() time.Time, log *slog.Logger) *FeedService {
	if now == nil {
		now = time.Now
	}
	return &FeedService{catalog: catalog, store: store, composer: composer, now: now, log: log}
}

// Feed возвращает ленту зрителя. Без активных подписок лента пустая,
// и список авторов не запрашивается.
func (s *FeedService) Feed(ctx context.Context, viewer session.Viewer) ([]models.FeedPost, error) {
	const op = "services.Feed"

	subs, err := s.store.Subscriptions(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	if len(access.ActiveCreatorIDs(subs, now)) == 0 {
		return []models.FeedPost{}, nil
	}

	creators, err := s.catalog.AllCreators(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fetch := func(ctx context.Context, creatorID string) ([]models.Media, error) {
		return s.catalog.CreatorMedia(ctx, viewer, creatorID)
	}
	posts, err := s.composer.Compose(ctx, subs, creators, fetch, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("feed composed", slog.String("viewer_id", viewer.ID), slog.Int("posts", len(posts)))
	return posts, nil
}
