// Package services содержит логику подписок зрителя: снимок записей и оформление оплаты.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-hub/internal/access"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/rabbitmq"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

var (
	// ErrForbiddenRole: оформлять подписки могут только зрители с ролью USER.
	ErrForbiddenRole = errors.New("only viewers can subscribe")
	// ErrSelfSubscription: автор не может подписаться сам на себя.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	// ErrAlreadySubscribed: у зрителя уже есть активная подписка на автора.
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// Upstream описывает методы API подписок.
type Upstream interface {
	FetchUserSubscriptions(ctx context.Context, token string) ([]models.Subscription, error)
	CreateCheckoutSession(ctx context.Context, token, creatorID string) (string, error)
}

// Store отдаёт снимок подписок зрителя.
type Store interface {
	Subscriptions(ctx context.Context, viewer session.Viewer) ([]models.Subscription, error)
}

// Publisher публикует события в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// SubscriptionService реализует сценарии работы с подписками зрителя.
type SubscriptionService struct {
	upstream  Upstream
	store     Store
	publisher Publisher
	now       func() time.Time
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService. publisher может быть nil.
func NewSubscriptionService(upstream Upstream, store Store, publisher Publisher, now func() time.Time, log *slog.Logger) *SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{
		upstream:  upstream,
		store:     store,
		publisher: publisher,
		now:       now,
		log:       log,
	}
}

// List возвращает все записи подписок зрителя с признаком активности на текущий момент.
func (s *SubscriptionService) List(ctx context.Context, viewer session.Viewer) ([]models.SubscriptionView, error) {
	const op = "services.List"
	subs, err := s.store.Subscriptions(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	views := make([]models.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, models.SubscriptionView{Subscription: sub, Active: access.IsActive(sub, now)})
	}
	return views, nil
}

// Checkout создаёт сессию оплаты подписки на автора и возвращает адрес перехода.
func (s *SubscriptionService) Checkout(ctx context.Context, viewer session.Viewer, creatorID string) (string, error) {
	const op = "services.Checkout"

	if viewer.Role != models.RoleUser {
		return "", fmt.Errorf("%s: %w", op, ErrForbiddenRole)
	}
	if viewer.Owns(creatorID) {
		return "", fmt.Errorf("%s: %w", op, ErrSelfSubscription)
	}

	subs, err := s.store.Subscriptions(ctx, viewer)
	if err != nil {
		s.log.Warn("failed to load subscriptions before checkout", slog.String("op", op), sl.Err(err))
	} else if access.HasAccess(subs, creatorID, nil, s.now()) {
		return "", fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
	}

	url, err := s.upstream.CreateCheckoutSession(ctx, viewer.Token, creatorID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout session created", slog.String("viewer_id", viewer.ID), slog.String("creator_id", creatorID))

	if s.publisher != nil {
		evt := models.CheckoutRequestedEvent{EventID: uuid.NewString(), UserID: viewer.ID, CreatorID: creatorID}
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingCheckoutRequested, evt); err != nil {
			s.log.Warn("failed to publish checkout event", slog.String("op", op), sl.Err(err))
		}
	}
	return url, nil
}

// Fetcher загружает подписки зрителя из API от его имени.
type Fetcher struct {
	upstream Upstream
}

// NewFetcher создаёт Fetcher для session.Store.
func NewFetcher(upstream Upstream) *Fetcher {
	return &Fetcher{upstream: upstream}
}

// FetchUserSubscriptions реализует session.Fetcher.
func (f *Fetcher) FetchUserSubscriptions(ctx context.Context, viewer session.Viewer) ([]models.Subscription, error) {
	return f.upstream.FetchUserSubscriptions(ctx, viewer.Token)
}
