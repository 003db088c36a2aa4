package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// ErrStale означает, что за время загрузки снимок зрителя был сброшен,
// и результат загрузки отброшен.
var ErrStale = errors.New("subscription snapshot was reset during refresh")

// Fetcher загружает подписки зрителя из удалённого API.
type Fetcher interface {
	FetchUserSubscriptions(ctx context.Context, viewer Viewer) ([]models.Subscription, error)
}

type snapshot struct {
	subs      []models.Subscription
	fetchedAt time.Time
}

// Store хранит снимки подписок зрителей.
// Снимок заменяется целиком и никогда не правится по частям.
// Решение о доступе в Store не кешируется: его вычисляют по снимку при каждом чтении.
type Store struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger

	mu        sync.Mutex
	snapshots map[string]snapshot
	// generations и inflight есть у зрителя только пока идёт его загрузка.
	generations map[string]uint64
	inflight    map[string]int
}

// NewStore создаёт Store. ttl задаёт, как долго снимок считается свежим.
func NewStore(fetcher Fetcher, ttl time.Duration, now func() time.Time, log *slog.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		fetcher:     fetcher,
		ttl:         ttl,
		now:         now,
		log:         log,
		snapshots:   make(map[string]snapshot),
		generations: make(map[string]uint64),
		inflight:    make(map[string]int),
	}
}

// Subscriptions возвращает снимок подписок зрителя, загружая его при отсутствии
// или устаревании. Для анонимного зрителя подписок нет.
// Если снимок сбросили во время загрузки, загрузка повторяется один раз.
func (s *Store) Subscriptions(ctx context.Context, viewer Viewer) ([]models.Subscription, error) {
	if !viewer.IsAuthenticated() {
		return nil, nil
	}

	s.mu.Lock()
	snap, ok := s.snapshots[viewer.ID]
	s.mu.Unlock()
	if ok && s.now().Sub(snap.fetchedAt) < s.ttl {
		return clone(snap.subs), nil
	}

	subs, err := s.Refresh(ctx, viewer)
	if errors.Is(err, ErrStale) {
		return s.Refresh(ctx, viewer)
	}
	return subs, err
}

// Refresh загружает подписки заново и заменяет снимок.
// Если во время загрузки был вызван Reset, результат отбрасывается и возвращается ErrStale.
func (s *Store) Refresh(ctx context.Context, viewer Viewer) ([]models.Subscription, error) {
	const op = "session.Store.Refresh"
	if !viewer.IsAuthenticated() {
		return nil, nil
	}

	s.mu.Lock()
	gen := s.generations[viewer.ID]
	s.inflight[viewer.ID]++
	s.mu.Unlock()

	subs, err := s.fetcher.FetchUserSubscriptions(ctx, viewer)

	s.mu.Lock()
	defer s.mu.Unlock()
	stale := s.generations[viewer.ID] != gen
	s.finish(viewer.ID)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if stale {
		s.log.Debug("discarding stale subscription snapshot", slog.String("viewer", viewer.ID))
		return nil, fmt.Errorf("%s: %w", op, ErrStale)
	}
	s.snapshots[viewer.ID] = snapshot{subs: clone(subs), fetchedAt: s.now()}
	return clone(subs), nil
}

// finish снимает отметку о загрузке. Вызывается под s.mu.
func (s *Store) finish(viewerID string) {
	s.inflight[viewerID]--
	if s.inflight[viewerID] > 0 {
		return
	}
	delete(s.inflight, viewerID)
	delete(s.generations, viewerID)
}

// Reset удаляет снимок зрителя. Загрузки, начатые до сброса, свой результат не сохранят.
func (s *Store) Reset(viewerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[viewerID] > 0 {
		s.generations[viewerID]++
	}
	delete(s.snapshots, viewerID)
}

// Prune удаляет устаревшие снимки и возвращает их количество.
func (s *Store) Prune() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, snap := range s.snapshots {
		if now.Sub(snap.fetchedAt) >= s.ttl {
			delete(s.snapshots, id)
			pruned++
		}
	}
	return pruned
}

// HandleSubscriptionChanged сбрасывает снимок по событию биллинга.
func (s *Store) HandleSubscriptionChanged(evt models.SubscriptionChangedEvent) {
	if evt.UserID == "" {
		s.log.Warn("subscription changed event without user id")
		return
	}
	s.Reset(evt.UserID)
	s.log.Info("subscription snapshot reset", slog.String("viewer", evt.UserID))
}

// Len возвращает количество хранимых снимков.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

func clone(subs []models.Subscription) []models.Subscription {
	if subs == nil {
		return nil
	}
	out := make([]models.Subscription, len(subs))
	copy(out, subs)
	return out
}
