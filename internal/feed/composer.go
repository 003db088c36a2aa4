// Package feed собирает персональную ленту зрителя из свежих публикаций
// авторов, на которых у него есть активная подписка.
package feed

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/creator-hub/internal/access"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// PerCreatorLimit: сколько последних публикаций автора попадает в ленту.
const PerCreatorLimit = 3

// MediaFetcher загружает медиа одного автора.
type MediaFetcher func(ctx context.Context, creatorID string) ([]models.Media, error)

// FailureObserver получает уведомление о неудачной загрузке медиа автора.
type FailureObserver func(creatorID string, err error)

// Composer собирает ленту.
type Composer struct {
	log         *slog.Logger
	concurrency int
	onFailure   FailureObserver
}

// NewComposer создаёт Composer. concurrency ограничивает число одновременных загрузок.
func NewComposer(log *slog.Logger, concurrency int, onFailure FailureObserver) *Composer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Composer{log: log, concurrency: concurrency, onFailure: onFailure}
}

// Compose строит ленту: по каждому автору с активной подпиской берутся до трёх
// последних медиа, затем всё объединяется по убыванию даты создания.
// При равных датах порядок определяется id медиа, затем id автора.
//
// Загрузки по авторам идут параллельно, результат собирается только после
// завершения всех. Ошибка загрузки одного автора не прерывает сборку:
// такой автор просто не даёт публикаций. Отмена ctx возвращает ошибку без
// частичного результата.
func (c *Composer) Compose(
	ctx context.Context,
	subs []models.Subscription,
	creators []models.Creator,
	fetch MediaFetcher,
	now time.Time,
) ([]models.FeedPost, error) {
	const op = "feed.Compose"

	contributing := make([]models.Creator, 0, len(creators))
	for _, cr := range creators {
		if access.HasAccess(subs, cr.ID, nil, now) {
			contributing = append(contributing, cr)
		}
	}

	selected := make([][]models.Media, len(contributing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, cr := range contributing {
		g.Go(func() error {
			media, err := fetch(gctx, cr.ID)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				c.log.Warn("failed to fetch creator media",
					slog.String("op", op),
					slog.String("creator_id", cr.ID),
					sl.Err(err),
				)
				if c.onFailure != nil {
					c.onFailure(cr.ID, err)
				}
				return nil
			}
			selected[i] = latest(media, PerCreatorLimit)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts := make([]models.FeedPost, 0, len(contributing)*PerCreatorLimit)
	for i, cr := range contributing {
		for _, m := range selected[i] {
			posts = append(posts, models.FeedPost{
				ID:           cr.ID + "-" + m.ID,
				Creator:      cr,
				Media:        m,
				IsSubscribed: true,
			})
		}
	}

	slices.SortStableFunc(posts, func(a, b models.FeedPost) int {
		if c := b.Media.CreatedAt.Compare(a.Media.CreatedAt); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Media.ID, b.Media.ID); c != 0 {
			return c
		}
		return cmp.Compare(a.Creator.ID, b.Creator.ID)
	})
	return posts, nil
}

// latest возвращает до n самых свежих медиа, не изменяя исходный срез.
func latest(media []models.Media, n int) []models.Media {
	sorted := slices.Clone(media)
	slices.SortStableFunc(sorted, func(a, b models.Media) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
