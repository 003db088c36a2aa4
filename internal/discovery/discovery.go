// Package discovery реализует поиск и сортировку каталога авторов.
package discovery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// SortKey ключ сортировки каталога.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortContent   SortKey = "content"
)

// ParseSortKey приводит параметр запроса к SortKey.
// Пустое значение означает сортировку по популярности; неизвестные ключи
// возвращаются как есть и не меняют порядок.
func ParseSortKey(raw string) SortKey {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SortPopular
	}
	return SortKey(raw)
}

// FilterAndSort фильтрует авторов по запросу и упорядочивает по ключу.
// Входной срез не изменяется, результат всегда новый срез.
func FilterAndSort(creators []models.Creator, query string, key SortKey) []models.Creator {
	result := filter(creators, query)

	less := comparator(key)
	if less != nil {
		slices.SortStableFunc(result, less)
	}
	return result
}

// Popular возвращает до n самых популярных авторов.
func Popular(creators []models.Creator, n int) []models.Creator {
	sorted := FilterAndSort(creators, "", SortPopular)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func filter(creators []models.Creator, query string) []models.Creator {
	q := strings.ToLower(strings.TrimSpace(query))
	result := make([]models.Creator, 0, len(creators))
	for _, c := range creators {
		if q == "" || matches(c, q) {
			result = append(result, c)
		}
	}
	return result
}

func matches(c models.Creator, q string) bool {
	if username, ok := c.UsernameValue(); ok && strings.Contains(strings.ToLower(username), q) {
		return true
	}
	if bio, ok := c.BioValue(); ok && strings.Contains(strings.ToLower(bio), q) {
		return true
	}
	return false
}

func comparator(key SortKey) func(a, b models.Creator) int {
	switch key {
	case SortPopular:
		return func(a, b models.Creator) int { return cmp.Compare(b.SubscribersCount, a.SubscribersCount) }
	case SortNewest:
		return func(a, b models.Creator) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortPriceLow:
		return func(a, b models.Creator) int { return cmp.Compare(a.SubscriptionPrice, b.SubscriptionPrice) }
	case SortPriceHigh:
		return func(a, b models.Creator) int { return cmp.Compare(b.SubscriptionPrice, a.SubscriptionPrice) }
	case SortContent:
		return func(a, b models.Creator) int { return cmp.Compare(b.MediaCount, a.MediaCount) }
	default:
		return nil
	}
}
