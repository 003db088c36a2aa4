// Package access решает, может ли зритель видеть контент автора.
//
// Функции пакета чистые: не обращаются к сети и часам, момент оценки
// передаётся явно. Проверка «зритель: сам автор» выполняется вызывающим кодом.
package access

import (
	"time"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// IsActive сообщает, даёт ли подписка доступ в момент now.
func IsActive(sub models.Subscription, now time.Time) bool {
	return sub.Status == models.StatusActive && sub.CurrentPeriodEnd.After(now)
}

// HasAccess возвращает true, если media публичное либо среди subs есть
// активная подписка на creatorID. media может быть nil.
func HasAccess(subs []models.Subscription, creatorID string, media *models.Media, now time.Time) bool {
	if media != nil && media.IsPublic {
		return true
	}
	for _, sub := range subs {
		if sub.CreatorID == creatorID && IsActive(sub, now) {
			return true
		}
	}
	return false
}

// ActiveCreatorIDs возвращает авторов с активной подпиской без повторов,
// в порядке первого появления.
func ActiveCreatorIDs(subs []models.Subscription, now time.Time) []string {
	seen := make(map[string]struct{}, len(subs))
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if !IsActive(sub, now) {
			continue
		}
		if _, ok := seen[sub.CreatorID]; ok {
			continue
		}
		seen[sub.CreatorID] = struct{}{}
		ids = append(ids, sub.CreatorID)
	}
	return ids
}
