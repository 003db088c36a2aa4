package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// SubscriptionChangeHandler реагирует на смену подписок зрителя.
type SubscriptionChangeHandler interface {
	HandleSubscriptionChanged(evt models.SubscriptionChangedEvent)
}

// SubscriptionChangedHandler возвращает обработчик тела сообщения subscription.changed.
// Сообщение, которое не удалось разобрать, не возвращается в очередь:
// повторная доставка его не исправит. Ошибка разбора передаётся в onBad.
func SubscriptionChangedHandler(h SubscriptionChangeHandler, onBad func(error)) func([]byte) error {
	const op = "rabbitmq.SubscriptionChangedHandler"
	return func(body []byte) error {
		var evt models.SubscriptionChangedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			if onBad != nil {
				onBad(fmt.Errorf("%s: %w", op, err))
			}
			return nil
		}
		h.HandleSubscriptionChanged(evt)
		return nil
	}
}
