// Package rabbitmq связывает события сервиса с брокером: публикует
// media.uploaded и checkout.requested, принимает subscription.changed.
package rabbitmq

import (
	librabbitmq "github.com/magabrotheeeer/creator-hub/internal/lib/rabbitmq"
)

// Ключи маршрутизации событий.
const (
	RoutingMediaUploaded       = "media.uploaded"
	RoutingCheckoutRequested   = "checkout.requested"
	RoutingSubscriptionChanged = "subscription.changed"
)

// SubscriptionChangedQueue: очередь, из которой сервис узнаёт о смене подписок.
const SubscriptionChangedQueue = "creator-hub.subscription.changed"

// Queues возвращает очереди, которые сервис объявляет при старте.
func Queues() []librabbitmq.QueueConfig {
	return []librabbitmq.QueueConfig{
		{QueueName: SubscriptionChangedQueue, RoutingKey: RoutingSubscriptionChanged},
	}
}
