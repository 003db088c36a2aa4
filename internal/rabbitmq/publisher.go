package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	librabbitmq "github.com/magabrotheeeer/creator-hub/internal/lib/rabbitmq"
)

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Observer получает результат каждой публикации.
type Observer func(routingKey string, err error)

// Publisher публикует события в обменник. amqp.Channel не допускает
// одновременной публикации, поэтому вызовы сериализуются.
type Publisher struct {
	mu       sync.Mutex
	ch       librabbitmq.Channel
	exchange string
	observe  Observer
}

// NewPublisher создаёт Publisher поверх открытого канала.
func NewPublisher(ch librabbitmq.Channel, exchange string, observe Observer) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, observe: observe}
}

// Publish отправляет событие с ключом routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, event any) error {
	const op = "rabbitmq.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	err := librabbitmq.PublishMessage(p.ch, p.exchange, routingKey, event)
	p.mu.Unlock()

	if p.observe != nil {
		p.observe(routingKey, err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
