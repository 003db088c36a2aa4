package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/creator-hub/internal/config"
	librabbitmq "github.com/magabrotheeeer/creator-hub/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
)

// Broker держит соединение с брокером и отдельные каналы для публикации и чтения.
type Broker struct {
	log      *slog.Logger
	conn     *amqp.Connection
	pubCh    *amqp.Channel
	consCh   *amqp.Channel
	exchange string
	workers  int
}

// Dial подключается к брокеру и объявляет обменник и очереди сервиса.
func Dial(ctx context.Context, cfg config.RabbitMQ, log *slog.Logger) (*Broker, error) {
	const op = "rabbitmq.Dial"

	conn, err := librabbitmq.Connect(ctx, cfg.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	consCh, err := librabbitmq.SetupChannel(conn, cfg.Exchange, Queues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pubCh, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Broker{
		log:      log,
		conn:     conn,
		pubCh:    pubCh,
		consCh:   consCh,
		exchange: cfg.Exchange,
		workers:  cfg.Workers,
	}, nil
}

// Publisher возвращает публикатор событий в обменник сервиса.
func (b *Broker) Publisher(observe Observer) *Publisher {
	return NewPublisher(b.pubCh, b.exchange, observe)
}

// ConsumeSubscriptionChanges запускает чтение очереди subscription.changed.
// Возвращённая функция ждёт завершения обработки после отмены ctx.
func (b *Broker) ConsumeSubscriptionChanges(ctx context.Context, h SubscriptionChangeHandler) (func(), error) {
	const op = "rabbitmq.ConsumeSubscriptionChanges"

	handler := SubscriptionChangedHandler(h, func(err error) {
		b.log.Warn("dropping malformed subscription event", slog.String("op", op), sl.Err(err))
	})
	wait, err := librabbitmq.ConsumerMessage(ctx, b.log, b.consCh, SubscriptionChangedQueue, b.workers, handler)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return wait, nil
}

// Close закрывает каналы и соединение.
func (b *Broker) Close() error {
	_ = b.pubCh.Close()
	_ = b.consCh.Close()
	return b.conn.Close()
}
