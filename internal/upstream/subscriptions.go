package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// FetchUserSubscriptions возвращает все записи подписок владельца токена,
// в том числе отменённые и просроченные.
func (c *Client) FetchUserSubscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	const op = "upstream.FetchUserSubscriptions"
	var subs []models.Subscription
	if err := c.get(ctx, op, "/subscriptions/user", token, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateCheckoutSession создаёт сессию оплаты подписки на автора и возвращает
// адрес, на который нужно перенаправить зрителя.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, creatorID string) (string, error) {
	const op = "upstream.CreateCheckoutSession"

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/subscriptions/create-checkout-session", token,
		models.DummyCheckout{CreatorID: creatorID})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	var session models.CheckoutSession
	if err := c.do(req, &session); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("%s: empty checkout url", op)
	}
	return session.URL, nil
}
