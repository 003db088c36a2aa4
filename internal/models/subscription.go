package models

import "time"

// SubscriptionStatus статус подписки у платёжного провайдера.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusPastDue  SubscriptionStatus = "past_due"
)

// Subscription связывает зрителя с автором.
// Доступ даёт только активная подписка с непросроченным CurrentPeriodEnd,
// поэтому признак доступа вычисляется при каждом чтении и не хранится.
type Subscription struct {
	ID               string             `json:"id"`
	UserID           string             `json:"userId"`
	CreatorID        string             `json:"creatorId"`
	Status           SubscriptionStatus `json:"status"`
	CurrentPeriodEnd time.Time          `json:"currentPeriodEnd"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// SubscriptionView: запись подписки с вычисленным на момент ответа признаком активности.
type SubscriptionView struct {
	Subscription
	Active bool `json:"active"`
}

// DummyCheckout используется для приёма запроса на оформление подписки.
type DummyCheckout struct {
	CreatorID string `json:"creatorId" validate:"required"`
}

// CheckoutSession: ответ провайдера оплаты, куда перенаправить браузер.
type CheckoutSession struct {
	URL string `json:"url"`
}
