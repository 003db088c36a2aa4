package models

// MediaUploadedEvent публикуется после успешной отправки пакета файлов.
type MediaUploadedEvent struct {
	EventID   string `json:"eventId"`
	CreatorID string `json:"creatorId"`
	MediaID   string `json:"mediaId"`
	Files     int    `json:"files"`
	IsPublic  bool   `json:"isPublic"`
}

// CheckoutRequestedEvent публикуется, когда зритель переходит к оплате подписки.
type CheckoutRequestedEvent struct {
	EventID   string `json:"eventId"`
	UserID    string `json:"userId"`
	CreatorID string `json:"creatorId"`
}

// SubscriptionChangedEvent приходит от биллинга при смене статуса подписки.
type SubscriptionChangedEvent struct {
	UserID string `json:"userId"`
}
