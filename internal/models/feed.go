package models

// FeedPost: элемент персональной ленты: автор и одно его медиа.
// Собирается заново при каждом построении ленты и нигде не сохраняется.
type FeedPost struct {
	ID           string  `json:"id"`
	Creator      Creator `json:"creator"`
	Media        Media   `json:"media"`
	IsSubscribed bool    `json:"isSubscribed"`
}
