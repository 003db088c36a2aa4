package models

import "time"

// MediaType вид медиафайла.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media: опубликованный автором файл.
// IsPublic=false означает премиальный контент, доступный только подписчикам.
type Media struct {
	ID           string    `json:"id"`
	CreatorID    string    `json:"creatorId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	IsPublic     bool      `json:"isPublic"`
	Type         MediaType `json:"type"`
	Duration     *float64  `json:"duration,omitempty"` // секунды, только для видео
	CreatedAt    time.Time `json:"createdAt"`
}

// GatedMedia: медиа с решением о доступе для конкретного зрителя.
// У закрытых элементов ссылки на файл очищены.
type GatedMedia struct {
	Media
	Locked bool `json:"locked"`
}

// ProfileView: профиль автора глазами зрителя.
type ProfileView struct {
	Creator      Creator      `json:"creator"`
	Media        []GatedMedia `json:"media"`
	PublicCount  int          `json:"publicCount"`
	PremiumCount int          `json:"premiumCount"`
	IsSubscribed bool         `json:"isSubscribed"`
	IsOwner      bool         `json:"isOwner"`
}
