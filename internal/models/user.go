// Package models содержит доменные структуры платформы: пользователей,
// авторов, медиа, подписки и производные сущности ленты.
// Поля, которые удалённый API может не прислать, описаны указателями,
// чтобы отсутствие значения было явным.
package models

import "time"

// Role роль пользователя платформы.
type Role string

const (
	// RoleCreator: автор, публикующий контент.
	RoleCreator Role = "CREATOR"
	// RoleUser: зритель, оформляющий подписки.
	RoleUser Role = "USER"
)

// User представляет зарегистрированного пользователя.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Username       *string   `json:"username,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UsernameValue возвращает имя пользователя и признак его наличия.
func (u User) UsernameValue() (string, bool) {
	if u.Username == nil {
		return "", false
	}
	return *u.Username, true
}

// BioValue возвращает описание профиля и признак его наличия.
func (u User) BioValue() (string, bool) {
	if u.Bio == nil {
		return "", false
	}
	return *u.Bio, true
}

// Creator: пользователь с ролью автора и параметрами подписки.
// Сервис получает авторов из удалённого API и никогда не изменяет их локально.
type Creator struct {
	User
	SubscriptionPrice float64 `json:"subscriptionPrice"`
	SubscribersCount  int     `json:"subscribersCount"`
	MediaCount        int     `json:"mediaCount"`
	CoverPhoto        *string `json:"coverPhoto,omitempty"`
}
