// Package session описывает зрителя текущего запроса и хранит
// снимки его подписок.
package session

import (
	"context"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// Viewer: зритель, от имени которого выполняется запрос.
// Значение создаётся middleware аутентификации и дальше не изменяется;
// смена входа означает новый Viewer.
type Viewer struct {
	ID    string
	Role  models.Role
	Token string
}

// Anonymous возвращает неаутентифицированного зрителя.
func Anonymous() Viewer {
	return Viewer{}
}

// IsAuthenticated сообщает, выполнен ли вход.
func (v Viewer) IsAuthenticated() bool {
	return v.ID != ""
}

// IsCreator сообщает, является ли зритель автором.
func (v Viewer) IsCreator() bool {
	return v.Role == models.RoleCreator
}

// Owns сообщает, смотрит ли зритель собственный профиль автора.
func (v Viewer) Owns(creatorID string) bool {
	return v.IsAuthenticated() && v.ID == creatorID
}

type ctxKey struct{}

// WithViewer кладёт зрителя в контекст запроса.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ctxKey{}, v)
}

// FromContext достаёт зрителя из контекста; без него возвращается анонимный зритель.
func FromContext(ctx context.Context) Viewer {
	v, ok := ctx.Value(ctxKey{}).(Viewer)
	if !ok {
		return Anonymous()
	}
	return v
}
