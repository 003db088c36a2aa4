// Package health отдаёт состояние сервиса.
package health

import (
	"net/http"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
)

// Handler отвечает на проверки живости.
type Handler struct{}

// New создаёт Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags System
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, map[string]any{
		"status": "ok",
	})
}
