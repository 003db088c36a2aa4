// Package me реализует HTTP-обработчик профиля текущего зрителя.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler отдаёт профиль владельца токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение профиля зрителя.
type Service interface {
	CurrentUser(ctx context.Context, viewer session.Viewer) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.User}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, err := h.service.CurrentUser(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		log.Error("failed to get current user", sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}
	response.OK(w, r, user)
}
