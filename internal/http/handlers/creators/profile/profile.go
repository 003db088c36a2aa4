// Package profile реализует HTTP-обработчик страницы автора.
//
// Премиальные медиа без активной подписки возвращаются закрытыми:
// без ссылок на файл и превью.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler отдаёт профиль автора с медиа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Profile(ctx context.Context, viewer session.Viewer, creatorID string) (*models.ProfileView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль автора
// @Description Возвращает автора и его медиа. Закрытые медиа приходят без URL.
// @Tags Creators
// @Produce json
// @Param id path string true "ID автора"
// @Success 200 {object} response.Response{data=models.ProfileView}
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /creators/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creators.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		response.Fail(w, r, http.StatusBadRequest, "creator id is required")
		return
	}

	view, err := h.service.Profile(r.Context(), session.FromContext(r.Context()), id)
	if err != nil {
		log.Error("failed to load profile", slog.String("creator_id", id), sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}

	response.OK(w, r, view)
}
