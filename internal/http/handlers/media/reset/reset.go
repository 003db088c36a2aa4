// Package reset реализует HTTP-обработчик очистки пакета загрузки.
package reset

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler очищает пакет автора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс очистки пакета.
type Service interface {
	Reset(viewer session.Viewer) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Очистить пакет
// @Description Убирает все выбранные файлы и освобождает их превью.
// @Tags Media
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Загружать медиа могут только авторы"
// @Router /media/batch [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.reset"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Reset(session.FromContext(r.Context())); err != nil {
		if errors.Is(err, services.ErrNotCreator) {
			response.Fail(w, r, http.StatusForbidden, "only creators can upload media")
			return
		}
		log.Error("failed to reset batch", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "could not reset batch")
		return
	}

	log.Info("upload batch reset")
	w.WriteHeader(http.StatusNoContent)
}
