// Package remove реализует HTTP-обработчик удаления файла из пакета загрузки.
package remove

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler убирает файл из пакета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс изменения пакета.
type Service interface {
	Remove(viewer session.Viewer, previewID string) ([]models.StagedFile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Убрать файл из пакета
// @Description Удаляет выбранный файл и освобождает его превью. Неизвестный ID игнорируется.
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param previewID path string true "ID превью"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Загружать медиа могут только авторы"
// @Router /media/batch/{previewID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	previewID := chi.URLParam(r, "previewID")
	staged, err := h.service.Remove(session.FromContext(r.Context()), previewID)
	if errors.Is(err, services.ErrNotCreator) {
		response.Fail(w, r, http.StatusForbidden, "only creators can upload media")
		return
	}
	if err != nil {
		log.Error("failed to remove staged file", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "could not remove file")
		return
	}

	log.Info("staged file removed", slog.String("preview_id", previewID))
	response.OK(w, r, map[string]any{
		"files": staged,
	})
}
