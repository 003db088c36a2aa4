// Package submit реализует HTTP-обработчик отправки пакета загрузки.
//
// Handler принимает общие метаданные пакета (название, описание, публичность),
// валидирует их и отправляет все выбранные файлы одним запросом к API платформы.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
	"github.com/magabrotheeeer/creator-hub/internal/upload"
)

// Handler отправляет пакет загрузки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс отправки пакета.
type Service interface {
	Submit(ctx context.Context, viewer session.Viewer, req models.DummyUpload) (*models.Media, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить пакет
// @Description Загружает выбранные файлы одним запросом с общими метаданными. isPublic по умолчанию true.
// @Tags Media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyUpload true "Метаданные пакета"
// @Success 201 {object} response.Response{data=models.Media}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Загружать медиа могут только авторы"
// @Failure 409 {object} response.ErrorResponse "Пакет уже отправляется"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или пустой пакет"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /media/batch/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.submit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUpload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.Validation(w, r, err.(validator.ValidationErrors))
		return
	}

	media, err := h.service.Submit(r.Context(), session.FromContext(r.Context()), req)
	switch {
	case errors.Is(err, services.ErrNotCreator):
		response.Fail(w, r, http.StatusForbidden, "only creators can upload media")
		return
	case errors.Is(err, upload.ErrBatchEmpty):
		response.Fail(w, r, http.StatusUnprocessableEntity, upload.ErrBatchEmpty.Error())
		return
	case errors.Is(err, upload.ErrSubmitInProgress):
		response.Fail(w, r, http.StatusConflict, upload.ErrSubmitInProgress.Error())
		return
	case err != nil:
		log.Error("failed to submit batch", sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}

	log.Info("batch submitted", slog.String("media_id", media.ID))
	render.Status(r, http.StatusCreated)
	response.OK(w, r, media)
}
