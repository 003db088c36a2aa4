// Package stage реализует HTTP-обработчик добавления файлов в пакет загрузки автора.
//
// Handler принимает multipart-форму с полем files. Все файлы вызова
// проверяются вместе с уже выбранными; при отказе пакет не меняется,
// а клиент получает 422 с причиной.
package stage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// FormField имя поля формы с файлами.
const FormField = "files"

// maxMemory часть формы, которая держится в памяти; остальное уходит во временные файлы.
const maxMemory = 32 << 20

// Handler добавляет файлы в пакет загрузки.
type Handler struct {
	log     *slog.Logger
	service Service
	maxBody int64
}

// Service описывает интерфейс накопления пакета.
type Service interface {
	Stage(ctx context.Context, viewer session.Viewer, incoming []services.Incoming) ([]models.StagedFile, string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
// maxBody ограничивает размер тела запроса, 0 снимает ограничение.
func New(log *slog.Logger, service Service, maxBody int64) *Handler {
	return &Handler{
		log:     log,
		service: service,
		maxBody: maxBody,
	}
}

// ServeHTTP godoc
// @Summary Добавить файлы в пакет
// @Description Проверяет файлы (до 10 в пакете, до 50MB, JPEG/PNG/WebP/MP4/WebM, видео до 30 секунд) и добавляет их в пакет автора.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Файлы"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Загружать медиа могут только авторы"
// @Failure 413 {object} response.ErrorResponse "Слишком большой запрос"
// @Failure 422 {object} response.ErrorResponse "Файлы не прошли проверку"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /media/batch [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.media.stage"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.maxBody > 0 {
		if r.ContentLength > h.maxBody {
			log.Warn("request body too large", slog.Int64("content_length", r.ContentLength))
			response.Fail(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("request body too large", sl.Err(err))
			response.Fail(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		log.Error("failed to parse multipart form", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("failed to remove multipart files", sl.Err(err))
		}
	}()

	headers := r.MultipartForm.File[FormField]
	if len(headers) == 0 {
		response.Fail(w, r, http.StatusBadRequest, "no files in request")
		return
	}

	incoming, closeAll, err := open(headers)
	defer closeAll()
	if err != nil {
		log.Error("failed to open uploaded file", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	staged, reason, err := h.service.Stage(r.Context(), session.FromContext(r.Context()), incoming)
	switch {
	case errors.Is(err, services.ErrNotCreator):
		response.Fail(w, r, http.StatusForbidden, "only creators can upload media")
		return
	case err != nil:
		log.Error("failed to stage files", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "could not stage files")
		return
	case reason != "":
		response.Fail(w, r, http.StatusUnprocessableEntity, reason)
		return
	}

	log.Info("files staged", slog.Int("added", len(incoming)), slog.Int("pending", len(staged)))
	response.OK(w, r, map[string]any{
		"files": staged,
	})
}

func open(headers []*multipart.FileHeader) ([]services.Incoming, func(), error) {
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	incoming := make([]services.Incoming, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, f)
		incoming = append(incoming, services.Incoming{
			Name:      fh.Filename,
			MediaType: fh.Header.Get("Content-Type"),
			Body:      f,
		})
	}
	return incoming, closeAll, nil
}
