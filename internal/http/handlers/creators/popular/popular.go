// Package popular реализует HTTP-обработчик списка популярных авторов.
package popular

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

const (
	// DefaultLimit число авторов на главной странице.
	DefaultLimit = 6
	maxLimit     = 50
)

// Handler возвращает самых популярных авторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Popular(ctx context.Context, viewer session.Viewer, limit int) ([]models.Creator, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Популярные авторы
// @Description Возвращает авторов с наибольшим числом подписчиков.
// @Tags Creators
// @Produce json
// @Param limit query int false "Количество авторов (1-50, по умолчанию 6)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный limit"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /creators/popular [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creators.popular"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			log.Info("invalid limit", slog.String("limit", raw))
			response.Fail(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	creators, err := h.service.Popular(r.Context(), session.FromContext(r.Context()), limit)
	if err != nil {
		log.Error("failed to get popular creators", sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}

	response.OK(w, r, map[string]any{
		"creators": creators,
	})
}
