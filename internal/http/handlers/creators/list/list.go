// Package list реализует HTTP-обработчик каталога авторов.
//
// Handler принимает поисковую строку q и ключ сортировки sort, получает
// авторов через сервис и возвращает отфильтрованный и упорядоченный список.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/discovery"
	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler обрабатывает запросы на поиск авторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	Creators(ctx context.Context, viewer session.Viewer, query string, sortKey discovery.SortKey) ([]models.Creator, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог авторов
// @Description Ищет авторов по имени пользователя или описанию (без учёта регистра) и сортирует результат.
// @Tags Creators
// @Produce json
// @Param q query string false "Поисковая строка"
// @Param sort query string false "Сортировка: popular, newest, price-low, price-high, content"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /creators [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.creators.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")
	sortKey := discovery.ParseSortKey(r.URL.Query().Get("sort"))

	creators, err := h.service.Creators(r.Context(), session.FromContext(r.Context()), query, sortKey)
	if err != nil {
		log.Error("failed to list creators", sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}
	if r.Context().Err() != nil {
		return
	}

	log.Debug("creators listed", slog.Int("count", len(creators)), slog.String("sort", string(sortKey)))
	response.OK(w, r, map[string]any{
		"creators": creators,
	})
}
