// Package feed реализует HTTP-обработчик ленты подписок зрителя.
package feed

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

// Handler отдаёт ленту зрителя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сборки ленты.
type Service interface {
	Feed(ctx context.Context, viewer session.Viewer) ([]models.FeedPost, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента подписок
// @Description Последние медиа авторов, на которых у зрителя есть активная подписка, от новых к старым.
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /feed [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.feed"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	viewer := session.FromContext(r.Context())
	posts, err := h.service.Feed(r.Context(), viewer)
	if err != nil {
		log.Error("failed to compose feed", slog.String("viewer_id", viewer.ID), sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}

	log.Debug("feed composed", slog.Int("posts", len(posts)))
	response.OK(w, r, map[string]any{
		"posts": posts,
	})
}
