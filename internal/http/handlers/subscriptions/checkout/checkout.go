// Package checkout реализует HTTP-обработчик оформления подписки на автора.
//
// Handler принимает JSON с ID автора, валидирует его и возвращает адрес
// страницы оплаты, на который клиент перенаправляет браузер.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/subscription"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// Handler управляет запросами на оформление подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Checkout(ctx context.Context, viewer session.Viewer, creatorID string) (string, error)
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
// @Summary Оформить подписку
// @Description Создает сессию оплаты подписки на автора. Доступно только зрителям с ролью USER.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyCheckout true "ID автора"
// @Success 200 {object} response.Response{data=models.CheckoutSession}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или подписка на себя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Роль не позволяет оформлять подписки"
// @Failure 409 {object} response.ErrorResponse "Подписка уже активна"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "API платформы недоступно"
// @Router /subscriptions/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriptions.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCheckout
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

	url, err := h.service.Checkout(r.Context(), session.FromContext(r.Context()), req.CreatorID)
	switch {
	case errors.Is(err, services.ErrForbiddenRole):
		log.Info("checkout forbidden for role")
		response.Fail(w, r, http.StatusForbidden, "only viewers can subscribe")
		return
	case errors.Is(err, services.ErrSelfSubscription):
		response.Fail(w, r, http.StatusBadRequest, "cannot subscribe to yourself")
		return
	case errors.Is(err, services.ErrAlreadySubscribed):
		response.Fail(w, r, http.StatusConflict, "already subscribed")
		return
	case err != nil:
		log.Error("failed to create checkout session", sl.Err(err))
		response.UpstreamError(w, r, err)
		return
	}

	log.Info("checkout session created", slog.String("creator_id", req.CreatorID))
	response.OK(w, r, models.CheckoutSession{URL: url})
}
