package checkout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/subscription"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Checkout(ctx context.Context, viewer session.Viewer, creatorID string) (string, error) {
	args := m.Called(ctx, viewer, creatorID)
	return args.String(0), args.Error(1)
}

func wrap(err error) error {
	return fmt.Errorf("services.Checkout: %w", err)
}

func TestCheckoutHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	viewer := session.Viewer{ID: "u1", Role: models.RoleUser, Token: "tok"}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешно",
			body: `{"creatorId":"c1"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, viewer, "c1").Return("https://pay.example/s/1", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"url":"https://pay.example/s/1"}}`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"creatorId":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "пустой ID автора",
			body:           `{}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field CreatorID is a required field"}`,
		},
		{
			name: "роль автора",
			body: `{"creatorId":"c1"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, viewer, "c1").Return("", wrap(services.ErrForbiddenRole)).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "подписка на себя",
			body: `{"creatorId":"u1"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, viewer, "u1").Return("", wrap(services.ErrSelfSubscription)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "уже подписан",
			body: `{"creatorId":"c1"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, viewer, "c1").Return("", wrap(services.ErrAlreadySubscribed)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "ошибка API",
			body: `{"creatorId":"c1"}`,
			setupMock: func(m *MockService) {
				m.On("Checkout", mock.Anything, viewer, "c1").Return("", wrap(errors.New("502"))).Once()
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions/checkout", bytes.NewBufferString(tt.body))
			req = req.WithContext(session.WithViewer(req.Context(), viewer))
			rec := httptest.NewRecorder()
			New(log, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}
