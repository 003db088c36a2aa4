package submit

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
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
	"github.com/magabrotheeeer/creator-hub/internal/upload"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, viewer session.Viewer, req models.DummyUpload) (*models.Media, error) {
	args := m.Called(ctx, viewer, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Media), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSubmitHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	creator := session.Viewer{ID: "c1", Role: models.RoleCreator, Token: "tok"}
	private := false

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "пакет отправлен",
			body: `{"title":"Summer","description":"beach","isPublic":false}`,
			setupMock: func(m *MockService) {
				req := models.DummyUpload{Title: "Summer", Description: "beach", IsPublic: &private}
				m.On("Submit", mock.Anything, creator, req).Return(&models.Media{ID: "m1", CreatorID: "c1"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "некорректный JSON",
			body:           `{"title":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "короткое название",
			body:           `{"title":"ab"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Title must be at least 3 characters"}`,
		},
		{
			name: "пустой пакет",
			body: `{"title":"Summer"}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, creator, mock.Anything).
					Return(nil, fmt.Errorf("services.Submit: %w", upload.ErrBatchEmpty)).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"no files selected"}`,
		},
		{
			name: "пакет уже отправляется",
			body: `{"title":"Summer"}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, creator, mock.Anything).
					Return(nil, fmt.Errorf("services.Submit: %w", upload.ErrSubmitInProgress)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"upload is already in progress"}`,
		},
		{
			name: "не автор",
			body: `{"title":"Summer"}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, creator, mock.Anything).
					Return(nil, fmt.Errorf("services.Submit: %w", services.ErrNotCreator)).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "ошибка API",
			body: `{"title":"Summer"}`,
			setupMock: func(m *MockService) {
				m.On("Submit", mock.Anything, creator, mock.Anything).
					Return(nil, errors.New("connection reset")).Once()
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/media/batch/submit", bytes.NewBufferString(tt.body))
			req = req.WithContext(session.WithViewer(req.Context(), creator))
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
