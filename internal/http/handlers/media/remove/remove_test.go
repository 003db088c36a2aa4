package remove

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/creator-hub/internal/models"
	services "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(viewer session.Viewer, previewID string) ([]models.StagedFile, error) {
	args := m.Called(viewer, previewID)
	if res := args.Get(0); res != nil {
		return res.([]models.StagedFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	creator := session.Viewer{ID: "c1", Role: models.RoleCreator, Token: "tok"}

	tests := []struct {
		name           string
		viewer         session.Viewer
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name:   "файл удалён",
			viewer: creator,
			setupMock: func(m *MockService) {
				m.On("Remove", creator, "p1").Return([]models.StagedFile{{PreviewID: "p2"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "не автор",
			viewer: session.Viewer{ID: "u1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "p1").Return(nil, fmt.Errorf("services.Remove: %w", services.ErrNotCreator)).Once()
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Delete("/media/batch/{previewID}", New(log, svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, "/media/batch/p1", nil)
			req = req.WithContext(session.WithViewer(req.Context(), tt.viewer))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
