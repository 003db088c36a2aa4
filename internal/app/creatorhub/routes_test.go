package creatorhub

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-hub/internal/discovery"
	"github.com/magabrotheeeer/creator-hub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/creator-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	mediaservice "github.com/magabrotheeeer/creator-hub/internal/services/media"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

type fakeCatalog struct{}

func (fakeCatalog) Creators(context.Context, session.Viewer, string, discovery.SortKey) ([]models.Creator, error) {
	return []models.Creator{}, nil
}

func (fakeCatalog) Popular(context.Context, session.Viewer, int) ([]models.Creator, error) {
	return []models.Creator{}, nil
}

func (fakeCatalog) Profile(_ context.Context, _ session.Viewer, id string) (*models.ProfileView, error) {
	return &models.ProfileView{Creator: models.Creator{User: models.User{ID: id}}}, nil
}

func (fakeCatalog) CurrentUser(_ context.Context, v session.Viewer) (*models.User, error) {
	return &models.User{ID: v.ID, Role: v.Role}, nil
}

type fakeSubscriptions struct{}

func (fakeSubscriptions) List(context.Context, session.Viewer) ([]models.SubscriptionView, error) {
	return []models.SubscriptionView{}, nil
}

func (fakeSubscriptions) Checkout(context.Context, session.Viewer, string) (string, error) {
	return "https://pay.example/s/1", nil
}

type fakeMedia struct{}

func (fakeMedia) Stage(context.Context, session.Viewer, []mediaservice.Incoming) ([]models.StagedFile, string, error) {
	return []models.StagedFile{}, "", nil
}

func (fakeMedia) Remove(session.Viewer, string) ([]models.StagedFile, error) {
	return []models.StagedFile{}, nil
}

func (fakeMedia) Reset(session.Viewer) error { return nil }

func (fakeMedia) Submit(context.Context, session.Viewer, models.DummyUpload) (*models.Media, error) {
	return &models.Media{ID: "m1"}, nil
}

type fakeFeed struct{}

func (fakeFeed) Feed(context.Context, session.Viewer) ([]models.FeedPost, error) {
	return []models.FeedPost{}, nil
}

func TestRegisterRoutes(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	userToken, err := maker.GenerateToken("u1", string(models.RoleUser))
	require.NoError(t, err)
	creatorToken, err := maker.GenerateToken("c1", string(models.RoleCreator))
	require.NoError(t, err)

	r := chi.NewRouter()
	RegisterRoutes(r, sl.Discard(), maker, middlewarectx.NewLimiter(1000, 1000), prometheus.NewRegistry(), Services{
		Catalog:       fakeCatalog{},
		Subscriptions: fakeSubscriptions{},
		Media:         fakeMedia{},
		Feed:          fakeFeed{},
	}, UploadOptions{MaxBody: 32, Timeout: time.Minute})

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/api/v1/health", expectedStatus: http.StatusOK},
		{name: "каталог без входа", method: http.MethodGet, path: "/api/v1/creators?sort=newest", expectedStatus: http.StatusOK},
		{name: "популярные не путаются с профилем", method: http.MethodGet, path: "/api/v1/creators/popular", expectedStatus: http.StatusOK},
		{name: "профиль", method: http.MethodGet, path: "/api/v1/creators/c1", expectedStatus: http.StatusOK},
		{name: "id профиля с точкой", method: http.MethodGet, path: "/api/v1/creators/john.doe", expectedStatus: http.StatusOK, expectedBody: `"id":"john.doe"`},
		{name: "неверный токен", method: http.MethodGet, path: "/api/v1/creators", token: "garbage", expectedStatus: http.StatusUnauthorized},
		{name: "лента без входа", method: http.MethodGet, path: "/api/v1/feed", expectedStatus: http.StatusUnauthorized},
		{name: "лента зрителя", method: http.MethodGet, path: "/api/v1/feed", token: userToken, expectedStatus: http.StatusOK},
		{name: "профиль зрителя", method: http.MethodGet, path: "/api/v1/me", token: userToken, expectedStatus: http.StatusOK},
		{name: "подписки зрителя", method: http.MethodGet, path: "/api/v1/subscriptions", token: userToken, expectedStatus: http.StatusOK},
		{name: "сброс пакета зрителем", method: http.MethodDelete, path: "/api/v1/media/batch", token: userToken, expectedStatus: http.StatusForbidden},
		{name: "сброс пакета автором", method: http.MethodDelete, path: "/api/v1/media/batch", token: creatorToken, expectedStatus: http.StatusNoContent},
		{name: "загрузка сверх лимита", method: http.MethodPost, path: "/api/v1/media/batch", token: creatorToken, body: strings.Repeat("x", 64), expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "удаление файла автором", method: http.MethodDelete, path: "/api/v1/media/batch/p1", token: creatorToken, expectedStatus: http.StatusOK},
		{name: "метрики", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}
