// Package middlewarectx содержит HTTP middleware: определение зрителя по JWT,
// проверку входа и роли, ограничение частоты запросов.
//
// Authenticate кладёт в контекст запроса session.Viewer. Запрос без
// заголовка Authorization обслуживается от имени анонимного зрителя,
// запрос с неверным токеном отклоняется с 401.
package middlewarectx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/creator-hub/internal/http/response"
	"github.com/magabrotheeeer/creator-hub/internal/lib/jwt"
	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
	"github.com/magabrotheeeer/creator-hub/internal/models"
	"github.com/magabrotheeeer/creator-hub/internal/session"
)

// TokenParser описывает проверку JWT токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// Authenticate возвращает middleware, который определяет зрителя запроса.
func Authenticate(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(session.WithViewer(r.Context(), session.Anonymous())))
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("invalid authorization header")
				response.Fail(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				response.Fail(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			viewer := session.Viewer{
				ID:    claims.UserID(),
				Role:  models.Role(claims.Role),
				Token: tokenStr,
			}
			next.ServeHTTP(w, r.WithContext(session.WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireViewer пропускает только запросы с выполненным входом.
func RequireViewer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.FromContext(r.Context()).IsAuthenticated() {
				log.Debug("anonymous request to protected route", slog.String("path", r.URL.Path))
				response.Fail(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole пропускает только зрителей с ролью role.
func RequireRole(log *slog.Logger, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := session.FromContext(r.Context())
			if viewer.Role != role {
				log.Warn("role check failed",
					slog.String("viewer_id", viewer.ID),
					slog.String("role", string(viewer.Role)),
					slog.String("required", string(role)),
				)
				response.Fail(w, r, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
