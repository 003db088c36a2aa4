package response

import (
	"errors"
	"net/http"

	"github.com/magabrotheeeer/creator-hub/internal/upstream"
)

// UpstreamError пишет ответ для ошибки обращения к API платформы.
// Если клиент уже отключился, ответ не пишется.
func UpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case r.Context().Err() != nil:
		return
	case errors.Is(err, upstream.ErrNotFound):
		Fail(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, upstream.ErrUnauthorized):
		Fail(w, r, http.StatusUnauthorized, "invalid or expired token")
	default:
		Fail(w, r, http.StatusBadGateway, "upstream unavailable")
	}
}
