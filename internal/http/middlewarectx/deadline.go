package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/creator-hub/internal/lib/sl"
)

// ExtendDeadlines продлевает дедлайны чтения и записи соединения на timeout
// от начала запроса. Нужен маршрутам, которые принимают или отправляют файлы
// дольше общего таймаута сервера.
func ExtendDeadlines(timeout time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout > 0 {
				deadline := time.Now().Add(timeout)
				rc := http.NewResponseController(w)
				if err := errors.Join(rc.SetReadDeadline(deadline), rc.SetWriteDeadline(deadline)); err != nil {
					log.Debug("connection deadlines not extended", sl.Err(err))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
