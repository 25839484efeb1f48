package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
)

// HeaderBusinessID заголовок аутентификации защищённых маршрутов
const HeaderBusinessID = "X-Business-ID"

type contextKey string

const businessIDKey contextKey = "businessID"

// BusinessAuth требует валидный заголовок X-Business-ID и кладет
// его значение в контекст запроса. Защищает management-маршруты.
func BusinessAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderBusinessID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-Business-ID")
			return
		}

		businessID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || businessID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Business-ID")
			return
		}

		ctx := context.WithValue(r.Context(), businessIDKey, businessID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BusinessID достает ID бизнеса из контекста запроса
func BusinessID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey).(int64)
	return id, ok
}
