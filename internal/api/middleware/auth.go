package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AmenityService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, проставляется API gateway
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
)

type contextKey struct{}

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(contextKey{}).(int64)
	return userID, ok
}
