package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
)

// UserIDHeader заголовок с ID владельца, проставляется API-шлюзом
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется заголовок X-User-ID"

type ctxKey struct{}

// Auth пропускает запрос дальше, только если X-User-ID - положительное число
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// OptionalAuth кладет ID в контекст, если заголовок передан, и не отклоняет запрос без него.
// Публичная страница брони и админка владельца используют один маршрут
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// GetUserID достаёт ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok && userID > 0
}
