package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Auth requires a positive X-User-ID header and stores the ID in the request
// context. Upstream gateway owns actual authentication; this service only
// trusts the forwarded identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, "missing X-User-ID header")
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user ID placed by Auth.
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
