package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SamarthKasar123/Primewave/logging"
	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/utils"
)

type contextKey string

const callerKey contextKey = "caller"

// JWTAuth validates the bearer token and attaches the resulting Caller to
// the request context. Handlers behind it can assume CallerFrom succeeds.
func JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Access denied. No token provided.", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			http.Error(w, "Invalid token.", http.StatusUnauthorized)
			return
		}
		caller, ok := models.CallerForRole(claims.Role, id)
		if !ok {
			http.Error(w, "Invalid token.", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFrom(ctx context.Context) (models.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(models.Caller)
	return caller, ok
}
