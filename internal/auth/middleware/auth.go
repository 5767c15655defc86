package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenValidator resolves a bearer token to the user ID it was issued for
type TokenValidator interface {
	ValidateToken(token string) (int, error)
}

// UserResolver checks that the user behind a token still exists
type UserResolver interface {
	ExistsByID(ctx context.Context, userID int) (bool, error)
}

// AuthMiddleware validates the bearer token, resolves it to an existing user and
// stores the user ID in the request context
func AuthMiddleware(tokens TokenValidator, users UserResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, err := tokens.ValidateToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			exists, err := users.ExistsByID(r.Context(), userID)
			if err != nil {
				logger.Error("failed to resolve token user", zap.Int("userId", userID), zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal server error"}`))
				return
			}
			if !exists {
				respondUnauthorized(w, "user not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// withUserID returns a copy of ctx carrying userID
func withUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
