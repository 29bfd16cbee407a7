package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const seatTokenContextKey contextKey = "seat_token"

// SeatTokenHeader carries the secret token for a seat
const SeatTokenHeader = "X-Seat-Token"

// SeatToken extracts the caller's seat token, if any, into the request context.
// Whether a token is required and valid is decided by the game controller.
func SeatToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := extractToken(r); token != "" {
				r = r.WithContext(context.WithValue(r.Context(), seatTokenContextKey, token))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the seat token from the request
func extractToken(r *http.Request) string {
	if token := r.Header.Get(SeatTokenHeader); token != "" {
		return token
	}

	// Fall back to a bearer token
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// GetSeatToken returns the seat token from the request context, or ""
func GetSeatToken(ctx context.Context) string {
	token, _ := ctx.Value(seatTokenContextKey).(string)
	return token
}
