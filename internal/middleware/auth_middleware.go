package middleware

import (
	"context"
	"net/http"
	"strings"

	"notes-server/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenResolver maps a bearer token to the user it was issued to.
type TokenResolver interface {
	ResolveUser(token string) (string, bool)
}

// AuthMiddleware requires "Authorization: Bearer <token>" with a known token.
// Malformed headers are rejected without consulting the resolver.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				response.Unauthorized(w, "Missing or malformed authorization header")
				return
			}

			userID, ok := resolver.ResolveUser(token)
			if !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			recordUserID(r, userID)
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header value. It
// accepts exactly two space-separated parts with the "Bearer" scheme.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
