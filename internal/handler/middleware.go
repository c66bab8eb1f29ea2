package handler

import (
	"context"
	"net/http"
	"strings"

	"banking-service/internal/usecase"
	"banking-service/pkg/response"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth rejects requests without a valid bearer token backed by a live
// session, and stashes the claims in the request context.
func RequireAuth(auth *usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "missing token")
				return
			}
			claims, err := auth.Validate(r.Context(), token)
			if err != nil {
				status, msg := errStatus(err)
				response.Error(w, status, msg)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the authenticated user's id, or "" outside an
// authenticated request.
func UserIDFrom(ctx context.Context) string {
	if claims, ok := ctx.Value(claimsKey).(*usecase.Claims); ok {
		return claims.UserID
	}
	return ""
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
