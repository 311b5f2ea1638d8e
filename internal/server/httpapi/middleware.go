package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/paperdispatch/paperdispatch/internal/server/auth"
)

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// authMiddleware verifies the bearer token and stores the owner identifier in
// the request context. Requests without a valid token get 401.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeErrorStatus(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		ownerID, err := auth.GetOwnerIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeErrorStatus(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerID(r *http.Request) string {
	v, _ := r.Context().Value(ownerIDKey).(string)
	return v
}
