package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "userID"

// tokenAuth verifies the signed token in the custom "token" header and
// rejects the request before any store is touched.
func (s *Server) tokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("token")
		if token == "" {
			s.fail(w, http.StatusUnauthorized, "Not Authorized. Login Again!")
			return
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			s.fail(w, http.StatusUnauthorized, "Token Verification Failed!")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
