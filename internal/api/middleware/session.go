package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/maisonlux/storefront/internal/auth"
)

// SessionMiddleware installs a bearer token into the session when one is
// present. It never rejects the request: browsing works signed out and the
// cart engine decides for itself which operations need authentication.
type SessionMiddleware struct {
	session *auth.Session
}

func NewSessionMiddleware(session *auth.Session) *SessionMiddleware {
	return &SessionMiddleware{session: session}
}

func (m *SessionMiddleware) Attach(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")

		if authHeader != "" {
			// Token is of format : "Bearer <token>"
			tokenParts := strings.Split(authHeader, " ")

			if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
				if err := m.session.SetToken(tokenParts[1]); err != nil {
					logger := LoggerFromContext(r.Context())
					logger.Warn("Rejected bearer token", slog.String("error", err.Error()))
				}
			}
		}

		next.ServeHTTP(w, r)
	}
}
