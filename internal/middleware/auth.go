package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/wanderstay/wanderstay/internal/models"
	"github.com/wanderstay/wanderstay/internal/session"
	"github.com/wanderstay/wanderstay/internal/view"
)

// RequireAuth guards protected routes. Unauthenticated requests are
// flashed "login first!" and redirected to the login page; the handler
// never runs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		if s == nil || !s.IsAuthenticated() {
			if s != nil {
				s.AddFlash(session.FlashError, "login first!")
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Deserializer rehydrates the user behind a session token.
type Deserializer interface {
	Deserialize(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser loads the full user record for authenticated sessions and
// injects it into the request context. A token whose user has vanished
// is treated as anonymous.
func CurrentUser(d Deserializer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if s != nil && s.IsAuthenticated() {
				u, err := d.Deserialize(r.Context(), s.UserID)
				if err != nil {
					slog.Warn("deserialize session user", "error", err)
				} else {
					r = r.WithContext(view.WithUser(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
