package middleware

import (
	"log/slog"
	"net/http"

	"github.com/wanderstay/wanderstay/internal/view"
)

// Recover converts panics into the generic 500 error page instead of a
// dropped connection. The process never crashes on a bad request.
func Recover(v *view.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					slog.Error("panic recovered", "method", r.Method, "path", r.URL.Path, "panic", rec)
					v.Error(w, r, http.StatusInternalServerError, "Something went wrong.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
