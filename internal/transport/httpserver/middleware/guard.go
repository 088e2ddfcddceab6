package middleware

import (
	"errors"
	"net/http"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/transport/httpserver/flash"
)

// RequireAction lets the request through only when the session identity may
// perform action. Denied requests are redirected with a warning.
func RequireAction(action policy.Action, redirectTo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := policy.Authorize(IdentityFromContext(r.Context()), action, policy.Target{})
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}
			if errors.Is(err, policy.ErrUnauthenticated) {
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			flash.Add(w, r, flash.Warning, err.Error())
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		})
	}
}
