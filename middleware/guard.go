package middleware

import (
	"context"
	"net/http"

	authkit "github.com/esimdesk/authkit"
	"github.com/esimdesk/authkit/policy"
)

// Session is the slice of the controller the guard needs.
// *authkit.Controller satisfies it.
type Session interface {
	IsAuthenticated() bool
	CanAccessRoute(route string) bool
	CurrentUser() *authkit.User
}

type userContextKey struct{}

// UserFromContext returns the user injected by [Guard].
func UserFromContext(ctx context.Context) (*authkit.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*authkit.User)
	return u, ok
}

// Guard authorizes every request's path against the session's role policy.
// Unauthenticated requests are redirected to loginPath (policy.LoginRoute when
// empty); authorized requests proceed with the user in the request context.
// No partial authenticated view is ever shown: denial is a redirect or a 403,
// never a degraded page.
func Guard(sess Session, loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = policy.LoginRoute
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess == nil || !sess.IsAuthenticated() {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			if !sess.CanAccessRoute(r.URL.Path) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, sess.CurrentUser())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only the given roles through, independent of the route
// table. Useful for handlers mounted outside the console's route prefixes.
func RequireRole(sess Session, roles ...authkit.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess == nil || !sess.IsAuthenticated() {
				http.Redirect(w, r, policy.LoginRoute, http.StatusSeeOther)
				return
			}

			u := sess.CurrentUser()
			if !policy.HasRole(u, roles...) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
