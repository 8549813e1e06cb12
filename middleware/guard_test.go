package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authkit "github.com/esimdesk/authkit"
	"github.com/esimdesk/authkit/policy"
)

type fakeSession struct {
	user *authkit.User
}

func (s *fakeSession) IsAuthenticated() bool {
	return s.user != nil
}

func (s *fakeSession) CanAccessRoute(route string) bool {
	return policy.CanAccessRoute(s.user, route)
}

func (s *fakeSession) CurrentUser() *authkit.User {
	return s.user
}

func serve(t *testing.T, mw func(http.Handler) http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	var seen *authkit.User
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code == http.StatusOK && seen == nil {
		t.Fatal("handler ran without a user in context")
	}
	return rec
}

func TestGuardRedirectsUnauthenticated(t *testing.T) {
	rec := serve(t, Guard(&fakeSession{}, ""), "/dashboard")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != policy.LoginRoute {
		t.Fatalf("redirect location = %q, want %q", loc, policy.LoginRoute)
	}
}

func TestGuardAllowsAuthorizedRoute(t *testing.T) {
	sess := &fakeSession{user: &authkit.User{ID: "u-1", Role: authkit.RoleReseller}}
	rec := serve(t, Guard(sess, ""), "/reseller-dashboard/clients")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGuardForbidsUnauthorizedRoute(t *testing.T) {
	sess := &fakeSession{user: &authkit.User{ID: "u-1", Role: authkit.RoleReseller}}
	rec := serve(t, Guard(sess, ""), "/users")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestGuardCustomLoginPath(t *testing.T) {
	rec := serve(t, Guard(&fakeSession{}, "/signin"), "/dashboard")
	if loc := rec.Header().Get("Location"); loc != "/signin" {
		t.Fatalf("redirect location = %q, want /signin", loc)
	}
}

func TestRequireRole(t *testing.T) {
	admin := &fakeSession{user: &authkit.User{ID: "u-1", Role: authkit.RoleAdmin}}
	client := &fakeSession{user: &authkit.User{ID: "u-2", Role: authkit.RoleClient}}

	if rec := serve(t, RequireRole(admin, authkit.RoleAdmin, authkit.RoleReseller), "/anything"); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := serve(t, RequireRole(client, authkit.RoleAdmin, authkit.RoleReseller), "/anything"); rec.Code != http.StatusForbidden {
		t.Fatalf("client status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := serve(t, RequireRole(&fakeSession{}, authkit.RoleAdmin), "/anything"); rec.Code != http.StatusSeeOther {
		t.Fatalf("unauthenticated status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
