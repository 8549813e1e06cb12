package policy

import "testing"

func userWith(role Role) *User {
	return &User{ID: "u-1", Email: "u@example.com", Role: role}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"reseller", RoleReseller},
		{"client", RoleClient},
		{"public_user", RolePublicUser},
		{"", RoleUnknown},
		{"superadmin", RoleUnknown},
		{"Admin", RoleUnknown},
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Fatalf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoleStringRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleReseller, RoleClient, RolePublicUser} {
		if got := ParseRole(r.String()); got != r {
			t.Fatalf("ParseRole(%q) = %v, want %v", r.String(), got, r)
		}
	}
	if RoleUnknown.String() != "unknown" {
		t.Fatalf("unexpected unknown role string %q", RoleUnknown.String())
	}
}

func TestHasRole(t *testing.T) {
	if HasRole(nil, RoleAdmin) {
		t.Fatal("nil user must not hold any role")
	}
	if HasRole(userWith(RoleUnknown), RoleUnknown) {
		t.Fatal("unresolved role must never match, even against itself")
	}
	if !HasRole(userWith(RoleReseller), RoleAdmin, RoleReseller) {
		t.Fatal("reseller should match [admin, reseller]")
	}
	if HasRole(userWith(RoleClient), RoleAdmin, RoleReseller) {
		t.Fatal("client should not match [admin, reseller]")
	}
}

func TestHasManagementRole(t *testing.T) {
	if !HasManagementRole(userWith(RoleAdmin)) {
		t.Fatal("admin is a management role")
	}
	if !HasManagementRole(userWith(RoleReseller)) {
		t.Fatal("reseller is a management role")
	}
	if HasManagementRole(userWith(RoleClient)) {
		t.Fatal("client is not a management role")
	}
	if HasManagementRole(nil) {
		t.Fatal("nil user is not a management role")
	}
}

func TestDefaultDashboardRoute(t *testing.T) {
	tests := []struct {
		user *User
		want string
	}{
		{userWith(RoleAdmin), "/dashboard"},
		{userWith(RoleReseller), "/reseller-dashboard"},
		{userWith(RoleClient), "/client-dashboard"},
		{userWith(RolePublicUser), "/public-dashboard"},
		{userWith(RoleUnknown), LoginRoute},
		{nil, LoginRoute},
	}
	for _, tt := range tests {
		if got := DefaultDashboardRoute(tt.user); got != tt.want {
			t.Fatalf("DefaultDashboardRoute(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestRoleDisplay(t *testing.T) {
	if got := RoleDisplay(userWith(RoleAdmin)); got != "Administrator" {
		t.Fatalf("admin display = %q", got)
	}
	if got := RoleDisplay(nil); got != "Unknown" {
		t.Fatalf("nil user display = %q", got)
	}
	if got := RoleDisplay(userWith(RoleUnknown)); got != "Unknown" {
		t.Fatalf("unresolved role display = %q", got)
	}
}

func TestCanAccessRoute(t *testing.T) {
	tests := []struct {
		name  string
		user  *User
		route string
		want  bool
	}{
		{"nil user denied", nil, "/dashboard", false},
		{"unknown role denied", userWith(RoleUnknown), "/profile", false},
		{"reseller own dashboard", userWith(RoleReseller), "/reseller-dashboard/clients", true},
		{"reseller denied admin route", userWith(RoleReseller), "/users", false},
		{"admin dashboard", userWith(RoleAdmin), "/dashboard", true},
		{"admin prefix match", userWith(RoleAdmin), "/resellers/123", true},
		{"admin denied reseller dashboard", userWith(RoleAdmin), "/reseller-dashboard", false},
		{"client own orders", userWith(RoleClient), "/client-dashboard/orders", true},
		{"client denied admin orders", userWith(RoleClient), "/orders", false},
		{"public user denied everything primary", userWith(RolePublicUser), "/dashboard", false},
		{"public user shared profile", userWith(RolePublicUser), "/profile", true},
		{"client shared settings", userWith(RoleClient), "/settings", true},
		{"reseller shared profile subpath", userWith(RoleReseller), "/profile/security", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessRoute(tt.user, tt.route); got != tt.want {
				t.Fatalf("CanAccessRoute(%+v, %q) = %v, want %v", tt.user, tt.route, got, tt.want)
			}
		})
	}
}

func TestCanAccessRoutePurity(t *testing.T) {
	u := userWith(RoleReseller)
	first := CanAccessRoute(u, "/reseller-dashboard/history")
	second := CanAccessRoute(u, "/reseller-dashboard/history")
	if first != second {
		t.Fatal("identical calls must return identical results")
	}
	if u.Role != RoleReseller {
		t.Fatal("CanAccessRoute must not mutate its input")
	}
}
