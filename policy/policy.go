package policy

import "strings"

// LoginRoute is where unauthenticated sessions and sessions with an
// unresolved role are sent. An unrecognized role never lands on an admin
// surface.
const LoginRoute = "/login"

// roleRoutes is the authorization table: each role may access routes whose
// path starts with one of its prefixes. Matching is literal prefix matching,
// so "/resellers" authorizes "/resellers/123".
var roleRoutes = map[Role][]string{
	RoleAdmin: {
		"/dashboard",
		"/resellers",
		"/users",
		"/orders",
		"/transactions",
		"/reports",
		"/settings",
	},
	RoleReseller: {
		"/reseller-dashboard",
		"/reseller-dashboard/add-client",
		"/reseller-dashboard/assign-esim",
		"/reseller-dashboard/clients",
		"/reseller-dashboard/history",
	},
	RoleClient: {
		"/client-dashboard",
		"/client-dashboard/orders",
		"/client-dashboard/esims",
	},
	RolePublicUser: {},
}

// sharedRoutes are accessible to every authenticated role regardless of its
// primary list.
var sharedRoutes = []string{
	"/profile",
	"/settings",
}

var dashboardRoutes = map[Role]string{
	RoleAdmin:      "/dashboard",
	RoleReseller:   "/reseller-dashboard",
	RoleClient:     "/client-dashboard",
	RolePublicUser: "/public-dashboard",
}

// HasRole reports whether u holds one of the given roles. A nil user or a
// user with an unresolved role never matches.
func HasRole(u *User, roles ...Role) bool {
	if u == nil || u.Role == RoleUnknown {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// HasManagementRole reports whether u is an admin or a reseller.
func HasManagementRole(u *User) bool {
	return HasRole(u, RoleAdmin, RoleReseller)
}

// DefaultDashboardRoute returns the landing route for u's role. Nil users and
// unresolved roles land on [LoginRoute].
func DefaultDashboardRoute(u *User) string {
	if u == nil {
		return LoginRoute
	}
	route, ok := dashboardRoutes[u.Role]
	if !ok {
		return LoginRoute
	}
	return route
}

// RoleDisplay returns the human label for u's role, "Unknown" for nil users.
func RoleDisplay(u *User) string {
	if u == nil {
		return RoleUnknown.Display()
	}
	return u.Role.Display()
}

// CanAccessRoute reports whether u may access route. The decision is a
// literal prefix match against the role's allow-list plus the shared routes
// every authenticated role may use. Nil users and unresolved roles are always
// denied.
func CanAccessRoute(u *User, route string) bool {
	if u == nil || u.Role == RoleUnknown {
		return false
	}
	prefixes, ok := roleRoutes[u.Role]
	if !ok {
		return false
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	for _, prefix := range sharedRoutes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}
