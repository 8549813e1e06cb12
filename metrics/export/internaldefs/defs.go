// Package internaldefs holds the shared counter name table used by the
// metrics exporters. It exists so the Prometheus and OTel exporters agree on
// names without importing each other.
package internaldefs

import (
	authkit "github.com/esimdesk/authkit"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   authkit.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in snapshot order.
var CounterDefs = []CounterDef{
	{ID: authkit.MetricLoginSuccess, Name: "authkit_login_success_total", Help: "Successful logins."},
	{ID: authkit.MetricLoginFailure, Name: "authkit_login_failure_total", Help: "Rejected or failed logins."},
	{ID: authkit.MetricLogout, Name: "authkit_logout_total", Help: "Logouts."},
	{ID: authkit.MetricRefreshSuccess, Name: "authkit_refresh_success_total", Help: "Successful silent refreshes."},
	{ID: authkit.MetricRefreshFailure, Name: "authkit_refresh_failure_total", Help: "Failed silent refreshes."},
	{ID: authkit.MetricBootstrapAuthenticated, Name: "authkit_bootstrap_authenticated_total", Help: "Bootstraps that restored a session."},
	{ID: authkit.MetricBootstrapUnauthenticated, Name: "authkit_bootstrap_unauthenticated_total", Help: "Bootstraps that found no usable session."},
	{ID: authkit.MetricSessionExpired, Name: "authkit_session_expired_total", Help: "Sessions force-expired by the periodic check."},
	{ID: authkit.MetricProfileUpdateSuccess, Name: "authkit_profile_update_success_total", Help: "Successful profile round-trips."},
	{ID: authkit.MetricProfileUpdateFailure, Name: "authkit_profile_update_failure_total", Help: "Failed profile round-trips."},
}

// AuditDropped is the counter for audit events discarded under backpressure.
var AuditDropped = CounterDef{
	Name: "authkit_audit_dropped_total",
	Help: "Audit events discarded under backpressure.",
}
