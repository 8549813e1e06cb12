package authkit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/esimdesk/authkit/authapi"
	"github.com/esimdesk/authkit/internal/audit"
	"github.com/esimdesk/authkit/policy"
	"github.com/esimdesk/authkit/token"
	"golang.org/x/sync/singleflight"
)

// Controller owns session state: it is the only component that mutates the
// token store, the sole entry and exit point for authentication, and the owner
// of the background freshness check. Construct it through [Builder.Build],
// call [Controller.Bootstrap] once on application start, then use it from any
// goroutine.
type Controller struct {
	config  Config
	tokens  *token.Store
	api     authapi.Client
	audit   *audit.Dispatcher
	metrics *Metrics

	mu    sync.RWMutex
	state SessionState
	user  *User

	bootstrapOnce sync.Once

	// refreshGroup collapses concurrent refresh calls into one network
	// round-trip; every waiter observes the same outcome.
	refreshGroup singleflight.Group

	checkerMu   sync.Mutex
	checkerStop chan struct{}

	closed atomic.Bool
}

// State returns the visible authentication state.
func (c *Controller) State() SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsAuthenticated reports whether a user is established.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// IsLoading reports whether the initial bootstrap check is still running.
func (c *Controller) IsLoading() bool {
	return c.State() == StateLoading
}

// CurrentUser returns a copy of the authenticated user, or nil when
// unauthenticated.
func (c *Controller) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// TokenStatus exposes the four-way token validity classification.
func (c *Controller) TokenStatus(ctx context.Context) (token.Status, error) {
	return c.tokens.Status(ctx)
}

// Derived role facts. All recompute from the current user through policy;
// nothing is stored independently.

// HasRole reports whether the current user holds one of the given roles.
func (c *Controller) HasRole(roles ...Role) bool {
	return policy.HasRole(c.CurrentUser(), roles...)
}

// IsAdmin reports whether the current user is an administrator.
func (c *Controller) IsAdmin() bool { return c.HasRole(RoleAdmin) }

// IsReseller reports whether the current user is a reseller.
func (c *Controller) IsReseller() bool { return c.HasRole(RoleReseller) }

// IsClient reports whether the current user is a client.
func (c *Controller) IsClient() bool { return c.HasRole(RoleClient) }

// IsPublicUser reports whether the current user is a public user.
func (c *Controller) IsPublicUser() bool { return c.HasRole(RolePublicUser) }

// HasManagementRole reports whether the current user is an admin or reseller.
func (c *Controller) HasManagementRole() bool {
	return policy.HasManagementRole(c.CurrentUser())
}

// RoleDisplay returns the human label of the current user's role.
func (c *Controller) RoleDisplay() string {
	return policy.RoleDisplay(c.CurrentUser())
}

// DefaultDashboard returns the landing route for the current user's role,
// policy.LoginRoute when unauthenticated or unresolved.
func (c *Controller) DefaultDashboard() string {
	return policy.DefaultDashboardRoute(c.CurrentUser())
}

// CanAccessRoute reports whether the current user may access route.
func (c *Controller) CanAccessRoute(route string) bool {
	return policy.CanAccessRoute(c.CurrentUser(), route)
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (c *Controller) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// AuditDropped returns how many audit events were discarded under
// backpressure.
func (c *Controller) AuditDropped() uint64 {
	if c == nil {
		return 0
	}
	return c.audit.Dropped()
}

// Close stops the background checker and drains the audit dispatcher. The
// controller must not be used afterwards.
func (c *Controller) Close() {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return
	}
	c.stopChecker()
	c.audit.Close()
}

func (c *Controller) setAuthenticated(u *User) {
	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = u
	c.mu.Unlock()
}

func (c *Controller) setUnauthenticated() {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = nil
	c.mu.Unlock()
}

func userFromAPI(u *authapi.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      policy.ParseRole(u.Role),
	}
}

func (c *Controller) emit(ctx context.Context, eventType string, success bool, u *User, err error, metadata map[string]string) {
	if c.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: time.Now(),
		EventType: eventType,
		Success:   success,
		Metadata:  metadata,
	}
	if u != nil {
		event.UserID = u.ID
		event.Email = u.Email
		event.Role = u.Role.String()
	}
	if err != nil {
		event.Error = err.Error()
	}
	c.audit.Emit(ctx, event)
}
