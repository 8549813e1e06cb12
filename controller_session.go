package authkit

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/esimdesk/authkit/authapi"
	"github.com/esimdesk/authkit/token"
)

// Bootstrap restores a session from persisted tokens, runs once, and never
// lets a collaborator failure escape: any ambiguity resolves to the
// unauthenticated state with tokens cleared. Subsequent calls are no-ops.
//
// The background freshness check starts only after a session is established,
// here or in [Controller.Login].
func (c *Controller) Bootstrap(ctx context.Context) error {
	if c.closed.Load() {
		return ErrControllerClosed
	}
	c.bootstrapOnce.Do(func() { c.bootstrap(ctx) })
	return nil
}

func (c *Controller) bootstrap(ctx context.Context) {
	status, err := c.tokens.Status(ctx)
	if err != nil {
		log.Print("authkit: token status check failed during bootstrap: ", err)
		c.bootstrapFailed(ctx, err)
		return
	}

	switch status {
	case token.StatusValid:
		access, err := c.tokens.AccessToken(ctx)
		if err != nil {
			c.bootstrapFailed(ctx, err)
			return
		}
		u, err := c.api.CurrentUser(ctx, access)
		if err != nil {
			// Tokens are suspect; do not retry silently.
			_ = c.tokens.Clear(ctx)
			c.bootstrapFailed(ctx, err)
			return
		}
		c.bootstrapAuthenticated(ctx, userFromAPI(u))

	case token.StatusRefreshNeeded:
		access, err := c.refresh(ctx)
		if err != nil {
			// refresh already cleared the tokens.
			c.bootstrapFailed(ctx, err)
			return
		}
		u, err := c.api.CurrentUser(ctx, access)
		if err != nil {
			_ = c.tokens.Clear(ctx)
			c.bootstrapFailed(ctx, err)
			return
		}
		c.bootstrapAuthenticated(ctx, userFromAPI(u))

	default:
		if status == token.StatusExpired {
			_ = c.tokens.Clear(ctx)
		}
		c.bootstrapFailed(ctx, nil)
	}
}

func (c *Controller) bootstrapAuthenticated(ctx context.Context, u *User) {
	c.setAuthenticated(u)
	c.startChecker()
	c.metrics.Inc(MetricBootstrapAuthenticated)
	c.emit(ctx, "bootstrap", true, u, nil, nil)
}

func (c *Controller) bootstrapFailed(ctx context.Context, err error) {
	c.setUnauthenticated()
	c.metrics.Inc(MetricBootstrapUnauthenticated)
	c.emit(ctx, "bootstrap", false, nil, err, nil)
}

// Login authenticates with the Auth API and establishes a session. On
// rejection the existing state is untouched and the returned error carries the
// API's message verbatim (matches [ErrAuthenticationFailed] under errors.Is);
// transport errors are returned as-is for the caller to retry.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if c.closed.Load() {
		return ErrControllerClosed
	}

	res, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, "login", false, nil, err, map[string]string{"email": email})
		var se *authapi.StatusError
		if errors.As(err, &se) {
			return &AuthError{Message: se.Message}
		}
		return err
	}

	if err := c.tokens.SetTokens(ctx, res.Tokens.Access, res.Tokens.Refresh); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emit(ctx, "login", false, nil, err, map[string]string{"email": email})
		return fmt.Errorf("store tokens: %w", err)
	}

	u := userFromAPI(&res.User)
	c.setAuthenticated(u)
	c.startChecker()
	c.metrics.Inc(MetricLoginSuccess)
	c.emit(ctx, "login", true, u, nil, nil)
	return nil
}

// Logout ends the session unconditionally. The Auth API revocation call is
// best-effort: its failure is logged and tolerated, because a user must always
// be able to log out locally even with the backend unreachable.
func (c *Controller) Logout(ctx context.Context) error {
	u := c.CurrentUser()

	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		log.Print("authkit: refresh token read failed during logout: ", err)
	}
	if refresh != "" {
		if err := c.api.Logout(ctx, refresh); err != nil {
			log.Print("authkit: remote logout failed: ", err)
		}
	}

	c.stopChecker()
	if err := c.tokens.Clear(ctx); err != nil {
		log.Print("authkit: token clear failed during logout: ", err)
	}
	c.setUnauthenticated()
	c.metrics.Inc(MetricLogout)
	c.emit(ctx, "logout", true, u, nil, nil)
	return nil
}

// UpdateProfile performs an explicit profile round-trip and refreshes the
// cached user on success. Errors are surfaced to the caller and leave the
// session untouched.
func (c *Controller) UpdateProfile(ctx context.Context, update authapi.ProfileUpdate) (*User, error) {
	if c.closed.Load() {
		return nil, ErrControllerClosed
	}
	if !c.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	access, err := c.tokens.AccessToken(ctx)
	if err != nil || access == "" {
		c.metrics.Inc(MetricProfileUpdateFailure)
		return nil, ErrNotAuthenticated
	}

	updated, err := c.api.UpdateProfile(ctx, access, update)
	if err != nil {
		c.metrics.Inc(MetricProfileUpdateFailure)
		c.emit(ctx, "profile_update", false, c.CurrentUser(), err, nil)
		return nil, err
	}

	u := userFromAPI(updated)
	c.mu.Lock()
	if c.state == StateAuthenticated {
		c.user = u
	}
	c.mu.Unlock()

	c.metrics.Inc(MetricProfileUpdateSuccess)
	c.emit(ctx, "profile_update", true, u, nil, nil)
	return c.CurrentUser(), nil
}
