package authkit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/esimdesk/authkit/token"
)

// Refresh rotates the token pair using the stored refresh token and returns
// the new access token. Concurrent callers share one in-flight rotation and
// one result; a second network call is never issued while one is outstanding,
// since the backend invalidates the previous refresh token on rotation.
//
// On any failure the tokens are cleared and [ErrRefreshFailed] is returned:
// callers must treat it as session expiry.
func (c *Controller) Refresh(ctx context.Context) (string, error) {
	if c.closed.Load() {
		return "", ErrControllerClosed
	}
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Controller) doRefresh(ctx context.Context) (string, error) {
	expired, err := c.tokens.IsRefreshExpired(ctx)
	if err != nil {
		return "", c.refreshFailed(ctx, fmt.Errorf("%w: %v", ErrRefreshFailed, err))
	}
	if expired {
		return "", c.refreshFailed(ctx, fmt.Errorf("%w: refresh token expired", ErrRefreshFailed))
	}

	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil || refresh == "" {
		return "", c.refreshFailed(ctx, fmt.Errorf("%w: no refresh token", ErrRefreshFailed))
	}

	pair, err := c.api.Refresh(ctx, refresh)
	if err != nil {
		return "", c.refreshFailed(ctx, fmt.Errorf("%w: %v", ErrRefreshFailed, err))
	}

	if err := c.tokens.SetTokens(ctx, pair.Access, pair.Refresh); err != nil {
		return "", c.refreshFailed(ctx, fmt.Errorf("%w: %v", ErrRefreshFailed, err))
	}

	c.metrics.Inc(MetricRefreshSuccess)
	c.emit(ctx, "refresh", true, c.CurrentUser(), nil, nil)
	return pair.Access, nil
}

// refreshFailed clears the tokens and records the failure. Visible state is
// left to the caller: bootstrap and the periodic check transition to
// unauthenticated themselves.
func (c *Controller) refreshFailed(ctx context.Context, err error) error {
	_ = c.tokens.Clear(ctx)
	c.metrics.Inc(MetricRefreshFailure)
	c.emit(ctx, "refresh", false, c.CurrentUser(), err, nil)
	return err
}

// startChecker launches the periodic freshness check. Idempotent while a
// checker is running.
func (c *Controller) startChecker() {
	c.checkerMu.Lock()
	defer c.checkerMu.Unlock()
	if c.checkerStop != nil {
		return
	}
	stop := make(chan struct{})
	c.checkerStop = stop
	go c.runChecker(stop)
}

// stopChecker tears down the periodic check. Called on every exit from the
// authenticated state so no timer outlives its session.
func (c *Controller) stopChecker() {
	c.checkerMu.Lock()
	defer c.checkerMu.Unlock()
	if c.checkerStop != nil {
		close(c.checkerStop)
		c.checkerStop = nil
	}
}

func (c *Controller) runChecker(stop <-chan struct{}) {
	ticker := time.NewTicker(c.config.Session.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.checkOnce(context.Background())
		}
	}
}

// checkOnce re-validates token freshness: silent refresh when the access
// token is stale, forced expiry when the refresh token is gone. A successful
// silent refresh never flips the visible state.
func (c *Controller) checkOnce(ctx context.Context) {
	if c.State() != StateAuthenticated {
		return
	}

	status, err := c.tokens.Status(ctx)
	if err != nil {
		// Backend hiccup: skip this tick rather than kill a live session on
		// a read that proved nothing about the tokens.
		log.Print("authkit: token status check failed: ", err)
		return
	}

	switch status {
	case token.StatusValid:
	case token.StatusRefreshNeeded:
		if _, err := c.refresh(ctx); err != nil {
			c.expireSession(ctx, err)
		}
	default:
		c.expireSession(ctx, nil)
	}
}

// expireSession fails closed: clear tokens, drop to unauthenticated, stop the
// checker.
func (c *Controller) expireSession(ctx context.Context, cause error) {
	u := c.CurrentUser()
	c.stopChecker()
	_ = c.tokens.Clear(ctx)
	c.setUnauthenticated()
	c.metrics.Inc(MetricSessionExpired)
	c.emit(ctx, "session_expired", false, u, cause, nil)
}
