package authkit

import (
	"errors"
	"strings"
	"time"

	"github.com/esimdesk/authkit/token"
)

// Config defines the controller's tunables. Configure before [Builder.Build];
// treat as immutable afterwards.
type Config struct {
	API     APIConfig
	Token   TokenConfig
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// APIConfig locates the external Auth REST service.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TokenConfig tunes token persistence and the proactive-refresh margin.
type TokenConfig struct {
	// AccessMargin is subtracted from the access expiry so refresh triggers
	// before the backend starts rejecting the token.
	AccessMargin time.Duration
	// StoragePrefix namespaces the persisted keys in shared backends.
	StoragePrefix string
}

// SessionConfig tunes the background freshness check.
type SessionConfig struct {
	// CheckInterval is how often the controller re-validates token freshness
	// while authenticated.
	CheckInterval time.Duration
}

// AuditConfig controls the session audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the production defaults: 30s request timeout, 5m
// access margin, 5m check interval, audit and metrics enabled.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Token: TokenConfig{
			AccessMargin:  token.DefaultAccessMargin,
			StoragePrefix: "ak",
		},
		Session: SessionConfig{
			CheckInterval: 5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.API.Timeout <= 0 || c.API.Timeout > 5*time.Minute {
		return errors.New("api timeout must be in (0, 5m]")
	}
	if c.Token.AccessMargin < 0 || c.Token.AccessMargin > time.Hour {
		return errors.New("token access margin must be in [0, 1h]")
	}
	if strings.TrimSpace(c.Token.StoragePrefix) == "" {
		return errors.New("token storage prefix must not be blank")
	}
	if c.Session.CheckInterval <= 0 || c.Session.CheckInterval > 24*time.Hour {
		return errors.New("session check interval must be in (0, 24h]")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive when audit is enabled")
	}
	return nil
}
