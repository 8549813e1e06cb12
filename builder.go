package authkit

import (
	"errors"

	"github.com/esimdesk/authkit/authapi"
	"github.com/esimdesk/authkit/internal/audit"
	"github.com/esimdesk/authkit/token"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Controller]. Construction is allocation-only: no
// network or storage access happens until the controller is bootstrapped.
type Builder struct {
	config Config
	redis  *redis.Client

	storage   token.Storage
	api       authapi.Client
	auditSink AuditSink

	built bool
}

// New creates a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis selects a Redis-backed token storage, for deployments where
// several console processes share one session.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithTokenStorage injects a custom [token.Storage]. Takes precedence over
// WithRedis; without either, an in-memory backend is used.
func (b *Builder) WithTokenStorage(storage token.Storage) *Builder {
	b.storage = storage
	return b
}

// WithAuthAPI injects the Auth API client. Without it, Build constructs an
// [authapi.HTTPClient] from Config.API.
func (b *Builder) WithAuthAPI(client authapi.Client) *Builder {
	b.api = client
	return b
}

// WithAuditSink sets the destination for session audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles the controller. A builder
// may only be used once.
func (b *Builder) Build() (*Controller, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	api := b.api
	if api == nil {
		if b.config.API.BaseURL == "" {
			return nil, errors.New("auth api required: set Config.API.BaseURL or use WithAuthAPI")
		}
		api = authapi.NewHTTPClient(b.config.API.BaseURL, b.config.API.Timeout)
	}

	storage := b.storage
	if storage == nil {
		if b.redis != nil {
			storage = token.NewRedisStorage(b.redis, b.config.Token.StoragePrefix)
		} else {
			storage = token.NewMemoryStorage()
		}
	}

	return &Controller{
		config:  b.config,
		tokens:  token.NewStore(storage, b.config.Token.AccessMargin),
		api:     api,
		metrics: newMetrics(b.config.Metrics.Enabled),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink),
		state: StateLoading,
	}, nil
}
