package authkit

import (
	"io"

	"github.com/esimdesk/authkit/internal/audit"
	"github.com/esimdesk/authkit/policy"
	"go.uber.org/zap"
)

// User is the authenticated identity fetched from the Auth API.
type User = policy.User

// Role is the closed console role enumeration.
type Role = policy.Role

const (
	// RoleUnknown is the normalization target for unrecognized role strings.
	RoleUnknown = policy.RoleUnknown
	// RoleAdmin is the platform operator role.
	RoleAdmin = policy.RoleAdmin
	// RoleReseller is the SIM/eSIM reseller role.
	RoleReseller = policy.RoleReseller
	// RoleClient is the end-customer role.
	RoleClient = policy.RoleClient
	// RolePublicUser is an authenticated account with no console role.
	RolePublicUser = policy.RolePublicUser
)

// SessionState is the visible authentication state.
type SessionState uint8

const (
	// StateLoading holds during the initial bootstrap check.
	StateLoading SessionState = iota
	// StateUnauthenticated means no usable session exists.
	StateUnauthenticated
	// StateAuthenticated means a user is established. A refresh may be in
	// flight underneath without leaving this state.
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuditEvent is a structured session lifecycle record.
type AuditEvent = audit.Event

// AuditSink receives [AuditEvent] values from the controller's dispatcher.
type AuditSink = audit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = audit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = audit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = audit.JSONWriterSink

// ZapSink is an [AuditSink] that routes events into a zap logger.
type ZapSink = audit.ZapSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// NewZapSink creates a [ZapSink] over the given logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return audit.NewZapSink(logger)
}
