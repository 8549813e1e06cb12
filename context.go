package authkit

import (
	"context"

	"github.com/esimdesk/authkit/authapi"
)

// WithRequestID attaches a correlation ID to ctx. Every Auth API call made
// under that context sends it as X-Request-ID, so console request logs line up
// with Auth service logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return authapi.WithRequestID(ctx, id)
}
