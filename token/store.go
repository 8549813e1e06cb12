package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidFormat is returned when a token cannot be decoded as a JWT with a
// numeric exp claim. Storing fails all-or-nothing: nothing is persisted.
var ErrInvalidFormat = errors.New("invalid token format")

// ErrStorageUnavailable wraps backend failures (e.g. Redis unreachable).
var ErrStorageUnavailable = errors.New("token storage unavailable")

// DefaultAccessMargin is subtracted from the access expiry before comparison,
// so refresh is triggered before the backend starts rejecting the token.
const DefaultAccessMargin = 5 * time.Minute

// Status is the four-way validity contract every caller must branch on.
// Collapsing it to a boolean loses the "needs silent refresh" signal.
type Status uint8

const (
	// StatusNone means no token pair is present at all.
	StatusNone Status = iota
	// StatusValid means the access token is still good.
	StatusValid
	// StatusRefreshNeeded means the access token is stale (within the margin)
	// but the refresh token is still good.
	StatusRefreshNeeded
	// StatusExpired means the refresh token is gone too; only a fresh login
	// can recover the session.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusRefreshNeeded:
		return "refresh_needed"
	case StatusExpired:
		return "expired"
	default:
		return "none"
	}
}

// Store decodes token expiries and answers validity queries over a [Storage]
// backend. The access margin triggers proactive refresh; the refresh expiry is
// the hard boundary.
type Store struct {
	storage Storage
	margin  time.Duration
	now     func() time.Time
}

// NewStore creates a [Store]. margin <= 0 selects [DefaultAccessMargin].
func NewStore(storage Storage, margin time.Duration) *Store {
	if margin <= 0 {
		margin = DefaultAccessMargin
	}
	return &Store{
		storage: storage,
		margin:  margin,
		now:     time.Now,
	}
}

// SetTokens decodes the exp claim out of both tokens and persists the pair
// plus both expiries in a single backend write. If either token cannot be
// decoded, nothing is stored and [ErrInvalidFormat] is returned.
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	accessExpiry, err := decodeExpiry(accessToken)
	if err != nil {
		return fmt.Errorf("access token: %w", err)
	}
	refreshExpiry, err := decodeExpiry(refreshToken)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}

	return s.storage.Save(ctx, Record{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	})
}

// AccessToken returns the stored access token, or "" when no pair is present.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	rec, ok, err := s.storage.Load(ctx)
	if err != nil || !ok || !rec.complete() {
		return "", err
	}
	return rec.AccessToken, nil
}

// RefreshToken returns the stored refresh token, or "" when no pair is present.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	rec, ok, err := s.storage.Load(ctx)
	if err != nil || !ok || !rec.complete() {
		return "", err
	}
	return rec.RefreshToken, nil
}

// IsAccessExpired reports whether the access token is absent or within the
// safety margin of its expiry.
func (s *Store) IsAccessExpired(ctx context.Context) (bool, error) {
	rec, ok, err := s.storage.Load(ctx)
	if err != nil {
		return true, err
	}
	if !ok || !rec.complete() {
		return true, nil
	}
	return s.accessStale(rec), nil
}

// IsRefreshExpired reports whether the refresh token is absent or past its
// expiry. No margin here: this is the hard boundary.
func (s *Store) IsRefreshExpired(ctx context.Context) (bool, error) {
	rec, ok, err := s.storage.Load(ctx)
	if err != nil {
		return true, err
	}
	if !ok || !rec.complete() {
		return true, nil
	}
	return s.refreshGone(rec), nil
}

// Status classifies the stored pair into the four-way contract.
func (s *Store) Status(ctx context.Context) (Status, error) {
	rec, ok, err := s.storage.Load(ctx)
	if err != nil {
		return StatusNone, err
	}
	if !ok || !rec.complete() {
		return StatusNone, nil
	}
	if s.refreshGone(rec) {
		return StatusExpired, nil
	}
	if s.accessStale(rec) {
		return StatusRefreshNeeded, nil
	}
	return StatusValid, nil
}

// Clear deletes the stored pair unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Clear(ctx)
}

func (s *Store) accessStale(rec Record) bool {
	return s.now().UnixMilli() >= rec.AccessExpiry-s.margin.Milliseconds()
}

func (s *Store) refreshGone(rec Record) bool {
	return s.now().UnixMilli() >= rec.RefreshExpiry
}

// TimeUntilExpiry is a diagnostic helper: it returns a human-readable time
// remaining for the given token, "Expired" when past, or "Unknown" when the
// token cannot be decoded. Advisory only, never used for control flow.
func TimeUntilExpiry(tok string) string {
	expiry, err := decodeExpiry(tok)
	if err != nil {
		return "Unknown"
	}
	remaining := time.Until(time.UnixMilli(expiry))
	if remaining <= 0 {
		return "Expired"
	}
	return remaining.Round(time.Second).String()
}

// decodeExpiry parses tok without signature verification and returns its exp
// claim as epoch milliseconds. Verification is the backend's job; this side
// only needs the expiry for scheduling.
func decodeExpiry(tok string) (int64, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, fmt.Errorf("%w: missing exp claim", ErrInvalidFormat)
	}
	return exp.Time.UnixMilli(), nil
}
