package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every outbound call. There is no cooperative
// cancellation beyond the request context; a response arriving after the
// timeout is discarded.
const DefaultTimeout = 30 * time.Second

// User is the wire representation of the authenticated identity.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// TokenPair is the wire representation of an access/refresh pair. Refresh
// rotates both tokens.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResult is the login response: the identity plus a fresh token pair.
type LoginResult struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// ProfileUpdate carries the mutable profile fields; nil fields are left
// untouched by the service.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Client is the Auth API contract the session controller depends on.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	CurrentUser(ctx context.Context, accessToken string) (*User, error)
	UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (*User, error)
}

// StatusError is a non-2xx response from the Auth API. Message is the
// service's own text, surfaced verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

type requestIDContextKey struct{}

// WithRequestID attaches a correlation ID to ctx; it is sent as X-Request-ID
// on every call made with that context. Without one, each call generates its
// own.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// HTTPClient is the production [Client] over the Auth REST service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the service at baseURL. timeout <= 0
// selects [DefaultTimeout].
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Login authenticates with email/password credentials.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login/", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout asks the service to blacklist the refresh token. Callers treat
// failures as best-effort.
func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh": refreshToken}
	return c.do(ctx, http.MethodPost, "/auth/logout/", "", body, nil)
}

// Refresh exchanges the refresh token for a rotated pair.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refresh": refreshToken}
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/token/refresh/", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the identity behind the access token.
func (c *HTTPClient) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me/", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// identity.
func (c *HTTPClient) UpdateProfile(ctx context.Context, accessToken string, update ProfileUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPatch, "/auth/me/", accessToken, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    responseMessage(resp),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseMessage extracts the service's error text. The Auth API uses
// "detail" for auth failures and "message" elsewhere; a raw body or the HTTP
// status text is the fallback.
func responseMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(data) > 0 {
		var payload struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			if payload.Detail != "" {
				return payload.Detail
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
		if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "{") {
			return text
		}
	}
	return http.StatusText(resp.StatusCode)
}
