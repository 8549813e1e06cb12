package authkit

import "errors"

var (
	// ErrAuthenticationFailed marks login rejections. The concrete error's
	// message is the Auth API's text, surfaced verbatim for the login form.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRefreshFailed marks any failed silent refresh, including a refresh
	// token already detected as expired locally. Tokens are always cleared
	// before this is returned; callers treat it as session expiry.
	ErrRefreshFailed = errors.New("refresh failed")
	// ErrNotAuthenticated is returned by operations that require an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrControllerClosed is returned after Close.
	ErrControllerClosed = errors.New("controller closed")
)

// AuthError is a login rejection carrying the Auth API's message verbatim.
// It matches [ErrAuthenticationFailed] under errors.Is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Is reports whether target is [ErrAuthenticationFailed].
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}
