// Package middleware provides net/http route guards over an authkit session:
// unauthenticated requests are redirected to the login entry point,
// authenticated-but-unauthorized requests get 403, and the current user is
// injected into the request context for downstream handlers.
package middleware
