// Package authkit manages authenticated sessions for the eSIM reseller
// console: persisted access/refresh token pairs, silent refresh, and
// role-based route authorization against an external Auth REST service.
//
// [Controller] is the single owner of session state. It is constructed through
// [Builder.Build], bootstrapped once on application start, and safe to call
// from multiple goroutines afterwards. Token persistence lives in the token
// subpackage, authorization decisions in policy, and the Auth API contract in
// authapi.
//
// # Architecture boundaries
//
//   - Only the Controller mutates the token store; no other component writes
//     tokens.
//   - policy performs no I/O and holds no state; it may be called directly by
//     route guards with the current user value.
//   - Construction is allocation-only: no network or storage access happens
//     before [Controller.Bootstrap].
//
// # Failure posture
//
// Background failures (bootstrap, periodic refresh) fail closed: the session
// transitions to unauthenticated and tokens are cleared rather than holding a
// possibly-stale session. Failures of explicit user actions (Login,
// UpdateProfile) are surfaced to the caller and leave state untouched.
package authkit
