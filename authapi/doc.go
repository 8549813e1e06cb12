// Package authapi is the module's collaborator interface to the external Auth
// REST service: login, logout, token refresh, and current-user lookup.
//
// [Client] is the contract the session controller depends on; [HTTPClient] is
// the production implementation. Rejections carry the service's message
// verbatim in a [StatusError] so login forms can display it unchanged.
// Transport failures are returned as-is for the caller to classify.
package authapi
