// Package token owns the persisted access/refresh token pair and its expiry
// arithmetic. It has no knowledge of the Auth API or of session state.
//
// A [Store] decodes each token's embedded expiry claim at write time and
// persists the pair plus both expiries through a pluggable [Storage] backend.
// The pair is written and read atomically: a record with one token present and
// the other absent is treated as no tokens at all.
//
// Backends: [MemoryStorage] for single-process use and tests,
// [RedisStorage] for console deployments where several processes share one
// session.
package token
