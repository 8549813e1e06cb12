// Package policy makes role-based authorization decisions for the reseller
// console: role membership, default landing routes, and per-route access.
//
// Every function in this package is a total, side-effect-free function over a
// possibly-nil *User and static route tables. Absent or malformed input always
// degrades to the least-privileged answer; nothing here panics or performs I/O,
// so callers may invoke these functions repeatedly and concurrently.
//
// The package has no dependency on the rest of the module and is imported by
// the root package and by HTTP route guards.
package policy
