// Package audit carries session lifecycle events (login, logout, refresh,
// bootstrap, forced expiry) from the controller to a consumer-supplied sink
// without blocking the session path. Delivery is asynchronous and lossy under
// backpressure when configured so; drops are counted, never silent.
package audit
