package authkit

import "sync/atomic"

// MetricID identifies one counter in the in-process metrics system.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed logins.
	MetricLoginFailure
	// MetricLogout counts logouts.
	MetricLogout
	// MetricRefreshSuccess counts successful silent refreshes.
	MetricRefreshSuccess
	// MetricRefreshFailure counts failed silent refreshes.
	MetricRefreshFailure
	// MetricBootstrapAuthenticated counts bootstraps that restored a session.
	MetricBootstrapAuthenticated
	// MetricBootstrapUnauthenticated counts bootstraps that found no usable
	// session.
	MetricBootstrapUnauthenticated
	// MetricSessionExpired counts sessions force-expired by the periodic
	// check.
	MetricSessionExpired
	// MetricProfileUpdateSuccess counts successful profile round-trips.
	MetricProfileUpdateSuccess
	// MetricProfileUpdateFailure counts failed profile round-trips.
	MetricProfileUpdateFailure

	metricIDCount
)

// Metrics holds atomic counters. All operations are no-ops when disabled.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

func newMetrics(enabled bool) *Metrics {
	return &Metrics{enabled: enabled}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
