// Package prometheus renders authkit metrics in the Prometheus text
// exposition format, straight from the metrics snapshot with no registry
// dependency.
package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	authkit "github.com/esimdesk/authkit"
	"github.com/esimdesk/authkit/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() authkit.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter renders authkit metrics in Prometheus text exposition format.
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter that reads from the given
// [authkit.Controller].
func NewExporter(controller *authkit.Controller) *Exporter {
	return &Exporter{source: controller}
}

// NewExporterFromSource creates an exporter from a custom source.
func NewExporterFromSource(source metricsSource) *Exporter {
	return &Exporter{source: source}
}

// Handler returns an http.Handler that serves the metrics.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render writes the current counters in text exposition format.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.MetricsSnapshot()

	var b strings.Builder
	for _, def := range internaldefs.CounterDefs {
		writeCounter(&b, def, snapshot.Counters[def.ID])
	}
	writeCounter(&b, internaldefs.AuditDropped, e.source.AuditDropped())
	return b.String()
}

func writeCounter(b *strings.Builder, def internaldefs.CounterDef, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(def.Name)
	b.WriteString(" ")
	b.WriteString(def.Help)
	b.WriteString("\n# TYPE ")
	b.WriteString(def.Name)
	b.WriteString(" counter\n")
	b.WriteString(def.Name)
	b.WriteString(" ")
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteString("\n")
}
