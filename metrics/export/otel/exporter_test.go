package otel

import (
	"context"
	"testing"

	authkit "github.com/esimdesk/authkit"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	snapshot authkit.MetricsSnapshot
	dropped  uint64
}

func (s *fakeSource) MetricsSnapshot() authkit.MetricsSnapshot { return s.snapshot }
func (s *fakeSource) AuditDropped() uint64                     { return s.dropped }

func TestExporterValidation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	if _, err := NewExporter(nil, &fakeSource{}); err != ErrNilMeter {
		t.Fatalf("nil meter err = %v, want ErrNilMeter", err)
	}
	if _, err := NewExporter(meter, nil); err != ErrNilSource {
		t.Fatalf("nil source err = %v, want ErrNilSource", err)
	}
}

func TestExporterObservesSnapshot(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("test")

	src := &fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters: map[authkit.MetricID]uint64{
				authkit.MetricLoginSuccess:   7,
				authkit.MetricRefreshSuccess: 4,
			},
		},
		dropped: 1,
	}

	exporter, err := NewExporter(meter, src)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	defer func() { _ = exporter.Close() }()

	var data metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &data); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	want := map[string]int64{
		"authkit_login_success_total":   7,
		"authkit_refresh_success_total": 4,
		"authkit_audit_dropped_total":   1,
		"authkit_logout_total":          0,
	}
	got := map[string]int64{}
	for _, scope := range data.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, point := range sum.DataPoints {
				got[m.Name] = point.Value
			}
		}
	}
	for name, value := range want {
		if got[name] != value {
			t.Fatalf("%s = %d, want %d (collected: %v)", name, got[name], value, got)
		}
	}
}

func TestExporterCloseUnregisters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	exporter, err := NewExporter(meter, &fakeSource{snapshot: authkit.MetricsSnapshot{Counters: map[authkit.MetricID]uint64{}}})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Closing twice is fine; the registration is only unregistered once by
	// the SDK.
	_ = exporter.Close()
}
