package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authkit "github.com/esimdesk/authkit"
)

type fakeSource struct {
	snapshot authkit.MetricsSnapshot
	dropped  uint64
}

func (s *fakeSource) MetricsSnapshot() authkit.MetricsSnapshot { return s.snapshot }
func (s *fakeSource) AuditDropped() uint64                     { return s.dropped }

func TestRenderContainsAllCounters(t *testing.T) {
	src := &fakeSource{
		snapshot: authkit.MetricsSnapshot{
			Counters: map[authkit.MetricID]uint64{
				authkit.MetricLoginSuccess:   3,
				authkit.MetricRefreshFailure: 1,
			},
		},
		dropped: 2,
	}

	out := NewExporterFromSource(src).Render()

	for _, want := range []string{
		"authkit_login_success_total 3",
		"authkit_refresh_failure_total 1",
		"authkit_logout_total 0",
		"authkit_session_expired_total 0",
		"authkit_audit_dropped_total 2",
		"# TYPE authkit_login_success_total counter",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}

func TestHandlerServesTextFormat(t *testing.T) {
	src := &fakeSource{snapshot: authkit.MetricsSnapshot{Counters: map[authkit.MetricID]uint64{}}}
	rec := httptest.NewRecorder()
	NewExporterFromSource(src).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "authkit_login_success_total") {
		t.Fatal("body missing counter output")
	}
}

func TestNilExporterRendersEmpty(t *testing.T) {
	var e *Exporter
	if out := e.Render(); out != "" {
		t.Fatalf("nil exporter rendered %q", out)
	}
}
