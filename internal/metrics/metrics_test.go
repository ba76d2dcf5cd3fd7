package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveCall("customerCreate", "ok", 20*time.Millisecond)
	m.ObserveCall("customerCreate", "ok", 30*time.Millisecond)
	m.ObserveCall("metafieldsSet", "user_error", time.Millisecond)
	m.IncRegistration("created")
	m.IncWarrantyEntry("duplicate")
	m.IncLookup("not_found")

	if got := testutil.ToFloat64(m.upstreamCalls.WithLabelValues("customerCreate", "ok")); got != 2 {
		t.Errorf("customerCreate ok calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.upstreamCalls.WithLabelValues("metafieldsSet", "user_error")); got != 1 {
		t.Errorf("metafieldsSet user_error calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.registrations.WithLabelValues("created")); got != 1 {
		t.Errorf("created registrations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.warrantyEntries.WithLabelValues("duplicate")); got != 1 {
		t.Errorf("duplicate warranty entries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.lookups.WithLabelValues("not_found")); got != 1 {
		t.Errorf("not_found lookups = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(registry, "shopify_graphql_call_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("histogram series = %d, want 2", count)
	}
}
