package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPassMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPassMetrics(reg)
	m.ObserveDuration("ok", 250*time.Millisecond)
	m.IncUpdateEmitted("split")
	m.IncUnmatched("ambiguous")
	m.IncStaleSkip()
	m.IncPrecisionRisk()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather error: %v", err)
	}
	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	for _, name := range []string{
		"pass_duration_seconds",
		"updates_emitted_total",
		"charges_unmatched_total",
		"stale_skips_total",
		"precision_risk_orders_total",
	} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("expected metric family %s, have %v", name, fmt.Sprint(families))
		}
	}

	unmatched := byName["charges_unmatched_total"].GetMetric()
	if len(unmatched) != 1 || unmatched[0].GetCounter().GetValue() != 1 {
		t.Fatalf("unexpected unmatched counter state: %v", unmatched)
	}
}

func TestPassMetricsNilSafe(t *testing.T) {
	var m *PassMetrics
	m.ObserveDuration("ok", time.Second)
	m.IncUpdateEmitted("retag")
	m.IncUnmatched("no_candidate")
	m.IncStaleSkip()
	m.IncPrecisionRisk()

	empty := NewPassMetrics(nil)
	empty.IncStaleSkip()
}
