package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCountsDeletionOutcomes(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordDeletionOutcome("success")
	c.RecordDeletionOutcome("success")
	c.RecordDeletionOutcome("not_found")

	if got := testutil.ToFloat64(c.deletions.WithLabelValues("success")); got != 2 {
		t.Errorf("expected 2 success deletions, got %v", got)
	}
	if got := testutil.ToFloat64(c.deletions.WithLabelValues("not_found")); got != 1 {
		t.Errorf("expected 1 not_found deletion, got %v", got)
	}
}

func TestCollectorCountsReaperSweeps(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordReaperSweep(0)
	c.RecordReaperSweep(3)

	if got := testutil.ToFloat64(c.reaperSweeps); got != 2 {
		t.Errorf("expected 2 sweeps, got %v", got)
	}
	if got := testutil.ToFloat64(c.reaperResumed); got != 3 {
		t.Errorf("expected 3 resumed deletions, got %v", got)
	}
}
