package paging

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

// TestHistogramBasic tests basic histogram operations
func TestHistogramBasic(t *testing.T) {
	h := NewHistogram(100)

	samples := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	for _, s := range samples {
		h.Record(s)
	}

	if h.Count() != 10 {
		t.Errorf("Expected count 10, got %d", h.Count())
	}

	if h.Max() != 100 {
		t.Errorf("Expected max 100, got %.2f", h.Max())
	}

	mean := h.Mean()
	if math.Abs(mean-55.0) > 0.1 {
		t.Errorf("Expected mean 55.00, got %.2f", mean)
	}
}

// TestHistogramPercentiles tests percentile calculations
func TestHistogramPercentiles(t *testing.T) {
	h := NewHistogram(1000)

	for i := 1; i <= 100; i++ {
		h.Record(float64(i))
	}

	tests := []struct {
		percentile float64
		expected   float64
		tolerance  float64
	}{
		{50, 50.5, 0.01},
		{95, 95.05, 0.01},
		{0, 1.0, 0.01},
		{100, 100.0, 0.01},
	}

	for _, test := range tests {
		result := h.Percentile(test.percentile)
		if math.Abs(result-test.expected) > test.tolerance {
			t.Errorf("P%.1f: expected %.2f, got %.2f", test.percentile, test.expected, result)
		}
	}
}

// TestHistogramCapacity tests that the oldest samples are dropped at capacity
func TestHistogramCapacity(t *testing.T) {
	h := NewHistogram(5)

	for i := 1; i <= 10; i++ {
		h.Record(float64(i))
	}

	if h.Count() != 5 {
		t.Errorf("Expected count 5 (at capacity), got %d", h.Count())
	}
	if h.Percentile(0) != 6 {
		t.Errorf("Expected oldest retained sample 6, got %.2f", h.Percentile(0))
	}
}

func TestHistogramEmptyAndReset(t *testing.T) {
	h := NewHistogram(0)

	if h.Percentile(50) != 0 || h.Mean() != 0 || h.Max() != 0 {
		t.Error("Expected zero statistics for an empty histogram")
	}

	h.Record(4)
	h.Reset()
	if snap := h.Snapshot(); snap.Count != 0 || snap.Max != 0 {
		t.Errorf("Expected empty snapshot after reset, got %+v", snap)
	}
}

func TestMetricsCreation(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("Metrics should not be nil")
	}

	if m.GetHits() != 0 || m.GetFaults() != 0 {
		t.Errorf("Expected zero counters, got %d hits and %d faults", m.GetHits(), m.GetFaults())
	}

	if m.GetHitRatio() != 0 {
		t.Errorf("Expected hit ratio 0 with no accesses, got %.2f", m.GetHitRatio())
	}
}

func TestAccessMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordHit()
	m.RecordHit()
	m.RecordFault(false)
	m.RecordFault(true)

	if m.GetHits() != 2 {
		t.Errorf("Expected 2 hits, got %d", m.GetHits())
	}
	if m.GetFaults() != 2 {
		t.Errorf("Expected 2 faults, got %d", m.GetFaults())
	}
	if m.GetFills() != 1 || m.GetEvictions() != 1 {
		t.Errorf("Expected 1 fill and 1 eviction, got %d and %d", m.GetFills(), m.GetEvictions())
	}

	if ratio := m.GetHitRatio(); math.Abs(ratio-0.5) > 0.001 {
		t.Errorf("Expected hit ratio 0.50, got %.2f", ratio)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordHit()
	m.RecordFault(true)
	m.RecordResidency(3)

	m.Reset()

	if m.GetHits() != 0 || m.GetFaults() != 0 || m.GetEvictions() != 0 {
		t.Error("Expected counters to be zero after reset")
	}
	if m.GetResidency().Count != 0 {
		t.Error("Expected residency histogram to be empty after reset")
	}
}

func TestMetricsLogging(t *testing.T) {
	m := NewMetrics()
	m.RecordHit()
	m.RecordFault(true)
	m.RecordResidency(2)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	m.LogMetrics(logger)

	out := buf.String()
	for _, want := range []string{
		"Simulation Metrics",
		"accesses.hits=1",
		"accesses.faults=1",
		"frames.evictions=1",
		"residency.count=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in log output: %s", want, out)
		}
	}
}

func TestRunSummaryLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("done", "summary", RunSummary{Algorithm: OPT, Frames: 3, Accesses: 5, Hits: 2, Faults: 3})

	out := buf.String()
	if !strings.Contains(out, "summary.algorithm=OPT") || !strings.Contains(out, "summary.faults=3") {
		t.Errorf("Unexpected summary log output: %s", out)
	}
}
