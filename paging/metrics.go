package paging

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks a distribution of samples with percentile support
type Histogram struct {
	samples []float64
	mu      sync.RWMutex
	maxSize int  // Maximum samples to retain
	sorted  bool // Track if samples are sorted
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
		sorted:  true,
	}
}

// Record adds a sample
func (h *Histogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// If at capacity, drop the oldest sample
	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, v)
	h.sorted = false
}

// Percentile calculates the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	if !h.sorted {
		sort.Float64s(h.samples)
		h.sorted = true
	}

	rank := (p / 100.0) * float64(len(h.samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return h.samples[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return h.samples[lower]*(1-weight) + h.samples[upper]*weight
}

// Mean calculates the average sample
func (h *Histogram) Mean() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Max returns the largest sample
func (h *Histogram) Max() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	max := 0.0
	for i, v := range h.samples {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
	h.sorted = true
}

// HistogramSnapshot holds percentile statistics at a point in time
type HistogramSnapshot struct {
	Count int
	Max   float64
	Mean  float64
	P50   float64
	P95   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
	}
}

// Metrics tracks the counters of one simulator. Counters are atomic so an
// auto-play observer may read them while the run advances.
type Metrics struct {
	hits      atomic.Uint64
	faults    atomic.Uint64
	fills     atomic.Uint64 // faults served by a free frame
	evictions atomic.Uint64

	// Accesses an evicted page spent resident, from its load to its eviction
	residency *Histogram

	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		residency: NewHistogram(10000),
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordHit() {
	m.hits.Add(1)
}

func (m *Metrics) RecordFault(evicted bool) {
	m.faults.Add(1)
	if evicted {
		m.evictions.Add(1)
	} else {
		m.fills.Add(1)
	}
}

// RecordResidency records how many accesses an evicted page stayed loaded
func (m *Metrics) RecordResidency(accesses int) {
	m.residency.Record(float64(accesses))
}

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetFills() uint64 {
	return m.fills.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

// GetHitRatio returns hits / accesses, or 0 before the first access
func (m *Metrics) GetHitRatio() float64 {
	hits := m.hits.Load()
	total := hits + m.faults.Load()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// GetResidency returns the residency distribution of evicted pages
func (m *Metrics) GetResidency() HistogramSnapshot {
	return m.residency.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	residency := m.GetResidency()

	logger.Info("Simulation Metrics",
		slog.Group("accesses",
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Float64("hit_ratio", m.GetHitRatio()),
		),
		slog.Group("frames",
			slog.Uint64("fills", m.GetFills()),
			slog.Uint64("evictions", m.GetEvictions()),
		),
		slog.Group("residency",
			slog.Int("count", residency.Count),
			slog.Float64("mean", residency.Mean),
			slog.Float64("p50", residency.P50),
			slog.Float64("p95", residency.P95),
			slog.Float64("max", residency.Max),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.hits.Store(0)
	m.faults.Store(0)
	m.fills.Store(0)
	m.evictions.Store(0)
	m.residency.Reset()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

// RunSummary is the outcome of a run, or of the part executed so far
type RunSummary struct {
	Algorithm Algorithm `json:"algorithm"`
	Frames    int       `json:"frames"`
	Accesses  int       `json:"accesses"`
	Hits      int       `json:"hits"`
	Faults    int       `json:"faults"`
	Evictions int       `json:"evictions"`
	HitRatio  float64   `json:"hit_ratio"`
}

// LogValue implements slog.LogValuer
func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("algorithm", string(s.Algorithm)),
		slog.Int("frames", s.Frames),
		slog.Int("accesses", s.Accesses),
		slog.Int("hits", s.Hits),
		slog.Int("faults", s.Faults),
		slog.Int("evictions", s.Evictions),
		slog.Float64("hit_ratio", s.HitRatio),
	)
}
