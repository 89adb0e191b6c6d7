package paging

import (
	"log/slog"

	"golang.org/x/exp/slices"
)

// State is the lifecycle state of a simulator
type State uint8

const (
	StateReady     State = iota // configured, no access made
	StateRunning                // some accesses consumed
	StateCompleted              // every access consumed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// SimulationConfig holds the primitive parameters of one run
type SimulationConfig struct {
	Frames    int
	Pages     int // size of the page universe, ids are in [0, Pages)
	Algorithm Algorithm
	Sequence  []PageID
}

// Validate checks the configuration before any step runs
func (c SimulationConfig) Validate() error {
	const op = "SimulationConfig.Validate"

	if c.Frames <= 0 {
		return ErrInvalidFrameCount(op, c.Frames)
	}
	if c.Pages <= 0 {
		return ErrInvalidPageCount(op, c.Pages)
	}
	if _, ok := replacerFactories[c.Algorithm]; !ok {
		return ErrPolicyUnknown(op, string(c.Algorithm))
	}
	if len(c.Sequence) == 0 {
		return ErrEmptySequence(op)
	}
	for _, id := range c.Sequence {
		if id < 0 || int(id) >= c.Pages {
			return ErrPageIDOutOfRange(op, id, c.Pages)
		}
	}
	return nil
}

// StepRecord describes the outcome of a single access
type StepRecord struct {
	Index   int      `json:"index"`   // position of the access in the sequence
	Page    PageID   `json:"page"`    // page accessed
	Hit     bool     `json:"hit"`     // false on a page fault
	Frame   int      `json:"frame"`   // frame holding the page after the access
	Evicted PageID   `json:"evicted"` // NoPage unless a resident page was reclaimed
	Frames  []PageID `json:"frames"`  // frame contents after the access
}

// HasEviction reports whether the access reclaimed a resident page
func (r StepRecord) HasEviction() bool {
	return r.Evicted != NoPage
}

// Simulator replays a fixed reference sequence through a frame store under
// one replacement policy. A simulator must not be driven from two
// goroutines at once; separate simulators share nothing.
type Simulator struct {
	config    SimulationConfig
	pageTable *PageTable
	frames    *FrameStore
	replacer  Replacer
	metrics   *Metrics
	logger    *slog.Logger

	loadedAt []int // position at which each resident page was loaded
	history  []StepRecord
	position int
	hits     int
	faults   int
	state    State
}

// NewSimulator validates cfg and creates a simulator in StateReady
func NewSimulator(cfg SimulationConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	replacer, err := NewReplacer(cfg.Algorithm, cfg.Frames)
	if err != nil {
		return nil, err
	}

	return newSimulator(cfg, replacer)
}

// NewSimulatorWithReplacer creates a simulator around a caller supplied
// replacer; cfg.Algorithm is taken from the replacer.
func NewSimulatorWithReplacer(cfg SimulationConfig, replacer Replacer) (*Simulator, error) {
	cfg.Algorithm = replacer.Algorithm()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSimulator(cfg, replacer)
}

func newSimulator(cfg SimulationConfig, replacer Replacer) (*Simulator, error) {
	cfg.Sequence = slices.Clone(cfg.Sequence)

	pageTable, err := NewPageTable(cfg.Pages)
	if err != nil {
		return nil, err
	}

	frames, err := NewFrameStore(cfg.Frames, pageTable, replacer)
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		config:    cfg,
		pageTable: pageTable,
		frames:    frames,
		replacer:  replacer,
		metrics:   NewMetrics(),
		logger:    slog.Default(),
		loadedAt:  make([]int, cfg.Pages),
		history:   make([]StepRecord, 0, len(cfg.Sequence)),
	}
	replacer.Reset()

	return sim, nil
}

// SetLogger sets the logger used for per-step debug output
func (s *Simulator) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
}

// Step serves the next access of the sequence
func (s *Simulator) Step() (StepRecord, error) {
	if s.state == StateCompleted {
		return StepRecord{}, ErrExhausted("Simulator.Step", len(s.config.Sequence))
	}

	index := s.position
	pageID := s.config.Sequence[index]

	page, err := s.pageTable.Page(pageID)
	if err != nil {
		return StepRecord{}, err
	}

	record := StepRecord{
		Index:   index,
		Page:    pageID,
		Evicted: NoPage,
	}

	if page.InRAM {
		s.frames.NotifyHit(page.FrameIndex, pageID)
		s.hits++
		s.metrics.RecordHit()
		record.Hit = true
		record.Frame = page.FrameIndex
	} else {
		frame, evicted, err := s.frames.Place(pageID, s.config.Sequence, index+1)
		if err != nil {
			return StepRecord{}, err
		}
		s.faults++
		s.metrics.RecordFault(evicted != NoPage)
		if evicted != NoPage {
			s.metrics.RecordResidency(index - s.loadedAt[evicted])
		}
		s.loadedAt[pageID] = index
		record.Frame = frame
		record.Evicted = evicted
	}

	s.position++
	if s.position == len(s.config.Sequence) {
		s.state = StateCompleted
	} else {
		s.state = StateRunning
	}

	record.Frames = s.frames.Snapshot()
	s.history = append(s.history, record)

	s.logger.Debug("access",
		slog.String("algorithm", string(s.config.Algorithm)),
		slog.Int("index", record.Index),
		slog.Int("page", int(record.Page)),
		slog.Bool("hit", record.Hit),
		slog.Int("evicted", int(record.Evicted)),
		slog.Any("frames", record.Frames),
	)

	return record, nil
}

// RunToCompletion steps until the sequence is exhausted and returns the
// records produced by this call
func (s *Simulator) RunToCompletion() ([]StepRecord, error) {
	records := make([]StepRecord, 0, s.Remaining())
	for s.state != StateCompleted {
		record, err := s.Step()
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Reset returns the simulator to StateReady, clearing counters, frames,
// page residency and replacer state
func (s *Simulator) Reset() {
	s.frames.reset()
	s.metrics.Reset()
	s.history = s.history[:0]
	s.position = 0
	s.hits = 0
	s.faults = 0
	s.state = StateReady
}

// State returns the lifecycle state
func (s *Simulator) State() State {
	return s.state
}

// Algorithm returns the active policy
func (s *Simulator) Algorithm() Algorithm {
	return s.config.Algorithm
}

// Position returns the number of accesses consumed
func (s *Simulator) Position() int {
	return s.position
}

// Len returns the length of the reference sequence
func (s *Simulator) Len() int {
	return len(s.config.Sequence)
}

// Remaining returns the number of accesses not yet served
func (s *Simulator) Remaining() int {
	return len(s.config.Sequence) - s.position
}

func (s *Simulator) Hits() int {
	return s.hits
}

func (s *Simulator) Faults() int {
	return s.faults
}

// Frames returns a copy of the current frame contents
func (s *Simulator) Frames() []PageID {
	return s.frames.Snapshot()
}

// PageTable returns the page table; its records are read-only copies
func (s *Simulator) PageTable() *PageTable {
	return s.pageTable
}

// Metrics returns the run metrics
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Summary returns the counters of the accesses served so far
func (s *Simulator) Summary() RunSummary {
	summary := RunSummary{
		Algorithm: s.config.Algorithm,
		Frames:    s.config.Frames,
		Accesses:  s.position,
		Hits:      s.hits,
		Faults:    s.faults,
		Evictions: int(s.metrics.GetEvictions()),
	}
	if s.position > 0 {
		summary.HitRatio = float64(s.hits) / float64(s.position)
	}
	return summary
}

// Trace returns the configuration and every step served since the last reset
func (s *Simulator) Trace() *Trace {
	steps := make([]StepRecord, len(s.history))
	copy(steps, s.history)
	return &Trace{
		Algorithm: s.config.Algorithm,
		Frames:    s.config.Frames,
		Pages:     s.config.Pages,
		Sequence:  slices.Clone(s.config.Sequence),
		Steps:     steps,
	}
}
