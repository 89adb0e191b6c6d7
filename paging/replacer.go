package paging

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:generate mockgen -source replacer.go -destination replacer_mocks.go -package paging

// Algorithm names a page replacement policy
type Algorithm string

const (
	FIFO Algorithm = "FIFO"
	LRU  Algorithm = "LRU"
	MRU  Algorithm = "MRU"
	OPT  Algorithm = "OPT"
)

// AccessKind tells a replacer whether an access loaded the page or found it resident
type AccessKind uint8

const (
	AccessFill AccessKind = iota // page placed in a free or reclaimed frame
	AccessHit                    // page was already resident
)

func (k AccessKind) String() string {
	if k == AccessHit {
		return "hit"
	}
	return "fill"
}

// Replacer interface for page replacement policies
type Replacer interface {
	// Victim selects the occupied frame to reclaim for accessed. It is only
	// called when every frame is occupied. refs is the full reference
	// sequence and lookahead the position right after the current access.
	Victim(view FrameView, accessed PageID, refs []PageID, lookahead int) int

	// RecordAccess is called on every hit and every fill of a frame
	RecordAccess(frame int, pageID PageID, kind AccessKind)

	// Reset clears all bookkeeping for a new run
	Reset()

	// Algorithm returns the policy implemented by this replacer
	Algorithm() Algorithm
}

var replacerFactories = map[Algorithm]func(capacity int) Replacer{
	FIFO: func(capacity int) Replacer { return NewFIFOReplacer(capacity) },
	LRU:  func(capacity int) Replacer { return NewLRUReplacer(capacity) },
	MRU:  func(capacity int) Replacer { return NewMRUReplacer(capacity) },
	OPT:  func(int) Replacer { return NewOPTReplacer() },
}

// Algorithms returns every supported policy in canonical order
func Algorithms() []Algorithm {
	algs := maps.Keys(replacerFactories)
	slices.Sort(algs)
	return algs
}

// ParseAlgorithm resolves a policy name, ignoring case. "OPTIMAL" is
// accepted for OPT. Unknown names are an error; there is no default.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToUpper(strings.TrimSpace(name)))
	if alg == "OPTIMAL" {
		alg = OPT
	}
	if _, ok := replacerFactories[alg]; !ok {
		return "", ErrPolicyUnknown("ParseAlgorithm", name)
	}
	return alg, nil
}

// NewReplacer creates a replacer for the given algorithm
func NewReplacer(alg Algorithm, capacity int) (Replacer, error) {
	factory, ok := replacerFactories[alg]
	if !ok {
		return nil, ErrPolicyUnknown("NewReplacer", string(alg))
	}
	return factory(capacity), nil
}
