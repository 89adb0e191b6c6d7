package paging

import (
	"sync"

	"golang.org/x/exp/slices"
)

// PolicyResult is the outcome of one policy in a comparison
type PolicyResult struct {
	Algorithm Algorithm
	Summary   RunSummary
}

// RunAllPolicies runs sequence under every policy from a clean simulator each
// and returns the results ordered by ascending fault count. Equal counts keep
// the canonical FIFO, LRU, MRU, OPT order. pages is derived from the sequence.
func RunAllPolicies(sequence []PageID, frames int) ([]PolicyResult, error) {
	if len(sequence) == 0 {
		return nil, ErrEmptySequence("RunAllPolicies")
	}
	return RunAllPoliciesWithPages(sequence, frames, PagesFor(sequence))
}

// RunAllPoliciesWithPages is RunAllPolicies over an explicit page universe
func RunAllPoliciesWithPages(sequence []PageID, frames, pages int) ([]PolicyResult, error) {
	algorithms := Algorithms()

	sims := make([]*Simulator, len(algorithms))
	for i, alg := range algorithms {
		sim, err := NewSimulator(SimulationConfig{
			Frames:    frames,
			Pages:     pages,
			Algorithm: alg,
			Sequence:  sequence,
		})
		if err != nil {
			return nil, err
		}
		sims[i] = sim
	}

	// Simulators share no state, so each runs on its own goroutine
	results := make([]PolicyResult, len(sims))
	errs := make([]error, len(sims))
	var wg sync.WaitGroup
	for i, sim := range sims {
		wg.Add(1)
		go func(i int, sim *Simulator) {
			defer wg.Done()
			_, errs[i] = sim.RunToCompletion()
			results[i] = PolicyResult{Algorithm: sim.Algorithm(), Summary: sim.Summary()}
		}(i, sim)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(results, func(a, b PolicyResult) int {
		return a.Summary.Faults - b.Summary.Faults
	})

	return results, nil
}

// FaultCounts maps each policy in results to its fault count
func FaultCounts(results []PolicyResult) map[Algorithm]int {
	counts := make(map[Algorithm]int, len(results))
	for _, r := range results {
		counts[r.Algorithm] = r.Summary.Faults
	}
	return counts
}

// PagesFor returns the smallest page universe holding every id in sequence
func PagesFor(sequence []PageID) int {
	max := NoPage
	for _, id := range sequence {
		if id > max {
			max = id
		}
	}
	return int(max) + 1
}
