package similarity

import (
	"math"
	"sort"
)

// candidate is a tentative peak pair weighted by its intensity product.
type candidate struct {
	a, b   int
	weight float64
}

// matchGreedy finds all tolerance-window peak pairs across the shift
// candidates with a two-pointer sweep, then resolves conflicts by accepting
// candidates in descending weight order, each peak used at most once.
// Ties keep discovery order (A peak index ascending, then shift index),
// so output is deterministic. The sweep keeps one monotone cursor into B
// per shift and relies on both m/z slices being sorted ascending.
//
// Complexity: O(N·K + M log M), where K = len(shifts) and M is the number
// of raw candidates.
func matchGreedy(a, b view, tolerance float64, shifts []float64) (float64, []Match) {
	cursors := make([]int, len(shifts))
	var candidates []candidate

	for i, peakMZ := range a.mz {
		// Advance each cursor while there is an excessive mass difference.
		for s, shift := range shifts {
			for cursors[s] < len(b.mz)-1 && b.mz[cursors[s]]+shift < peakMZ-tolerance {
				cursors[s]++
			}
		}
		// Record every pair within the fragment tolerance window. A pair
		// explained by several shifts is recorded once per shift;
		// first-acceptance-wins below makes the duplicates benign.
		for s, shift := range shifts {
			for j := cursors[s]; j < len(b.mz) && math.Abs(peakMZ-(b.mz[j]+shift)) <= tolerance; j++ {
				candidates = append(candidates, candidate{
					a:      i,
					b:      j,
					weight: a.intensity[i] * b.intensity[j],
				})
			}
		}
	}

	if len(candidates) == 0 {
		return 0, nil
	}

	// Use the most prominent pairs first.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	usedA := make([]bool, len(a.mz))
	usedB := make([]bool, len(b.mz))
	score := 0.0
	var matches []Match
	for _, c := range candidates {
		if usedA[c.a] || usedB[c.b] {
			continue
		}
		score += c.weight
		matches = append(matches, Match{A: c.a, B: c.b})
		usedA[c.a] = true
		usedB[c.b] = true
	}

	return score, matches
}
