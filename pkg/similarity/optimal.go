package similarity

import "math"

// matchOptimal finds the globally optimal non-conflicting match set. It
// builds a dense pairwise weight matrix where each cell holds the intensity
// product under the best matching shift (unlike the greedy sweep, which
// records one candidate per shift), solves a maximum-weight bipartite
// assignment over it and drops zero-weight assignments, which an assignment
// may include only to complete a perfect matching.
//
// Complexity: O(N_A·N_B·K) to build the matrix plus the solver cost, so
// callers with very dense spectra should prefer matchGreedy.
func matchOptimal(a, b view, tolerance float64, shifts []float64) (float64, []Match) {
	n, m := len(a.mz), len(b.mz)
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			for _, shift := range shifts {
				if math.Abs(a.mz[i]-(b.mz[j]+shift)) <= tolerance {
					if w := a.intensity[i] * b.intensity[j]; w > cost[i][j] {
						cost[i][j] = w
					}
				}
			}
		}
	}

	score := 0.0
	var matches []Match
	for _, p := range solveAssignment(cost) {
		if w := cost[p.row][p.col]; w > 0 {
			score += w
			matches = append(matches, Match{A: p.row, B: p.col})
		}
	}
	return score, matches
}
