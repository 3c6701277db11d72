package similarity

import "math"

// assignmentPair records one row-to-column assignment.
type assignmentPair struct {
	row, col int
}

// solveAssignment computes a maximum-weight one-to-one assignment over a
// rectangular weight matrix using shortest augmenting paths with dual
// potentials (the Jonker-Volgenant variant of the Hungarian method, run on
// negated weights). Every row is assigned when rows <= cols; otherwise the
// matrix is solved transposed, so min(rows, cols) pairs are always returned,
// sorted by row.
//
// Complexity: O(min(n,m)^2 * max(n,m)).
func solveAssignment(weight [][]float64) []assignmentPair {
	n := len(weight)
	if n == 0 || len(weight[0]) == 0 {
		return nil
	}
	m := len(weight[0])

	if n > m {
		transposed := make([][]float64, m)
		for j := range transposed {
			transposed[j] = make([]float64, n)
			for i := 0; i < n; i++ {
				transposed[j][i] = weight[i][j]
			}
		}
		pairs := solveAssignment(transposed)
		for k := range pairs {
			pairs[k].row, pairs[k].col = pairs[k].col, pairs[k].row
		}
		sortPairsByRow(pairs)
		return pairs
	}

	// 1-indexed arrays with a virtual column 0; rowFor[j] is the row
	// currently assigned to column j (0 = free).
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	rowFor := make([]int, m+1)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		rowFor[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow the alternating tree until a free column is reached.
		for {
			used[j0] = true
			i0 := rowFor[j0]
			j1 := 0
			delta := math.Inf(1)
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				reduced := -weight[i0-1][j-1] - u[i0] - v[j]
				if reduced < minv[j] {
					minv[j] = reduced
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[rowFor[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowFor[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			rowFor[j0] = rowFor[j1]
			j0 = j1
		}
	}

	pairs := make([]assignmentPair, 0, n)
	for j := 1; j <= m; j++ {
		if rowFor[j] != 0 {
			pairs = append(pairs, assignmentPair{row: rowFor[j] - 1, col: j - 1})
		}
	}
	sortPairsByRow(pairs)
	return pairs
}

// sortPairsByRow orders assignments by row index (insertion sort; the pair
// count is min(n,m) and the input is nearly sorted already).
func sortPairsByRow(pairs []assignmentPair) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].row < pairs[j-1].row; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
}
