package similarity

import "github.com/svandyck/speccmp/pkg/core"

// matcher selects the peak matching strategy for one comparison.
type matcher func(a, b view, tolerance float64, shifts []float64) (float64, []Match)

// Cosine computes the cosine similarity between the given spectra: peaks are
// matched within the fragment m/z tolerance with no shift applied, using
// greedy conflict resolution. The score lies in [0, 1] and each returned
// match pairs a peak index from the first spectrum with one from the second.
func Cosine(a, b *core.Spectrum, fragmentTolerance float64) (float64, []Match, error) {
	return compare(a, b, fragmentTolerance, false, matchGreedy)
}

// ModifiedCosine computes the modified cosine similarity between the given
// spectra: peaks may additionally match under precursor-mass-difference
// shifts, and the match set is the exact maximum-weight bipartite assignment.
func ModifiedCosine(a, b *core.Spectrum, fragmentTolerance float64) (float64, []Match, error) {
	return compare(a, b, fragmentTolerance, true, matchOptimal)
}

// ModifiedCosineGreedy computes the modified cosine similarity using the
// fast greedy matcher instead of an optimal assignment. Its score never
// exceeds the one from ModifiedCosine on the same inputs.
func ModifiedCosineGreedy(a, b *core.Spectrum, fragmentTolerance float64) (float64, []Match, error) {
	return compare(a, b, fragmentTolerance, true, matchGreedy)
}

// NeutralLoss computes the neutral loss similarity between the given
// spectra: each fragment m/z is remapped to precursorMz - mz before greedy
// cosine matching. Returned indexes refer to the caller's original peaks.
func NeutralLoss(a, b *core.Spectrum, fragmentTolerance float64) (float64, []Match, error) {
	return compareNeutralLoss(a, b, fragmentTolerance, false)
}

// ModifiedNeutralLoss computes the neutral loss similarity with
// precursor-mass-difference shifts allowed.
func ModifiedNeutralLoss(a, b *core.Spectrum, fragmentTolerance float64) (float64, []Match, error) {
	return compareNeutralLoss(a, b, fragmentTolerance, true)
}

// compare normalizes both spectra into private views and runs one matcher.
// Degenerate inputs (no peaks or zero intensity norm) score 0.0 with no
// matches and no error.
func compare(a, b *core.Spectrum, tolerance float64, allowShift bool, match matcher) (float64, []Match, error) {
	viewA, viewB, ok, err := prepare(a, b, tolerance)
	if err != nil || !ok {
		return 0, nil, err
	}
	shifts := shiftCandidates(viewA, viewB, tolerance, allowShift)
	score, matches := match(viewA, viewB, tolerance, shifts)
	return score, matches, nil
}

// compareNeutralLoss remaps both views to neutral loss space, matches
// greedily and maps the match indexes back to the original peak order.
func compareNeutralLoss(a, b *core.Spectrum, tolerance float64, allowShift bool) (float64, []Match, error) {
	viewA, viewB, ok, err := prepare(a, b, tolerance)
	if err != nil || !ok {
		return 0, nil, err
	}
	viewA, permA := toNeutralLoss(viewA)
	viewB, permB := toNeutralLoss(viewB)
	shifts := shiftCandidates(viewA, viewB, tolerance, allowShift)
	score, matches := matchGreedy(viewA, viewB, tolerance, shifts)
	for k, m := range matches {
		matches[k] = Match{A: permA[m.A], B: permB[m.B]}
	}
	return score, matches, nil
}

// prepare validates the tolerance and builds both views. ok is false when
// either input is degenerate.
func prepare(a, b *core.Spectrum, tolerance float64) (view, view, bool, error) {
	if tolerance <= 0 {
		return view{}, view{}, false, ErrInvalidTolerance
	}
	viewA, okA, err := newView(a)
	if err != nil {
		return view{}, view{}, false, err
	}
	viewB, okB, err := newView(b)
	if err != nil {
		return view{}, view{}, false, err
	}
	return viewA, viewB, okA && okB, nil
}
