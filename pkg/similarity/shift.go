package similarity

import "math"

// shiftCandidates returns the mass shifts to test when matching peaks of the
// first spectrum against the second. The unshifted hypothesis (0) is always
// present. When shifts are allowed and the precursor mass difference is at
// least the fragment tolerance, one extra shift massDiff/c is added per
// charge state c = 1..max(chargeA, 1); a below-tolerance difference cannot
// explain any peak offset, so the set stays at size 1 in that case.
func shiftCandidates(a, b view, tolerance float64, allowShift bool) []float64 {
	// Account for unknown precursor charge (default: 1).
	charge := a.precursorCharge
	if charge < 1 {
		charge = 1
	}
	massDiff := (a.precursorMZ - b.precursorMZ) * float64(charge)

	shifts := []float64{0}
	if !allowShift || math.Abs(massDiff) < tolerance {
		return shifts
	}
	for c := 1; c <= charge; c++ {
		shifts = append(shifts, massDiff/float64(c))
	}
	return shifts
}
