// Package similarity computes similarity scores between pairs of MS/MS
// spectra by matching their fragment peaks. Five measures are provided:
// cosine, modified cosine (optimal or greedy peak assignment) and their
// neutral-loss counterparts. All functions are pure and safe for concurrent
// use; each call normalizes its inputs into private views before matching.
package similarity

import (
	"errors"
	"math"
	"sort"

	"github.com/svandyck/speccmp/pkg/core"
)

var (
	// ErrInvalidTolerance is returned when the fragment m/z tolerance is
	// not strictly positive.
	ErrInvalidTolerance = errors.New("similarity: fragment tolerance must be positive")

	// ErrUnsortedSpectrum is returned when a spectrum's peaks are not
	// sorted by m/z in ascending order, a precondition of the matchers.
	ErrUnsortedSpectrum = errors.New("similarity: peaks must be sorted by m/z ascending")
)

// Match pairs a peak index from the first spectrum with a peak index from
// the second spectrum. Each index appears in at most one match.
type Match struct {
	A int
	B int
}

// view is the engine-facing snapshot of a spectrum: ascending m/z values
// and L2-normalized intensities. Views are built once per call and never
// mutated afterwards.
type view struct {
	precursorMZ     float64
	precursorCharge int
	mz              []float64
	intensity       []float64
}

// newView copies a spectrum's peaks into a normalized view. The second
// return value is false for degenerate inputs (no peaks, or zero intensity
// norm), which score 0 by policy instead of propagating NaN.
func newView(s *core.Spectrum) (view, bool, error) {
	n := len(s.Peaks)
	mz := make([]float64, n)
	intensity := make([]float64, n)

	norm := 0.0
	for i, peak := range s.Peaks {
		if i > 0 && peak.MZ < s.Peaks[i-1].MZ {
			return view{}, false, ErrUnsortedSpectrum
		}
		mz[i] = peak.MZ
		intensity[i] = peak.Intensity
		norm += peak.Intensity * peak.Intensity
	}
	if n == 0 || norm == 0 {
		return view{}, false, nil
	}

	norm = math.Sqrt(norm)
	for i := range intensity {
		intensity[i] /= norm
	}

	return view{
		precursorMZ:     s.PrecursorMZ,
		precursorCharge: s.PrecursorCharge,
		mz:              mz,
		intensity:       intensity,
	}, true, nil
}

// toNeutralLoss remaps each fragment m/z to the mass lost from the precursor
// (precursorMz - mz) and re-sorts the peaks ascending, which the matchers
// require. The returned permutation maps remapped peak positions back to the
// caller's original peak indexes.
func toNeutralLoss(v view) (view, []int) {
	n := len(v.mz)
	order := make([]int, n)
	losses := make([]float64, n)
	for i, mz := range v.mz {
		order[i] = i
		losses[i] = v.precursorMZ - mz
	}
	sort.SliceStable(order, func(i, j int) bool {
		return losses[order[i]] < losses[order[j]]
	})

	mz := make([]float64, n)
	intensity := make([]float64, n)
	for k, idx := range order {
		mz[k] = losses[idx]
		intensity[k] = v.intensity[idx]
	}

	return view{
		precursorMZ:     v.precursorMZ,
		precursorCharge: v.precursorCharge,
		mz:              mz,
		intensity:       intensity,
	}, order
}
