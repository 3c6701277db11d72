// Package filter provides peak filtering and transformation functions used
// to preprocess spectra before library conversion or similarity scoring.
package filter

import (
	"math"
	"sort"

	"github.com/svandyck/speccmp/pkg/core"
)

// Config holds filtering configuration. Filters apply in declaration order.
type Config struct {
	MinMZ              float64 // Keep only peaks at or above this m/z (0 = no limit)
	MaxMZ              float64 // Keep only peaks at or below this m/z (0 = no limit)
	RemovePrecursorTol float64 // Remove peaks within this m/z of the precursor (0 = keep)
	IntensityCutoff    float64 // Keep only peaks above this % of base peak (0 = no cutoff)
	TopN               int     // Keep only top N most intense peaks (0 = no limit)
}

// Apply applies all configured filters to a spectrum.
func (c *Config) Apply(spec *core.Spectrum) {
	if c.MinMZ > 0 || c.MaxMZ > 0 {
		c.filterByMZRange(spec)
	}

	if c.RemovePrecursorTol > 0 {
		c.removePrecursorPeaks(spec)
	}

	if c.IntensityCutoff > 0 {
		c.filterByIntensity(spec)
	}

	if c.TopN > 0 {
		c.filterTopN(spec)
	}

	// Ensure peaks are sorted after all filtering.
	spec.SortPeaks()
}

// filterByMZRange keeps only peaks inside the configured m/z window.
func (c *Config) filterByMZRange(spec *core.Spectrum) {
	var filtered []core.Peak
	for _, peak := range spec.Peaks {
		if c.MinMZ > 0 && peak.MZ < c.MinMZ {
			continue
		}
		if c.MaxMZ > 0 && peak.MZ > c.MaxMZ {
			continue
		}
		filtered = append(filtered, peak)
	}
	spec.Peaks = filtered
}

// removePrecursorPeaks removes residual precursor signal: peaks whose m/z
// falls within the tolerance of the precursor m/z.
func (c *Config) removePrecursorPeaks(spec *core.Spectrum) {
	var filtered []core.Peak
	for _, peak := range spec.Peaks {
		if math.Abs(peak.MZ-spec.PrecursorMZ) <= c.RemovePrecursorTol {
			continue
		}
		filtered = append(filtered, peak)
	}
	spec.Peaks = filtered
}

// filterByIntensity removes peaks below the intensity cutoff percentage.
func (c *Config) filterByIntensity(spec *core.Spectrum) {
	if len(spec.Peaks) == 0 {
		return
	}

	threshold := (c.IntensityCutoff / 100.0) * spec.BasePeakIntensity()

	var filtered []core.Peak
	for _, peak := range spec.Peaks {
		if peak.Intensity >= threshold {
			filtered = append(filtered, peak)
		}
	}

	spec.Peaks = filtered
}

// filterTopN keeps only the N most intense peaks.
func (c *Config) filterTopN(spec *core.Spectrum) {
	if len(spec.Peaks) <= c.TopN {
		return
	}

	// Create a copy and sort by intensity descending.
	peaks := make([]core.Peak, len(spec.Peaks))
	copy(peaks, spec.Peaks)

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].Intensity > peaks[j].Intensity
	})

	spec.Peaks = peaks[:c.TopN]
}

// RemoveZeroIntensityPeaks removes peaks with zero or negative intensity.
func RemoveZeroIntensityPeaks(spec *core.Spectrum) {
	var filtered []core.Peak
	for _, peak := range spec.Peaks {
		if peak.Intensity > 0 {
			filtered = append(filtered, peak)
		}
	}
	spec.Peaks = filtered
}
