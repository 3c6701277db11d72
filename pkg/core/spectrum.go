// Package core provides the spectrum model and validation logic shared by
// the speccmp readers, filters, library store and similarity engine.
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Spectrum represents a single MS/MS spectrum with associated metadata.
type Spectrum struct {
	// Required fields
	Name            string  // Compound or scan identifier
	PrecursorMZ     float64 // Precursor m/z
	PrecursorCharge int     // Precursor charge state (0 = unknown)
	Peaks           []Peak  // Fragment peaks, sorted by m/z ascending

	// Optional metadata
	RetentionTime   *float64 // RT in seconds
	CollisionEnergy *float64 // Normalized collision energy

	// Internal tracking
	SourceFile   string
	SourceFormat string // msp, mgf, sqlite
}

// Peak represents a single m/z, intensity pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// ValidationError represents an error found during spectrum validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a spectrum meets all requirements for matching.
func (s *Spectrum) Validate() error {
	var errs []string

	if s.PrecursorMZ <= 0 {
		errs = append(errs, "precursor m/z must be positive")
	}
	if s.PrecursorCharge < 0 {
		errs = append(errs, "precursor charge must be non-negative")
	}
	if len(s.Peaks) == 0 {
		errs = append(errs, "at least one peak is required")
	}

	for i, peak := range s.Peaks {
		if math.IsNaN(peak.MZ) || math.IsInf(peak.MZ, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid m/z", i))
		}
		if math.IsNaN(peak.Intensity) || math.IsInf(peak.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid intensity", i))
		}
		if peak.MZ <= 0 {
			errs = append(errs, fmt.Sprintf("peak %d m/z must be positive", i))
		}
		if peak.Intensity < 0 {
			errs = append(errs, fmt.Sprintf("peak %d intensity must be non-negative", i))
		}
	}

	// The matchers rely on ascending m/z order.
	if !s.ArePeaksSorted() {
		errs = append(errs, "peaks must be sorted by m/z")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Spectrum",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// ArePeaksSorted checks if peaks are sorted by m/z in ascending order.
func (s *Spectrum) ArePeaksSorted() bool {
	for i := 1; i < len(s.Peaks); i++ {
		if s.Peaks[i].MZ < s.Peaks[i-1].MZ {
			return false
		}
	}
	return true
}

// SortPeaks sorts peaks by m/z in ascending order.
func (s *Spectrum) SortPeaks() {
	sort.Slice(s.Peaks, func(i, j int) bool {
		return s.Peaks[i].MZ < s.Peaks[j].MZ
	})
}

// BasePeakIntensity returns the intensity of the most intense peak,
// or 0 for an empty spectrum.
func (s *Spectrum) BasePeakIntensity() float64 {
	max := 0.0
	for _, peak := range s.Peaks {
		if peak.Intensity > max {
			max = peak.Intensity
		}
	}
	return max
}

// Label returns the spectrum label in format "Name/Charge".
func (s *Spectrum) Label() string {
	return fmt.Sprintf("%s/%d", s.Name, s.PrecursorCharge)
}
