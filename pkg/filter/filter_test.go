package filter

import (
	"testing"

	"github.com/svandyck/speccmp/pkg/core"
)

func testSpectrum() *core.Spectrum {
	return &core.Spectrum{
		Name:            "test",
		PrecursorMZ:     400.0,
		PrecursorCharge: 1,
		Peaks: []core.Peak{
			{MZ: 50.0, Intensity: 10.0},
			{MZ: 120.0, Intensity: 500.0},
			{MZ: 250.0, Intensity: 80.0},
			{MZ: 399.995, Intensity: 300.0},
			{MZ: 450.0, Intensity: 40.0},
		},
	}
}

func TestFilterByMZRange(t *testing.T) {
	spec := testSpectrum()
	cfg := &Config{MinMZ: 100.0, MaxMZ: 400.0}
	cfg.Apply(spec)

	if len(spec.Peaks) != 3 {
		t.Fatalf("Expected 3 peaks, got %d", len(spec.Peaks))
	}
	for _, peak := range spec.Peaks {
		if peak.MZ < 100.0 || peak.MZ > 400.0 {
			t.Errorf("Peak m/z %.3f outside [100, 400]", peak.MZ)
		}
	}
}

func TestRemovePrecursorPeaks(t *testing.T) {
	spec := testSpectrum()
	cfg := &Config{RemovePrecursorTol: 0.01}
	cfg.Apply(spec)

	for _, peak := range spec.Peaks {
		if peak.MZ == 399.995 {
			t.Error("Expected precursor-adjacent peak to be removed")
		}
	}
	if len(spec.Peaks) != 4 {
		t.Errorf("Expected 4 peaks, got %d", len(spec.Peaks))
	}
}

func TestIntensityCutoff(t *testing.T) {
	spec := testSpectrum()
	cfg := &Config{IntensityCutoff: 10.0} // 10% of base peak (500) = 50
	cfg.Apply(spec)

	if len(spec.Peaks) != 3 {
		t.Fatalf("Expected 3 peaks, got %d", len(spec.Peaks))
	}
	for _, peak := range spec.Peaks {
		if peak.Intensity < 50.0 {
			t.Errorf("Peak intensity %.1f below cutoff", peak.Intensity)
		}
	}
}

func TestTopN(t *testing.T) {
	spec := testSpectrum()
	cfg := &Config{TopN: 2}
	cfg.Apply(spec)

	if len(spec.Peaks) != 2 {
		t.Fatalf("Expected 2 peaks, got %d", len(spec.Peaks))
	}
	// Peaks must come back sorted by m/z, not by intensity.
	if !spec.ArePeaksSorted() {
		t.Error("Expected peaks sorted by m/z after filtering")
	}
	if spec.Peaks[0].MZ != 120.0 || spec.Peaks[1].MZ != 399.995 {
		t.Errorf("Expected the two most intense peaks, got %v", spec.Peaks)
	}
}

func TestTopNSmallerThanSpectrum(t *testing.T) {
	spec := testSpectrum()
	cfg := &Config{TopN: 100}
	cfg.Apply(spec)

	if len(spec.Peaks) != 5 {
		t.Errorf("Expected all 5 peaks kept, got %d", len(spec.Peaks))
	}
}

func TestRemoveZeroIntensityPeaks(t *testing.T) {
	spec := &core.Spectrum{
		Peaks: []core.Peak{
			{MZ: 100.0, Intensity: 0.0},
			{MZ: 200.0, Intensity: 5.0},
			{MZ: 300.0, Intensity: 0.0},
		},
	}

	RemoveZeroIntensityPeaks(spec)

	if len(spec.Peaks) != 1 {
		t.Fatalf("Expected 1 peak, got %d", len(spec.Peaks))
	}
	if spec.Peaks[0].MZ != 200.0 {
		t.Errorf("Expected peak at 200.0, got %.1f", spec.Peaks[0].MZ)
	}
}
