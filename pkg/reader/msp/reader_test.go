package msp

import (
	"strings"
	"testing"
)

const sampleMSP = `Name: Caffeine
PrecursorMZ: 195.0877
Charge: 1
Comment: demo entry
Num Peaks: 3
110.0714 1000.0
138.0663 2500.0
195.0877 800.0

Name: Theobromine
PrecursorMZ: 181.0720
Charge: 1
Num peaks: 2
110.0714	600.0
163.0614	900.0
`

func TestReadSpectra(t *testing.T) {
	reader := NewReader(strings.NewReader(sampleMSP))

	if !reader.Next() {
		t.Fatalf("Expected first spectrum, got error: %v", reader.Err())
	}
	spec := reader.Spectrum()
	if spec.Name != "Caffeine" {
		t.Errorf("Expected name Caffeine, got %s", spec.Name)
	}
	if spec.PrecursorMZ != 195.0877 {
		t.Errorf("Expected precursor m/z 195.0877, got %f", spec.PrecursorMZ)
	}
	if spec.PrecursorCharge != 1 {
		t.Errorf("Expected charge 1, got %d", spec.PrecursorCharge)
	}
	if len(spec.Peaks) != 3 {
		t.Fatalf("Expected 3 peaks, got %d", len(spec.Peaks))
	}
	if spec.Peaks[1].MZ != 138.0663 || spec.Peaks[1].Intensity != 2500.0 {
		t.Errorf("Unexpected second peak: %v", spec.Peaks[1])
	}

	if !reader.Next() {
		t.Fatalf("Expected second spectrum, got error: %v", reader.Err())
	}
	spec = reader.Spectrum()
	if spec.Name != "Theobromine" {
		t.Errorf("Expected name Theobromine, got %s", spec.Name)
	}
	if len(spec.Peaks) != 2 {
		t.Fatalf("Expected 2 peaks, got %d", len(spec.Peaks))
	}

	if reader.Next() {
		t.Error("Expected no more spectra")
	}
	if err := reader.Err(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestChargeSuffix(t *testing.T) {
	input := "Name: test\nPrecursorMZ: 300.1\nCharge: 2+\nNum Peaks: 1\n100.0 50.0\n"
	reader := NewReader(strings.NewReader(input))

	if !reader.Next() {
		t.Fatalf("Expected spectrum, got error: %v", reader.Err())
	}
	if got := reader.Spectrum().PrecursorCharge; got != 2 {
		t.Errorf("Expected charge 2, got %d", got)
	}
}

func TestInvalidPeakLine(t *testing.T) {
	input := "Name: bad\nPrecursorMZ: 300.1\nNum Peaks: 1\nnot-a-number 50.0\n"
	reader := NewReader(strings.NewReader(input))

	if reader.Next() {
		t.Fatal("Expected read to fail")
	}
	if reader.Err() == nil {
		t.Error("Expected error for invalid peak line")
	}
}
