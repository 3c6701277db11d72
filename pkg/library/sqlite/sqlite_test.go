package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/svandyck/speccmp/pkg/core"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	rt := 120.5
	specs := []*core.Spectrum{
		{
			Name:            "caffeine",
			PrecursorMZ:     195.0877,
			PrecursorCharge: 1,
			RetentionTime:   &rt,
			Peaks: []core.Peak{
				{MZ: 110.0714, Intensity: 1000.0},
				{MZ: 138.0663, Intensity: 2500.0},
			},
		},
		{
			Name:            "theobromine",
			PrecursorMZ:     181.0720,
			PrecursorCharge: 1,
			Peaks: []core.Peak{
				{MZ: 110.0714, Intensity: 600.0},
				{MZ: 163.0614, Intensity: 900.0},
				{MZ: 181.0720, Intensity: 150.0},
			},
		},
	}

	writer, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	for _, spec := range specs {
		if err := writer.WriteSpectrum(spec); err != nil {
			t.Fatalf("WriteSpectrum() error: %v", err)
		}
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	defer reader.Close()

	count, err := reader.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != len(specs) {
		t.Errorf("Expected %d spectra, got %d", len(specs), count)
	}

	for i, want := range specs {
		if !reader.Next() {
			t.Fatalf("Expected spectrum %d, got error: %v", i, reader.Err())
		}
		got := reader.Spectrum()

		if got.Name != want.Name {
			t.Errorf("Spectrum %d: expected name %s, got %s", i, want.Name, got.Name)
		}
		if got.PrecursorMZ != want.PrecursorMZ {
			t.Errorf("Spectrum %d: expected precursor %f, got %f", i, want.PrecursorMZ, got.PrecursorMZ)
		}
		if got.PrecursorCharge != want.PrecursorCharge {
			t.Errorf("Spectrum %d: expected charge %d, got %d", i, want.PrecursorCharge, got.PrecursorCharge)
		}
		if len(got.Peaks) != len(want.Peaks) {
			t.Fatalf("Spectrum %d: expected %d peaks, got %d", i, len(want.Peaks), len(got.Peaks))
		}
		for j := range want.Peaks {
			if got.Peaks[j] != want.Peaks[j] {
				t.Errorf("Spectrum %d peak %d: expected %v, got %v", i, j, want.Peaks[j], got.Peaks[j])
			}
		}
	}

	if reader.Next() {
		t.Error("Expected no more spectra")
	}
	if err := reader.Err(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestEntriesAndSpectrumByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	writer, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	names := []string{"alpha", "beta", "gamma"}
	for i, name := range names {
		spec := &core.Spectrum{
			Name:            name,
			PrecursorMZ:     100.0 * float64(i+1),
			PrecursorCharge: 1,
			Peaks:           []core.Peak{{MZ: 50.0, Intensity: 10.0}},
		}
		if err := writer.WriteSpectrum(spec); err != nil {
			t.Fatalf("WriteSpectrum() error: %v", err)
		}
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	defer reader.Close()

	entries, err := reader.Entries()
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[1].Name != "beta" || entries[1].PrecursorMZ != 200.0 {
		t.Errorf("Unexpected entry: %+v", entries[1])
	}

	spec, err := reader.SpectrumByID(entries[2].ID)
	if err != nil {
		t.Fatalf("SpectrumByID() error: %v", err)
	}
	if spec.Name != "gamma" {
		t.Errorf("Expected gamma, got %s", spec.Name)
	}
	if len(spec.Peaks) != 1 || spec.Peaks[0].MZ != 50.0 {
		t.Errorf("Unexpected peaks: %v", spec.Peaks)
	}
}

func TestRetentionTimeNullable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	writer, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	spec := &core.Spectrum{
		Name:            "no-rt",
		PrecursorMZ:     300.0,
		PrecursorCharge: 2,
		Peaks:           []core.Peak{{MZ: 100.0, Intensity: 10.0}},
	}
	if err := writer.WriteSpectrum(spec); err != nil {
		t.Fatalf("WriteSpectrum() error: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	defer reader.Close()

	if !reader.Next() {
		t.Fatalf("Expected spectrum, got error: %v", reader.Err())
	}
	if got := reader.Spectrum(); got.RetentionTime != nil {
		t.Errorf("Expected nil retention time, got %v", *got.RetentionTime)
	}
}

func TestUnsortedPeaksSortedOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	writer, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	spec := &core.Spectrum{
		Name:            "unsorted",
		PrecursorMZ:     400.0,
		PrecursorCharge: 1,
		Peaks: []core.Peak{
			{MZ: 300.0, Intensity: 5.0},
			{MZ: 100.0, Intensity: 7.0},
		},
	}
	if err := writer.WriteSpectrum(spec); err != nil {
		t.Fatalf("WriteSpectrum() error: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error: %v", err)
	}
	defer reader.Close()

	if !reader.Next() {
		t.Fatalf("Expected spectrum, got error: %v", reader.Err())
	}
	if got := reader.Spectrum(); !got.ArePeaksSorted() {
		t.Error("Expected peaks sorted by m/z after round trip")
	}
}
