// Package msp provides a streaming reader for MSP (NIST text) format
// spectral libraries.
package msp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/svandyck/speccmp/pkg/core"
)

// Reader provides streaming access to MSP format files
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	currentSpec *core.Spectrum
	err         error
}

// NewReader creates a new MSP reader
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next spectrum. Returns false when no more spectra or error.
func (r *Reader) Next() bool {
	r.currentSpec = nil

	spec, err := r.readSpectrum()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		return false
	}

	r.currentSpec = spec
	return true
}

// Spectrum returns the current spectrum
func (r *Reader) Spectrum() *core.Spectrum {
	return r.currentSpec
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readSpectrum reads a single spectrum entry from the MSP file
func (r *Reader) readSpectrum() (*core.Spectrum, error) {
	spec := &core.Spectrum{
		SourceFormat: "msp",
		Peaks:        []core.Peak{},
	}

	var numPeaks int
	inPeaks := false
	peaksRead := 0

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip empty lines between entries
		if line == "" && spec.Name == "" {
			continue
		}

		// A blank line inside the peak block also ends the entry
		if inPeaks && (peaksRead >= numPeaks || line == "") {
			return spec, nil
		}

		if !inPeaks {
			key, value, ok := splitHeader(line)
			if !ok {
				continue
			}

			switch strings.ToLower(key) {
			case "name":
				spec.Name = value

			case "precursormz", "precursor_mz":
				mz, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid precursor m/z: %w", r.lineNum, err)
				}
				spec.PrecursorMZ = mz

			case "charge":
				charge, err := parseCharge(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
				}
				spec.PrecursorCharge = charge

			case "retentiontime", "rt":
				rt, err := strconv.ParseFloat(value, 64)
				if err == nil {
					spec.RetentionTime = &rt
				}

			case "collision_energy", "collisionenergy":
				ce, err := strconv.ParseFloat(value, 64)
				if err == nil {
					spec.CollisionEnergy = &ce
				}

			case "num peaks", "num_peaks":
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid num peaks: %w", r.lineNum, err)
				}
				numPeaks = n
				inPeaks = true
			}
		} else {
			// Parse peak line
			peak, err := parsePeak(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			spec.Peaks = append(spec.Peaks, peak)
			peaksRead++

			// Check if we've read all peaks
			if peaksRead >= numPeaks {
				return spec, nil
			}
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// If we have a partially read spectrum, return it
	if spec.Name != "" {
		return spec, nil
	}

	return nil, io.EOF
}

// splitHeader splits a "Key: value" header line
func splitHeader(line string) (string, string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// parseCharge parses charge values like "1", "2+" or "-2"
func parseCharge(value string) (int, error) {
	value = strings.TrimSuffix(strings.TrimSpace(value), "+")
	charge, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid charge '%s': %w", value, err)
	}
	if charge < 0 {
		charge = -charge
	}
	return charge, nil
}

// parsePeak parses a single peak line (format: "mz intensity" or "mz\tintensity")
func parsePeak(line string) (core.Peak, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return core.Peak{}, fmt.Errorf("invalid peak format, expected at least 2 fields")
	}

	mz, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid m/z value: %w", err)
	}

	intensity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Peak{}, fmt.Errorf("invalid intensity value: %w", err)
	}

	return core.Peak{MZ: mz, Intensity: intensity}, nil
}
