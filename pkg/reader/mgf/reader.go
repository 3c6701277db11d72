// Package mgf provides a streaming reader for MGF (Mascot generic format)
// spectrum files.
package mgf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/svandyck/speccmp/pkg/core"
)

// Reader provides streaming access to MGF format files
type Reader struct {
	scanner     *bufio.Scanner
	lineNum     int
	currentSpec *core.Spectrum
	err         error
}

// NewReader creates a new MGF reader
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

// readSpectrum reads a single BEGIN IONS / END IONS block
func (r *Reader) readSpectrum() (*core.Spectrum, error) {
	inBlock := false
	var spec *core.Spectrum

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimSpace(r.scanner.Text())

		// Skip comments and empty lines outside blocks
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !inBlock {
			if line == "BEGIN IONS" {
				inBlock = true
				spec = &core.Spectrum{
					SourceFormat: "mgf",
					Peaks:        []core.Peak{},
				}
			}
			continue
		}

		if line == "END IONS" {
			return spec, nil
		}

		if idx := strings.Index(line, "="); idx >= 0 {
			key := strings.ToUpper(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[idx+1:])
			if err := r.parseHeader(spec, key, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
			}
			continue
		}

		// Peak line
		peak, err := parsePeak(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineNum, err)
		}
		spec.Peaks = append(spec.Peaks, peak)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	if inBlock {
		return nil, fmt.Errorf("line %d: unexpected end of file inside BEGIN IONS block", r.lineNum)
	}

	return nil, io.EOF
}

// parseHeader handles one KEY=value header inside an ion block
func (r *Reader) parseHeader(spec *core.Spectrum, key, value string) error {
	switch key {
	case "TITLE":
		spec.Name = value

	case "PEPMASS":
		// PEPMASS may carry an intensity after the m/z
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return fmt.Errorf("empty PEPMASS")
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("invalid PEPMASS '%s': %w", value, err)
		}
		spec.PrecursorMZ = mz

	case "CHARGE":
		charge, err := parseCharge(value)
		if err != nil {
			return err
		}
		spec.PrecursorCharge = charge

	case "RTINSECONDS":
		rt, err := strconv.ParseFloat(value, 64)
		if err == nil {
			spec.RetentionTime = &rt
		}
	}

	return nil
}

// parseCharge parses MGF charge values like "2+", "1", "3-"
func parseCharge(value string) (int, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "+")
	value = strings.TrimSuffix(value, "-")
	charge, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid CHARGE '%s': %w", value, err)
	}
	if charge < 0 {
		charge = -charge
	}
	return charge, nil
}

// parsePeak parses a single peak line (format: "mz intensity")
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
