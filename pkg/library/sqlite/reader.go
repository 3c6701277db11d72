package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"

	"github.com/svandyck/speccmp/pkg/core"
)

// Reader provides streaming access to a SQLite spectral library
type Reader struct {
	db          *sql.DB
	rows        *sql.Rows
	currentID   int64
	currentSpec *core.Spectrum
	err         error
}

// NewReader opens a SQLite library for reading
func NewReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Reader{db: db}, nil
}

// Entry summarizes one library spectrum for precursor prefiltering without
// decoding its peak blobs.
type Entry struct {
	ID              int64
	Name            string
	PrecursorMZ     float64
	PrecursorCharge int
}

// Entries lists all spectra in the library, ordered by id
func (r *Reader) Entries() ([]Entry, error) {
	rows, err := r.db.Query(`
		SELECT SpectrumId, Name, PrecursorMZ, PrecursorCharge
		FROM SpectrumTable
		ORDER BY SpectrumId
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.PrecursorMZ, &e.PrecursorCharge); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// SpectrumByID loads and decodes a single spectrum by its library row id
func (r *Reader) SpectrumByID(id int64) (*core.Spectrum, error) {
	row := r.db.QueryRow(`
		SELECT SpectrumId, Name, PrecursorMZ, PrecursorCharge,
		       RetentionTime, CollisionEnergy, blobMZ, blobIntensity
		FROM SpectrumTable
		WHERE SpectrumId = ?
	`, id)

	spec, _, err := scanSpectrum(row)
	if err != nil {
		return nil, fmt.Errorf("spectrum %d: %w", id, err)
	}
	return spec, nil
}

// Count returns the number of spectra in the library
func (r *Reader) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM SpectrumTable`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count spectra: %w", err)
	}
	return count, nil
}

// Next advances to the next spectrum. Returns false when no more spectra or error.
func (r *Reader) Next() bool {
	r.currentSpec = nil

	if r.rows == nil {
		rows, err := r.db.Query(`
			SELECT SpectrumId, Name, PrecursorMZ, PrecursorCharge,
			       RetentionTime, CollisionEnergy, blobMZ, blobIntensity
			FROM SpectrumTable
			ORDER BY SpectrumId
		`)
		if err != nil {
			r.err = fmt.Errorf("failed to query spectra: %w", err)
			return false
		}
		r.rows = rows
	}

	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			r.err = err
		}
		return false
	}

	spec, id, err := scanSpectrum(r.rows)
	if err != nil {
		r.err = err
		return false
	}

	r.currentID = id
	r.currentSpec = spec
	return true
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanSpectrum
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSpectrum decodes one full spectrum row
func scanSpectrum(row rowScanner) (*core.Spectrum, int64, error) {
	var (
		id      int64
		name    string
		mz      float64
		charge  int
		rt      sql.NullFloat64
		ce      sql.NullFloat64
		mzBlob  []byte
		intBlob []byte
	)
	if err := row.Scan(&id, &name, &mz, &charge, &rt, &ce, &mzBlob, &intBlob); err != nil {
		return nil, 0, fmt.Errorf("failed to scan spectrum row: %w", err)
	}

	spec := &core.Spectrum{
		Name:            name,
		PrecursorMZ:     mz,
		PrecursorCharge: charge,
		SourceFormat:    "sqlite",
	}
	if rt.Valid {
		v := rt.Float64
		spec.RetentionTime = &v
	}
	if ce.Valid {
		v := ce.Float64
		spec.CollisionEnergy = &v
	}

	peaks, err := decodePeaks(mzBlob, intBlob)
	if err != nil {
		return nil, 0, fmt.Errorf("spectrum %d: %w", id, err)
	}
	spec.Peaks = peaks

	return spec, id, nil
}

// Spectrum returns the current spectrum
func (r *Reader) Spectrum() *core.Spectrum {
	return r.currentSpec
}

// SpectrumID returns the library row id of the current spectrum
func (r *Reader) SpectrumID() int64 {
	return r.currentID
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// Close releases the underlying database handle
func (r *Reader) Close() error {
	if r.rows != nil {
		r.rows.Close()
	}
	return r.db.Close()
}

// decodePeaks decodes little-endian float64 m/z and intensity blobs
func decodePeaks(mzBlob, intBlob []byte) ([]core.Peak, error) {
	if len(mzBlob)%8 != 0 || len(mzBlob) != len(intBlob) {
		return nil, fmt.Errorf("malformed peak blobs (%d and %d bytes)", len(mzBlob), len(intBlob))
	}

	n := len(mzBlob) / 8
	peaks := make([]core.Peak, n)
	for i := 0; i < n; i++ {
		peaks[i] = core.Peak{
			MZ:        math.Float64frombits(binary.LittleEndian.Uint64(mzBlob[i*8:])),
			Intensity: math.Float64frombits(binary.LittleEndian.Uint64(intBlob[i*8:])),
		}
	}
	return peaks, nil
}
