// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svandyck/speccmp/pkg/core"
	"github.com/svandyck/speccmp/pkg/reader/mgf"
	"github.com/svandyck/speccmp/pkg/reader/msp"
	"github.com/svandyck/speccmp/pkg/similarity"
)

var (
	// Flags shared by compare and search
	measureName       string
	fragmentTolerance float64

	// Flags for compare command
	indexA int
	indexB int

	// Flags for convert command
	inputFile          string
	outputFile         string
	minMZ              float64
	maxMZ              float64
	removePrecursorTol float64
	cutoffPercent      float64
	topN               int

	// Flags for search command
	libraryFile        string
	queryFile          string
	precursorTolerance float64
	topResults         int
	cacheSize          int
)

var rootCmd = &cobra.Command{
	Use:   "speccmp",
	Short: "SpecCmp - MS/MS spectrum similarity toolkit",
	Long: `SpecCmp computes similarity scores between tandem mass spectra by
matching their fragment peaks.

Supported measures:
- cosine                  plain cosine similarity (greedy matching)
- modified-cosine         shift-tolerant, optimal peak assignment
- modified-cosine-greedy  shift-tolerant, greedy matching
- neutral-loss            cosine over neutral-loss peaks
- modified-neutral-loss   shift-tolerant neutral-loss similarity

Spectra are read from MSP or MGF files, or from SQLite spectral libraries
built with the convert command.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(searchCmd)

	// Compare command flags
	compareCmd.Flags().StringVarP(&measureName, "measure", "m", "cosine", "Similarity measure")
	compareCmd.Flags().Float64VarP(&fragmentTolerance, "tolerance", "t", 0.02, "Fragment m/z tolerance")
	compareCmd.Flags().IntVar(&indexA, "index-a", 0, "Entry index in the first file")
	compareCmd.Flags().IntVar(&indexB, "index-b", 0, "Entry index in the second file")

	// Convert command flags
	convertCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input spectrum file (required)")
	convertCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output library file (required)")
	convertCmd.Flags().Float64Var(&minMZ, "min-mz", 0, "Keep only peaks at or above this m/z (0 = no limit)")
	convertCmd.Flags().Float64Var(&maxMZ, "max-mz", 0, "Keep only peaks at or below this m/z (0 = no limit)")
	convertCmd.Flags().Float64Var(&removePrecursorTol, "remove-precursor-tol", 0, "Remove peaks within this m/z of the precursor (0 = keep)")
	convertCmd.Flags().Float64Var(&cutoffPercent, "cutoff", 0, "Intensity cutoff as % of base peak (0 = no cutoff)")
	convertCmd.Flags().IntVar(&topN, "top-n", 0, "Keep only top N most intense peaks (0 = no limit)")
	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("out")

	// Search command flags
	searchCmd.Flags().StringVarP(&libraryFile, "library", "l", "", "SQLite spectral library (required)")
	searchCmd.Flags().StringVarP(&queryFile, "query", "q", "", "Query spectrum file (required)")
	searchCmd.Flags().StringVarP(&measureName, "measure", "m", "cosine", "Similarity measure")
	searchCmd.Flags().Float64VarP(&fragmentTolerance, "tolerance", "t", 0.02, "Fragment m/z tolerance")
	searchCmd.Flags().Float64Var(&precursorTolerance, "precursor-tol", 0, "Skip library spectra whose precursor m/z differs more than this (0 = scan all)")
	searchCmd.Flags().IntVar(&topResults, "top", 5, "Number of results to report per query")
	searchCmd.Flags().IntVar(&cacheSize, "cache-size", 4096, "Decoded library spectra kept in memory")
	searchCmd.MarkFlagRequired("library")
	searchCmd.MarkFlagRequired("query")
}

// measureFunc resolves a similarity measure by name
func measureFunc(name string) (func(a, b *core.Spectrum, tol float64) (float64, []similarity.Match, error), error) {
	switch name {
	case "cosine":
		return similarity.Cosine, nil
	case "modified-cosine":
		return similarity.ModifiedCosine, nil
	case "modified-cosine-greedy":
		return similarity.ModifiedCosineGreedy, nil
	case "neutral-loss":
		return similarity.NeutralLoss, nil
	case "modified-neutral-loss":
		return similarity.ModifiedNeutralLoss, nil
	}
	return nil, fmt.Errorf("unknown measure '%s'", name)
}

// spectrumReader is the streaming contract shared by the file readers
type spectrumReader interface {
	Next() bool
	Spectrum() *core.Spectrum
	Err() error
}

// newSpectrumReader picks a reader by file extension
func newSpectrumReader(f *os.File, path string) (spectrumReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msp":
		return msp.NewReader(f), nil
	case ".mgf":
		return mgf.NewReader(f), nil
	}
	return nil, fmt.Errorf("cannot detect format of '%s' (expected .msp or .mgf)", path)
}

// loadSpectra reads all spectra from an MSP or MGF file
func loadSpectra(path string) ([]*core.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := newSpectrumReader(f, path)
	if err != nil {
		return nil, err
	}

	var specs []*core.Spectrum
	for reader.Next() {
		spec := reader.Spectrum()
		spec.SourceFile = path
		spec.SortPeaks()
		specs = append(specs, spec)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no spectra found in %s", path)
	}
	return specs, nil
}
