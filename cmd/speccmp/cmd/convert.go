package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/svandyck/speccmp/pkg/filter"
	"github.com/svandyck/speccmp/pkg/library/sqlite"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a spectrum file to a SQLite spectral library",
	Long: `Convert spectra in MSP or MGF format to a SQLite spectral library
usable by the search command.

Examples:
  # Convert an MSP file with default settings
  speccmp convert --in library.msp --out library.db

  # Convert with preprocessing
  speccmp convert --in library.mgf --out library.db --min-mz 101 --top-n 150 --cutoff 1`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer inFile.Close()

	reader, err := newSpectrumReader(inFile, inputFile)
	if err != nil {
		return err
	}

	writer, err := sqlite.NewWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output library: %w", err)
	}

	filterConfig := &filter.Config{
		MinMZ:              minMZ,
		MaxMZ:              maxMZ,
		RemovePrecursorTol: removePrecursorTol,
		IntensityCutoff:    cutoffPercent,
		TopN:               topN,
	}

	fmt.Printf("Converting %s to %s...\n", inputFile, outputFile)

	count := 0
	skipped := 0

	for reader.Next() {
		spec := reader.Spectrum()
		spec.SourceFile = inputFile

		filter.RemoveZeroIntensityPeaks(spec)
		filterConfig.Apply(spec)

		if err := spec.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: invalid spectrum %s: %v\n", spec.Label(), err)
			skipped++
			continue
		}

		if err := writer.WriteSpectrum(spec); err != nil {
			return fmt.Errorf("failed to write spectrum %s: %w", spec.Label(), err)
		}

		count++
		if count%1000 == 0 {
			fmt.Printf("Processed %d spectra...\n", count)
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize library: %w", err)
	}

	fmt.Printf("\nConversion complete!\n")
	fmt.Printf("Processed: %d spectra\n", count)
	if skipped > 0 {
		fmt.Printf("Skipped: %d spectra (validation errors)\n", skipped)
	}
	fmt.Printf("Output: %s\n", outputFile)

	return nil
}
