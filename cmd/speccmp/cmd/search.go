package cmd

import (
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"

	"github.com/svandyck/speccmp/pkg/core"
	"github.com/svandyck/speccmp/pkg/library/sqlite"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search query spectra against a SQLite spectral library",
	Long: `Score every query spectrum against a SQLite spectral library and
report the best matches. The library is scanned linearly; an optional
precursor m/z window skips library entries that cannot match.

Examples:
  # Top 5 cosine matches per query
  speccmp search --library library.db --query queries.mgf

  # Modified cosine within a 2 Da precursor window
  speccmp search --library library.db --query queries.mgf \
    --measure modified-cosine --precursor-tol 2.0 --top 10`,
	RunE: runSearch,
}

// hit is one scored library candidate for a query spectrum.
type hit struct {
	entry   sqlite.Entry
	score   float64
	matched int
}

func runSearch(cmd *cobra.Command, args []string) error {
	measure, err := measureFunc(measureName)
	if err != nil {
		return err
	}

	queries, err := loadSpectra(queryFile)
	if err != nil {
		return err
	}

	lib, err := sqlite.NewReader(libraryFile)
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.Entries()
	if err != nil {
		return err
	}
	fmt.Printf("Searching %d queries against %d library spectra\n", len(queries), len(entries))

	// Decoded library spectra are reused across queries; the LRU bound
	// keeps memory flat on libraries larger than the cache.
	cache, err := lru.New[int64, *core.Spectrum](cacheSize)
	if err != nil {
		return fmt.Errorf("failed to create spectrum cache: %w", err)
	}

	for _, query := range queries {
		var hits []hit
		for _, entry := range entries {
			if precursorTolerance > 0 &&
				math.Abs(entry.PrecursorMZ-query.PrecursorMZ) > precursorTolerance {
				continue
			}

			spec, ok := cache.Get(entry.ID)
			if !ok {
				spec, err = lib.SpectrumByID(entry.ID)
				if err != nil {
					return err
				}
				cache.Add(entry.ID, spec)
			}

			score, matches, err := measure(query, spec, fragmentTolerance)
			if err != nil {
				return fmt.Errorf("query %s vs %s: %w", query.Label(), entry.Name, err)
			}
			if score <= 0 {
				continue
			}
			hits = append(hits, hit{entry: entry, score: score, matched: len(matches)})
		}

		sort.Slice(hits, func(i, j int) bool {
			return hits[i].score > hits[j].score
		})
		if len(hits) > topResults {
			hits = hits[:topResults]
		}

		fmt.Printf("\nQuery %s (precursor %.4f):\n", query.Label(), query.PrecursorMZ)
		if len(hits) == 0 {
			fmt.Println("  no matches")
			continue
		}
		for rank, h := range hits {
			fmt.Printf("  %2d. %-30s precursor %10.4f  score %.4f  (%d peaks)\n",
				rank+1, h.entry.Name, h.entry.PrecursorMZ, h.score, h.matched)
		}
	}

	return nil
}
