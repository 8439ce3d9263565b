package adapter

import (
	"fmt"
	"strconv"

	m "github.com/binshift/cnvmerge/internal/model"
)

// RegionSource loads the BED-backed reference lookups used during merging
// and classification.
type RegionSource interface {
	// ExcludedRegions reads a BED file (chrom, start, end; extra columns
	// ignored) of intervals that may not be crossed when merging.
	ExcludedRegions(path m.Path) (*m.ExcludedRegionIndex, error)

	// Ploidy reads a BED-like file (chrom, start, end, ploidy) of expected
	// reference copy numbers.
	Ploidy(path m.Path) (*m.PloidyMap, error)
}

type localRegionSource struct{}

// NewLocalRegionSource constructs a RegionSource reading local files.
func NewLocalRegionSource() RegionSource {
	return &localRegionSource{}
}

func (lr *localRegionSource) ExcludedRegions(path m.Path) (*m.ExcludedRegionIndex, error) {
	var intervals []m.GenomicInterval

	err := scanTabFile(path, func(line int, fields []string) error {
		if len(fields) < 3 {
			return fmt.Errorf("expected 3 columns, got %d", len(fields))
		}

		interval, err := parseInterval(fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}

		intervals = append(intervals, interval)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("excluded-regions file %s: %w", path, err)
	}

	return m.NewExcludedRegionIndex(intervals), nil
}

func (lr *localRegionSource) Ploidy(path m.Path) (*m.PloidyMap, error) {
	var intervals []m.PloidyInterval

	err := scanTabFile(path, func(line int, fields []string) error {
		if len(fields) < 4 {
			return fmt.Errorf("expected 4 columns, got %d", len(fields))
		}

		interval, err := parseInterval(fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}

		ploidy, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("bad ploidy %q: %w", fields[3], err)
		}

		intervals = append(intervals, m.PloidyInterval{GenomicInterval: interval, Ploidy: ploidy})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ploidy file %s: %w", path, err)
	}

	return m.NewPloidyMap(intervals), nil
}
