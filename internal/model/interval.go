// Package model defines the data structures for copy-number segment consolidation.
package model

import "sort"

// Path represents a file system path.
type Path string

// GenomicInterval is a half-open [Begin, End) interval on a named chromosome.
// Positions are 0-based; Begin is inclusive, End exclusive.
type GenomicInterval struct {
	Chromosome string
	Begin      int
	End        int
}

// Span returns the length of the interval in base pairs.
func (g GenomicInterval) Span() int {
	return g.End - g.Begin
}

// Overlaps reports whether the interval overlaps other on the same chromosome.
func (g GenomicInterval) Overlaps(other GenomicInterval) bool {
	return g.Chromosome == other.Chromosome && g.Begin < other.End && other.Begin < g.End
}

// ExcludedRegionIndex holds, per chromosome, the intervals that must not be
// crossed when merging segments. Entries are kept sorted by start position;
// queries rely on that ordering to terminate early. The index is never mutated
// by the merge engine.
type ExcludedRegionIndex struct {
	regions map[string][]GenomicInterval
}

// NewExcludedRegionIndex builds an index from the given intervals, sorting
// each chromosome's entries by start position.
func NewExcludedRegionIndex(intervals []GenomicInterval) *ExcludedRegionIndex {
	idx := &ExcludedRegionIndex{regions: make(map[string][]GenomicInterval)}
	for _, iv := range intervals {
		idx.regions[iv.Chromosome] = append(idx.regions[iv.Chromosome], iv)
	}

	for chrom := range idx.regions {
		entries := idx.regions[chrom]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Begin < entries[j].Begin })
	}

	return idx
}

// SpansForbiddenInterval reports whether the closed gap [start, end] on chrom
// contains the start or stop of any excluded region. The per-chromosome list
// is sorted by start, so the scan stops once an entry begins past the gap.
func (idx *ExcludedRegionIndex) SpansForbiddenInterval(chrom string, start, end int) bool {
	if idx == nil {
		return false
	}

	for _, region := range idx.regions[chrom] {
		if region.Begin > end {
			break
		}

		if region.Begin >= start && region.Begin <= end {
			return true
		}

		if region.End >= start && region.End <= end {
			return true
		}
	}

	return false
}

// Chromosomes returns the chromosome names present in the index.
func (idx *ExcludedRegionIndex) Chromosomes() []string {
	names := make([]string, 0, len(idx.regions))
	for chrom := range idx.regions {
		names = append(names, chrom)
	}

	sort.Strings(names)

	return names
}

// PloidyInterval is one reference-ploidy annotation for a genomic interval.
type PloidyInterval struct {
	GenomicInterval
	Ploidy int
}

// DefaultReferencePloidy is assumed wherever no ploidy annotation applies.
const DefaultReferencePloidy = 2

// PloidyMap looks up the expected reference copy number for a genomic
// interval. Chromosomes absent from the map are diploid.
type PloidyMap struct {
	intervals map[string][]PloidyInterval
}

// NewPloidyMap builds a PloidyMap, sorting each chromosome's entries by start.
func NewPloidyMap(intervals []PloidyInterval) *PloidyMap {
	pm := &PloidyMap{intervals: make(map[string][]PloidyInterval)}
	for _, iv := range intervals {
		pm.intervals[iv.Chromosome] = append(pm.intervals[iv.Chromosome], iv)
	}

	for chrom := range pm.intervals {
		entries := pm.intervals[chrom]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Begin < entries[j].Begin })
	}

	return pm
}

// ReferenceCopyNumber returns the ploidy of the annotation overlapping the
// given interval the most. Ties keep the earlier annotation. Intervals with
// no overlapping annotation are diploid.
func (pm *PloidyMap) ReferenceCopyNumber(interval GenomicInterval) int {
	if pm == nil {
		return DefaultReferencePloidy
	}

	best := 0
	ploidy := DefaultReferencePloidy

	for _, entry := range pm.intervals[interval.Chromosome] {
		if entry.Begin >= interval.End {
			break
		}

		overlap := min(entry.End, interval.End) - max(entry.Begin, interval.Begin)
		if overlap > best {
			best = overlap
			ploidy = entry.Ploidy
		}
	}

	return ploidy
}
