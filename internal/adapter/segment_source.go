// Package adapter provides the file-backed collaborators of the merge core:
// segment, bin and variant readers, BED loaders and the VCF writer.
package adapter

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	m "github.com/binshift/cnvmerge/internal/model"
)

// SegmentSource loads raw segments and attaches their per-bin coverage and
// per-SNP allele-frequency observations.
type SegmentSource interface {
	// Segments reads a tab-separated segment file sorted by chromosome and
	// start position. Columns: chrom, begin, end, copyNumber,
	// secondBestCopyNumber, mcc ("." when absent), modelDistance,
	// runnerUpModelDistance, qScore and an optional filter (default PASS).
	Segments(path m.Path) ([]*m.Segment, error)

	// AttachBins reads a tab-separated bin file (chrom, start, end,
	// coverage) and appends each bin's coverage to the segment containing
	// the bin's start. Bins outside every segment are dropped. Fails if any
	// segment ends up with no bins.
	AttachBins(segments []*m.Segment, path m.Path) error

	// AttachVariants reads a tab-separated variant file (chrom, pos,
	// frequency, totalCoverage) and appends each observation to the segment
	// containing pos. Observations outside every segment are dropped.
	AttachVariants(segments []*m.Segment, path m.Path) error
}

type localSegmentSource struct{}

// NewLocalSegmentSource constructs a SegmentSource reading local files.
func NewLocalSegmentSource() SegmentSource {
	return &localSegmentSource{}
}

func (ls *localSegmentSource) Segments(path m.Path) ([]*m.Segment, error) {
	var segments []*m.Segment

	err := scanTabFile(path, func(line int, fields []string) error {
		if len(fields) < 9 {
			return fmt.Errorf("expected at least 9 columns, got %d", len(fields))
		}

		interval, err := parseInterval(fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}

		seg := m.NewSegment(interval, nil)

		if seg.CopyNumber, err = strconv.Atoi(fields[3]); err != nil {
			return fmt.Errorf("bad copy number %q: %w", fields[3], err)
		}

		if seg.SecondBestCopyNumber, err = strconv.Atoi(fields[4]); err != nil {
			return fmt.Errorf("bad second-best copy number %q: %w", fields[4], err)
		}

		if fields[5] != "." {
			mcc, err := strconv.Atoi(fields[5])
			if err != nil {
				return fmt.Errorf("bad major chromosome count %q: %w", fields[5], err)
			}

			seg.MajorChromosomeCount = &mcc
		}

		if seg.ModelDistance, err = strconv.ParseFloat(fields[6], 64); err != nil {
			return fmt.Errorf("bad model distance %q: %w", fields[6], err)
		}

		if seg.RunnerUpModelDistance, err = strconv.ParseFloat(fields[7], 64); err != nil {
			return fmt.Errorf("bad runner-up model distance %q: %w", fields[7], err)
		}

		if seg.QScore, err = strconv.ParseFloat(fields[8], 64); err != nil {
			return fmt.Errorf("bad q-score %q: %w", fields[8], err)
		}

		if len(fields) > 9 {
			seg.Filter = fields[9]
		}

		segments = append(segments, seg)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("segment file %s: %w", path, err)
	}

	return segments, nil
}

func (ls *localSegmentSource) AttachBins(segments []*m.Segment, path m.Path) error {
	index := newSegmentIndex(segments)

	err := scanTabFile(path, func(line int, fields []string) error {
		if len(fields) < 4 {
			return fmt.Errorf("expected 4 columns, got %d", len(fields))
		}

		interval, err := parseInterval(fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}

		coverage, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("bad coverage %q: %w", fields[3], err)
		}

		if seg := index.find(interval.Chromosome, interval.Begin); seg != nil {
			seg.Counts = append(seg.Counts, coverage)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("bin file %s: %w", path, err)
	}

	for _, seg := range segments {
		if seg.BinCount() == 0 {
			return fmt.Errorf("bin file %s: no bins cover segment %s:%d-%d", path, seg.Chromosome, seg.Begin, seg.End)
		}
	}

	return nil
}

func (ls *localSegmentSource) AttachVariants(segments []*m.Segment, path m.Path) error {
	index := newSegmentIndex(segments)

	err := scanTabFile(path, func(line int, fields []string) error {
		if len(fields) < 4 {
			return fmt.Errorf("expected 4 columns, got %d", len(fields))
		}

		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("bad position %q: %w", fields[1], err)
		}

		frequency, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("bad frequency %q: %w", fields[2], err)
		}

		totalCoverage, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("bad total coverage %q: %w", fields[3], err)
		}

		if seg := index.find(fields[0], pos); seg != nil {
			seg.AddVariantObservation(frequency, totalCoverage)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("variant file %s: %w", path, err)
	}

	return nil
}

// segmentIndex answers "which segment contains this position" queries with a
// per-chromosome binary search.
type segmentIndex struct {
	byChrom map[string][]*m.Segment
}

func newSegmentIndex(segments []*m.Segment) *segmentIndex {
	idx := &segmentIndex{byChrom: make(map[string][]*m.Segment)}
	for _, seg := range segments {
		idx.byChrom[seg.Chromosome] = append(idx.byChrom[seg.Chromosome], seg)
	}

	for chrom := range idx.byChrom {
		list := idx.byChrom[chrom]
		sort.Slice(list, func(i, j int) bool { return list[i].Begin < list[j].Begin })
	}

	return idx
}

func (idx *segmentIndex) find(chrom string, pos int) *m.Segment {
	list := idx.byChrom[chrom]

	i := sort.Search(len(list), func(i int) bool { return list[i].Begin > pos })
	if i == 0 {
		return nil
	}

	if seg := list[i-1]; pos < seg.End {
		return seg
	}

	return nil
}

// scanTabFile reads a tab-separated file line by line, skipping blank lines
// and '#' comments, and wraps any per-row error with its line number.
func scanTabFile(path m.Path, row func(line int, fields []string) error) error {
	file, err := os.Open(string(path))
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if err := row(line, strings.Split(text, "\t")); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}

	return scanner.Err()
}

func parseInterval(chrom, beginField, endField string) (m.GenomicInterval, error) {
	begin, err := strconv.Atoi(beginField)
	if err != nil {
		return m.GenomicInterval{}, fmt.Errorf("bad start %q: %w", beginField, err)
	}

	end, err := strconv.Atoi(endField)
	if err != nil {
		return m.GenomicInterval{}, fmt.Errorf("bad end %q: %w", endField, err)
	}

	if begin >= end {
		return m.GenomicInterval{}, fmt.Errorf("empty interval %s:%d-%d", chrom, begin, end)
	}

	return m.GenomicInterval{Chromosome: chrom, Begin: begin, End: end}, nil
}
