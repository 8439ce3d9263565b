package domain

import (
	"testing"

	m "github.com/binshift/cnvmerge/internal/model"
)

func makeSegment(chrom string, begin, end, copyNumber int, qScore float64, bins int) *m.Segment {
	counts := make([]float64, bins)
	for i := range counts {
		counts[i] = 1
	}

	seg := m.NewSegment(m.GenomicInterval{Chromosome: chrom, Begin: begin, End: end}, counts)
	seg.CopyNumber = copyNumber
	seg.QScore = qScore

	return seg
}

func totalBinCount(segments []*m.Segment) int {
	total := 0
	for _, seg := range segments {
		total += seg.BinCount()
	}

	return total
}

func noExclusions() *m.ExcludedRegionIndex {
	return m.NewExcludedRegionIndex(nil)
}

func TestMergeUsingExcludedIntervals(t *testing.T) {
	t.Run("returns empty input unchanged", func(t *testing.T) {
		merged := MergeUsingExcludedIntervals(nil, 10, noExclusions())
		if len(merged) != 0 {
			t.Fatalf("expected no segments, got %d", len(merged))
		}
	})

	t.Run("backward candidate wins quality ties", func(t *testing.T) {
		prev := makeSegment("chr1", 0, 10, 1, 5, 4)
		small := makeSegment("chr1", 10, 12, 2, 1, 1)
		next := makeSegment("chr1", 12, 22, 3, 5, 4)

		merged := MergeUsingExcludedIntervals([]*m.Segment{prev, small, next}, 10, noExclusions())

		if len(merged) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(merged))
		}
		if merged[0] != prev {
			t.Fatal("expected the backward candidate to survive first")
		}
		if prev.Begin != 0 || prev.End != 12 {
			t.Errorf("expected absorber bounds 0-12, got %d-%d", prev.Begin, prev.End)
		}
		if prev.BinCount() != 5 {
			t.Errorf("expected absorber to hold 5 bins, got %d", prev.BinCount())
		}
		if next.Begin != 12 || next.End != 22 {
			t.Errorf("forward candidate must be untouched, got %d-%d", next.Begin, next.End)
		}
	})

	t.Run("forward merge absorbs all intervening undersized segments", func(t *testing.T) {
		first := makeSegment("chr1", 0, 5, 1, 3, 2)
		second := makeSegment("chr1", 5, 8, 2, 3, 1)
		big := makeSegment("chr1", 8, 18, 3, 7, 6)

		merged := MergeUsingExcludedIntervals([]*m.Segment{first, second, big}, 10, noExclusions())

		if len(merged) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(merged))
		}
		if merged[0] != big {
			t.Fatal("expected the forward candidate to be the absorber")
		}
		if big.Begin != 0 || big.End != 18 {
			t.Errorf("expected bounds 0-18, got %d-%d", big.Begin, big.End)
		}
		if big.BinCount() != 9 {
			t.Errorf("expected 9 bins after absorbing, got %d", big.BinCount())
		}
	})

	t.Run("forbidden interval blocks absorption", func(t *testing.T) {
		excluded := m.NewExcludedRegionIndex([]m.GenomicInterval{
			{Chromosome: "chr1", Begin: 15, End: 16},
		})

		big := makeSegment("chr1", 0, 10, 2, 5, 4)
		small := makeSegment("chr1", 20, 25, 3, 1, 1)

		merged := MergeUsingExcludedIntervals([]*m.Segment{big, small}, 10, excluded)

		if len(merged) != 2 {
			t.Fatalf("expected the forbidden gap to block merging, got %d segments", len(merged))
		}
	})

	t.Run("zero quality score means no eligible neighbor", func(t *testing.T) {
		big := makeSegment("chr1", 0, 10, 1, 0, 4)
		small := makeSegment("chr1", 10, 12, 2, 0, 1)

		merged := MergeUsingExcludedIntervals([]*m.Segment{big, small}, 10, noExclusions())

		if len(merged) != 2 {
			t.Fatalf("expected undersized segment to be kept, got %d segments", len(merged))
		}
	})

	t.Run("chromosome boundary stops the neighbor search", func(t *testing.T) {
		other := makeSegment("chr1", 0, 10, 1, 9, 4)
		small := makeSegment("chr2", 0, 4, 2, 1, 1)

		merged := MergeUsingExcludedIntervals([]*m.Segment{other, small}, 10, noExclusions())

		if len(merged) != 2 {
			t.Fatalf("expected no cross-chromosome merge, got %d segments", len(merged))
		}
	})

	t.Run("adjacent identical calls collapse", func(t *testing.T) {
		left := makeSegment("chr1", 0, 10, 2, 5, 4)
		right := makeSegment("chr1", 10, 20, 2, 6, 4)

		merged := MergeUsingExcludedIntervals([]*m.Segment{left, right}, 10, noExclusions())

		if len(merged) != 1 {
			t.Fatalf("expected adjacent equal calls to merge, got %d segments", len(merged))
		}
		if left.Begin != 0 || left.End != 20 {
			t.Errorf("expected the earlier segment to absorb, got %d-%d", left.Begin, left.End)
		}
	})

	t.Run("forbidden interval breaks an identical-call chain", func(t *testing.T) {
		excluded := m.NewExcludedRegionIndex([]m.GenomicInterval{
			{Chromosome: "chr1", Begin: 12, End: 13},
		})

		left := makeSegment("chr1", 0, 10, 2, 5, 4)
		right := makeSegment("chr1", 14, 24, 2, 6, 4)

		merged := MergeUsingExcludedIntervals([]*m.Segment{left, right}, 10, excluded)

		if len(merged) != 2 {
			t.Fatalf("expected the forbidden gap to break the chain, got %d segments", len(merged))
		}
	})

	t.Run("preserves every observation and is idempotent", func(t *testing.T) {
		segments := []*m.Segment{
			makeSegment("chr1", 0, 100, 2, 10, 10),
			makeSegment("chr1", 100, 103, 3, 2, 1),
			makeSegment("chr1", 103, 250, 1, 8, 15),
			makeSegment("chr1", 260, 263, 1, 1, 1),
			makeSegment("chr2", 0, 50, 2, 4, 5),
			makeSegment("chr2", 50, 55, 4, 3, 1),
		}
		inputBins := totalBinCount(segments)

		merged := MergeUsingExcludedIntervals(segments, 50, noExclusions())

		if got := totalBinCount(merged); got != inputBins {
			t.Fatalf("expected %d bins preserved, got %d", inputBins, got)
		}

		again := MergeUsingExcludedIntervals(merged, 50, noExclusions())
		if len(again) != len(merged) {
			t.Fatalf("expected idempotent re-run, got %d then %d segments", len(merged), len(again))
		}
		for i := range again {
			if again[i] != merged[i] {
				t.Fatalf("expected identical segment list on re-run at index %d", i)
			}
		}
	})
}

func TestMergeBySpan(t *testing.T) {
	t.Run("ignores excluded regions entirely", func(t *testing.T) {
		// The same layout blocks under the exclusion-aware policy.
		big := makeSegment("chr1", 0, 10, 2, 5, 4)
		small := makeSegment("chr1", 20, 25, 3, 1, 1)

		merged := MergeBySpan([]*m.Segment{big, small}, 10, 100)

		if len(merged) != 1 {
			t.Fatalf("expected span merge, got %d segments", len(merged))
		}
		if big.Begin != 0 || big.End != 25 {
			t.Errorf("expected bounds 0-25, got %d-%d", big.Begin, big.End)
		}
	})

	t.Run("gap larger than the maximum span disqualifies", func(t *testing.T) {
		big := makeSegment("chr1", 0, 10, 2, 5, 4)
		small := makeSegment("chr1", 20, 25, 3, 1, 1)

		merged := MergeBySpan([]*m.Segment{big, small}, 10, 9)

		if len(merged) != 2 {
			t.Fatalf("expected no merge across a 10bp gap with max span 9, got %d segments", len(merged))
		}
	})

	t.Run("gap equal to the maximum span merges", func(t *testing.T) {
		big := makeSegment("chr1", 0, 10, 2, 5, 4)
		small := makeSegment("chr1", 20, 25, 3, 1, 1)

		merged := MergeBySpan([]*m.Segment{big, small}, 10, 10)

		if len(merged) != 1 {
			t.Fatalf("expected merge across a gap equal to max span, got %d segments", len(merged))
		}
	})

	t.Run("zero quality score is an eligible neighbor", func(t *testing.T) {
		big := makeSegment("chr1", 0, 10, 1, 0, 4)
		small := makeSegment("chr1", 10, 12, 2, 0, 1)

		merged := MergeBySpan([]*m.Segment{big, small}, 10, 100)

		if len(merged) != 1 {
			t.Fatalf("expected q=0 neighbor to absorb under the span policy, got %d segments", len(merged))
		}
	})

	t.Run("returns empty input unchanged", func(t *testing.T) {
		merged := MergeBySpan(nil, 10, 100)
		if len(merged) != 0 {
			t.Fatalf("expected no segments, got %d", len(merged))
		}
	})
}
