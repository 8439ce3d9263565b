// Package domain implements the segment consolidation core: the two-policy
// merge engine, the q-score models and the CNV classifier.
package domain

import (
	m "github.com/binshift/cnvmerge/internal/model"
)

// GapPredicate reports whether the gap [start, end] on chrom may be crossed
// when merging two segments.
type GapPredicate func(chrom string, start, end int) bool

// mergePolicy bundles the two knobs that distinguish the merge policies: the
// gap-mergeability test and the neighbor-eligibility test applied to a
// candidate's quality score. The sentinel is what an unsuccessful neighbor
// search leaves behind; the two policies use different sentinels and
// different comparison strictness, and that asymmetry is kept as-is.
type mergePolicy struct {
	mergeable  GapPredicate
	noNeighbor float64
	eligible   func(q float64) bool
}

// MergeUsingExcludedIntervals collapses undersized segments into their
// higher-quality neighbors, refusing to merge across any excluded region.
// Quality scores are non-negative under this policy, so a score of exactly 0
// doubles as the "no eligible neighbor" sentinel. The input must be sorted by
// chromosome then position.
func MergeUsingExcludedIntervals(segments []*m.Segment, minimumCallSize int, excluded *m.ExcludedRegionIndex) []*m.Segment {
	policy := mergePolicy{
		mergeable: func(chrom string, start, end int) bool {
			return !excluded.SpansForbiddenInterval(chrom, start, end)
		},
		noNeighbor: 0,
		eligible:   func(q float64) bool { return q > 0 },
	}

	return mergeSegments(segments, minimumCallSize, policy)
}

// MergeBySpan collapses undersized segments into neighbors no farther than
// maximumMergeSpan base pairs away, ignoring excluded regions entirely. Zero
// is a legitimate quality score here, so the no-neighbor sentinel is -1 and
// eligibility is q >= 0.
func MergeBySpan(segments []*m.Segment, minimumCallSize, maximumMergeSpan int) []*m.Segment {
	policy := mergePolicy{
		mergeable: func(_ string, start, end int) bool {
			return end-start <= maximumMergeSpan
		},
		noNeighbor: -1,
		eligible:   func(q float64) bool { return q >= 0 },
	}

	return mergeSegments(segments, minimumCallSize, policy)
}

// mergeSegments runs the shared two-phase skeleton: absorb undersized
// segments into eligible neighbors, then merge adjacent segments carrying the
// same call. Each phase returns a new list referencing mutated survivors.
func mergeSegments(segments []*m.Segment, minimumCallSize int, policy mergePolicy) []*m.Segment {
	if len(segments) == 0 {
		return segments
	}

	return mergeAdjacentCalls(absorbUndersized(segments, minimumCallSize, policy), policy)
}

// absorbUndersized is phase 1. Segments spanning at least minimumCallSize
// pass through. A smaller segment looks for the nearest large-enough neighbor
// in each direction, stopping at chromosome boundaries and unmergeable gaps.
// The backward neighbor wins ties; a forward merge absorbs every intervening
// undersized segment in one step and the scan jumps to the absorber.
func absorbUndersized(segments []*m.Segment, minimumCallSize int, policy mergePolicy) []*m.Segment {
	out := make([]*m.Segment, 0, len(segments))

	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg.Span() >= minimumCallSize {
			out = append(out, seg)
			continue
		}

		prevQ, prevIndex := policy.noNeighbor, -1

		for j := i - 1; j >= 0; j-- {
			candidate := segments[j]
			if candidate.Chromosome != seg.Chromosome {
				break
			}

			if !policy.mergeable(seg.Chromosome, candidate.End, seg.Begin) {
				break
			}

			if candidate.Span() >= minimumCallSize {
				prevQ, prevIndex = candidate.QScore, j
				break
			}
		}

		nextQ, nextIndex := policy.noNeighbor, -1

		for j := i + 1; j < len(segments); j++ {
			candidate := segments[j]
			if candidate.Chromosome != seg.Chromosome {
				break
			}

			if !policy.mergeable(seg.Chromosome, seg.End, candidate.Begin) {
				break
			}

			if candidate.Span() >= minimumCallSize {
				nextQ, nextIndex = candidate.QScore, j
				break
			}
		}

		switch {
		case policy.eligible(prevQ) && prevQ >= nextQ:
			segments[prevIndex].MergeIn(seg)
		case policy.eligible(nextQ):
			for k := i; k < nextIndex; k++ {
				segments[nextIndex].MergeIn(segments[k])
			}
			// The loop increment lands the scan on the absorber.
			i = nextIndex - 1
		default:
			out = append(out, seg)
		}
	}

	return out
}

// mergeAdjacentCalls is phase 2: consecutive same-chromosome segments with
// equal copy-number calls are absorbed into the earlier one, as long as the
// gap between them passes the policy's predicate.
func mergeAdjacentCalls(segments []*m.Segment, policy mergePolicy) []*m.Segment {
	if len(segments) == 0 {
		return segments
	}

	out := []*m.Segment{segments[0]}
	current := segments[0]

	for _, seg := range segments[1:] {
		if seg.Chromosome == current.Chromosome &&
			seg.CopyNumber == current.CopyNumber &&
			policy.mergeable(current.Chromosome, current.End, seg.Begin) {
			current.MergeIn(seg)
			continue
		}

		out = append(out, seg)
		current = seg
	}

	return out
}
