package model

import "fmt"

// CopyNumberUnset marks a copy-number field no caller has assigned yet.
const CopyNumberUnset = -1

// FilterPass is the default value of a segment's FILTER field.
const FilterPass = "PASS"

// Segment is one genomic interval annotated with per-bin coverage counts,
// per-SNP allele-frequency observations and a copy-number call. Segments are
// mutated in place by MergeIn until the merge passes settle on a final list.
type Segment struct {
	GenomicInterval

	// Counts holds per-bin coverage depths. Never empty once constructed;
	// append-only via MergeIn.
	Counts []float64

	// VariantFrequencies and VariantTotalCoverage hold per-SNP allele
	// frequency observations and their total depths, kept in lockstep.
	VariantFrequencies   []float64
	VariantTotalCoverage []int

	CopyNumber           int
	SecondBestCopyNumber int

	// MajorChromosomeCount is the count of the more-abundant allele at
	// heterozygous sites; nil when the caller never estimated it.
	MajorChromosomeCount *int

	QScore                float64
	ModelDistance         float64
	RunnerUpModelDistance float64

	Filter string
}

// NewSegment constructs a Segment over the given interval with the given
// per-bin counts. Copy-number fields start unset and the filter starts PASS.
func NewSegment(interval GenomicInterval, counts []float64) *Segment {
	return &Segment{
		GenomicInterval:      interval,
		Counts:               counts,
		CopyNumber:           CopyNumberUnset,
		SecondBestCopyNumber: CopyNumberUnset,
		Filter:               FilterPass,
	}
}

// BinCount returns the number of coverage bins accumulated in the segment.
func (s *Segment) BinCount() int {
	return len(s.Counts)
}

// AddVariantObservation appends one SNP allele-frequency observation.
func (s *Segment) AddVariantObservation(frequency float64, totalCoverage int) {
	s.VariantFrequencies = append(s.VariantFrequencies, frequency)
	s.VariantTotalCoverage = append(s.VariantTotalCoverage, totalCoverage)
}

// MergeIn absorbs other into s: counts, variant frequencies and coverages are
// concatenated and the interval bounds extend to the union of both segments.
// Any gap between the two intervals is swallowed, not re-validated. The
// absorbed segment must live on the same chromosome and s must already carry
// at least one bin; violating either is a programming error.
func (s *Segment) MergeIn(other *Segment) {
	if s.Chromosome != other.Chromosome {
		panic(fmt.Sprintf("cannot merge segment on %s into segment on %s", other.Chromosome, s.Chromosome))
	}

	if len(s.Counts) == 0 {
		panic(fmt.Sprintf("merge target %s:%d-%d has no bins", s.Chromosome, s.Begin, s.End))
	}

	s.Counts = append(s.Counts, other.Counts...)
	s.VariantFrequencies = append(s.VariantFrequencies, other.VariantFrequencies...)
	s.VariantTotalCoverage = append(s.VariantTotalCoverage, other.VariantTotalCoverage...)

	if other.Begin < s.Begin {
		s.Begin = other.Begin
	}

	if other.End > s.End {
		s.End = other.End
	}
}

// ID returns the distinct identifier used for the segment in VCF output.
func (s *Segment) ID() string {
	return fmt.Sprintf("CNV_%s_%d_%d", s.Chromosome, s.Begin+1, s.End)
}
