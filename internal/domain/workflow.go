package domain

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/binshift/cnvmerge/internal/adapter"
	"github.com/binshift/cnvmerge/internal/log"
	m "github.com/binshift/cnvmerge/internal/model"
)

// MergePolicyKind selects which merge policy a consolidation run uses.
type MergePolicyKind int

// Available merge policies.
const (
	// PolicyExcludedIntervals merges around forbidden intervals.
	PolicyExcludedIntervals MergePolicyKind = iota
	// PolicySpan merges within a maximum gap, ignoring excluded regions.
	PolicySpan
)

// ConsolidateArgs holds the inputs of one consolidation run. VariantFile,
// ExcludedFile and PloidyFile may be empty.
type ConsolidateArgs struct {
	SegmentFile  m.Path
	BinFile      m.Path
	VariantFile  m.Path
	ExcludedFile m.Path
	PloidyFile   m.Path
	OutputFile   m.Path

	Model            m.ScoringModel
	Policy           MergePolicyKind
	MinimumCallSize  int
	MaximumMergeSpan int
	Threads          int
	SampleName       string
}

// ChromosomeSummary reports what consolidation did to one chromosome.
type ChromosomeSummary struct {
	Chromosome  string
	SegmentsIn  int
	SegmentsOut int
	MeanQScore  float64
}

// ConsolidateResult is the outcome of one consolidation run.
type ConsolidateResult struct {
	Calls     []m.Call
	Summaries []ChromosomeSummary
}

// Progress receives per-chromosome notifications while a run executes.
type Progress interface {
	ChromosomeQueued(chrom string, segments int)
	ChromosomeMerged(chrom string, segmentsIn, segmentsOut int)
}

// NopProgress discards all notifications.
type NopProgress struct{}

// ChromosomeQueued implements Progress.
func (NopProgress) ChromosomeQueued(string, int) {}

// ChromosomeMerged implements Progress.
func (NopProgress) ChromosomeMerged(string, int, int) {}

// Workflow defines the consolidation operations behind the CLI.
type Workflow interface {
	Consolidate(args ConsolidateArgs) (*ConsolidateResult, error)
	Stats(segmentFile m.Path) ([]ChromosomeSummary, error)
}

type workflow struct {
	segments adapter.SegmentSource
	regions  adapter.RegionSource
	writer   adapter.CallWriter
	progress Progress
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(segments adapter.SegmentSource, regions adapter.RegionSource, writer adapter.CallWriter, progress Progress) Workflow {
	if progress == nil {
		progress = NopProgress{}
	}

	return &workflow{
		segments: segments,
		regions:  regions,
		writer:   writer,
		progress: progress,
	}
}

// Consolidate loads the inputs, merges each chromosome independently,
// refreshes q-scores under the selected model, classifies every surviving
// segment and writes the VCF.
func (w *workflow) Consolidate(args ConsolidateArgs) (*ConsolidateResult, error) {
	segments, excluded, ploidy, err := w.loadInputs(args)
	if err != nil {
		return nil, err
	}

	chromOrder, byChrom := groupByChromosome(segments)
	for _, chrom := range chromOrder {
		w.progress.ChromosomeQueued(chrom, len(byChrom[chrom]))
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	// Merging never crosses chromosome boundaries, so chromosomes are the
	// unit of parallelism.
	merged := make(map[string][]*m.Segment, len(chromOrder))

	var mu sync.Mutex
	var group errgroup.Group
	group.SetLimit(threads)

	for _, chrom := range chromOrder {
		chrom := chrom
		group.Go(func() error {
			in := byChrom[chrom]

			var out []*m.Segment
			switch args.Policy {
			case PolicyExcludedIntervals:
				out = MergeUsingExcludedIntervals(in, args.MinimumCallSize, excluded)
			case PolicySpan:
				out = MergeBySpan(in, args.MinimumCallSize, args.MaximumMergeSpan)
			default:
				return fmt.Errorf("unknown merge policy %d", args.Policy)
			}

			for _, seg := range out {
				seg.QScore = float64(ComputeQScore(args.Model, seg))
			}

			mu.Lock()
			merged[chrom] = out
			mu.Unlock()

			w.progress.ChromosomeMerged(chrom, len(in), len(out))
			log.Debugw("merged chromosome", "chromosome", chrom, "in", len(in), "out", len(out))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &ConsolidateResult{}

	for _, chrom := range chromOrder {
		out := merged[chrom]

		for _, seg := range out {
			reference := ploidy.ReferenceCopyNumber(seg.GenomicInterval)
			result.Calls = append(result.Calls, m.Call{
				Segment:             seg,
				Type:                Classify(seg.CopyNumber, reference, seg.MajorChromosomeCount),
				ReferenceCopyNumber: reference,
			})
		}

		result.Summaries = append(result.Summaries, summarize(chrom, len(byChrom[chrom]), out))
	}

	if args.OutputFile != "" {
		if err := w.writer.WriteFile(args.OutputFile, args.SampleName, result.Calls); err != nil {
			return nil, err
		}

		log.Infow("wrote calls", "file", string(args.OutputFile), "calls", len(result.Calls))
	}

	return result, nil
}

// Stats summarizes a segment file without merging it.
func (w *workflow) Stats(segmentFile m.Path) ([]ChromosomeSummary, error) {
	segments, err := w.segments.Segments(segmentFile)
	if err != nil {
		return nil, err
	}

	chromOrder, byChrom := groupByChromosome(segments)

	summaries := make([]ChromosomeSummary, 0, len(chromOrder))
	for _, chrom := range chromOrder {
		summaries = append(summaries, summarize(chrom, len(byChrom[chrom]), byChrom[chrom]))
	}

	return summaries, nil
}

func (w *workflow) loadInputs(args ConsolidateArgs) ([]*m.Segment, *m.ExcludedRegionIndex, *m.PloidyMap, error) {
	segments, err := w.segments.Segments(args.SegmentFile)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(segments) == 0 {
		return nil, nil, nil, fmt.Errorf("segment file %s contains no segments", args.SegmentFile)
	}

	if err := w.segments.AttachBins(segments, args.BinFile); err != nil {
		return nil, nil, nil, err
	}

	if args.VariantFile != "" {
		if err := w.segments.AttachVariants(segments, args.VariantFile); err != nil {
			return nil, nil, nil, err
		}
	}

	var excluded *m.ExcludedRegionIndex
	if args.ExcludedFile != "" {
		if excluded, err = w.regions.ExcludedRegions(args.ExcludedFile); err != nil {
			return nil, nil, nil, err
		}
	}

	var ploidy *m.PloidyMap
	if args.PloidyFile != "" {
		if ploidy, err = w.regions.Ploidy(args.PloidyFile); err != nil {
			return nil, nil, nil, err
		}
	}

	return segments, excluded, ploidy, nil
}

// groupByChromosome splits segments per chromosome, preserving the input's
// chromosome order so the concatenated output keeps the original sort.
func groupByChromosome(segments []*m.Segment) ([]string, map[string][]*m.Segment) {
	var order []string

	byChrom := make(map[string][]*m.Segment)
	for _, seg := range segments {
		if _, ok := byChrom[seg.Chromosome]; !ok {
			order = append(order, seg.Chromosome)
		}

		byChrom[seg.Chromosome] = append(byChrom[seg.Chromosome], seg)
	}

	return order, byChrom
}

func summarize(chrom string, segmentsIn int, out []*m.Segment) ChromosomeSummary {
	scores := make([]float64, 0, len(out))
	for _, seg := range out {
		scores = append(scores, seg.QScore)
	}

	summary := ChromosomeSummary{
		Chromosome:  chrom,
		SegmentsIn:  segmentsIn,
		SegmentsOut: len(out),
	}

	if len(scores) > 0 {
		summary.MeanQScore = stat.Mean(scores, nil)
	}

	return summary
}
