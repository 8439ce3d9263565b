package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/binshift/cnvmerge/internal/config"
	"github.com/binshift/cnvmerge/internal/domain"
	m "github.com/binshift/cnvmerge/internal/model"
)

var runConfigFlag string
var runSegmentsFlag string
var runBinsFlag string
var runVariantsFlag string
var runExcludedFlag string
var runPloidyFlag string
var runOutputFlag string
var runModelFlag string
var runPolicyFlag string
var runSampleFlag string
var runMinCallSizeFlag int
var runMaxMergeSpanFlag int
var runParallelFlag int
var runShowCallsFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Consolidate segments and emit copy-number calls",
		Long: `Run loads a segment file plus its per-bin coverage (and optionally per-SNP
allele frequencies), merges undersized and identically-called segments under
the selected policy, rescores every surviving segment and writes the calls
as VCF.

The exclusion-aware policy ("excluded-intervals") refuses to merge across
any region listed in the excluded-regions BED. The span policy ("span")
ignores excluded regions and merges across gaps up to --max-merge-span.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := resolveRunConfig()
			if err != nil {
				return err
			}

			model, _ := m.ParseScoringModel(cfg.Model)

			policy := domain.PolicyExcludedIntervals
			if cfg.Policy == config.PolicySpan {
				policy = domain.PolicySpan
			}

			result, err := workflow.Consolidate(domain.ConsolidateArgs{
				SegmentFile:      m.Path(runSegmentsFlag),
				BinFile:          m.Path(runBinsFlag),
				VariantFile:      m.Path(runVariantsFlag),
				ExcludedFile:     m.Path(runExcludedFlag),
				PloidyFile:       m.Path(runPloidyFlag),
				OutputFile:       m.Path(runOutputFlag),
				Model:            model,
				Policy:           policy,
				MinimumCallSize:  cfg.MinimumCallSize,
				MaximumMergeSpan: cfg.MaximumMergeSpan,
				Threads:          runParallelFlag,
				SampleName:       cfg.SampleName,
			})
			if err != nil {
				return err
			}

			if err := ui.DisplaySummaries(result.Summaries); err != nil {
				return err
			}

			if runShowCallsFlag {
				return ui.DisplayCalls(result.Calls)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&runConfigFlag, "config", "", "YAML run configuration (flags override file values)")
	cmd.Flags().StringVar(&runSegmentsFlag, "segments", "", "segment file (TSV, sorted by chromosome and position)")
	cmd.Flags().StringVar(&runBinsFlag, "bins", "", "per-bin coverage file (TSV)")
	cmd.Flags().StringVar(&runVariantsFlag, "variants", "", "per-SNP allele frequency file (TSV)")
	cmd.Flags().StringVar(&runExcludedFlag, "excluded", "", "BED of regions merging may not cross")
	cmd.Flags().StringVar(&runPloidyFlag, "ploidy", "", "BED of reference ploidy per region")
	cmd.Flags().StringVarP(&runOutputFlag, "output", "o", "", "output VCF path")
	cmd.Flags().StringVar(&runModelFlag, "model", "", "scoring model: logistic, logistic-germline, bincount-linear, generalized-linear")
	cmd.Flags().StringVar(&runPolicyFlag, "policy", "", "merge policy: excluded-intervals or span")
	cmd.Flags().StringVar(&runSampleFlag, "sample", "", "sample name for the VCF column header")
	cmd.Flags().IntVar(&runMinCallSizeFlag, "min-call-size", 0, "segments spanning fewer bases seek an absorbing neighbor")
	cmd.Flags().IntVar(&runMaxMergeSpanFlag, "max-merge-span", 0, "largest gap the span policy merges across")
	cmd.Flags().IntVarP(&runParallelFlag, "parallel", "p", 1, "number of chromosomes merged concurrently")
	cmd.Flags().BoolVar(&runShowCallsFlag, "show-calls", false, "list the consolidated calls after the summary")

	_ = cmd.MarkFlagRequired("segments")
	_ = cmd.MarkFlagRequired("bins")

	return cmd
}

// resolveRunConfig layers the run flags over the config file (or defaults).
func resolveRunConfig() (*config.Config, error) {
	cfg := config.Default()

	if runConfigFlag != "" {
		loaded, err := config.Load(runConfigFlag)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if runModelFlag != "" {
		cfg.Model = runModelFlag
	}

	if runPolicyFlag != "" {
		cfg.Policy = runPolicyFlag
	}

	if runSampleFlag != "" {
		cfg.SampleName = runSampleFlag
	}

	if runMinCallSizeFlag > 0 {
		cfg.MinimumCallSize = runMinCallSizeFlag
	}

	if runMaxMergeSpanFlag > 0 {
		cfg.MaximumMergeSpan = runMaxMergeSpanFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("run configuration: %w", err)
	}

	return cfg, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
