// Package cmd provides the root command and CLI setup for cnvmerge.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/binshift/cnvmerge/internal/adapter"
	"github.com/binshift/cnvmerge/internal/controller"
	"github.com/binshift/cnvmerge/internal/domain"
	"github.com/binshift/cnvmerge/internal/log"
)

const version = "1.0.0"

var segmentSource adapter.SegmentSource
var regionSource adapter.RegionSource
var callWriter adapter.CallWriter
var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	segmentSource = adapter.NewLocalSegmentSource()
	regionSource = adapter.NewLocalRegionSource()
	callWriter = adapter.NewVcfWriter("cnvmerge " + version)
	workflow = domain.NewWorkflow(segmentSource, regionSource, callWriter, ui)
}

var debugFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cnvmerge",
		Short: "Copy-number segment consolidation tool",
		Long: `Cnvmerge consolidates raw per-bin coverage and allele-frequency segments
into final copy-number call intervals. Undersized segments are absorbed into
their highest-confidence neighbors, adjacent identical calls are collapsed,
and every surviving call receives a calibrated quality score before being
written out as VCF.`,
		Version: version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return log.Init(debugFlag)
		},
	}
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer log.Sync()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
