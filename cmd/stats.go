package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/binshift/cnvmerge/internal/model"
)

// statsCmd represents the stats command.
var statsCmd = newStatsCmd()

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <segment-file>",
		Short: "Summarize a segment file without merging it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			summaries, err := workflow.Stats(m.Path(args[0]))
			if err != nil {
				return err
			}

			return ui.DisplaySummaries(summaries)
		},
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
