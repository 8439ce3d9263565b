package controller

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/binshift/cnvmerge/internal/domain"
	m "github.com/binshift/cnvmerge/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// ChromosomeQueued implements domain.Progress.
func (s *SimpleUI) ChromosomeQueued(chrom string, segments int) {
	s.printf("queued %s (%d segments)\n", chrom, segments)
}

// ChromosomeMerged implements domain.Progress.
func (s *SimpleUI) ChromosomeMerged(chrom string, segmentsIn, segmentsOut int) {
	s.printf("merged %s: %d -> %d segments\n", chrom, segmentsIn, segmentsOut)
}

// DisplaySummaries prints the per-chromosome summary as a table.
func (s *SimpleUI) DisplaySummaries(summaries []domain.ChromosomeSummary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Chromosome", "Segments In", "Segments Out", "Mean Q"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	totalIn, totalOut := 0, 0

	for _, summary := range summaries {
		table.Append([]string{
			summary.Chromosome,
			strconv.Itoa(summary.SegmentsIn),
			strconv.Itoa(summary.SegmentsOut),
			fmt.Sprintf("%.1f", summary.MeanQScore),
		})

		totalIn += summary.SegmentsIn
		totalOut += summary.SegmentsOut
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(summaries)),
		strconv.Itoa(totalIn),
		strconv.Itoa(totalOut),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayCalls prints one line per consolidated call.
func (s *SimpleUI) DisplayCalls(calls []m.Call) error {
	for _, call := range calls {
		s.printf("%s\n", formatCall(call))
	}

	s.printf("%d calls\n", len(calls))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatCall(call m.Call) string {
	seg := call.Segment

	return fmt.Sprintf("%s:%d-%d\tCN=%d\tQ=%.0f\t%s",
		seg.Chromosome, seg.Begin+1, seg.End, seg.CopyNumber, seg.QScore, call.Type)
}
