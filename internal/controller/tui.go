package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/binshift/cnvmerge/internal/domain"
	m "github.com/binshift/cnvmerge/internal/model"
)

var (
	chromStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	mergedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	summaryHead = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// ChromosomeQueued implements domain.Progress.
func (t *TUI) ChromosomeQueued(chrom string, segments int) {
	_, _ = fmt.Fprintf(t.output, "%s queued with %d segments\n", chromStyle.Render(chrom), segments)
}

// ChromosomeMerged implements domain.Progress.
func (t *TUI) ChromosomeMerged(chrom string, segmentsIn, segmentsOut int) {
	_, _ = fmt.Fprintf(t.output, "%s %s\n",
		chromStyle.Render(chrom),
		mergedStyle.Render(fmt.Sprintf("%d -> %d segments", segmentsIn, segmentsOut)))
}

// DisplaySummaries prints the per-chromosome summary.
func (t *TUI) DisplaySummaries(summaries []domain.ChromosomeSummary) error {
	_, _ = fmt.Fprintln(t.output, summaryHead.Render("chromosome   in  out  meanQ"))

	for _, summary := range summaries {
		_, _ = fmt.Fprintf(t.output, "%-12s %4d %4d %6.1f\n",
			summary.Chromosome, summary.SegmentsIn, summary.SegmentsOut, summary.MeanQScore)
	}

	return nil
}

// DisplayCalls shows the consolidated calls using a Bubble Tea list.
func (t *TUI) DisplayCalls(calls []m.Call) error {
	model := newCallModel(calls)

	// Get initial terminal size
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.plainView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
