// Package controller provides output adapters for displaying consolidation results.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/binshift/cnvmerge/internal/domain"
	m "github.com/binshift/cnvmerge/internal/model"
)

// UI defines the interface for displaying consolidation progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	domain.Progress

	// DisplaySummaries shows the per-chromosome consolidation summary.
	DisplaySummaries(summaries []domain.ChromosomeSummary) error
	// DisplayCalls shows the consolidated call list.
	DisplayCalls(calls []m.Call) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
