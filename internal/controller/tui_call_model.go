package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/binshift/cnvmerge/internal/model"
)

// callItem wraps one call for the Bubble Tea list component.
type callItem struct {
	call m.Call
}

func (i callItem) FilterValue() string {
	return i.call.Segment.Chromosome
}

// callDelegate renders one call per row, colored by variant type.
type callDelegate struct{}

func (d callDelegate) Height() int  { return 1 }
func (d callDelegate) Spacing() int { return 0 }
func (d callDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d callDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	ci, ok := item.(callItem)
	if !ok {
		return
	}

	line := formatCall(ci.call)

	style := typeStyle(ci.call.Type)
	if index == lm.Index() {
		style = style.Bold(true).Background(lipgloss.Color("8"))
	}

	_, _ = fmt.Fprint(w, style.Render(truncateToWidth(line, lm.Width())))
}

func typeStyle(t m.CnvType) lipgloss.Style {
	switch t {
	case m.CnvGain:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case m.CnvLoss:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case m.CnvLossOfHeterozygosity:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// callModel is the Bubble Tea model for browsing consolidated calls.
type callModel struct {
	calls    []m.Call
	callList list.Model
	width    int
	height   int
	quitting bool
}

func newCallModel(calls []m.Call) callModel {
	items := make([]list.Item, 0, len(calls))
	for _, call := range calls {
		items = append(items, callItem{call: call})
	}

	callList := list.New(items, callDelegate{}, 80, 20)
	callList.SetShowPagination(false)
	callList.SetShowFilter(true)
	callList.SetShowHelp(false)
	callList.SetShowTitle(false)
	callList.SetShowStatusBar(false)
	callList.FilterInput.Placeholder = "Filter by chromosome…"

	return callModel{
		calls:    calls,
		callList: callList,
	}
}

func (cm callModel) Init() tea.Cmd {
	return nil
}

func (cm callModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height
		cm.callList.SetWidth(cm.width)
		cm.callList.SetHeight(cm.height - 1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			cm.quitting = true
			return cm, tea.Quit
		default:
			cm.callList, cmd = cm.callList.Update(msg)
			return cm, cmd
		}
	}

	return cm, cmd
}

func (cm callModel) View() string {
	if cm.quitting {
		return ""
	}

	return cm.callList.View() + "\n" + fmt.Sprintf("%d calls (q to quit)", len(cm.calls))
}

// needsPagination reports whether the call list exceeds the terminal height.
func (cm callModel) needsPagination() bool {
	if cm.height == 0 {
		return false
	}

	return len(cm.calls)+2 > cm.height
}

// plainView renders all calls without the interactive list chrome.
func (cm callModel) plainView() string {
	var sb strings.Builder

	for _, call := range cm.calls {
		sb.WriteString(typeStyle(call.Type).Render(formatCall(call)))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%d calls\n", len(cm.calls))

	return sb.String()
}
