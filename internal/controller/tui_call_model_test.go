package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	m "github.com/binshift/cnvmerge/internal/model"
)

func sampleCalls(n int) []m.Call {
	calls := make([]m.Call, 0, n)
	for i := 0; i < n; i++ {
		seg := m.NewSegment(m.GenomicInterval{Chromosome: "chr1", Begin: i * 1000, End: (i + 1) * 1000}, []float64{30})
		seg.CopyNumber = 2
		calls = append(calls, m.Call{Segment: seg, Type: m.CnvReference, ReferenceCopyNumber: 2})
	}

	return calls
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "", truncateToWidth("anything", 0))
	assert.Equal(t, "short", truncateToWidth("short", 20))
	assert.Equal(t, "…", truncateToWidth("toolong", 1))
	assert.Equal(t, "too…", truncateToWidth("toolong", 4))
}

func TestCallModelQuits(t *testing.T) {
	model := newCallModel(sampleCalls(3))

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	cm, ok := updated.(callModel)
	assert.True(t, ok)
	assert.True(t, cm.quitting)
	assert.NotNil(t, cmd)
}

func TestCallModelPagination(t *testing.T) {
	model := newCallModel(sampleCalls(5))
	assert.False(t, model.needsPagination(), "unknown terminal size never paginates")

	model.height = 4
	assert.True(t, model.needsPagination())

	model.height = 40
	assert.False(t, model.needsPagination())
}

func TestCallModelPlainView(t *testing.T) {
	model := newCallModel(sampleCalls(2))

	view := model.plainView()
	assert.Contains(t, view, "chr1:1-1000")
	assert.Contains(t, view, "2 calls")
}
