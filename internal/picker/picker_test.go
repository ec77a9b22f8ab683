package picker

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remarcmij/hyf-plan/internal/schedule"
)

var choices = []schedule.Choice{
	{ID: "c2.js", FirstDate: "15-06-2030"},
	{ID: "cs101.algo1", FirstDate: "01-01-2099"},
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func TestModel_EnterSelectsHighlighted(t *testing.T) {
	m := newModel(choices)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "c2.js 15-06-2030", m.selected)
	assert.Equal(t, "c2.js", schedule.IDFromLabel(m.selected))
	assert.False(t, m.canceled)
	assert.Empty(t, m.View())
}

func TestModel_MoveThenSelect(t *testing.T) {
	m := newModel(choices)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "cs101.algo1 01-01-2099", m.selected)
}

func TestModel_Cancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := update(t, newModel(choices), key)
			assert.True(t, m.canceled)
			assert.Empty(t, m.selected)
		})
	}
}

func TestModel_ViewListsChoices(t *testing.T) {
	m := update(t, newModel(choices), tea.WindowSizeMsg{Width: 80, Height: 20})
	view := m.View()
	assert.Contains(t, view, title)
	assert.Contains(t, view, "c2.js")
	assert.Contains(t, view, "first lecture 15-06-2030")
}

func TestPick_NoChoices(t *testing.T) {
	_, err := Pick(context.Background(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}
