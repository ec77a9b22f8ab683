// Package picker is the interactive plan prompt.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/remarcmij/hyf-plan/internal/schedule"
)

// ErrCanceled is returned when the user leaves the prompt without choosing.
var ErrCanceled = errors.New("selection canceled")

// ErrNoChoices is returned when there is nothing to pick from.
var ErrNoChoices = errors.New("no upcoming plans")

const title = "Which module plan?"

type choiceItem struct {
	choice schedule.Choice
}

func (i choiceItem) Title() string       { return i.choice.ID }
func (i choiceItem) Description() string { return "first lecture " + i.choice.FirstDate }
func (i choiceItem) FilterValue() string { return i.choice.Label() }

type model struct {
	list     list.Model
	selected string
	canceled bool
}

func newModel(choices []schedule.Choice) model {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{choice: c}
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return model{list: l}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, max(msg.Height-2, 5))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(choiceItem); ok {
				m.selected = item.choice.Label()
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.selected != "" || m.canceled {
		return ""
	}
	return m.list.View()
}

// Pick shows choices in a list and returns the label of the chosen one,
// in the "<id> <firstDate>" form of schedule.Choice.Label.
func Pick(ctx context.Context, in io.Reader, out io.Writer, choices []schedule.Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	p := tea.NewProgram(newModel(choices),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.canceled || m.selected == "" {
		return "", ErrCanceled
	}
	return m.selected, nil
}
