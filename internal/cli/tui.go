package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slotforge/slotforge/pkg/profile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ProfileListModel - Interactive profile selection
// =============================================================================

// ProfileListModel is the bubbletea model for interactive profile selection.
type ProfileListModel struct {
	Specs    []profile.Spec
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewProfileListModel creates a new profile list model.
func NewProfileListModel(specs []profile.Spec) ProfileListModel {
	return ProfileListModel{
		Specs:  specs,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ProfileListModel) Init() tea.Cmd {
	return nil
}

func (m ProfileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Specs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Specs[m.Cursor].Name
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ProfileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Profile"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Specs) {
		end = len(m.Specs)
	}

	for i := m.Offset; i < end; i++ {
		s := m.Specs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		dims := fmt.Sprintf("%g x %g %s", s.Width, s.Height, s.Unit)
		line := cursor + s.Name
		if i == m.Cursor {
			line = listSelectedStyle.Render(line)
		} else {
			line = listNormalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(dims))
		b.WriteString("\n")
	}

	if end < len(m.Specs) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n… %d more", len(m.Specs)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// pickProfile runs the interactive profile picker and returns the chosen
// catalog name. It falls back to the default profile when stdout is not a
// terminal, and returns "" when the user cancels.
func pickProfile(catalog *profile.Catalog) (string, error) {
	if !isTerminal(os.Stdout) {
		return profile.DefaultProfile, nil
	}

	model := NewProfileListModel(catalog.Specs())
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("profile picker: %w", err)
	}
	if m, ok := final.(ProfileListModel); ok {
		return m.Selected, nil
	}
	return "", nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
