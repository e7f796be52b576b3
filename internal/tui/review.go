// Package tui provides the interactive diff review screen: the enhanced
// instruction's diff is shown in a scrollable viewport and the user accepts
// or rejects it before anything is written.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	acceptHint = footerStyle.Render("y/enter accept · n/esc reject · ↑/↓ scroll")
)

type model struct {
	title    string
	diff     string
	viewport viewport.Model
	ready    bool
	accepted bool
}

func newModel(title, diff string) model {
	return model{title: title, diff: diff}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			m.accepted = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.accepted = false
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		contentHeight := msg.Height - headerHeight - footerHeight
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentHeight)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading diff..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m model) headerView() string {
	return titleStyle.Render("Review enhancement: " + m.title)
}

func (m model) footerView() string {
	scroll := footerStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	return acceptHint + strings.Repeat(" ", 2) + scroll
}

// Review shows diff (already colorized for the terminal) and blocks until the
// user accepts or rejects it.
func Review(title, diff string) (bool, error) {
	p := tea.NewProgram(newModel(title, diff), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(model)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return m.accepted, nil
}
