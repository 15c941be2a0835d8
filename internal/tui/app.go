// Package tui is sift's interactive mode: one file, a live-filtered view
// of its lines. Matching goes through the same engine predicate as the
// CLI, so what matches here matches there.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/search"
)

type App struct {
	cfg           *config.Config
	path          string
	lines         []string
	matches       []string
	input         textinput.Model
	viewport      viewport.Model
	caseSensitive bool
	width         int
	height        int
	ready         bool

	headerStyle lipgloss.Style
	countStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewApp creates the interactive view over the given file lines.
// caseSensitive seeds the initial mode and follows the same convention as
// the CLI (IGNORE_CASE present means insensitive).
func NewApp(cfg *config.Config, path string, lines []string, caseSensitive bool) *App {
	ti := textinput.New()
	ti.Placeholder = "Type a pattern..."
	ti.Prompt = "› "
	ti.Focus()

	return &App{
		cfg:           cfg,
		path:          path,
		lines:         lines,
		matches:       lines,
		input:         ti,
		viewport:      viewport.New(0, 0),
		caseSensitive: caseSensitive,
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.UI.Colors.Primary)).
			Bold(true),
		countStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.UI.Colors.Accent)),
		mutedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.UI.Colors.Muted)),
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = min(msg.Width, a.cfg.UI.PreviewWidth)
		a.viewport.Height = max(msg.Height-3, 1)
		a.ready = true
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab":
			a.caseSensitive = !a.caseSensitive
			a.refresh()
			return a, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.refresh()
	return a, cmd
}

// refresh recomputes matches for the current pattern and mode. An empty
// pattern shows the whole file.
func (a *App) refresh() {
	pattern := a.input.Value()
	if pattern == "" {
		a.matches = a.lines
	} else {
		m := search.NewMatcher(pattern, a.caseSensitive)
		var matches []string
		for _, line := range a.lines {
			if m.Match(line) {
				matches = append(matches, line)
			}
		}
		a.matches = matches
	}
	a.viewport.SetContent(strings.Join(a.matches, "\n"))
	a.viewport.GotoTop()
}

func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}

	mode := "case-sensitive"
	if !a.caseSensitive {
		mode = "ignore-case"
	}

	header := fmt.Sprintf("%s  %s  %s",
		a.headerStyle.Render("sift "+a.path),
		a.countStyle.Render(fmt.Sprintf("%d/%d", len(a.matches), len(a.lines))),
		a.mutedStyle.Render(mode+" · tab toggles · esc quits"))

	return header + "\n" + a.input.View() + "\n" + a.viewport.View()
}

// Matches exposes the current result set for tests.
func (a *App) Matches() []string {
	return a.matches
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
