// Package ui implements the interactive fix-review screen for `trylint fix
// --tui`: every suggested rewrite is listed with its confidence tier and a
// before/after preview, and the user picks which ones to apply.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"trylint/internal/diag"
)

// FixCandidate is one reviewable suggestion.
type FixCandidate struct {
	Code          string
	Message       string
	Location      string // path:line:col
	Title         string
	Applicability diag.FixApplicability
	Before        []string
	After         []string
	// Accepted is the initial selection; callers usually preselect
	// everything under the configured confidence gate.
	Accepted bool
}

// ReviewResult reports the user's selection.
type ReviewResult struct {
	Accepted []int // indices into the candidate slice
	Aborted  bool
}

type reviewKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Apply  key.Binding
	Quit   key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.None, k.Apply, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Toggle}, {k.All, k.None, k.Apply, k.Quit}}
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		None:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply selection")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "abort")),
	}
}

type reviewModel struct {
	candidates []FixCandidate
	cursor     int
	keys       reviewKeyMap
	help       help.Model
	width      int
	height     int
	result     ReviewResult
	finished   bool
}

// NewReviewModel returns a Bubble Tea model over the given candidates.
func NewReviewModel(candidates []FixCandidate) *reviewModel {
	return &reviewModel{
		candidates: candidates,
		keys:       defaultReviewKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
}

// Review runs the interactive screen and returns the selection.
func Review(candidates []FixCandidate) (ReviewResult, error) {
	m := NewReviewModel(candidates)
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return ReviewResult{Aborted: true}, err
	}
	final, ok := out.(*reviewModel)
	if !ok {
		return ReviewResult{Aborted: true}, fmt.Errorf("unexpected model %T", out)
	}
	return final.result, nil
}

func (m *reviewModel) Init() tea.Cmd { return nil }

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.candidates) > 0 {
				m.candidates[m.cursor].Accepted = !m.candidates[m.cursor].Accepted
			}
		case key.Matches(msg, m.keys.All):
			for i := range m.candidates {
				m.candidates[i].Accepted = true
			}
		case key.Matches(msg, m.keys.None):
			for i := range m.candidates {
				m.candidates[i].Accepted = false
			}
		case key.Matches(msg, m.keys.Apply):
			m.finish(false)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.finish(true)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *reviewModel) finish(aborted bool) {
	m.finished = true
	m.result = ReviewResult{Aborted: aborted}
	if aborted {
		return
	}
	for i, c := range m.candidates {
		if c.Accepted {
			m.result.Accepted = append(m.result.Accepted, i)
		}
	}
}

var (
	reviewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	reviewCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	acceptedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	manualStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	removedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m *reviewModel) View() string {
	if m.finished {
		return ""
	}
	var b strings.Builder

	selected := 0
	for _, c := range m.candidates {
		if c.Accepted {
			selected++
		}
	}
	b.WriteString(reviewTitleStyle.Render(
		fmt.Sprintf("review fixes: %d of %d selected", selected, len(m.candidates))))
	b.WriteString("\n\n")

	if len(m.candidates) == 0 {
		b.WriteString(dimStyle.Render("  nothing to review"))
		b.WriteString("\n")
		return b.String()
	}

	for i, c := range m.candidates {
		mark := "[ ]"
		if c.Accepted {
			mark = acceptedStyle.Render("[x]")
		}
		app := c.Applicability.String()
		if c.Applicability == diag.FixApplicabilityManualReview {
			app = manualStyle.Render(app)
		} else {
			app = dimStyle.Render(app)
		}
		line := fmt.Sprintf("%s %s %s  %s", mark, c.Code, c.Location, c.Title)
		line = truncate(line, m.width-8)
		if i == m.cursor {
			b.WriteString(reviewCursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("  ")
		b.WriteString(app)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	m.previewView(&b)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *reviewModel) previewView(b *strings.Builder) {
	c := m.candidates[m.cursor]
	if len(c.Before) == 0 && len(c.After) == 0 {
		return
	}
	b.WriteString(dimStyle.Render("  " + c.Message))
	b.WriteString("\n")
	for _, line := range c.Before {
		b.WriteString(removedStyle.Render("  - " + truncate(line, m.width-6)))
		b.WriteString("\n")
	}
	for _, line := range c.After {
		b.WriteString(addedStyle.Render("  + " + truncate(line, m.width-6)))
		b.WriteString("\n")
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
