// Package findings provides the findings list view for the TUI.
package findings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// evidenceRow is one selectable citation: an evidence entry together
// with the finding it belongs to.
type evidenceRow struct {
	findingIndex int
	entry        domain.EvidenceEntry
}

// View lists the findings of a completed review. Selecting an evidence
// row emits a citation message targeting its printed page.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	review   *domain.Review
	rows     []evidenceRow
	selected int

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new findings view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReview replaces the displayed review.
func (v *View) SetReview(review *domain.Review) {
	v.review = review
	v.selected = 0
	v.err = nil
	v.rows = nil

	if review == nil {
		return
	}
	for i, finding := range review.Findings {
		for _, entry := range finding.FlattenEvidence() {
			v.rows = append(v.rows, evidenceRow{findingIndex: i, entry: entry})
		}
	}
}

// Review returns the currently displayed review.
func (v *View) Review() *domain.Review {
	return v.review
}

// Update handles messages for the findings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keys.Down):
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keys.Select):
		if v.selected < len(v.rows) {
			row := v.rows[v.selected]
			return v, tea.Batch(
				func() tea.Msg {
					return messages.CitationSelected{PrintedPage: row.entry.PrintedPage}
				},
				func() tea.Msg {
					return messages.ViewChanged{View: messages.ViewDocView}
				},
			)
		}
	case keymap.Matches(keyStr, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// View renders the findings list grouped by finding.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Findings"))
	b.WriteString("\n")

	if v.review != nil {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s · %s · %s",
			v.review.DocumentName, v.review.RegulationID, v.review.EvaluatorName)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.review == nil || len(v.review.Findings) == 0 {
		b.WriteString(v.styles.Muted.Render("(No findings)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	rowIdx := 0
	for i, finding := range v.review.Findings {
		b.WriteString(v.severityStyle(finding.Severity).Render(fmt.Sprintf("[%s]", finding.Severity)))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(finding.Summary))
		if finding.Rule != "" {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  (%s)", finding.Rule)))
		}
		b.WriteString("\n")

		for rowIdx < len(v.rows) && v.rows[rowIdx].findingIndex == i {
			row := v.rows[rowIdx]
			cursor := "    "
			label := fmt.Sprintf("p.%d  %s", row.entry.PrintedPage, truncate(row.entry.Text, v.width-12))
			if rowIdx == v.selected {
				cursor = "  > "
				label = v.styles.Selected.Render(label)
			} else {
				label = v.styles.Muted.Render(label)
			}
			b.WriteString(cursor + label + "\n")
			rowIdx++
		}
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// severityStyle picks a style for a severity badge.
func (v *View) severityStyle(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityCritical:
		return v.styles.Error
	case domain.SeverityWarning:
		return v.styles.Warning
	default:
		return v.styles.Muted
	}
}

// renderHelp renders keybinding hints from the list bindings.
func (v *View) renderHelp() string {
	hints := make([]string, 0, len(v.keys.ListHelp()))
	for _, b := range v.keys.ListHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected evidence row index.
func (v *View) Selected() int {
	return v.selected
}

// RowCount returns the number of selectable evidence rows.
func (v *View) RowCount() int {
	return len(v.rows)
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
