// Package review provides the new-review form view for the TUI.
package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
)

// focus identifies which form element has input focus.
type focus int

const (
	focusPath focus = iota
	focusRegulation
)

// View is the new-review form: a document path input and a regulation
// picker. Submitting runs the evaluation as a command.
type View struct {
	styles        *styles.Styles
	reviewService driving.ReviewService
	ctx           context.Context

	pathInput   textinput.Model
	spin        spinner.Model
	regulations []domain.Regulation
	regSelected int
	focus       focus

	running bool
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new review form view.
func NewView(s *styles.Styles, reviewService driving.ReviewService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/document.pdf"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:        s,
		reviewService: reviewService,
		ctx:           context.Background(),
		pathInput:     ti,
		spin:          sp,
		regulations:   domain.BuiltinRegulations(),
		focus:         focusPath,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form for a fresh review.
func (v *View) Reset() {
	v.pathInput.SetValue("")
	v.pathInput.Focus()
	v.regSelected = 0
	v.focus = focusPath
	v.running = false
	v.err = nil
}

// SetDefaultRegulation preselects a regulation by ID.
func (v *View) SetDefaultRegulation(id string) {
	for i, reg := range v.regulations {
		if reg.ID == id {
			v.regSelected = i
			return
		}
	}
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if v.running {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
		return v, nil

	case messages.ReviewCompleted:
		v.running = false
		if msg.Err != nil {
			v.err = msg.Err
		}
		return v, nil

	case messages.ErrorOccurred:
		v.running = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.running {
		// Only allow bailing out while an evaluation runs.
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case "tab", "shift+tab":
		if v.focus == focusPath {
			v.focus = focusRegulation
			v.pathInput.Blur()
		} else {
			v.focus = focusPath
			v.pathInput.Focus()
		}
		return v, nil
	}

	if v.focus == focusRegulation {
		switch msg.String() {
		case "up", "k":
			if v.regSelected > 0 {
				v.regSelected--
			}
			return v, nil
		case "down", "j":
			if v.regSelected < len(v.regulations)-1 {
				v.regSelected++
			}
			return v, nil
		case "enter":
			return v.submit()
		}
		return v, nil
	}

	if msg.Type == tea.KeyEnter {
		return v.submit()
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

// submit starts the evaluation if the form is valid.
func (v *View) submit() (*View, tea.Cmd) {
	path := strings.TrimSpace(v.pathInput.Value())
	if path == "" {
		v.err = fmt.Errorf("document path is required")
		return v, nil
	}

	v.running = true
	v.err = nil
	regulation := v.regulations[v.regSelected]

	return v, tea.Batch(v.spin.Tick, v.runReview(path, regulation.ID))
}

// runReview returns a command that runs the evaluation.
func (v *View) runReview(path, regulationID string) tea.Cmd {
	return func() tea.Msg {
		review, err := v.reviewService.Run(v.ctx, path, regulationID)
		return messages.ReviewCompleted{Review: review, Err: err}
	}
}

// View renders the review form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("New Review"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Document"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.pathInput.View()))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Regulation"))
	b.WriteString("\n")
	for i, reg := range v.regulations {
		cursor := "  "
		label := fmt.Sprintf("%s - %s", reg.ID, reg.Name)
		if i == v.regSelected {
			cursor = "> "
			if v.focus == focusRegulation {
				label = v.styles.Selected.Render(label)
			} else {
				label = v.styles.Normal.Render(label)
			}
		} else {
			label = v.styles.Muted.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}
	b.WriteString("\n")

	if v.running {
		b.WriteString(v.spin.View())
		b.WriteString(v.styles.Muted.Render(" evaluating..."))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] run review  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Running reports whether an evaluation is in flight.
func (v *View) Running() bool {
	return v.running
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
