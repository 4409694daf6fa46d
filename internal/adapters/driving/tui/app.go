package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/views/docview"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/views/findings"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/views/review"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// reviewView is the new-review form.
	reviewView *review.View

	// findingsView lists findings of a completed review.
	findingsView *findings.View

	// docView is the document viewer hosting the viewer session.
	docView *docview.View

	// watcher watches the open document for on-disk changes.
	watcher *docWatcher

	// currentView tracks which view is active.
	currentView messages.ViewType

	// initialPath, initialReview and initialFragment configure direct
	// viewer entry from the `view` command.
	initialPath     string
	initialReview   *domain.Review
	initialFragment string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	pageWidth := domain.DefaultAppSettings().Render.PageWidth
	if settings, err := ports.Settings.Get(); err == nil {
		pageWidth = settings.Render.PageWidth
	}

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		reviewView:   review.NewView(s, ports.Review),
		findingsView: findings.NewView(s),
		docView:      docview.NewView(s, ports.Render, pageWidth),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.reviewView.WithContext(ctx)
	a.docView.WithContext(ctx)
	return a
}

// OpenDocument configures the app to start in the viewer: the document
// at path is opened immediately, optionally with the findings of a
// stored review and a deep-link fragment such as "page-12".
func (a *App) OpenDocument(path string, stored *domain.Review, fragment string) {
	a.initialPath = path
	a.initialReview = stored
	a.initialFragment = fragment
	a.currentView = messages.ViewDocView
	if stored != nil {
		a.findingsView.SetReview(stored)
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("pagemark - Compliance Review"),
	}

	if a.initialPath != "" {
		var evidence []domain.EvidenceEntry
		if a.initialReview != nil {
			evidence = domain.FlattenEvidence(a.initialReview.Findings)
		}
		cmds = append(cmds, a.openDocument(a.initialPath, evidence, a.initialFragment))
	}

	return tea.Batch(cmds...)
}

// openDocument swaps the viewer onto a document and starts watching it.
func (a *App) openDocument(path string, evidence []domain.EvidenceEntry, fragment string) tea.Cmd {
	cmds := []tea.Cmd{a.docView.SetDocument(path)}
	a.docView.SetEvidence(evidence)
	if fragment != "" {
		a.docView.SetFragment(fragment)
	}

	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
	watcher, err := newDocWatcher(path)
	if err != nil {
		logger.Warn("cannot watch document: %v", err)
	} else {
		a.watcher = watcher
		cmds = append(cmds, watcher.waitForChange())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.reviewView.SetDimensions(msg.Width, msg.Height)
		a.findingsView.SetDimensions(msg.Width, msg.Height)
		a.docView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewReview:
			a.reviewView, cmd = a.reviewView.Update(msg)
			return a, cmd

		case messages.ViewFindings:
			a.findingsView, cmd = a.findingsView.Update(msg)
			return a, cmd

		case messages.ViewDocView:
			a.docView, cmd = a.docView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewReview:
			a.reviewView.Reset()
			if settings, err := a.ports.Settings.Get(); err == nil {
				a.reviewView.SetDefaultRegulation(settings.Review.DefaultRegulation)
			}
			return a, a.reviewView.Init()
		case messages.ViewMenu, messages.ViewFindings, messages.ViewDocView, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.ReviewCompleted:
		a.reviewView, cmd = a.reviewView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		// Show the findings and open the document behind them.
		a.findingsView.SetReview(msg.Review)
		a.currentView = messages.ViewFindings
		evidence := domain.FlattenEvidence(msg.Review.Findings)
		return a, tea.Batch(cmd, a.openDocument(msg.Review.DocumentPath, evidence, ""))

	case messages.DocumentOpened, messages.PageRendered, messages.PageTextRendered,
		messages.CitationSelected:
		// Viewer engine events go to the viewer regardless of the
		// active view; stale-session events are dropped there.
		a.docView, cmd = a.docView.Update(msg)
		return a, cmd

	case messages.DocumentChanged:
		a.docView, cmd = a.docView.Update(msg)
		// Re-arm the watcher for the next change.
		if a.watcher != nil {
			return a, tea.Batch(cmd, a.watcher.waitForChange())
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewReview:
			a.reviewView, cmd = a.reviewView.Update(msg)
		case messages.ViewFindings:
			a.findingsView, cmd = a.findingsView.Update(msg)
		case messages.ViewDocView:
			a.docView, cmd = a.docView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewReview:
		a.reviewView, cmd = a.reviewView.Update(msg)
	case messages.ViewFindings:
		a.findingsView, cmd = a.findingsView.Update(msg)
	case messages.ViewDocView:
		a.docView, cmd = a.docView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewReview:
		return a.reviewView.View()
	case messages.ViewFindings:
		return a.findingsView.View()
	case messages.ViewDocView:
		return a.docView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Review:
  tab         Switch between path and regulation
  enter       Run review

Findings:
  j/k, ↑/↓    Navigate evidence rows
  enter       Open citation in viewer

Viewer:
  n/p         Next / previous page
  g           Go to printed page
  o           Edit page offset
  esc         Back to findings

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// DocView returns the document viewer component.
func (a *App) DocView() *docview.View {
	return a.docView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.reviewView.SetDimensions(width, height)
	a.findingsView.SetDimensions(width, height)
	a.docView.SetDimensions(width, height)
}
