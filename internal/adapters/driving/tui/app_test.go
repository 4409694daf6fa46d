package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	app, err := NewApp(validPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func TestNewApp_StartsOnMenu(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ViewChanged(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewReview})
	app = model.(*App)

	assert.Equal(t, messages.ViewReview, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_EscFromHelpReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ReviewCompletedOpensFindings(t *testing.T) {
	app := newTestApp(t)
	review := &domain.Review{
		ID:           "rev-1",
		DocumentPath: "/tmp/report.pdf",
		Findings: []domain.Finding{
			{Evidence: []domain.EvidenceEntry{{PrintedPage: 2, Text: "wire"}}},
		},
	}

	model, cmd := app.Update(messages.ReviewCompleted{Review: review})
	app = model.(*App)

	assert.Equal(t, messages.ViewFindings, app.CurrentView())
	require.NotNil(t, cmd)
	// The viewer now carries the review's evidence.
	require.NotNil(t, app.DocView().Session())
	assert.Len(t, app.DocView().Session().Evidence(), 1)
}

func TestApp_ReviewCompletedErrorStays(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewReview})
	app = model.(*App)

	model, _ = app.Update(messages.ReviewCompleted{Err: domain.ErrNotFound})
	app = model.(*App)

	assert.Equal(t, messages.ViewReview, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrNotFound)
}

func TestApp_ViewerEventsRoutedWhileElsewhere(t *testing.T) {
	app := newTestApp(t)
	cmd := app.DocView().SetDocument("/tmp/report.pdf")
	opened := cmd().(messages.DocumentOpened)

	// Viewer events arrive while the findings view is active.
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewFindings})
	app = model.(*App)
	model, _ = app.Update(opened)
	app = model.(*App)

	assert.Equal(t, 1, app.DocView().Session().TotalPages())
	assert.Equal(t, messages.ViewFindings, app.CurrentView())
}

func TestApp_OpenDocumentStartsInViewer(t *testing.T) {
	app := newTestApp(t)
	review := &domain.Review{ID: "rev-1", DocumentPath: "/tmp/report.pdf"}

	app.OpenDocument("/tmp/report.pdf", review, "page-3")

	assert.Equal(t, messages.ViewDocView, app.CurrentView())
}

func TestApp_View(t *testing.T) {
	app := newTestApp(t)

	out := app.View()

	assert.Contains(t, out, "Pagemark")
}
