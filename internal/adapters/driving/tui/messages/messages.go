// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewReview is the new-review form view.
	ViewReview
	// ViewFindings lists the findings of a completed review.
	ViewFindings
	// ViewDocView is the document viewer.
	ViewDocView
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewReview:
		return "review"
	case ViewFindings:
		return "findings"
	case ViewDocView:
		return "doc_view"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ReviewCompleted carries the result of an evaluation run.
type ReviewCompleted struct {
	Review *domain.Review
	Err    error
}

// ReviewLoaded carries a stored review fetched from history.
type ReviewLoaded struct {
	Review *domain.Review
	Err    error
}

// DocumentOpened signals that a document load finished.
// SessionID ties the result to the viewer session that requested it.
type DocumentOpened struct {
	Path       string
	SessionID  string
	TotalPages int
	Err        error
}

// PageRendered signals that one physical page finished rendering.
type PageRendered struct {
	SessionID string
	Page      int
	Content   *domain.RenderedPage
	Err       error
}

// PageTextRendered signals that the text layer of a page is available.
type PageTextRendered struct {
	SessionID string
	Page      int
	Fragments []string
}

// CitationSelected signals that an evidence row was chosen; PrintedPage
// is the printed page number the viewer should navigate to.
type CitationSelected struct {
	PrintedPage int
}

// DocumentChanged signals that the open document changed on disk.
type DocumentChanged struct {
	Path string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
