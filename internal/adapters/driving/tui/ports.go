// Package tui provides an interactive document viewer for pagemark.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Review runs evaluations and manages stored review history.
	Review driving.ReviewService

	// Render resolves renderers and produces page text.
	Render driving.RenderService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	review driving.ReviewService,
	render driving.RenderService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Review:   review,
		Render:   render,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Review == nil {
		return ErrMissingReviewService
	}
	if p.Render == nil {
		return ErrMissingRenderService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
