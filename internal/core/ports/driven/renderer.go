package driven

import (
	"context"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// Renderer is the rendering collaborator: it turns a document source into
// pages and per-page text fragments. Each renderer handles specific MIME
// types (e.g. PDF, plain text).
type Renderer interface {
	// SupportedMIMETypes returns the MIME types this renderer handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific renderers should return 50-89.
	// Fallback renderers should return 1-9.
	Priority() int

	// Load opens a document source and reports its physical page count.
	// A corrupt or unreadable source fails the whole load; there is no
	// partial page count.
	Load(ctx context.Context, path string) (totalPages int, err error)

	// RenderPage renders the text layer of one physical page at the given
	// display width, yielding its text fragments.
	RenderPage(ctx context.Context, path string, page, width int) (*domain.RenderedPage, error)
}

// CommandRunner executes an external command and returns its combined
// output. It exists so renderers that shell out (e.g. pdftotext) can be
// tested without the binary installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
