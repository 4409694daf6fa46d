package driving

import (
	"context"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// RenderService exposes the rendering collaborator to the viewer: it
// resolves the right renderer for a document and forwards load and
// per-page render requests.
type RenderService interface {
	// Load opens a document and reports its physical page count.
	Load(ctx context.Context, path string) (totalPages int, err error)

	// RenderPage renders the text layer of one physical page.
	RenderPage(ctx context.Context, path string, page, width int) (*domain.RenderedPage, error)
}
