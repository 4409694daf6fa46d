package renderers

import (
	"fmt"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
)

// Registry maintains a priority-ordered set of renderers and selects the
// best match for a document's MIME type.
type Registry struct {
	renderers []driven.Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a renderer to the registry.
func (r *Registry) Register(renderer driven.Renderer) {
	r.renderers = append(r.renderers, renderer)
}

// ForMIMEType returns the highest-priority renderer supporting the MIME
// type. Returns domain.ErrUnsupportedType when no renderer matches.
func (r *Registry) ForMIMEType(mimeType string) (driven.Renderer, error) {
	var best driven.Renderer
	for _, renderer := range r.renderers {
		if !supports(renderer, mimeType) {
			continue
		}
		if best == nil || renderer.Priority() > best.Priority() {
			best = renderer
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no renderer for %q: %w", mimeType, domain.ErrUnsupportedType)
	}
	return best, nil
}

// SupportedMIMETypes returns all MIME types the registry can render.
func (r *Registry) SupportedMIMETypes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, renderer := range r.renderers {
		for _, mt := range renderer.SupportedMIMETypes() {
			if !seen[mt] {
				seen[mt] = true
				out = append(out, mt)
			}
		}
	}
	return out
}

func supports(renderer driven.Renderer, mimeType string) bool {
	for _, mt := range renderer.SupportedMIMETypes() {
		if mt == mimeType {
			return true
		}
	}
	return false
}
