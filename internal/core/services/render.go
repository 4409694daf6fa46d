package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// RendererResolver selects a renderer for a MIME type.
// Implemented by the renderers registry.
type RendererResolver interface {
	ForMIMEType(mimeType string) (driven.Renderer, error)
}

// Ensure RenderService implements the interface.
var _ driving.RenderService = (*RenderService)(nil)

// RenderService resolves the right renderer per document and forwards
// load and page-render requests to it.
type RenderService struct {
	resolver RendererResolver
}

// NewRenderService creates a new render service.
func NewRenderService(resolver RendererResolver) *RenderService {
	return &RenderService{resolver: resolver}
}

// Load opens a document and reports its physical page count.
func (s *RenderService) Load(ctx context.Context, path string) (int, error) {
	renderer, err := s.rendererFor(path)
	if err != nil {
		return 0, err
	}
	total, err := renderer.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Info("loaded %s: %d pages", path, total)
	return total, nil
}

// RenderPage renders the text layer of one physical page.
func (s *RenderService) RenderPage(ctx context.Context, path string, page, width int) (*domain.RenderedPage, error) {
	renderer, err := s.rendererFor(path)
	if err != nil {
		return nil, err
	}
	return renderer.RenderPage(ctx, path, page, width)
}

// RenderAll renders every page of a document in physical order.
// Used to assemble the text an evaluator checks.
func (s *RenderService) RenderAll(ctx context.Context, path string, width int) ([]domain.RenderedPage, error) {
	total, err := s.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	pages := make([]domain.RenderedPage, 0, total)
	for p := 1; p <= total; p++ {
		rendered, err := s.RenderPage(ctx, path, p, width)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", p, err)
		}
		pages = append(pages, *rendered)
	}
	return pages, nil
}

func (s *RenderService) rendererFor(path string) (driven.Renderer, error) {
	mimeType := domain.DetectMIMEType(path)
	renderer, err := s.resolver.ForMIMEType(mimeType)
	if err != nil {
		return nil, err
	}
	return renderer, nil
}
