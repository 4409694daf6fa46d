package driven

import (
	"context"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// Evaluator produces structured findings for a document. Implementations
// are the remote compliance API and the offline local fallback.
type Evaluator interface {
	// Name identifies the evaluator in stored reviews.
	Name() string

	// Evaluate checks the document's page texts against a regulation.
	// Pages are supplied in physical order starting at page 1.
	Evaluate(ctx context.Context, pages []domain.RenderedPage, regulation domain.Regulation) ([]domain.Finding, error)
}
