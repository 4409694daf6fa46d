package driving

import (
	"context"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// ReviewService runs evaluations and manages stored review history.
type ReviewService interface {
	// Run evaluates a document against a regulation and persists the
	// resulting review.
	Run(ctx context.Context, path, regulationID string) (*domain.Review, error)

	// Get retrieves a stored review by ID.
	Get(ctx context.Context, id string) (*domain.Review, error)

	// List returns all stored reviews, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// Delete removes a stored review.
	Delete(ctx context.Context, id string) error
}
