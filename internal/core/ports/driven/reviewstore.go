package driven

import (
	"context"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// ReviewStore persists completed reviews so findings can be reopened in
// the viewer without re-running an evaluation.
type ReviewStore interface {
	// Save stores or updates a review.
	Save(ctx context.Context, review domain.Review) error

	// Get retrieves a review by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Review, error)

	// List returns all reviews, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// Delete removes a review by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
