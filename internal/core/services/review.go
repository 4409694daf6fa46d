package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// ReviewService runs evaluations and manages stored review history.
type ReviewService struct {
	render    *RenderService
	evaluator driven.Evaluator
	store     driven.ReviewStore
	pageWidth int
}

// NewReviewService creates a new review service.
func NewReviewService(
	render *RenderService,
	evaluator driven.Evaluator,
	store driven.ReviewStore,
	pageWidth int,
) *ReviewService {
	if pageWidth < 1 {
		pageWidth = 80
	}
	return &ReviewService{
		render:    render,
		evaluator: evaluator,
		store:     store,
		pageWidth: pageWidth,
	}
}

// Run evaluates a document against a regulation and persists the result.
func (s *ReviewService) Run(ctx context.Context, path, regulationID string) (*domain.Review, error) {
	if s.evaluator == nil {
		return nil, domain.ErrEvaluatorUnavailable
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("document %s: %w", path, domain.ErrNotFound)
	}

	regulation, ok := domain.RegulationByID(regulationID)
	if !ok {
		// Unknown IDs are passed through for remote evaluators that
		// understand more regimes than the built-in set.
		regulation = domain.Regulation{ID: regulationID, Name: regulationID}
	}

	pages, err := s.render.RenderAll(ctx, path, s.pageWidth)
	if err != nil {
		return nil, err
	}

	logger.Info("evaluating %s against %s (%d pages)", path, regulation.ID, len(pages))
	findings, err := s.evaluator.Evaluate(ctx, pages, regulation)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}

	doc := domain.NewDocument(path)
	review := domain.Review{
		ID:            uuid.NewString(),
		DocumentPath:  doc.Path,
		DocumentName:  doc.Name,
		RegulationID:  regulation.ID,
		EvaluatorName: s.evaluator.Name(),
		Findings:      findings,
		CreatedAt:     time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.Save(ctx, review); err != nil {
			return nil, fmt.Errorf("saving review: %w", err)
		}
	}
	return &review, nil
}

// Get retrieves a stored review by ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// List returns all stored reviews, newest first.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

// Delete removes a stored review.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotFound
	}
	return s.store.Delete(ctx, id)
}
