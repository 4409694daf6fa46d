package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleReview(id string, createdAt time.Time) domain.Review {
	return domain.Review{
		ID:            id,
		DocumentPath:  "/tmp/report.pdf",
		DocumentName:  "report.pdf",
		RegulationID:  "aml-ctf",
		EvaluatorName: "local",
		Findings: []domain.Finding{
			{
				ID:       "f1",
				Rule:     "ctf-1",
				Severity: domain.SeverityWarning,
				Summary:  "unverified counterparty",
				Evidence: []domain.EvidenceEntry{
					{PrintedPage: 4, Text: "wire transfer"},
				},
			},
		},
		CreatedAt: createdAt,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	review := sampleReview("rev-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Save(ctx, review))

	got, err := store.Get(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, review.DocumentPath, got.DocumentPath)
	assert.Equal(t, review.RegulationID, got.RegulationID)
	require.Len(t, got.Findings, 1)
	assert.Equal(t, "ctf-1", got.Findings[0].Rule)
	require.Len(t, got.Findings[0].Evidence, 1)
	assert.Equal(t, 4, got.Findings[0].Evidence[0].PrintedPage)
}

func TestStore_SaveRequiresID(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(context.Background(), domain.Review{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_SaveUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	review := sampleReview("rev-1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, review))

	review.RegulationID = "gdpr"
	require.NoError(t, store.Save(ctx, review))

	got, err := store.Get(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "gdpr", got.RegulationID)

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, sampleReview("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleReview("new", base)))
	require.NoError(t, store.Save(ctx, sampleReview("mid", base.Add(-time.Hour))))

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "new", reviews[0].ID)
	assert.Equal(t, "mid", reviews[1].ID)
	assert.Equal(t, "old", reviews[2].ID)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleReview("rev-1", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "rev-1"))

	_, err := store.Get(ctx, "rev-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Delete(ctx, "rev-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleReview("rev-1", time.Now().UTC())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "rev-1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.DocumentName)
}
