package review

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// stubReviewService records the last run request.
type stubReviewService struct {
	lastPath       string
	lastRegulation string
	review         *domain.Review
	err            error
}

func (s *stubReviewService) Run(_ context.Context, path, regulationID string) (*domain.Review, error) {
	s.lastPath = path
	s.lastRegulation = regulationID
	return s.review, s.err
}

func (s *stubReviewService) Get(_ context.Context, _ string) (*domain.Review, error) {
	return nil, domain.ErrNotFound
}

func (s *stubReviewService) List(_ context.Context) ([]domain.Review, error) { return nil, nil }

func (s *stubReviewService) Delete(_ context.Context, _ string) error { return nil }

func typeText(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func TestSubmit_RunsReview(t *testing.T) {
	svc := &stubReviewService{review: &domain.Review{ID: "rev-1"}}
	v := NewView(nil, svc)

	v = typeText(v, "/tmp/report.pdf")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, v.Running())
	require.NotNil(t, cmd)

	// The batch contains the spinner tick and the evaluation command;
	// find the completion message.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var completed *messages.ReviewCompleted
	for _, c := range batch {
		if msg, ok := c().(messages.ReviewCompleted); ok {
			completed = &msg
		}
	}
	require.NotNil(t, completed)
	require.NoError(t, completed.Err)
	assert.Equal(t, "rev-1", completed.Review.ID)
	assert.Equal(t, "/tmp/report.pdf", svc.lastPath)
	assert.Equal(t, "aml-ctf", svc.lastRegulation)
}

func TestSubmit_EmptyPathRejected(t *testing.T) {
	v := NewView(nil, &stubReviewService{})

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Running())
	assert.Error(t, v.Err())
}

func TestRegulationPicker(t *testing.T) {
	v := NewView(nil, &stubReviewService{})

	// Tab into the regulation list, move down one.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	v = typeTextViaPath(t, v)
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 1, v.regSelected)
	assert.True(t, v.Running())
}

// typeTextViaPath tabs back to the path field, types a path, and tabs
// back to the regulation list.
func typeTextViaPath(t *testing.T, v *View) *View {
	t.Helper()
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = typeText(v, "/tmp/doc.txt")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	return v
}

func TestSetDefaultRegulation(t *testing.T) {
	v := NewView(nil, &stubReviewService{})

	v.SetDefaultRegulation("gdpr")
	assert.Equal(t, 1, v.regSelected)

	v.SetDefaultRegulation("unknown")
	assert.Equal(t, 1, v.regSelected, "unknown IDs leave the selection alone")
}

func TestReviewCompleted_StopsRunning(t *testing.T) {
	v := NewView(nil, &stubReviewService{})
	v = typeText(v, "/tmp/report.pdf")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Running())

	v, _ = v.Update(messages.ReviewCompleted{Review: &domain.Review{ID: "rev-1"}})

	assert.False(t, v.Running())
	assert.NoError(t, v.Err())
}

func TestReviewCompleted_Error(t *testing.T) {
	v := NewView(nil, &stubReviewService{})
	v = typeText(v, "/tmp/report.pdf")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v, _ = v.Update(messages.ReviewCompleted{Err: domain.ErrNotFound})

	assert.False(t, v.Running())
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
}
