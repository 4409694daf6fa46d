package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
)

// recordingPositioner captures positioning requests for assertions.
type recordingPositioner struct {
	requests []int
}

func (p *recordingPositioner) BringIntoView(page int) {
	p.requests = append(p.requests, page)
}

// recordingMarker stores marks as a set, mirroring the idempotent
// behaviour required of real markers, while counting raw calls.
type recordingMarker struct {
	marks map[int]map[int]bool
	calls int
}

func newRecordingMarker() *recordingMarker {
	return &recordingMarker{marks: make(map[int]map[int]bool)}
}

func (m *recordingMarker) MarkFragment(page, fragment int) {
	m.calls++
	if m.marks[page] == nil {
		m.marks[page] = make(map[int]bool)
	}
	m.marks[page][fragment] = true
}

func (m *recordingMarker) marked(page int) []int {
	var out []int
	for f := range m.marks[page] {
		out = append(out, f)
	}
	return out
}

// newTestSession returns a session with recording collaborators.
func newTestSession() (*Session, *recordingPositioner, *recordingMarker) {
	pos := &recordingPositioner{}
	mark := newRecordingMarker()
	return NewSession(pos, mark), pos, mark
}

func TestNewSession_FreshIdentity(t *testing.T) {
	a, _, _ := newTestSession()
	b, _, _ := newTestSession()

	require.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_SetTotalPages(t *testing.T) {
	s, _, _ := newTestSession()

	s.SetTotalPages(10)

	assert.Equal(t, 10, s.TotalPages())
	assert.Equal(t, 1, s.CurrentPage())
}

func TestSession_SetTotalPages_IgnoresNonPositive(t *testing.T) {
	s, _, _ := newTestSession()

	s.SetTotalPages(0)
	s.SetTotalPages(-3)

	assert.Zero(t, s.TotalPages())
	assert.Zero(t, s.CurrentPage())
}

func TestSession_SetEvidence_DropsMalformed(t *testing.T) {
	s, _, _ := newTestSession()

	s.SetEvidence([]domain.EvidenceEntry{
		{PrintedPage: 5, Text: "alpha"},
		{PrintedPage: 0, Text: "no page"},
		{PrintedPage: 3, Text: "  "},
		{PrintedPage: 2, Text: "beta"},
	})

	require.Len(t, s.Evidence(), 2)
	assert.Equal(t, "alpha", s.Evidence()[0].Text)
	assert.Equal(t, "beta", s.Evidence()[1].Text)
}
