package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readySession returns a session with all pages of a 10-page document rendered.
func readySession(t *testing.T) (*Session, *recordingPositioner, *recordingMarker) {
	t.Helper()
	s, pos, mark := newTestSession()
	s.SetTotalPages(10)
	for p := 1; p <= 10; p++ {
		s.RecordRendered(p)
	}
	return s, pos, mark
}

func TestGoToPrinted_InRange(t *testing.T) {
	s, pos, _ := readySession(t)

	s.GoToPrinted(4)

	assert.Equal(t, 4, s.CurrentPage())
	require.Len(t, pos.requests, 1)
	assert.Equal(t, 4, pos.requests[0])
}

func TestGoToPrinted_NegativeOffsetResolvesPhysicalPage(t *testing.T) {
	s, pos, _ := readySession(t)
	s.StartOffsetEdit()
	s.SetOffsetBuffer("-2")
	s.SaveOffsetEdit()

	s.GoToPrinted(7)

	assert.Equal(t, 5, s.CurrentPage())
	require.Len(t, pos.requests, 1)
	assert.Equal(t, 5, pos.requests[0])
}

func TestGoToPrinted_OutOfRangeIsSilentNoOp(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		printed int
	}{
		{name: "below range", offset: 0, printed: 0},
		{name: "above range", offset: 0, printed: 11},
		{name: "offset pushes below", offset: -5, printed: 3},
		{name: "offset pushes above", offset: 5, printed: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, pos, _ := readySession(t)
			s.offset = tt.offset
			before := s.CurrentPage()

			s.GoToPrinted(tt.printed)

			assert.Equal(t, before, s.CurrentPage())
			assert.Empty(t, pos.requests)
		})
	}
}

func TestGoToPrinted_NoOpBeforePageCountKnown(t *testing.T) {
	s, pos, _ := newTestSession()

	s.GoToPrinted(1)

	assert.Zero(t, s.CurrentPage())
	assert.Empty(t, pos.requests)
}

func TestGoToPrintedInput_ParsesInteger(t *testing.T) {
	s, pos, _ := readySession(t)

	s.GoToPrintedInput(" 6 ")

	assert.Equal(t, 6, s.CurrentPage())
	assert.Equal(t, []int{6}, pos.requests)
}

func TestGoToPrintedInput_UnparseableDiscarded(t *testing.T) {
	s, pos, _ := readySession(t)

	s.GoToPrintedInput("six")
	s.GoToPrintedInput("")
	s.GoToPrintedInput("3.2")

	assert.Equal(t, 1, s.CurrentPage())
	assert.Empty(t, pos.requests)
}

func TestStep_MovesAndClamps(t *testing.T) {
	s, pos, _ := readySession(t)

	s.Step(1)
	assert.Equal(t, 2, s.CurrentPage())

	s.Step(-1)
	s.Step(-1)
	assert.Equal(t, 1, s.CurrentPage(), "clamped at first page")

	s.GoToPrinted(10)
	s.Step(1)
	assert.Equal(t, 10, s.CurrentPage(), "clamped at last page")

	// Clamped steps that do not move emit no positioning request.
	assert.Equal(t, []int{2, 1, 10}, pos.requests)
}

func TestStep_NoOpWithoutDocument(t *testing.T) {
	s, pos, _ := newTestSession()

	s.Step(1)

	assert.Zero(t, s.CurrentPage())
	assert.Empty(t, pos.requests)
}
