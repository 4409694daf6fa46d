package viewer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReady_FalseWithoutTotalPages(t *testing.T) {
	s, _, _ := newTestSession()

	s.RecordRendered(1)
	s.RecordRendered(2)

	assert.False(t, s.Ready())
}

func TestReady_AllPagesInOrder(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetTotalPages(3)

	s.RecordRendered(1)
	assert.False(t, s.Ready())
	s.RecordRendered(2)
	assert.False(t, s.Ready())
	s.RecordRendered(3)
	assert.True(t, s.Ready())
}

func TestReady_OutOfOrderWithDuplicates(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetTotalPages(5)

	for _, p := range []int{4, 2, 2, 5, 1, 4} {
		s.RecordRendered(p)
	}
	assert.False(t, s.Ready())

	s.RecordRendered(3)
	assert.True(t, s.Ready())
}

func TestReady_ShuffledCompletionOrder(t *testing.T) {
	const total = 20
	order := rand.Perm(total)

	s, _, _ := newTestSession()
	s.SetTotalPages(total)

	for i, p := range order {
		s.RecordRendered(p + 1)
		if i < total-1 {
			assert.False(t, s.Ready())
		}
	}
	assert.True(t, s.Ready())
}

func TestRecordRendered_IgnoresNonPositive(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetTotalPages(1)

	s.RecordRendered(0)
	s.RecordRendered(-7)
	assert.False(t, s.Ready())

	s.RecordRendered(1)
	assert.True(t, s.Ready())
}

func TestRecordRendered_PagesBeyondTotalDoNotCount(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetTotalPages(2)

	s.RecordRendered(3)
	s.RecordRendered(1)

	assert.False(t, s.Ready())
	assert.True(t, s.Rendered(3))
}

func TestRecordRendered_BeforeTotalKnown(t *testing.T) {
	s, _, _ := newTestSession()

	s.RecordRendered(2)
	s.RecordRendered(1)
	assert.False(t, s.Ready())

	s.SetTotalPages(2)
	assert.True(t, s.Ready())
}

func TestRendered_NeverReverts(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetTotalPages(3)

	s.RecordRendered(2)
	s.RecordRendered(2)

	assert.True(t, s.Rendered(2))
	assert.False(t, s.Rendered(1))
}
