package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.NextPage.Keys(), "n")
	assert.Contains(t, km.PrevPage.Keys(), "p")
	assert.Contains(t, km.GoTo.Keys(), "g")
	assert.Contains(t, km.Offset.Keys(), "o")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}

func TestListHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ListHelp()

	assert.Len(t, bindings, 4)
}

func TestViewerHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ViewerHelp()

	assert.Len(t, bindings, 5)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	assert.Len(t, groups, 3)
}
