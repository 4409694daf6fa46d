package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenu_Navigation(t *testing.T) {
	v := NewView(nil)

	v, _ = v.Update(keyMsg("j"))
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.Selected())

	// Clamped at the top.
	v, _ = v.Update(keyMsg("k"))
	assert.Equal(t, 0, v.Selected())
}

func TestMenu_SelectEmitsViewChanged(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewReview, msg.View)
}

func TestMenu_QuitItem(t *testing.T) {
	v := NewView(nil)

	// Move to the last item (Quit).
	for i := 0; i < len(v.items)-1; i++ {
		v, _ = v.Update(keyMsg("j"))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMenu_View(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	out := v.View()

	assert.Contains(t, out, "Pagemark")
	assert.Contains(t, out, "New Review")
	assert.Contains(t, out, "Quit")
}
