package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testBinding struct{ key, desc string }

func (b testBinding) GetKey() string         { return b.key }
func (b testBinding) GetDescription() string { return b.desc }

func TestHelpScreenKeybindings(t *testing.T) {
	h := NewHelpScreen()
	h.SetKeybindings([]KeyBindingInfo{testBinding{"j", "Move down"}, testBinding{"Enter", "Toggle details"}})
	h.SetCommands([]string{":reload  Refetch"})

	h.Toggle()
	assert.True(t, h.IsVisible())
	lines := h.Lines()
	assert.Contains(t, lines, "  j          - Move down")
	assert.Contains(t, lines, "  Enter      - Toggle details")
	assert.Contains(t, lines, "  :reload  Refetch")

	screen := newTestScreen(t, 60, 20)
	h.Render(screen)
	rows := screenText(screen)
	assert.True(t, containsRow(rows, "Keybindings (? to close)"))
	assert.True(t, containsRow(rows, "Move down"))

	h.Toggle()
	assert.False(t, h.IsVisible())
}

func TestHelpScreenScroll(t *testing.T) {
	h := NewHelpScreen()
	h.Show("Messages", []string{"a", "b", "c"})
	h.Scroll(5)
	screen := newTestScreen(t, 40, 10)
	h.Render(screen)
	assert.Equal(t, "  │ c", screenText(screen)[2][:len("  │ c")])
	h.Scroll(-10)
	screen.Clear()
	h.Render(screen)
	assert.True(t, containsRow(screenText(screen), "│ a"))
}

func TestMessageLogger(t *testing.T) {
	ml := NewMessageLogger(2)
	ml.now = func() time.Time { return time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC) }

	assert.Equal(t, []string{"No messages."}, ml.Lines())
	assert.Nil(t, ml.Latest())

	ml.AddMessage("first")
	ml.AddMessage("")
	ml.AddError("second")
	ml.AddMessage("third")

	assert.Equal(t, 2, ml.Count())
	assert.Equal(t, "third", ml.Latest().Text)
	assert.Equal(t, []string{"09:30:00   third", "09:30:00 ! second"}, ml.Lines())
}
