package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/policy-tracker/internal/history"
)

const historySize = 50

// CommandMode is a one-line input at the bottom of the screen. It serves
// the `:command` line and the company filter prompt.
type CommandMode struct {
	prompt    string
	active    bool
	input     string
	cursorPos int // byte offset into input
	history   *PromptHistory
}

// NewCommandMode creates a prompt without history persistence
func NewCommandMode(prompt string) *CommandMode {
	return &CommandMode{
		prompt:  prompt,
		history: NewPromptHistory(historySize),
	}
}

// NewCommandModeWithHistory creates a prompt whose history is kept in
// filename by manager
func NewCommandModeWithHistory(prompt string, manager *history.Manager, filename string) *CommandMode {
	// an unreadable file starts an empty history
	h, _ := LoadPromptHistory(historySize, manager, filename)
	return &CommandMode{
		prompt:  prompt,
		history: h,
	}
}

// Start enters the prompt with an empty line
func (c *CommandMode) Start() {
	c.StartWith("")
}

// StartWith enters the prompt with initial text and the cursor at its end
func (c *CommandMode) StartWith(initial string) {
	c.active = true
	c.input = initial
	c.cursorPos = len(initial)
	c.history.Reset()
}

// Stop exits the prompt
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether the prompt is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// DeleteWordBackwards deletes the word before the cursor
func (c *CommandMode) DeleteWordBackwards() {
	if c.cursorPos == 0 {
		return
	}

	pos := c.cursorPos - 1
	for pos >= 0 && (c.input[pos] == ' ' || c.input[pos] == '\t') {
		pos--
	}
	for pos >= 0 && c.input[pos] != ' ' && c.input[pos] != '\t' {
		pos--
	}

	deleteStart := pos + 1
	c.input = c.input[:deleteStart] + c.input[c.cursorPos:]
	c.cursorPos = deleteStart
}

// HandleKey processes a key press. done is true once the prompt closed;
// command is the submitted line, empty when cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch ev.Key() {
	case tcell.KeyCtrlW:
		c.DeleteWordBackwards()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(c.input)
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if prevCmd, ok := c.history.Back(c.input); ok {
			c.input = prevCmd
			c.cursorPos = len(c.input)
		}
	case tcell.KeyDown:
		if nextCmd, ok := c.history.Forward(); ok {
			c.input = nextCmd
			c.cursorPos = len(c.input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.input = c.input[:c.cursorPos-size] + c.input[c.cursorPos:]
			c.cursorPos -= size
		} else if c.input == "" {
			// Backspace on an empty line closes the prompt
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.input = c.input[:c.cursorPos] + c.input[c.cursorPos+size:]
		}
	case tcell.KeyLeft:
		if c.cursorPos > 0 {
			_, size := utf8.DecodeLastRuneInString(c.input[:c.cursorPos])
			c.cursorPos -= size
		}
	case tcell.KeyRight:
		if c.cursorPos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.cursorPos:])
			c.cursorPos += size
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		c.cursorPos = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		c.cursorPos = len(c.input)
	case tcell.KeyCtrlU:
		c.input = c.input[c.cursorPos:]
		c.cursorPos = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursorPos]
	case tcell.KeyRune:
		s := string(ev.Rune())
		c.input = c.input[:c.cursorPos] + s + c.input[c.cursorPos:]
		c.cursorPos += len(s)
	}

	return "", false
}

// GetInput returns the current input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input)
}

// Render renders the prompt line at row y
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	promptStyle := screen.CommandPromptStyle()
	textStyle := screen.CommandTextStyle()
	cursorStyle := screen.CommandCursorStyle()
	screenWidth := screen.GetWidth()

	x := screen.DrawString(0, y, c.prompt, promptStyle)

	for i, r := range c.input {
		if x >= screenWidth {
			break
		}
		charStyle := textStyle
		if i == c.cursorPos {
			charStyle = cursorStyle
		}
		screen.SetCell(x, y, r, charStyle)
		x += RuneWidth(r)
	}

	if c.cursorPos >= len(c.input) && x < screenWidth {
		screen.SetCell(x, y, ' ', cursorStyle)
		x++
	}

	screen.FillLine(x, y, textStyle)
}
