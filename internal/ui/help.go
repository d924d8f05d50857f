package ui

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen is a boxed overlay listing lines of text. It shows the
// keybindings by default and can be pointed at other content, such as
// the message log.
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	commands    []string
	title       string
	lines       []string
	offset      int
}

// NewHelpScreen creates a new HelpScreen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{
		keybindings: []KeyBindingInfo{},
	}
}

// SetKeybindings sets the keybindings to display
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// SetCommands sets the command descriptions listed below the keybindings
func (h *HelpScreen) SetCommands(commands []string) {
	h.commands = commands
}

// Toggle toggles the keybinding overlay
func (h *HelpScreen) Toggle() {
	if h.visible {
		h.Hide()
		return
	}
	h.Show(" Keybindings (? to close) ", h.GetKeybindings())
}

// Show opens the overlay with a title and content
func (h *HelpScreen) Show(title string, lines []string) {
	h.visible = true
	h.title = title
	h.lines = lines
	h.offset = 0
}

// Hide closes the overlay
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the content currently shown
func (h *HelpScreen) Lines() []string {
	return h.lines
}

// Scroll moves the content by delta lines
func (h *HelpScreen) Scroll(delta int) {
	h.offset += delta
	if h.offset > len(h.lines)-1 {
		h.offset = len(h.lines) - 1
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

// GetKeybindings returns a formatted list of keybindings
func (h *HelpScreen) GetKeybindings() []string {
	var result []string

	result = append(result, "Keybindings:")
	result = append(result, "")

	for _, kb := range h.keybindings {
		result = append(result, "  "+PadStringToWidth(kb.GetKey(), 10)+" - "+kb.GetDescription())
	}

	if len(h.commands) > 0 {
		result = append(result, "")
		result = append(result, "Commands:")
		for _, c := range h.commands {
			result = append(result, "  "+c)
		}
	}

	result = append(result, "")
	result = append(result, "Special Keys:")
	result = append(result, "  Escape      - Close overlay or prompt")
	result = append(result, "  Up/Down     - Browse prompt history")

	return result
}

// Render renders the overlay
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	for y := 0; y < screen.GetHeight(); y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startY := 1
	startX := 2
	boxWidth := screen.GetWidth() - 4
	height := screen.GetHeight() - 2
	if boxWidth < 10 || height < 5 {
		return
	}

	drawBox(screen, startX, startY, boxWidth, height, borderStyle)

	screen.DrawStringLimited(startX+2, startY, h.title, boxWidth-4, titleStyle)

	y := startY + 1
	for _, line := range h.lines[h.offset:] {
		if y >= startY+height-1 {
			break
		}
		screen.DrawStringLimited(startX+2, y, line, boxWidth-4, contentStyle)
		y++
	}
}
