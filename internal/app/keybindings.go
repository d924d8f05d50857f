package app

import (
	"github.com/gdamore/tcell/v2"
)

// KeyBinding represents a key binding with its description and handler.
// A binding matches either the rune Key or, when set, the special key.
type KeyBinding struct {
	Key         rune
	Special     tcell.Key
	Name        string // shown in help instead of Key
	Description string
	Handler     func(*App)
}

// GetKey returns the key as shown in help
func (kb *KeyBinding) GetKey() string {
	if kb.Name != "" {
		return kb.Name
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

func (kb *KeyBinding) matches(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		return kb.Key != 0 && ev.Rune() == kb.Key
	}
	return kb.Special != 0 && ev.Key() == kb.Special
}

// InitializeKeybindings sets up the list screen key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Move down",
			Handler: func(app *App) {
				app.list.MoveSelection(1)
			},
		},
		{
			Special:     tcell.KeyDown,
			Name:        "Down",
			Description: "Move down",
			Handler: func(app *App) {
				app.list.MoveSelection(1)
			},
		},
		{
			Key:         'k',
			Description: "Move up",
			Handler: func(app *App) {
				app.list.MoveSelection(-1)
			},
		},
		{
			Special:     tcell.KeyUp,
			Name:        "Up",
			Description: "Move up",
			Handler: func(app *App) {
				app.list.MoveSelection(-1)
			},
		},
		{
			Key:         'g',
			Description: "Go to first change",
			Handler: func(app *App) {
				app.list.Select(0)
			},
		},
		{
			Key:         'G',
			Description: "Go to last change",
			Handler: func(app *App) {
				app.list.Select(app.list.Len() - 1)
			},
		},
		{
			Special:     tcell.KeyEnter,
			Name:        "Enter",
			Description: "Expand or collapse details",
			Handler: func(app *App) {
				app.dispatch(app.list.ToggleSelected())
			},
		},
		{
			Key:         ' ',
			Name:        "Space",
			Description: "Expand or collapse details",
			Handler: func(app *App) {
				app.dispatch(app.list.ToggleSelected())
			},
		},
		{
			Key:         'o',
			Description: "Open full diff",
			Handler: func(app *App) {
				if item := app.list.SelectedItem(); item != nil {
					app.openDiff(item.ID())
				}
			},
		},
		{
			Key:         'm',
			Description: "Load more changes",
			Handler: func(app *App) {
				if !app.list.CanLoadMore() {
					return
				}
				app.dispatch(app.list.LoadMore())
			},
		},
		{
			Key:         '/',
			Description: "Filter by company name",
			Handler: func(app *App) {
				app.companyPrompt.StartWith(app.list.Filters().Company)
			},
		},
		{
			Key:         'c',
			Description: "Pick a company",
			Handler: func(app *App) {
				app.picker.Show()
				app.dispatch(app.companies.Load())
			},
		},
		{
			Key:         's',
			Description: "Cycle change size filter",
			Handler: func(app *App) {
				size := app.list.Filters().ChangeSize.Next()
				app.dispatch(app.list.SetChangeSize(size))
				app.SetStatus("Size: " + size.Label())
			},
		},
		{
			Key:         'r',
			Description: "Reload",
			Handler: func(app *App) {
				app.dispatch(app.list.Reload())
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// GetKeybinding returns the binding matching ev, or nil
func (a *App) GetKeybinding(ev *tcell.EventKey) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].matches(ev) {
			return &a.keybindings[i]
		}
	}
	return nil
}

// handleKeypress handles a key on the list screen
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if kb := a.GetKeybinding(ev); kb != nil {
		kb.Handler(a)
	}
}
