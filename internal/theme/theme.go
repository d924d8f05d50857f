package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Change list colors
	ListNormalText   tcell.Color
	ListSelectedItem tcell.Color
	ListMeta         tcell.Color
	ListMarker       tcell.Color
	ListAction       tcell.Color

	// Filter bar colors
	FilterLabel tcell.Color
	FilterValue tcell.Color

	// Diff colors
	DiffHeader   tcell.Color
	DiffSection  tcell.Color
	DiffAdded    tcell.Color
	DiffRemoved  tcell.Color
	DiffReplaced tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color
	CommandCursor tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color
	StatusLoading tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults, keeping
// green and red for the diff lines.
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			ListNormalText:   tcell.ColorDefault,
			ListSelectedItem: tcell.ColorDefault,
			ListMeta:         tcell.ColorDefault,
			ListMarker:       tcell.ColorDefault,
			ListAction:       tcell.ColorDefault,
			FilterLabel:      tcell.ColorDefault,
			FilterValue:      tcell.ColorDefault,
			DiffHeader:       tcell.ColorDefault,
			DiffSection:      tcell.ColorDefault,
			DiffAdded:        tcell.ColorGreen,
			DiffRemoved:      tcell.ColorRed,
			DiffReplaced:     tcell.ColorYellow,
			CommandPrompt:    tcell.ColorDefault,
			CommandText:      tcell.ColorDefault,
			CommandCursor:    tcell.ColorDefault,
			HelpBackground:   tcell.ColorDefault,
			HelpBorder:       tcell.ColorDefault,
			HelpTitle:        tcell.ColorDefault,
			HelpContent:      tcell.ColorDefault,
			StatusMode:       tcell.ColorDefault,
			StatusMessage:    tcell.ColorDefault,
			StatusError:      tcell.ColorRed,
			StatusLoading:    tcell.ColorDefault,
			HeaderTitle:      tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			ListNormalText:   HexToColor("#c0caf5"), // Light gray-blue
			ListSelectedItem: HexToColor("#7aa2f7"), // Blue
			ListMeta:         HexToColor("#565f89"), // Comment gray
			ListMarker:       HexToColor("#7dcfff"), // Cyan
			ListAction:       HexToColor("#e0af68"), // Orange
			FilterLabel:      HexToColor("#bb9af7"), // Magenta
			FilterValue:      HexToColor("#c0caf5"),
			DiffHeader:       HexToColor("#bb9af7"),
			DiffSection:      HexToColor("#7dcfff"),
			DiffAdded:        HexToColor("#9ece6a"), // Green
			DiffRemoved:      HexToColor("#f7768e"), // Red
			DiffReplaced:     HexToColor("#e0af68"),
			CommandPrompt:    HexToColor("#bb9af7"),
			CommandText:      HexToColor("#c0caf5"),
			CommandCursor:    HexToColor("#7aa2f7"),
			HelpBackground:   HexToColor("#1a1b26"), // Dark background
			HelpBorder:       HexToColor("#7dcfff"),
			HelpTitle:        HexToColor("#bb9af7"),
			HelpContent:      HexToColor("#c0caf5"),
			StatusMode:       HexToColor("#bb9af7"),
			StatusMessage:    HexToColor("#9ece6a"),
			StatusError:      HexToColor("#f7768e"),
			StatusLoading:    HexToColor("#e0af68"),
			HeaderTitle:      HexToColor("#bb9af7"),
		},
	}
}
