package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads a theme color. It accepts #RRGGBB, #RGB, rgb(r, g, b)
// and the color names tcell knows, such as "green" or "darkred".
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return tcell.ColorDefault, fmt.Errorf("bad hex color %q", s)
		}
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("bad hex color %q", s)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("rgb("):len(s)-1], ",")
		if len(parts) != 3 {
			return tcell.ColorDefault, fmt.Errorf("bad rgb color %q", s)
		}
		var rgb [3]int32
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return tcell.ColorDefault, fmt.Errorf("bad rgb color %q", s)
			}
			rgb[i] = int32(v)
		}
		return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil

	case s == "default":
		return tcell.ColorDefault, nil
	}

	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
}

// HexToColor converts #RRGGBB or #RGB, giving the terminal default on bad input
func HexToColor(hex string) tcell.Color {
	c, err := ParseColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}

// Blend mixes a and b in Lab space; t=0 gives a, t=1 gives b. When either
// color has no RGB value (the terminal default) a is returned unchanged.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if !a.Valid() || !b.Valid() {
		return a
	}
	mixed := toColorful(a).BlendLab(toColorful(b), t).Clamped()
	r, g, bl := mixed.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
