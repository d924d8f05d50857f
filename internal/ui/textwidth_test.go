package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"Arrow", '→', 1},
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Combining acute", '\u0301', 0},
		{"Newline", '\n', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuneWidth(tt.r); got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"fits", "Acme: v1 → v2", 20, "Acme: v1 → v2"},
		{"truncated", "Hello", 3, "Hel"},
		{"wide rune not split", "Hi😀", 3, "Hi"},
		{"CJK", "中国", 2, "中"},
		{"zero width", "Hello", 0, ""},
		{"negative width", "Hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(tt.input, tt.maxWidth); got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"Privacy Policy", 20, "Privacy Policy"},
		{"Privacy Policy", 10, "Privacy..."},
		{"Privacy", 3, "Pri"},
		{"中国中国", 7, "中国..."},
	}

	for _, tt := range tests {
		if got := TruncateToWidthWithEllipsis(tt.input, tt.maxWidth); got != tt.expected {
			t.Errorf("TruncateToWidthWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
		}
	}
}

func TestPadStringToWidth(t *testing.T) {
	if got := PadStringToWidth("中", 4); got != "中  " {
		t.Errorf("PadStringToWidth = %q", got)
	}
	if got := PadStringToWidth("toolong", 3); got != "toolong" {
		t.Errorf("PadStringToWidth should leave wide strings alone, got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"word boundary", "we may share your data", 10, []string{"we may", "share your", "data"}},
		{"long word split", "abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{"empty", "", 10, []string{""}},
		{"no width", "anything goes", 0, []string{"anything goes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, WrapText(tt.input, tt.width)); diff != "" {
				t.Errorf("WrapText mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
