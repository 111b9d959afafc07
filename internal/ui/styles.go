package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, index names, field names
// - Muted (gray): Secondary info

var (
	// Accent style for index names, field names, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// accentColor holds the configured accent override, empty when unset.
	accentColor string
)

// ConfigureTheme overrides the accent color. Accepts ANSI color codes
// ("0" to "255") or hex colors ("#RRGGBB" / "#RGB"); empty, "none", "off",
// and "default" reset to the built-in palette.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// AccentColor returns the configured accent override, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor validates and canonicalizes an accent color value.
// Three-digit hex colors are expanded to six digits.
func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	switch value {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3:
			var expanded strings.Builder
			for _, c := range hex {
				if !isHexDigit(c) {
					return "", false
				}
				expanded.WriteRune(c)
				expanded.WriteRune(c)
			}
			return "#" + strings.ToLower(expanded.String()), true
		case 6:
			for _, c := range hex {
				if !isHexDigit(c) {
					return "", false
				}
			}
			return "#" + strings.ToLower(hex), true
		default:
			return "", false
		}
	}

	if code, err := strconv.Atoi(value); err == nil && code >= 0 && code <= 255 {
		return strconv.Itoa(code), true
	}
	return "", false
}

func isHexDigit(c rune) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
