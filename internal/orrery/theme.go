package orrery

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Theme selects the background/foreground pair.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	default:
		return "unknown"
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Palette returns the background and foreground colors.
func (t Theme) Palette() (bg, fg colorful.Color) {
	if t == ThemeLight {
		return scene.Hex(0xffffff), scene.Hex(0x000000)
	}
	return scene.Hex(0x000000), scene.Hex(0xffffff)
}

// ButtonLabel names the theme the toggle switches to.
func (t Theme) ButtonLabel() string {
	if t == ThemeLight {
		return "Dark Mode"
	}
	return "Light Mode"
}
