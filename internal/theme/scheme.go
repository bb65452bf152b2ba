// Package theme owns the light/dark colour schemes and the provider that
// keeps the user's dark-mode preference in memory and in local storage.
package theme

import (
	"fmt"
)

// StatusBarStyle selects the foreground of the status bar.
type StatusBarStyle string

const (
	// StatusBarLight draws light content, for dark backgrounds.
	StatusBarLight StatusBarStyle = "light"
	// StatusBarDark draws dark content, for light backgrounds.
	StatusBarDark StatusBarStyle = "dark"
)

// Valid reports whether s is one of the known styles.
func (s StatusBarStyle) Valid() bool {
	return s == StatusBarLight || s == StatusBarDark
}

// Gradients holds the two-stop gradients of a scheme.
type Gradients struct {
	Background Gradient
	Surface    Gradient
	Primary    Gradient
	Success    Gradient
	Warning    Gradient
	Danger     Gradient
	Muted      Gradient
	Empty      Gradient
}

// Backgrounds holds background overrides for input surfaces.
type Backgrounds struct {
	Input     string
	EditInput string
}

// ColorScheme is the full set of colours for one mode. Schemes only ever
// leave this package by value.
type ColorScheme struct {
	Name string

	Background string
	Surface    string
	Text       string
	TextMuted  string
	Border     string
	Primary    string
	Success    string
	Warning    string
	Danger     string
	Shadow     string

	Gradients   Gradients
	Backgrounds Backgrounds

	StatusBarStyle StatusBarStyle
}

var lightScheme = ColorScheme{
	Name: "light",

	Background: "#FFF8F3",
	Surface:    "#FFFFFF",
	Text:       "#4A3428",
	TextMuted:  "#9A8478",
	Border:     "#E5D3B7",
	Primary:    "#8B593E",
	Success:    "#2ECC71",
	Warning:    "#F4A261",
	Danger:     "#E74C3C",
	Shadow:     "#000000",

	Gradients: Gradients{
		Background: Gradient{"#FFF8F3", "#F3E5D3"},
		Surface:    Gradient{"#FFFFFF", "#FDF6F0"},
		Primary:    Gradient{"#8B593E", "#6F4E37"},
		Success:    Gradient{"#2ECC71", "#27AE60"},
		Warning:    Gradient{"#F4A261", "#E76F51"},
		Danger:     Gradient{"#E74C3C", "#C0392B"},
		Muted:      Gradient{"#CBB8A9", "#A89F91"},
		Empty:      Gradient{"#F3EDE7", "#E8DCCC"},
	},

	Backgrounds: Backgrounds{
		Input:     "#FFFFFF",
		EditInput: "#FFF5EC",
	},

	StatusBarStyle: StatusBarDark,
}

var darkScheme = ColorScheme{
	Name: "dark",

	Background: "#1C1B19",
	Surface:    "#2A2420",
	Text:       "#F5EDE6",
	TextMuted:  "#B89F91",
	Border:     "#3D322C",
	Primary:    "#A47148",
	Success:    "#27AE60",
	Warning:    "#E9A178",
	Danger:     "#E76F51",
	Shadow:     "rgba(0,0,0,0.6)",

	Gradients: Gradients{
		Background: Gradient{"#1C1B19", "#2A2420"},
		Surface:    Gradient{"#2A2420", "#3B322C"},
		Primary:    Gradient{"#A47148", "#8B5E3C"},
		Success:    Gradient{"#2ECC71", "#27AE60"},
		Warning:    Gradient{"#E9A178", "#D98E5F"},
		Danger:     Gradient{"#E76F51", "#C44536"},
		Muted:      Gradient{"#6B5B52", "#4A3F38"},
		Empty:      Gradient{"#2E2622", "#3B322C"},
	},

	Backgrounds: Backgrounds{
		Input:     "#2A2420",
		EditInput: "#1C1B19",
	},

	StatusBarStyle: StatusBarLight,
}

// Light returns the light scheme.
func Light() ColorScheme { return lightScheme }

// Dark returns the dark scheme.
func Dark() ColorScheme { return darkScheme }

// SchemeFor maps the dark-mode preference to its scheme.
func SchemeFor(isDarkMode bool) ColorScheme {
	if isDarkMode {
		return darkScheme
	}
	return lightScheme
}

// Validate checks that every colour, gradient stop and override is present
// and parseable, and that the status bar style is known.
func (c ColorScheme) Validate() error {
	colors := []struct {
		name  string
		value string
	}{
		{"background", c.Background},
		{"surface", c.Surface},
		{"text", c.Text},
		{"textMuted", c.TextMuted},
		{"border", c.Border},
		{"primary", c.Primary},
		{"success", c.Success},
		{"warning", c.Warning},
		{"danger", c.Danger},
		{"shadow", c.Shadow},
		{"backgrounds.input", c.Backgrounds.Input},
		{"backgrounds.editInput", c.Backgrounds.EditInput},
	}
	for _, col := range colors {
		if col.value == "" {
			return fmt.Errorf("scheme %s: %s is empty", c.Name, col.name)
		}
		if _, err := ParseColor(col.value); err != nil {
			return fmt.Errorf("scheme %s: %s: %w", c.Name, col.name, err)
		}
	}

	for name, g := range c.Gradients.All() {
		for i, stop := range g {
			if _, err := ParseColor(stop); err != nil {
				return fmt.Errorf("scheme %s: gradients.%s[%d]: %w", c.Name, name, i, err)
			}
		}
	}

	if !c.StatusBarStyle.Valid() {
		return fmt.Errorf("scheme %s: invalid status bar style %q", c.Name, c.StatusBarStyle)
	}
	return nil
}

// All returns the gradients keyed by name.
func (g Gradients) All() map[string]Gradient {
	return map[string]Gradient{
		"background": g.Background,
		"surface":    g.Surface,
		"primary":    g.Primary,
		"success":    g.Success,
		"warning":    g.Warning,
		"danger":     g.Danger,
		"muted":      g.Muted,
		"empty":      g.Empty,
	}
}
