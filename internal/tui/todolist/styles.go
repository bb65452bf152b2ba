package todolist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/todos/internal/theme"
)

// styles are the lipgloss styles derived from the active colour scheme.
// They are rebuilt whenever the provider reports a change.
type styles struct {
	scheme theme.ColorScheme

	app          lipgloss.Style
	title        lipgloss.Style
	subtitle     lipgloss.Style
	text         lipgloss.Style
	muted        lipgloss.Style
	item         lipgloss.Style
	selectedItem lipgloss.Style
	completed    lipgloss.Style
	checkDone    lipgloss.Style
	checkOpen    lipgloss.Style
	input        lipgloss.Style
	editInput    lipgloss.Style
	empty        lipgloss.Style
	footer       lipgloss.Style
	warning      lipgloss.Style
	spinner      lipgloss.Style
}

func color(value string) lipgloss.Color {
	return lipgloss.Color(theme.Hex(value))
}

func buildStyles(scheme theme.ColorScheme) styles {
	fg := color(scheme.Text)
	muted := color(scheme.TextMuted)
	border := color(scheme.Border)
	primary := color(scheme.Primary)

	// The status bar sits on the border colour; its content follows the
	// scheme's status bar style.
	barFg, barBg := lipgloss.Color("#000000"), border
	if scheme.StatusBarStyle == theme.StatusBarLight {
		barFg = lipgloss.Color("#FFFFFF")
	}

	return styles{
		scheme: scheme,

		app: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(scheme.Background)),

		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			PaddingLeft(2).
			PaddingRight(2),

		subtitle: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(2),

		text:  lipgloss.NewStyle().Foreground(fg),
		muted: lipgloss.NewStyle().Foreground(muted),

		item: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(scheme.Surface)).
			PaddingLeft(2).
			PaddingRight(2),

		selectedItem: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(scheme.Surface)).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(2).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(primary),

		completed: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),

		checkDone: lipgloss.NewStyle().Foreground(color(scheme.Success)).Bold(true),
		checkOpen: lipgloss.NewStyle().Foreground(border),

		input: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(scheme.Backgrounds.Input)).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),

		editInput: lipgloss.NewStyle().
			Foreground(fg).
			Background(color(scheme.Backgrounds.EditInput)).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		empty: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			Align(lipgloss.Center).
			PaddingTop(1).
			PaddingBottom(1),

		footer: lipgloss.NewStyle().
			Foreground(barFg).
			Background(barBg).
			Padding(0, 1),

		warning: lipgloss.NewStyle().Foreground(color(scheme.Warning)),
		spinner: lipgloss.NewStyle().Foreground(primary),
	}
}

// gradientBar renders width cells blended across g.
func gradientBar(g theme.Gradient, width int, glyph string) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for _, hex := range g.Steps(width) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(glyph))
	}
	return b.String()
}
