package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/todos/internal/theme"
)

// AlertVariant selects the scheme colour of an alert.
type AlertVariant int

const (
	AlertVariantError AlertVariant = iota
	AlertVariantWarning
	AlertVariantSuccess
)

// AlertOptions defines the configuration options for an alert
type AlertOptions struct {
	Variant     AlertVariant
	Title       string
	Dismissible bool
	// DismissHint replaces the default "[x]" marker.
	DismissHint string
	Width       int
}

// Alert represents a message alert component
type Alert struct {
	message string
	options AlertOptions
}

// NewAlert creates a new alert with the given message and options
func NewAlert(message string, opts AlertOptions) *Alert {
	return &Alert{message: message, options: opts}
}

// ErrorAlert creates a dismissible error alert
func ErrorAlert(message string) *Alert {
	return NewAlert(message, AlertOptions{
		Variant:     AlertVariantError,
		Title:       "Error",
		Dismissible: true,
	})
}

// WithWidth sets the rendered width
func (a *Alert) WithWidth(width int) *Alert {
	a.options.Width = width
	return a
}

// WithDismissHint sets the text shown for dismissible alerts
func (a *Alert) WithDismissHint(hint string) *Alert {
	a.options.DismissHint = hint
	return a
}

// View renders the alert in scheme's colours
func (a *Alert) View(scheme theme.ColorScheme) string {
	accent := lipgloss.Color(theme.Hex(a.accent(scheme)))

	var content []string
	if a.options.Title != "" {
		content = append(content, lipgloss.NewStyle().Bold(true).Foreground(accent).Render(a.options.Title))
	}
	if a.message != "" {
		content = append(content, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Hex(scheme.Text))).Render(a.message))
	}
	if a.options.Dismissible {
		hint := a.options.DismissHint
		if hint == "" {
			hint = "[x]"
		}
		content = append(content, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Hex(scheme.TextMuted))).Render(hint))
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.Hex(scheme.Surface))).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(accent).
		Padding(0, 2)
	if a.options.Width > 0 {
		style = style.Width(a.options.Width)
	}

	return style.Render(strings.Join(content, "\n"))
}

func (a *Alert) accent(scheme theme.ColorScheme) string {
	switch a.options.Variant {
	case AlertVariantWarning:
		return scheme.Warning
	case AlertVariantSuccess:
		return scheme.Success
	default:
		return scheme.Danger
	}
}
