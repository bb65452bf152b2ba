package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/todos/internal/theme"
)

// Progress renders how many to-dos are done, filled with the scheme's
// success gradient.
type Progress struct {
	bar   progress.Model
	label lipgloss.Style
}

// NewProgress builds a bar of the given width for scheme.
func NewProgress(scheme theme.ColorScheme, width int) Progress {
	g := scheme.Gradients.Success
	bar := progress.New(
		progress.WithGradient(theme.Hex(g.Start()), theme.Hex(g.End())),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = theme.Hex(scheme.Border)
	if width > 0 {
		bar.Width = width
	}
	return Progress{
		bar:   bar,
		label: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Hex(scheme.Text))),
	}
}

// Ratio returns completed/total clamped to [0, 1].
func Ratio(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1.0, float64(completed)/float64(total)))
}

// View renders the bar for the provided counts.
func (p Progress) View(completed, total int) string {
	label := p.label.Render(fmt.Sprintf("%d/%d", completed, total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(Ratio(completed, total)))
}
