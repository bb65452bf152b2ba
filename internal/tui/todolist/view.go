package todolist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/todos/internal/todo"
	"github.com/alexisbeaulieu97/todos/internal/tui/components"
)

// View renders the current model state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{m.renderHeader()}

	if m.showError {
		sections = append(sections, m.renderErrorBanner())
	}

	sections = append(sections, m.renderInput(), m.renderList(), m.renderFooter())

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.styles.app.Width(m.width).Render(body)
}

// renderHeader renders the title, counts and the primary gradient bar
func (m Model) renderHeader() string {
	title := m.styles.title.Render("Todos")

	total, completed := todo.Counts(m.todos)
	summary := fmt.Sprintf("%d items · %d done", total, completed)
	if !m.useUnicode {
		summary = fmt.Sprintf("%d items - %d done", total, completed)
	}
	if m.pending > 0 {
		summary += "  " + m.spinner.View()
	}

	glyph := "▀"
	if !m.useUnicode {
		glyph = "="
	}
	bar := gradientBar(m.styles.scheme.Gradients.Primary, m.width, glyph)

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, title, m.styles.subtitle.Render(summary))}
	if total > 0 {
		progress := components.NewProgress(m.styles.scheme, max(m.width/3, 10))
		rows = append(rows, "  "+progress.View(completed, total))
	}
	rows = append(rows, bar)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderErrorBanner renders the dismissible error banner
func (m Model) renderErrorBanner() string {
	return components.ErrorAlert(m.errorMsg).
		WithWidth(max(m.width-4, 10)).
		WithDismissHint("x: dismiss").
		View(m.styles.scheme)
}

// renderInput renders the add field, highlighted while typing
func (m Model) renderInput() string {
	style := m.styles.input
	if m.editing {
		style = m.styles.editInput
	}
	return style.Width(max(m.width-4, 10)).Render(m.input.View())
}

// renderList renders the to-do rows or the loading and empty states
func (m Model) renderList() string {
	if !m.loaded {
		return m.styles.empty.Width(m.width).Render(m.spinner.View() + " Loading todos...")
	}
	if len(m.todos) == 0 {
		return m.renderEmptyState()
	}

	visible := m.height - 10
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.todos))

	rows := make([]string, 0, end-start+2)
	if start > 0 {
		rows = append(rows, m.styles.muted.Render(m.arrow(true)+" More above"))
	}
	for i := start; i < end; i++ {
		rows = append(rows, m.renderItem(i, i == m.cursor))
	}
	if end < len(m.todos) {
		rows = append(rows, m.styles.muted.Render(m.arrow(false)+" More below"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) arrow(up bool) string {
	switch {
	case !m.useUnicode && up:
		return "^"
	case !m.useUnicode:
		return "v"
	case up:
		return "▲"
	default:
		return "▼"
	}
}

// renderItem renders a single to-do row
func (m Model) renderItem(index int, selected bool) string {
	t := m.todos[index]

	check := m.styles.checkOpen.Render(m.checkbox(false))
	text := m.styles.text.Render(t.Text)
	if t.IsCompleted {
		check = m.styles.checkDone.Render(m.checkbox(true))
		text = m.styles.completed.Render(t.Text)
	}

	line := fmt.Sprintf("%s %s", check, text)
	width := max(m.width-4, 10)
	if selected {
		return m.styles.selectedItem.Width(width).Render(line)
	}
	return m.styles.item.Width(width).Render(line)
}

func (m Model) checkbox(done bool) string {
	switch {
	case done && m.useUnicode:
		return "✓"
	case done:
		return "[x]"
	case m.useUnicode:
		return "○"
	default:
		return "[ ]"
	}
}

// renderEmptyState draws the message over the empty-state gradient
func (m Model) renderEmptyState() string {
	glyph := "░"
	if !m.useUnicode {
		glyph = "."
	}
	bar := gradientBar(m.styles.scheme.Gradients.Empty, m.width, glyph)
	message := m.styles.empty.Width(m.width).Render("No todos yet. Press a to add one.")
	return lipgloss.JoinVertical(lipgloss.Left, bar, message, bar)
}

// renderFooter renders the status bar with key hints
func (m Model) renderFooter() string {
	var keys help.KeyMap = m.keys
	if m.editing {
		keys = editingKeys{k: m.keys}
	}
	hints := m.help.View(keys)

	mode := "light"
	if m.isDarkMode {
		mode = "dark"
	}
	if !m.themeLoaded {
		mode += "..."
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, hints, m.styles.warning.Render("  theme: "+mode))
	return m.styles.footer.Width(m.width).Render(bar)
}
