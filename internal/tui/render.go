package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/pagination"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		domain.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.view.Title))
	if m.loaded {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d total", m.total)))
	}
	if m.pending != "" {
		b.WriteString(mutedStyle.Render("  loading..."))
	}
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	b.WriteString(m.headerLine())
	b.WriteString("\n")
	switch {
	case !m.loaded:
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
	case len(m.rows) == 0:
		b.WriteString(mutedStyle.Render(m.view.Empty))
		b.WriteString("\n")
	default:
		for _, r := range m.rows {
			b.WriteString(m.rowLine(r))
			b.WriteString("\n")
		}
	}

	if links := pagination.Render(m.controls, m.focus); links != "" {
		b.WriteString("\n")
		b.WriteString(links)
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) filterLine() string {
	parts := make([]string, 0, len(m.view.Filters))
	for _, filter := range m.view.Filters {
		value := m.state.Get(filter.Key)
		if value == "" {
			value = "all"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", filter.Label, value))
	}
	return mutedStyle.Render(strings.Join(parts, "   "))
}

func (m Model) headerLine() string {
	field, direction := m.state.SortField(), m.state.SortDirection()
	cells := make([]string, len(m.view.Columns))
	for i, column := range m.view.Columns {
		label := column.Header
		if column.SortField != "" && column.SortField == field {
			if direction == domain.SortDirectionDesc {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		cells[i] = headerStyle.Render(pad(label, column.Width))
	}
	return strings.Join(cells, " ")
}

func (m Model) rowLine(r row) string {
	cells := make([]string, len(m.view.Columns))
	for i, column := range m.view.Columns {
		cell := pad(column.Value(r), column.Width)
		if column.Header == "Status" {
			if style, ok := statusStyles[domain.Status(r.Status)]; ok {
				cell = style.Render(cell)
			}
		}
		cells[i] = cell
	}
	return strings.Join(cells, " ")
}

func (m Model) helpLine() string {
	parts := []string{"/ search"}
	for _, filter := range m.view.Filters {
		parts = append(parts, fmt.Sprintf("%s %s", filter.Shortcut, filter.Label))
	}
	for _, column := range m.view.Columns {
		if column.SortField != "" {
			parts = append(parts, fmt.Sprintf("%s sort %s", column.Shortcut, strings.ToLower(column.Header)))
		}
	}
	parts = append(parts, "←/→ page", "enter open page", "x clear", "r reload", "q quit")
	return strings.Join(parts, " • ")
}

// pad truncates or right-pads s to width display cells.
func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
