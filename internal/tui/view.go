package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/render"
	"github.com/julianstephens/hourlog/internal/utils"
)

const minChartWidth = 10

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHistory:
		content = docStyle.Render(m.history.View())
	case StateChart:
		content = m.viewChart()
	case StateAdding, StateEditing, StateConfirmDelete:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if m.inForm() {
		active = StateToday
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	total := totalStyle.Render(fmt.Sprintf("%s  Total: %s of %gh",
		m.view.Today, utils.FormatHours(m.view.DayTotal), constants.DayCapacityHours))
	return lipgloss.JoinVertical(lipgloss.Left, total, docStyle.Render(m.entryList.View()))
}

func (m Model) viewChart() string {
	width := m.width - 24
	if width < minChartWidth {
		width = minChartWidth
	}
	return docStyle.Render(render.Chart(m.view.Chart, width))
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return successStyle.Render(m.status)
}
