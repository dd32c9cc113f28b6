package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.state {
	case StateLoading:
		body = m.viewLoading()
	case StateError:
		body = m.viewError()
	default:
		body = m.viewBrowse()
	}

	// Scan registers every zone marked during this render pass
	return m.zones.Scan(body)
}

// viewLoading renders the startup screen
func (m Model) viewLoading() string {
	title := titleStyle.Render("✦ Stargazer")
	status := mutedStyle.Render("Loading the night sky catalog...")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		title,
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), status),
	)
}

// viewError renders the error view
func (m Model) viewError() string {
	title := noticeStyle.Render("✗ Error")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Q: Quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		errorMsg,
		"",
		help,
	)
}

// viewBrowse renders the main screen: map pane left, list and detail right
func (m Model) viewBrowse() string {
	header := m.renderHeader()

	mapBorder := paneStyle
	if m.focus == PaneMap && m.state == StateBrowse {
		mapBorder = activePaneStyle
	}
	mapView := mapBorder.Render(m.canvas.Render(m.viewport, m.coast, m.state == StateCreate))

	listW := m.listPaneWidth()
	var right string
	if m.state == StateCreate {
		right = m.renderCreateForm(listW)
	} else {
		right = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderListPane(listW),
			m.renderDetailPane(listW),
		)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", right)

	status := m.renderStatus()
	help := m.renderHelp()

	return lipgloss.JoinVertical(lipgloss.Left, header, row, status, help)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("✦ Stargazer")
	pos := mutedStyle.Render(fmt.Sprintf(
		"%.3f, %.3f  z%.0f", m.viewport.CenterLat, m.viewport.CenterLng, m.viewport.Zoom,
	))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", pos)
}

func (m Model) renderStatus() string {
	switch {
	case m.notice != "":
		return noticeStyle.Render("✗ " + m.notice)
	case m.degraded:
		s := "⚠ Offline: showing saved catalog"
		if !m.snapshotAge.IsZero() {
			s += " from " + m.snapshotAge.Local().Format("Jan 2 15:04")
		}
		return degradedStyle.Render(s)
	}
	return ""
}

func (m Model) renderHelp() string {
	if m.state == StateCreate {
		return helpStyle.Render("Enter: Save • Esc: Cancel")
	}
	if m.searching {
		return helpStyle.Render("Type to filter • Enter: Keep • Esc: Clear")
	}
	return helpStyle.Render(
		"Tab: Pane • 1/2/3: All/Locations/Events • /: Search • F: Favs • X: Toggle fav • N: New • R: Reload • Q: Quit",
	)
}
