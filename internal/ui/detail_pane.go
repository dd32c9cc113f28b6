package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// renderDetailPane shows the selected entity's attributes, or a hint when
// nothing is selected
func (m Model) renderDetailPane(width int) string {
	var body string
	if m.selected == nil {
		body = mutedStyle.Render("Select a marker or card for details")
	} else if ent, ok := m.entities.Get(*m.selected); ok {
		switch ent.EntityKind() {
		case models.KindLocation:
			sp, _ := m.entities.Spot(m.selected.ID)
			body = m.renderSpotDetail(sp)
		case models.KindEvent:
			ev, _ := m.entities.Event(m.selected.ID)
			body = m.renderEventDetail(ev)
		}
	}

	return paneStyle.Width(width).Render(body)
}

func (m Model) renderSpotDetail(sp *models.Spot) string {
	title := titleStyle.Render(sp.Name)
	if sp.IsFavorited {
		title = favoriteMarkStyle.Render("★ ") + title
	}

	lines := []string{
		title,
		detailRow("Coordinates", fmt.Sprintf("%.4f, %.4f", sp.Coordinates.Lat, sp.Coordinates.Lng)),
		detailRow("Elevation", fmt.Sprintf("%.0f m", sp.Elevation)),
	}

	if sp.QualityScore != nil {
		lines = append(lines, detailRow("Sky quality", fmt.Sprintf("%.0f / 100", *sp.QualityScore)))
	} else {
		lines = append(lines, detailRow("Sky quality", "not yet rated"))
	}

	if sp.LightPollution != nil {
		lines = append(lines, detailRow("Light pollution", fmt.Sprintf("%.1f", *sp.LightPollution)))
	}

	// A missing reading renders as a dash, never as a zero
	cloud := "—"
	if sp.HasCloudCover() {
		cloud = fmt.Sprintf("%.0f%%", sp.CloudCover)
	}
	lines = append(lines, detailRow("Cloud cover", cloud))

	if avg, ok := sp.AverageRating(); ok {
		lines = append(lines, detailRow("Rating", fmt.Sprintf("%.1f☆ (%d reviews)", avg, len(sp.Reviews))))
	}

	if sp.AddedBy != "" {
		owner := sp.AddedBy
		if sp.AddedBy == m.currentUser {
			owner += " (you)"
		}
		lines = append(lines, detailRow("Added by", owner))
	}

	if sp.Description != "" {
		lines = append(lines, "", valueStyle.Render(sp.Description))
	}

	hints := "X: Toggle favorite"
	if sp.AddedBy == m.currentUser {
		hints += " • D: Delete"
	}
	lines = append(lines, "", mutedStyle.Render(hints))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderEventDetail(ev *models.SkyEvent) string {
	lines := []string{
		titleStyle.Render(ev.Name),
		detailRow("Type", string(ev.Type)),
		detailRow("Coordinates", fmt.Sprintf("%.4f, %.4f", ev.Coordinates.Lat, ev.Coordinates.Lng)),
	}
	if ev.Description != "" {
		lines = append(lines, "", valueStyle.Render(ev.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func detailRow(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

// renderCreateForm replaces the right column while naming a new location
func (m Model) renderCreateForm(width int) string {
	lines := []string{
		titleStyle.Render("New location"),
		mutedStyle.Render(fmt.Sprintf(
			"At map center: %.4f, %.4f", m.viewport.CenterLat, m.viewport.CenterLng,
		)),
		"",
		m.nameInput.View(),
	}

	if m.duplicateWarning != "" {
		lines = append(lines,
			"",
			warningStyle.Render("⚠ "+m.duplicateWarning),
			mutedStyle.Render("Enter again to create anyway"),
		)
	}
	if m.creating {
		lines = append(lines, "", fmt.Sprintf("%s Saving...", m.spinner.View()))
	}

	return paneStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
