package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stargazerhq/stargazer-terminal/internal/filter"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// renderListPane draws the tab bar, search box, the current page of cards and
// the pagination controls. Cards and page buttons are mouse zones.
func (m Model) renderListPane(width int) string {
	var sections []string

	sections = append(sections, m.renderTabs())

	if m.searching || m.filters.SearchQuery != "" {
		sections = append(sections, m.searchInput.View())
	}
	sections = append(sections, m.renderFilterLine())
	sections = append(sections, "")

	page := m.pageEntities()
	if len(page) == 0 {
		sections = append(sections, mutedStyle.Render("Nothing matches the current filters"))
	}
	start, _ := m.pager.Bounds()
	for i, ent := range page {
		sections = append(sections, m.renderCard(ent, start+i))
	}

	sections = append(sections, "", m.renderPagination())

	border := paneStyle
	if m.focus == PaneList {
		border = activePaneStyle
	}
	return border.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m Model) renderTabs() string {
	render := func(label string, tab filter.Tab) string {
		if m.filters.ActiveTab == tab {
			return activeTabStyle.Render(label)
		}
		return tabStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		render("All", filter.TabAll),
		render("Locations", filter.TabLocations),
		render("Events", filter.TabEvents),
	)
}

// renderFilterLine summarizes the non-tab filters currently in force
func (m Model) renderFilterLine() string {
	var active []string
	if m.filters.FavoritesOnly {
		active = append(active, "favorites")
	}
	if m.filters.MineOnly {
		active = append(active, "mine")
	}
	for t := range m.filters.EventTypes {
		active = append(active, strings.ToLower(string(t)))
	}
	if len(active) == 0 {
		return mutedStyle.Render(fmt.Sprintf("%d shown", m.pager.Total()))
	}
	return mutedStyle.Render(fmt.Sprintf("%d shown · %s", m.pager.Total(), strings.Join(active, " · ")))
}

func (m Model) renderCard(ent models.Entity, index int) string {
	style := cardStyle
	selected := m.selected != nil && *m.selected == ent.Key()
	if selected || index == m.listCursor {
		style = selectedCardStyle
	}

	var badge string
	switch ent.EntityKind() {
	case models.KindEvent:
		badge = eventBadgeStyle.Render("✶ " + string(ent.CelestialType()))
	case models.KindLocation:
		if sp, ok := m.entities.Spot(ent.Key().ID); ok {
			badge = m.spotBadge(sp)
		}
	}

	name := ent.DisplayName()
	if ent.Favorited() {
		name = favoriteMarkStyle.Render("★ ") + name
	}

	line := name
	if badge != "" {
		line += "  " + badge
	}

	return m.zones.Mark(cardZone(ent.Key()), style.Render(line))
}

func (m Model) spotBadge(sp *models.Spot) string {
	var parts []string
	if sp.QualityScore != nil {
		parts = append(parts, fmt.Sprintf("Q%.0f", *sp.QualityScore))
	}
	if avg, ok := sp.AverageRating(); ok {
		parts = append(parts, fmt.Sprintf("%.1f☆", avg))
	}
	if len(parts) == 0 {
		return ""
	}
	return mutedStyle.Render(strings.Join(parts, " "))
}

// renderPagination draws the page buttons: a window around the current page
// with first and last pinned, ellipses marking gaps
func (m Model) renderPagination() string {
	if m.pager.PageCount() <= 1 {
		return ""
	}

	parts := make([]string, 0, m.pageWindow+4)
	for _, b := range m.pager.Window(m.pageWindow) {
		if b.Ellipsis {
			parts = append(parts, ellipsisStyle.Render("…"))
			continue
		}
		label := strconv.Itoa(b.Page)
		if b.Current {
			parts = append(parts, currentPageStyle.Render(label))
			continue
		}
		parts = append(parts, m.zones.Mark(pageZone(b.Page), pageButtonStyle.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
