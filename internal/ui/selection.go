package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Selection is a single cross-surface state: exactly one entity (or none) is
// selected at a time, whichever surface the click came from. The two entry
// points differ only in which counterpart surface they adjust: a marker click
// turns the list page, a card click recenters the map. Neither does the other.

// selectFromMarker handles a click on a map marker. Clicking the selected
// marker again deselects it.
func (m *Model) selectFromMarker(key models.Key) tea.Cmd {
	if m.toggleSelection(key) == nil {
		return nil
	}

	// Turn the list to the card's page; the viewport stays put because the
	// marker is by definition already on screen.
	if idx, ok := m.visibleIndex(key); ok {
		m.pager.GoToPage(m.pager.PageFor(idx))
		m.listCursor = idx
	}

	return m.selectionProbe(key)
}

// selectFromCard handles a click on a list card. The map flies to the entity
// only when its marker is currently off screen.
func (m *Model) selectFromCard(key models.Key) tea.Cmd {
	if m.toggleSelection(key) == nil {
		return nil
	}

	if idx, ok := m.visibleIndex(key); ok {
		m.listCursor = idx
	}

	if ent, ok := m.entities.Get(key); ok {
		c := ent.Coords()
		if !m.viewport.Contains(c.Lat, c.Lng, 0) {
			m.viewport = m.viewport.FlyTo(c.Lat, c.Lng)
			m.syncMarkers()
		}
	}

	return m.animationCmd(m.selectionProbe(key))
}

// toggleSelection applies the select/deselect rule and syncs marker
// highlighting; returns the now-selected key, or nil after a deselect
func (m *Model) toggleSelection(key models.Key) *models.Key {
	if m.selected != nil && *m.selected == key {
		m.selected = nil
		m.marks.SelectOnly(nil)
		return nil
	}

	if _, ok := m.entities.Get(key); !ok {
		return nil
	}

	k := key
	m.selected = &k
	m.notice = ""
	m.marks.SelectOnly(&k)
	return &k
}

// selectionProbe refreshes the live favorite flag for a newly selected
// location; events have nothing to probe
func (m *Model) selectionProbe(key models.Key) tea.Cmd {
	if key.Kind != models.KindLocation || m.favClient == nil {
		return nil
	}
	return probeFavoriteStatus(m.favClient, key)
}

// reconcileFavoriteStatus folds a status probe result back into the store.
// Stale probes are dropped: the selection may have moved on, or an optimistic
// toggle may be in flight and own the flag until it settles.
func (m *Model) reconcileFavoriteStatus(msg favoriteStatusMsg) {
	if msg.err != nil {
		return
	}
	if m.selected == nil || *m.selected != msg.key {
		return
	}
	if _, busy := m.pendingFavorites[msg.key]; busy {
		return
	}

	prev, ok := m.entities.SetFavorite(msg.key.ID, msg.favorited)
	if !ok || prev == msg.favorited {
		return
	}
	m.marks.SetFavorited(msg.key, msg.favorited)
	m.refresh()
}
