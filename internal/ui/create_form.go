package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargazerhq/stargazer-terminal/internal/api"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// The create form places a new location at the viewport center: the user aims
// the map, presses 'n' and names the spot. A duplicate warning from the server
// is recoverable; pressing enter again resubmits the same request with the
// force flag set.

// handleCreateKey handles keyboard input in the create state
func (m Model) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateBrowse
		m.creating = false
		m.pendingCreate = nil
		m.duplicateWarning = ""
		m.nameInput.Blur()
		return m, nil

	case tea.KeyEnter:
		if m.creating {
			return m, nil
		}

		// Second enter after a duplicate warning forces the create through
		if m.pendingCreate != nil {
			req := *m.pendingCreate
			req.Force = true
			m.creating = true
			m.duplicateWarning = ""
			return m, tea.Batch(m.spinner.Tick, createSpot(m.catalogClient, req))
		}

		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		req := api.CreateLocationRequest{
			Name:      name,
			Latitude:  m.viewport.CenterLat,
			Longitude: m.viewport.CenterLng,
		}
		m.pendingCreate = &req
		m.creating = true
		return m, tea.Batch(m.spinner.Tick, createSpot(m.catalogClient, req))
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// finishCreate handles the create round-trip result
func (m Model) finishCreate(msg spotCreatedMsg) (tea.Model, tea.Cmd) {
	m.creating = false

	if msg.err != nil {
		if dup, ok := api.IsDuplicateWarning(msg.err); ok {
			// Keep pendingCreate so the next enter resubmits with force
			m.duplicateWarning = dup.Message
			return m, nil
		}
		m.pendingCreate = nil
		m.notice = "Couldn't create location: " + msg.err.Error()
		m.state = StateBrowse
		return m, nil
	}

	m.pendingCreate = nil
	m.duplicateWarning = ""
	m.state = StateBrowse
	m.nameInput.Blur()

	m.entities.AddSpot(*msg.spot)
	key := models.Key{Kind: models.KindLocation, ID: msg.spot.ID}
	m.selected = &key
	m.rebuildMarkers()
	m.refresh()

	if idx, ok := m.visibleIndex(key); ok {
		m.pager.GoToPage(m.pager.PageFor(idx))
		m.listCursor = idx
	}
	return m, m.animationCmd(m.selectionProbe(key))
}

// finishDelete handles the delete round-trip result
func (m Model) finishDelete(msg spotDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = "Couldn't delete location: " + msg.err.Error()
		return m, nil
	}

	key := models.Key{Kind: models.KindLocation, ID: msg.id}
	m.entities.RemoveSpot(msg.id)
	m.marks.Remove(key)
	delete(m.pendingFavorites, key)
	if m.selected != nil && *m.selected == key {
		m.selected = nil
	}
	m.refresh()
	return m, m.animationCmd()
}
