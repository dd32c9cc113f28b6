package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargazerhq/stargazer-terminal/internal/filter"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

func cardZone(key models.Key) string { return "card:" + key.String() }

func pageZone(n int) string { return "page:" + strconv.Itoa(n) }

// handleKey routes keyboard input by state
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateCreate:
		return m.handleCreateKey(msg)
	case StateError:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case StateLoading:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleSearchKey feeds keystrokes to the search box; the query filters the
// list live on every edit
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEsc:
		// Esc abandons the search entirely
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filters.SearchQuery = ""
		m.pager.Reset()
		m.refresh()
		return m, m.animationCmd()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if q := m.searchInput.Value(); q != m.filters.SearchQuery {
		m.filters.SearchQuery = q
		m.pager.Reset()
		m.refresh()
		return m, m.animationCmd(cmd)
	}
	return m, cmd
}

// handleBrowseKey handles the main browse-state key map
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "tab":
		if m.focus == PaneMap {
			m.focus = PaneList
		} else {
			m.focus = PaneMap
		}
		return m, nil

	// Entity tabs
	case "1":
		return m.setTab(filter.TabAll)
	case "2":
		return m.setTab(filter.TabLocations)
	case "3":
		return m.setTab(filter.TabEvents)

	// Boolean filters
	case "f":
		m.filters.FavoritesOnly = !m.filters.FavoritesOnly
		return m.filtersChanged()
	case "m":
		m.filters.MineOnly = !m.filters.MineOnly
		return m.filtersChanged()

	// Event type toggles
	case "M":
		return m.toggleEventType(models.EventMeteor)
	case "E":
		return m.toggleEventType(models.EventEclipse)
	case "P":
		return m.toggleEventType(models.EventPlanet)
	case "A":
		return m.toggleEventType(models.EventAurora)
	case "C":
		return m.toggleEventType(models.EventComet)
	case "O":
		return m.toggleEventType(models.EventOther)

	case "+", "=":
		m.viewport = m.viewport.ZoomIn()
		m.syncMarkers()
		return m, m.animationCmd()
	case "-":
		m.viewport = m.viewport.ZoomOut()
		m.syncMarkers()
		return m, m.animationCmd()

	case "up", "k":
		return m.moveVertical(-1)
	case "down", "j":
		return m.moveVertical(1)
	case "left", "h":
		return m.moveHorizontal(-1)
	case "right", "l":
		return m.moveHorizontal(1)

	case "enter":
		if m.focus == PaneList {
			if m.listCursor < len(m.visible) {
				cmd := m.selectFromCard(m.visible[m.listCursor].Key())
				return m, cmd
			}
		}
		return m, nil

	case "x":
		if m.selected != nil {
			cmd := m.startFavoriteToggle(*m.selected)
			return m, m.animationCmd(cmd)
		}
		return m, nil

	case "n":
		m.state = StateCreate
		m.notice = ""
		m.duplicateWarning = ""
		m.pendingCreate = nil
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink

	case "d":
		return m.requestDelete()

	case "r":
		return m.reload()

	case "esc":
		if m.selected != nil {
			m.selected = nil
			m.marks.SelectOnly(nil)
		}
		m.notice = ""
		return m, nil
	}

	return m, nil
}

func (m Model) setTab(tab filter.Tab) (tea.Model, tea.Cmd) {
	if m.filters.ActiveTab == tab {
		return m, nil
	}
	m.filters.ActiveTab = tab
	return m.filtersChanged()
}

func (m Model) toggleEventType(t models.EventType) (tea.Model, tea.Cmd) {
	m.filters.ToggleEventType(t)
	return m.filtersChanged()
}

// filtersChanged applies the invariant shared by every filter mutation:
// back to page 1, then recompute everything
func (m Model) filtersChanged() (tea.Model, tea.Cmd) {
	m.pager.Reset()
	m.refresh()
	return m, m.animationCmd()
}

func (m Model) moveVertical(dir int) (tea.Model, tea.Cmd) {
	if m.focus == PaneMap {
		m.viewport = m.viewport.Pan(0, dir*3)
		m.syncMarkers()
		return m, m.animationCmd()
	}

	start, end := m.pager.Bounds()
	next := m.listCursor + dir
	if next >= start && next < end {
		m.listCursor = next
	}
	return m, nil
}

func (m Model) moveHorizontal(dir int) (tea.Model, tea.Cmd) {
	if m.focus == PaneMap {
		m.viewport = m.viewport.Pan(dir*6, 0)
		m.syncMarkers()
		return m, m.animationCmd()
	}

	moved := false
	if dir < 0 {
		moved = m.pager.Prev()
	} else {
		moved = m.pager.Next()
	}
	if moved {
		start, _ := m.pager.Bounds()
		m.listCursor = start
	}
	return m, nil
}

func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	if m.selected == nil || m.selected.Kind != models.KindLocation {
		return m, nil
	}
	sp, ok := m.entities.Spot(m.selected.ID)
	if !ok {
		return m, nil
	}
	if sp.AddedBy != m.currentUser {
		m.notice = "Only your own locations can be deleted"
		return m, nil
	}
	return m, deleteSpot(m.catalogClient, sp.ID)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.state = StateLoading
	m.spotsLoading = true
	m.eventsLoading = true
	m.spotsErr = nil
	m.eventsErr = nil
	m.snapshotTried = false
	m.degraded = false
	m.notice = ""
	return m, tea.Batch(
		m.spinner.Tick,
		loadSpots(m.catalogClient),
		loadEvents(m.catalogClient),
	)
}

// handleMouse resolves left clicks against marker, card and page-button zones
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateBrowse {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if key, ok := m.canvas.HitTest(msg); ok {
		cmd := m.selectFromMarker(key)
		return m, cmd
	}

	for _, ent := range m.pageEntities() {
		if m.zones.Get(cardZone(ent.Key())).InBounds(msg) {
			cmd := m.selectFromCard(ent.Key())
			return m, cmd
		}
	}

	for _, b := range m.pager.Window(m.pageWindow) {
		if b.Ellipsis {
			continue
		}
		if m.zones.Get(pageZone(b.Page)).InBounds(msg) {
			if m.pager.GoToPage(b.Page) {
				start, _ := m.pager.Bounds()
				m.listCursor = start
			}
			return m, nil
		}
	}

	return m, nil
}
