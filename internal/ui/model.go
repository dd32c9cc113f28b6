package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog/log"

	"github.com/stargazerhq/stargazer-terminal/internal/api"
	"github.com/stargazerhq/stargazer-terminal/internal/basemap"
	"github.com/stargazerhq/stargazer-terminal/internal/catalog"
	"github.com/stargazerhq/stargazer-terminal/internal/filter"
	"github.com/stargazerhq/stargazer-terminal/internal/geo"
	"github.com/stargazerhq/stargazer-terminal/internal/maprender"
	"github.com/stargazerhq/stargazer-terminal/internal/markers"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
	"github.com/stargazerhq/stargazer-terminal/internal/pagination"
	"github.com/stargazerhq/stargazer-terminal/internal/store"
)

// markerFade is how long a marker takes to fade in or out when its visibility
// changes
const markerFade = 300 * time.Millisecond

// markerPadding is the off-screen margin, in cells, within which markers still
// count as visible
const markerPadding = 2.0

// AppState represents the current state of the application
type AppState int

const (
	StateLoading AppState = iota // Fetching the entity catalog
	StateBrowse                  // Map, list and detail interaction
	StateCreate                  // New location form
	StateError                   // Unrecoverable startup failure
)

// ActivePane represents which pane is currently focused
type ActivePane int

const (
	PaneMap ActivePane = iota
	PaneList
)

// Options wires the model's collaborators
type Options struct {
	Catalog   api.CatalogClient
	Favorites api.FavoriteClient

	// Snapshots enables the offline catalog fallback; nil disables it
	Snapshots *catalog.Repository

	// BasemapDB is the path to the coastline database; empty skips the basemap
	BasemapDB string

	CurrentUser          string
	ItemsPerPage         int
	PageWindow           int
	SearchAffectsMarkers bool
	DefaultTab           filter.Tab

	// Zones is the mouse zone manager the program renders through; nil gets a
	// fresh one
	Zones *zone.Manager
}

// Model represents the application's state
type Model struct {
	state AppState
	focus ActivePane

	width  int
	height int
	err    error

	// transient status line, cleared on the next successful action
	notice string

	// degraded means the catalog came from the offline snapshot
	degraded    bool
	snapshotAge time.Time

	// API clients
	catalogClient api.CatalogClient
	favClient     api.FavoriteClient
	snapshots     *catalog.Repository
	basemapDB     string

	// Entity state
	entities *store.EntityStore
	engine   *filter.Engine
	filters  filter.State
	pager    pagination.Pager
	visible  []models.Entity // filtered list, rebuilt by refresh

	// Map state
	viewport geo.Viewport
	zones    *zone.Manager
	canvas   *maprender.Canvas
	marks    *markers.Manager
	syncer   *markers.Synchronizer
	coast    []basemap.Polyline

	// fade animation bookkeeping
	fadeActive bool
	ticking    bool

	// Selection; nil means nothing selected
	selected   *models.Key
	listCursor int // index into visible, kept on the current page

	// pendingFavorites guards in-flight favorite toggles; the value is the
	// pre-toggle flag used to revert on failure
	pendingFavorites map[models.Key]bool

	// Search
	searchInput textinput.Model
	searching   bool

	// Create form
	nameInput        textinput.Model
	pendingCreate    *api.CreateLocationRequest
	duplicateWarning string
	creating         bool

	// Loading
	spinner       spinner.Model
	spotsLoading  bool
	eventsLoading bool
	spotsErr      error
	eventsErr     error
	snapshotTried bool

	pageWindow  int
	currentUser string

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	if opts.ItemsPerPage < 1 {
		opts.ItemsPerPage = 10
	}
	if opts.PageWindow < 1 {
		opts.PageWindow = 5
	}
	if opts.Zones == nil {
		opts.Zones = zone.New()
	}

	si := textinput.New()
	si.Placeholder = "Search locations and events..."
	si.CharLimit = 100
	si.Width = 32

	ni := textinput.New()
	ni.Placeholder = "Location name..."
	ni.CharLimit = 100
	ni.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	filters := filter.NewState()
	if opts.DefaultTab != "" {
		filters.ActiveTab = opts.DefaultTab
	}

	canvas := maprender.New(opts.Zones)
	marks := markers.NewManager(canvas)

	return Model{
		state:            StateLoading,
		focus:            PaneMap,
		catalogClient:    opts.Catalog,
		favClient:        opts.Favorites,
		snapshots:        opts.Snapshots,
		basemapDB:        opts.BasemapDB,
		entities:         store.New(),
		engine:           filter.NewEngine(opts.CurrentUser, filter.Options{SearchAffectsMarkers: opts.SearchAffectsMarkers}),
		filters:          filters,
		pager:            pagination.New(opts.ItemsPerPage),
		viewport:         geo.Viewport{Zoom: 2, Width: 60, Height: 20},
		zones:            opts.Zones,
		canvas:           canvas,
		marks:            marks,
		syncer:           markers.NewSynchronizer(marks, markerFade, markerPadding),
		pendingFavorites: make(map[models.Key]bool),
		searchInput:      si,
		nameInput:        ni,
		spinner:          sp,
		spotsLoading:     true,
		eventsLoading:    true,
		pageWindow:       opts.PageWindow,
		currentUser:      opts.CurrentUser,
		now:              time.Now,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadSpots(m.catalogClient),
		loadEvents(m.catalogClient),
	}
	if m.basemapDB != "" {
		cmds = append(cmds, prepareBasemap(m.basemapDB))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		mapW, mapH := m.mapPaneSize()
		m.viewport = m.viewport.Resize(mapW, mapH)
		m.syncMarkers()
		return m, m.animationCmd()
	}

	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case spotsLoadedMsg:
		m.spotsLoading = false
		m.spotsErr = msg.err
		if msg.err == nil {
			m.entities.ReplaceSpots(msg.spots)
		} else {
			log.Warn().Err(msg.err).Msg("location fetch failed")
		}
		return m.finishLoad()

	case eventsLoadedMsg:
		m.eventsLoading = false
		m.eventsErr = msg.err
		if msg.err == nil {
			m.entities.ReplaceEvents(msg.events)
		} else {
			log.Warn().Err(msg.err).Msg("event fetch failed")
		}
		return m.finishLoad()

	case snapshotLoadedMsg:
		return m.applySnapshot(msg)

	case basemapReadyMsg:
		if msg.err != nil {
			// Map still works without coastline context
			log.Warn().Err(msg.err).Msg("basemap unavailable")
			return m, nil
		}
		m.coast = msg.segments
		return m, nil

	case favoriteToggledMsg:
		return m.finishFavoriteToggle(msg)

	case favoriteStatusMsg:
		m.reconcileFavoriteStatus(msg)
		return m, m.animationCmd()

	case spotCreatedMsg:
		return m.finishCreate(msg)

	case spotDeletedMsg:
		return m.finishDelete(msg)

	case tweenTickMsg:
		m.fadeActive = m.syncer.Step(time.Time(msg))
		if m.fadeActive {
			return m, tweenTick()
		}
		m.ticking = false
		return m, nil

	case spinner.TickMsg:
		if m.state == StateLoading || m.creating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// finishLoad transitions out of the loading state once both catalog fetches
// have settled, falling back to the offline snapshot when the network let us
// down.
func (m Model) finishLoad() (tea.Model, tea.Cmd) {
	if m.spotsLoading || m.eventsLoading {
		return m, nil
	}

	if m.spotsErr != nil || m.eventsErr != nil {
		if m.snapshots != nil && !m.snapshotTried {
			m.snapshotTried = true
			return m, loadSnapshot(m.snapshots)
		}
		if m.entities.Len() == 0 {
			m.err = firstErr(m.spotsErr, m.eventsErr)
			m.state = StateError
			return m, nil
		}
		m.degraded = true
		m.enterBrowse()
		return m, m.animationCmd()
	}

	m.enterBrowse()

	var cmd tea.Cmd
	if m.snapshots != nil {
		cmd = saveSnapshot(m.snapshots, copySpots(m.entities.Spots()), copyEvents(m.entities.Events()))
	}
	return m, m.animationCmd(cmd)
}

// applySnapshot substitutes snapshot data for whichever fetches failed
func (m Model) applySnapshot(msg snapshotLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || (len(msg.spots) == 0 && len(msg.events) == 0) {
		if m.entities.Len() == 0 {
			m.err = firstErr(m.spotsErr, m.eventsErr)
			m.state = StateError
			return m, nil
		}
		m.degraded = true
		m.enterBrowse()
		return m, m.animationCmd()
	}

	if m.spotsErr != nil {
		m.entities.ReplaceSpots(msg.spots)
	}
	if m.eventsErr != nil {
		m.entities.ReplaceEvents(msg.events)
	}
	m.degraded = true
	m.snapshotAge = msg.fetchedAt
	m.enterBrowse()
	return m, m.animationCmd()
}

// enterBrowse rebuilds markers and derived views and lands on the browse page
func (m *Model) enterBrowse() {
	m.state = StateBrowse
	if m.selected != nil {
		if _, ok := m.entities.Get(*m.selected); !ok {
			m.selected = nil
		}
	}
	m.rebuildMarkers()
	m.refresh()
}

// rebuildMarkers tears down and recreates the full marker layer from the store
func (m *Model) rebuildMarkers() {
	spots := m.entities.Spots()
	sp := make([]markers.Placement, 0, len(spots))
	for _, s := range spots {
		sp = append(sp, markers.Placement{
			Key:       s.Key(),
			Lat:       s.Coordinates.Lat,
			Lng:       s.Coordinates.Lng,
			Favorited: s.IsFavorited,
		})
	}
	m.marks.Materialize(models.KindLocation, sp)

	events := m.entities.Events()
	ev := make([]markers.Placement, 0, len(events))
	for _, e := range events {
		ev = append(ev, markers.Placement{
			Key: e.Key(),
			Lat: e.Coordinates.Lat,
			Lng: e.Coordinates.Lng,
		})
	}
	m.marks.Materialize(models.KindEvent, ev)

	m.marks.SelectOnly(m.selected)
}

// refresh recomputes every derived view after a filter or store mutation:
// visible list, pagination clamp, then marker visibility. Always in that
// order, always synchronously, so no surface can render against stale state.
func (m *Model) refresh() {
	m.visible = m.engine.VisibleEntities(m.filters, m.entities.Entities())
	m.pager.Recompute(len(m.visible))
	m.clampCursor()
	m.syncMarkers()
}

// syncMarkers re-evaluates marker visibility against the current filters and
// viewport
func (m *Model) syncMarkers() {
	m.fadeActive = m.syncer.Sync(m.now(), m.viewport, func(h *markers.Handle) bool {
		ent, ok := m.entities.Get(h.Key)
		if !ok {
			return false
		}
		return m.engine.MarkerVisible(m.filters, ent)
	}) || m.fadeActive
}

// animationCmd schedules a fade frame when an animation just started, batched
// with any other commands the caller produced
func (m *Model) animationCmd(cmds ...tea.Cmd) tea.Cmd {
	if m.fadeActive && !m.ticking {
		m.ticking = true
		cmds = append(cmds, tweenTick())
	}
	return tea.Batch(cmds...)
}

// pageEntities returns the slice of the visible set on the current page
func (m Model) pageEntities() []models.Entity {
	start, end := m.pager.Bounds()
	if start > len(m.visible) {
		return nil
	}
	if end > len(m.visible) {
		end = len(m.visible)
	}
	return m.visible[start:end]
}

// visibleIndex locates an entity in the filtered list
func (m Model) visibleIndex(key models.Key) (int, bool) {
	for i, ent := range m.visible {
		if ent.Key() == key {
			return i, true
		}
	}
	return 0, false
}

// clampCursor keeps the list cursor inside the current page
func (m *Model) clampCursor() {
	start, end := m.pager.Bounds()
	if m.listCursor < start {
		m.listCursor = start
	}
	if m.listCursor >= end {
		m.listCursor = end - 1
	}
	if m.listCursor < 0 {
		m.listCursor = 0
	}
}

// mapPaneSize computes the map pane's inner cell size from the window
func (m Model) mapPaneSize() (int, int) {
	w := m.width*3/5 - 2
	h := m.height - 7
	if w < 20 {
		w = 20
	}
	if h < 8 {
		h = 8
	}
	return w, h
}

// listPaneWidth is the right column's outer width
func (m Model) listPaneWidth() int {
	w := m.width - (m.width*3/5) - 1
	if w < 30 {
		w = 30
	}
	return w
}

func copySpots(in []*models.Spot) []models.Spot {
	out := make([]models.Spot, 0, len(in))
	for _, s := range in {
		out = append(out, *s)
	}
	return out
}

func copyEvents(in []*models.SkyEvent) []models.SkyEvent {
	out := make([]models.SkyEvent, 0, len(in))
	for _, e := range in {
		out = append(out, *e)
	}
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
