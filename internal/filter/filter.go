// Package filter implements the visibility predicates shared by the card list
// and the marker layer. The two predicates intentionally differ: by default
// the marker rule ignores the text search, so a text-filtered list never
// strips map context. The coupling is configurable through Options.
package filter

import (
	"strings"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Tab selects which entity family the page is browsing
type Tab string

const (
	TabAll       Tab = "all"
	TabLocations Tab = "location"
	TabEvents    Tab = "event"
)

// State is the page-wide filter state. Mutated only by explicit user filter
// actions; every mutation resets pagination to page 1 (enforced by the caller,
// which owns the pager).
type State struct {
	ActiveTab     Tab
	EventTypes    map[models.EventType]bool // empty = no type restriction
	SearchQuery   string
	FavoritesOnly bool
	MineOnly      bool
}

// NewState returns the default filter state: all tab, nothing restricted
func NewState() State {
	return State{
		ActiveTab:  TabAll,
		EventTypes: make(map[models.EventType]bool),
	}
}

// ToggleEventType flips one event type in the inclusion set
func (s *State) ToggleEventType(t models.EventType) {
	if s.EventTypes[t] {
		delete(s.EventTypes, t)
	} else {
		s.EventTypes[t] = true
	}
}

// Options configures predicate behavior that is product-selectable
type Options struct {
	// SearchAffectsMarkers couples the text search into the marker predicate.
	// Off by default: the original product hid list cards on search but kept
	// their markers on the map.
	SearchAffectsMarkers bool
}

// Engine evaluates the predicates. The current user id is passed in explicitly
// so the engine stays testable without any ambient session state.
type Engine struct {
	opts        Options
	currentUser string
}

func NewEngine(currentUser string, opts Options) *Engine {
	return &Engine{opts: opts, currentUser: currentUser}
}

// ListVisible is the card-list predicate: tab, event types, favorites, owner
// and text search must all pass.
func (e *Engine) ListVisible(s State, ent models.Entity) bool {
	return e.baseVisible(s, ent) && matchesSearch(s.SearchQuery, ent)
}

// MarkerVisible is the marker-layer predicate. It matches ListVisible except
// that the search term only participates when SearchAffectsMarkers is set.
func (e *Engine) MarkerVisible(s State, ent models.Entity) bool {
	if !e.baseVisible(s, ent) {
		return false
	}
	if e.opts.SearchAffectsMarkers {
		return matchesSearch(s.SearchQuery, ent)
	}
	return true
}

func (e *Engine) baseVisible(s State, ent models.Entity) bool {
	if !tabMatches(s.ActiveTab, ent.EntityKind()) {
		return false
	}
	if len(s.EventTypes) > 0 && ent.EntityKind() == models.KindEvent {
		if !s.EventTypes[ent.CelestialType()] {
			return false
		}
	}
	if s.FavoritesOnly && !ent.Favorited() {
		return false
	}
	if s.MineOnly && ent.OwnedBy() != e.currentUser {
		return false
	}
	return true
}

func tabMatches(tab Tab, kind models.Kind) bool {
	switch tab {
	case TabAll, "":
		return true
	case TabLocations:
		return kind == models.KindLocation
	case TabEvents:
		return kind == models.KindEvent
	}
	return false
}

func matchesSearch(query string, ent models.Entity) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(ent.SearchText()),
		strings.ToLower(query),
	)
}

// VisibleEntities applies the list predicate across a slice, preserving order
func (e *Engine) VisibleEntities(s State, entities []models.Entity) []models.Entity {
	out := make([]models.Entity, 0, len(entities))
	for _, ent := range entities {
		if e.ListVisible(s, ent) {
			out = append(out, ent)
		}
	}
	return out
}
