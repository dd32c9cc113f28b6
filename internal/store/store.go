// Package store holds the in-memory entity table that every render surface
// reads from. It is the single source of truth for entity attributes: markers,
// the card list and the detail panel all derive from it and never keep copies.
package store

import (
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// EntityStore is populated once per load and mutated only by the favorite
// coordinator (SetFavorite), spot creation (AddSpot) and deletion (RemoveSpot).
// Iteration order is the order entities arrived from the server.
type EntityStore struct {
	spots     map[int64]*models.Spot
	spotOrder []int64

	events     map[int64]*models.SkyEvent
	eventOrder []int64
}

func New() *EntityStore {
	return &EntityStore{
		spots:  make(map[int64]*models.Spot),
		events: make(map[int64]*models.SkyEvent),
	}
}

// ReplaceSpots swaps in a full replacement set, dropping all prior rows
func (s *EntityStore) ReplaceSpots(spots []models.Spot) {
	s.spots = make(map[int64]*models.Spot, len(spots))
	s.spotOrder = s.spotOrder[:0]
	for i := range spots {
		sp := spots[i]
		if _, dup := s.spots[sp.ID]; dup {
			continue
		}
		s.spots[sp.ID] = &sp
		s.spotOrder = append(s.spotOrder, sp.ID)
	}
}

// ReplaceEvents swaps in a full replacement set, dropping all prior rows
func (s *EntityStore) ReplaceEvents(events []models.SkyEvent) {
	s.events = make(map[int64]*models.SkyEvent, len(events))
	s.eventOrder = s.eventOrder[:0]
	for i := range events {
		ev := events[i]
		if _, dup := s.events[ev.ID]; dup {
			continue
		}
		s.events[ev.ID] = &ev
		s.eventOrder = append(s.eventOrder, ev.ID)
	}
}

// AddSpot appends a newly created spot
func (s *EntityStore) AddSpot(sp models.Spot) {
	if _, dup := s.spots[sp.ID]; dup {
		*s.spots[sp.ID] = sp
		return
	}
	s.spots[sp.ID] = &sp
	s.spotOrder = append(s.spotOrder, sp.ID)
}

// RemoveSpot deletes a spot row; reports whether it existed
func (s *EntityStore) RemoveSpot(id int64) bool {
	if _, ok := s.spots[id]; !ok {
		return false
	}
	delete(s.spots, id)
	for i, sid := range s.spotOrder {
		if sid == id {
			s.spotOrder = append(s.spotOrder[:i], s.spotOrder[i+1:]...)
			break
		}
	}
	return true
}

// Spot returns the spot with the given id
func (s *EntityStore) Spot(id int64) (*models.Spot, bool) {
	sp, ok := s.spots[id]
	return sp, ok
}

// Event returns the event with the given id
func (s *EntityStore) Event(id int64) (*models.SkyEvent, bool) {
	ev, ok := s.events[id]
	return ev, ok
}

// Get resolves a key of either kind
func (s *EntityStore) Get(key models.Key) (models.Entity, bool) {
	switch key.Kind {
	case models.KindLocation:
		if sp, ok := s.spots[key.ID]; ok {
			return sp, true
		}
	case models.KindEvent:
		if ev, ok := s.events[key.ID]; ok {
			return ev, true
		}
	}
	return nil, false
}

// SetFavorite flips the favorite flag on a spot and returns the prior value.
// It is the only in-place attribute mutation the store permits.
func (s *EntityStore) SetFavorite(id int64, favorited bool) (prev bool, ok bool) {
	sp, ok := s.spots[id]
	if !ok {
		return false, false
	}
	prev = sp.IsFavorited
	sp.IsFavorited = favorited
	return prev, true
}

// Spots returns all spots in arrival order
func (s *EntityStore) Spots() []*models.Spot {
	out := make([]*models.Spot, 0, len(s.spotOrder))
	for _, id := range s.spotOrder {
		out = append(out, s.spots[id])
	}
	return out
}

// Events returns all events in arrival order
func (s *EntityStore) Events() []*models.SkyEvent {
	out := make([]*models.SkyEvent, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		out = append(out, s.events[id])
	}
	return out
}

// Entities returns every row, spots first then events, in arrival order
func (s *EntityStore) Entities() []models.Entity {
	out := make([]models.Entity, 0, len(s.spotOrder)+len(s.eventOrder))
	for _, id := range s.spotOrder {
		out = append(out, s.spots[id])
	}
	for _, id := range s.eventOrder {
		out = append(out, s.events[id])
	}
	return out
}

// Len reports the total number of rows
func (s *EntityStore) Len() int {
	return len(s.spotOrder) + len(s.eventOrder)
}
