// Package markers owns the lifecycle of map marker handles. The manager is
// the only writer of renderer marker objects: one handle per live entity,
// torn down and rebuilt wholesale whenever an entity set is replaced, so no
// handle can outlive its store row.
package markers

import (
	"time"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Style is the visual state a marker renders with
type Style struct {
	Favorited bool
	Selected  bool
}

// Ref is the renderer-native marker object; opaque to this package
type Ref any

// Renderer is the drawing surface markers are materialized onto
type Renderer interface {
	AddMarker(key models.Key, lat, lng float64, style Style) Ref
	RemoveMarker(ref Ref)
	SetOpacity(ref Ref, opacity float64)
	SetDisplayed(ref Ref, displayed bool)
	SetStyle(ref Ref, style Style)
}

// Handle pairs an entity with its renderer object and the visibility state
// the synchronizer animates
type Handle struct {
	Key       models.Key
	Lat, Lng  float64
	Style     Style
	Opacity   float64
	Displayed bool

	ref Ref

	// tween state, driven by Synchronizer
	fading     bool
	fadeFrom   float64
	fadeTarget float64
	fadeStart  time.Time
}

// Placement describes where and how one entity's marker should appear
type Placement struct {
	Key       models.Key
	Lat, Lng  float64
	Favorited bool
}

// Manager tracks handles by entity key
type Manager struct {
	renderer Renderer
	handles  map[models.Key]*Handle
}

func NewManager(r Renderer) *Manager {
	return &Manager{
		renderer: r,
		handles:  make(map[models.Key]*Handle),
	}
}

// Materialize replaces every marker of the given kind: all existing handles of
// that kind are removed from the renderer first, then one handle per placement
// is created. Clear-then-rebuild rather than diffing, because entity sets only
// change on full reload, create or delete.
func (m *Manager) Materialize(kind models.Kind, placements []Placement) {
	for key, h := range m.handles {
		if key.Kind != kind {
			continue
		}
		m.renderer.RemoveMarker(h.ref)
		delete(m.handles, key)
	}

	for _, p := range placements {
		if p.Key.Kind != kind {
			continue
		}
		if _, dup := m.handles[p.Key]; dup {
			continue
		}
		style := Style{Favorited: p.Favorited}
		h := &Handle{
			Key:       p.Key,
			Lat:       p.Lat,
			Lng:       p.Lng,
			Style:     style,
			Opacity:   1,
			Displayed: true,
		}
		h.ref = m.renderer.AddMarker(p.Key, p.Lat, p.Lng, style)
		m.handles[p.Key] = h
	}
}

// Remove destroys a single marker, used when one entity is deleted
func (m *Manager) Remove(key models.Key) bool {
	h, ok := m.handles[key]
	if !ok {
		return false
	}
	m.renderer.RemoveMarker(h.ref)
	delete(m.handles, key)
	return true
}

// Handle looks up the live handle for an entity
func (m *Manager) Handle(key models.Key) (*Handle, bool) {
	h, ok := m.handles[key]
	return h, ok
}

// Handles returns every live handle; order is unspecified
func (m *Manager) Handles() []*Handle {
	out := make([]*Handle, 0, len(m.handles))
	for _, h := range m.handles {
		out = append(out, h)
	}
	return out
}

// Len reports the number of live handles
func (m *Manager) Len() int { return len(m.handles) }

// SetFavorited updates one marker's favorite styling
func (m *Manager) SetFavorited(key models.Key, favorited bool) {
	h, ok := m.handles[key]
	if !ok {
		return
	}
	h.Style.Favorited = favorited
	m.renderer.SetStyle(h.ref, h.Style)
}

// SelectOnly highlights at most one marker, clearing any other highlight.
// Pass nil to clear the selection entirely.
func (m *Manager) SelectOnly(key *models.Key) {
	for k, h := range m.handles {
		want := key != nil && k == *key
		if h.Style.Selected == want {
			continue
		}
		h.Style.Selected = want
		m.renderer.SetStyle(h.ref, h.Style)
	}
}
