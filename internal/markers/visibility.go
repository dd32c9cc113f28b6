package markers

import (
	"time"

	"github.com/stargazerhq/stargazer-terminal/internal/geo"
)

// Synchronizer decides marker visibility on every viewport move and filter
// change: final visibility = marker predicate AND screen containment (with a
// padding margin against edge flicker). Changes are applied as an opacity
// tween; a marker leaving the screen keeps participating in layout until its
// fade-out completes, while one entering is displayed immediately and fades
// in. That ordering is what prevents popping.
type Synchronizer struct {
	manager *Manager
	fade    time.Duration
	padding float64 // cells
}

func NewSynchronizer(m *Manager, fade time.Duration, paddingCells float64) *Synchronizer {
	return &Synchronizer{manager: m, fade: fade, padding: paddingCells}
}

// Sync recomputes the target visibility of every live marker and starts
// tweens where the target changed. Re-syncing mid-tween toward the same
// target leaves the running tween alone, so filter-driven and viewport-driven
// recomputation can land in either order without visual loss. Returns true
// while any tween is active.
func (s *Synchronizer) Sync(now time.Time, vp geo.Viewport, markerVisible func(h *Handle) bool) bool {
	active := false
	for _, h := range s.manager.handles {
		want := markerVisible(h) && vp.Contains(h.Lat, h.Lng, s.padding)
		target := 0.0
		if want {
			target = 1.0
		}

		if h.fading && h.fadeTarget == target {
			active = true
			continue
		}
		if !h.fading && h.Opacity == target {
			continue
		}

		h.fading = true
		h.fadeFrom = h.Opacity
		h.fadeTarget = target
		h.fadeStart = now
		if want && !h.Displayed {
			// fade-in participates in layout from the first frame
			h.Displayed = true
			s.manager.renderer.SetDisplayed(h.ref, true)
		}
		active = true
	}
	return active
}

// Step advances every running tween to the given time, pushing opacities to
// the renderer. A marker that finishes fading out is removed from layout only
// now. Returns true while any tween is still running.
func (s *Synchronizer) Step(now time.Time) bool {
	active := false
	for _, h := range s.manager.handles {
		if !h.fading {
			continue
		}

		progress := 1.0
		if s.fade > 0 {
			progress = float64(now.Sub(h.fadeStart)) / float64(s.fade)
		}
		if progress >= 1 {
			h.Opacity = h.fadeTarget
			h.fading = false
			s.manager.renderer.SetOpacity(h.ref, h.Opacity)
			if h.fadeTarget == 0 && h.Displayed {
				h.Displayed = false
				s.manager.renderer.SetDisplayed(h.ref, false)
			}
			continue
		}

		h.Opacity = h.fadeFrom + (h.fadeTarget-h.fadeFrom)*progress
		s.manager.renderer.SetOpacity(h.ref, h.Opacity)
		active = true
	}
	return active
}
