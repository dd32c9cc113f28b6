package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// The favorite toggle is optimistic: the store and marker styling flip
// immediately, the server round-trip runs in the background, and a failure
// rolls every surface back to the snapshotted prior state. One toggle per
// location may be in flight at a time; repeat presses while pending are
// dropped rather than queued.

// startFavoriteToggle flips the flag locally and kicks off the server call
func (m *Model) startFavoriteToggle(key models.Key) tea.Cmd {
	if key.Kind != models.KindLocation {
		m.notice = "Events can't be favorited"
		return nil
	}
	if _, busy := m.pendingFavorites[key]; busy {
		return nil
	}
	sp, ok := m.entities.Spot(key.ID)
	if !ok {
		return nil
	}

	prev := sp.IsFavorited
	m.pendingFavorites[key] = prev

	m.entities.SetFavorite(key.ID, !prev)
	m.marks.SetFavorited(key, !prev)
	m.notice = ""
	// A favorites-only filter can change the visible set right here
	m.refresh()

	return toggleFavorite(m.favClient, key, prev)
}

// finishFavoriteToggle settles the round-trip: release the in-flight guard,
// revert on failure, adopt the server's flag if it disagrees
func (m Model) finishFavoriteToggle(msg favoriteToggledMsg) (tea.Model, tea.Cmd) {
	prev, pending := m.pendingFavorites[msg.key]
	if !pending {
		return m, nil
	}
	delete(m.pendingFavorites, msg.key)

	if msg.err != nil {
		log.Warn().Err(msg.err).Stringer("key", msg.key).Msg("favorite toggle failed")
		m.entities.SetFavorite(msg.key.ID, prev)
		m.marks.SetFavorited(msg.key, prev)
		m.notice = "Couldn't update favorite; change reverted"
		m.refresh()
		return m, m.animationCmd()
	}

	if msg.result != msg.want {
		m.entities.SetFavorite(msg.key.ID, msg.result)
		m.marks.SetFavorited(msg.key, msg.result)
		m.refresh()
	}
	return m, m.animationCmd()
}
