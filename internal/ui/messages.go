package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/stargazerhq/stargazer-terminal/internal/api"
	"github.com/stargazerhq/stargazer-terminal/internal/basemap"
	"github.com/stargazerhq/stargazer-terminal/internal/catalog"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// spotsLoadedMsg is sent when the location catalog has been fetched
type spotsLoadedMsg struct {
	spots []models.Spot
	err   error
}

// eventsLoadedMsg is sent when the celestial event catalog has been fetched
type eventsLoadedMsg struct {
	events []models.SkyEvent
	err    error
}

// snapshotLoadedMsg is sent when the offline catalog snapshot has been read
type snapshotLoadedMsg struct {
	spots     []models.Spot
	events    []models.SkyEvent
	fetchedAt time.Time
	err       error
}

// basemapReadyMsg is sent when coastline segments are available (provisioning
// them first if needed)
type basemapReadyMsg struct {
	segments []basemap.Polyline
	err      error
}

// favoriteToggledMsg is sent when a favorite mutation round-trip completes
type favoriteToggledMsg struct {
	key    models.Key
	want   bool // the optimistic value applied locally
	result bool // the flag the server reports, valid when err is nil
	err    error
}

// favoriteStatusMsg is sent when a favorite status probe completes
type favoriteStatusMsg struct {
	key       models.Key
	favorited bool
	err       error
}

// spotCreatedMsg is sent when a create-location request completes
type spotCreatedMsg struct {
	spot *models.Spot
	err  error
}

// spotDeletedMsg is sent when a delete-location request completes
type spotDeletedMsg struct {
	id  int64
	err error
}

// tweenTickMsg drives marker fade animation frames
type tweenTickMsg time.Time

// errMsg is a message type for fatal errors
type errMsg struct {
	err error
}

// loadSpots fetches every viewing location in the background
func loadSpots(client api.CatalogClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		spots, err := client.ListLocations(ctx)
		return spotsLoadedMsg{spots: spots, err: err}
	}
}

// loadEvents fetches every celestial event in the background
func loadEvents(client api.CatalogClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		events, err := client.ListEvents(ctx)
		return eventsLoadedMsg{events: events, err: err}
	}
}

// loadSnapshot reads the last persisted catalog for degraded operation
func loadSnapshot(repo *catalog.Repository) tea.Cmd {
	return func() tea.Msg {
		spots, events, fetchedAt, err := repo.Load()
		return snapshotLoadedMsg{spots: spots, events: events, fetchedAt: fetchedAt, err: err}
	}
}

// saveSnapshot persists a successful fetch; failures are logged, never surfaced
func saveSnapshot(repo *catalog.Repository, spots []models.Spot, events []models.SkyEvent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.Save(spots, events); err != nil {
			log.Warn().Err(err).Msg("saving catalog snapshot failed")
		}
		return nil
	}
}

// prepareBasemap provisions the coastline dataset on first run and loads it
func prepareBasemap(dbPath string) tea.Cmd {
	return func() tea.Msg {
		needed, err := basemap.NeedsProvisioning(dbPath)
		if err != nil {
			return basemapReadyMsg{err: err}
		}
		if needed {
			if err := basemap.Provision(dbPath); err != nil {
				return basemapReadyMsg{err: err}
			}
		}
		segments, err := basemap.LoadSegments(dbPath)
		return basemapReadyMsg{segments: segments, err: err}
	}
}

// toggleFavorite performs the favorite round-trip. The direction is chosen from
// the prior client-side flag, never queried from the server first.
func toggleFavorite(client api.FavoriteClient, key models.Key, prev bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var result bool
		var err error
		if prev {
			result, err = client.Unfavorite(ctx, key.ID)
		} else {
			result, err = client.Favorite(ctx, key.ID)
		}
		return favoriteToggledMsg{key: key, want: !prev, result: result, err: err}
	}
}

// probeFavoriteStatus fetches the live favorite flag for a selected location
func probeFavoriteStatus(client api.FavoriteClient, key models.Key) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		favorited, err := client.FavoriteStatus(ctx, key.ID)
		return favoriteStatusMsg{key: key, favorited: favorited, err: err}
	}
}

// createSpot submits a new location
func createSpot(client api.CatalogClient, req api.CreateLocationRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		spot, err := client.CreateLocation(ctx, req)
		return spotCreatedMsg{spot: spot, err: err}
	}
}

// deleteSpot removes a location the current user owns
func deleteSpot(client api.CatalogClient, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		err := client.DeleteLocation(ctx, id)
		return spotDeletedMsg{id: id, err: err}
	}
}

// tweenTick schedules the next fade animation frame
func tweenTick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return tweenTickMsg(t)
	})
}
