// Package api wraps the review service's HTTP endpoints. The server is an
// opaque collaborator: this package only fetches entities, mutates favorites,
// and creates/deletes locations; everything else the service does stays on
// the other side of the wire.
package api

import (
	"context"
	"errors"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// CatalogClient defines the interface for fetching and mutating the entity
// catalog
type CatalogClient interface {
	// ListLocations retrieves every viewing location, following server-side
	// fetch pagination transparently
	ListLocations(ctx context.Context) ([]models.Spot, error)

	// ListEvents retrieves every celestial event
	ListEvents(ctx context.Context) ([]models.SkyEvent, error)

	// CreateLocation submits a new location. A structured duplicate warning
	// comes back as *DuplicateWarningError; resubmit with Force to override.
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*models.Spot, error)

	// DeleteLocation removes a location the current user owns
	DeleteLocation(ctx context.Context, id int64) error
}

// FavoriteClient defines the interface for the favorite endpoints. The toggle
// direction is always chosen from client-tracked prior state, never queried.
type FavoriteClient interface {
	// Favorite marks a location favorited; returns the server's resulting flag
	Favorite(ctx context.Context, id int64) (bool, error)

	// Unfavorite clears the favorite flag; returns the server's resulting flag
	Unfavorite(ctx context.Context, id int64) (bool, error)

	// FavoriteStatus probes the live favorite flag for one location
	FavoriteStatus(ctx context.Context, id int64) (bool, error)
}

// CreateLocationRequest is the payload for CreateLocation
type CreateLocationRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Force     bool    `json:"force,omitempty"`
}

// DuplicateWarningError is the recoverable create failure: the server found a
// suspiciously similar existing location and wants confirmation
type DuplicateWarningError struct {
	Message string
}

func (e *DuplicateWarningError) Error() string {
	return e.Message
}

// IsDuplicateWarning reports whether err is the recoverable duplicate case
func IsDuplicateWarning(err error) (*DuplicateWarningError, bool) {
	var dup *DuplicateWarningError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
