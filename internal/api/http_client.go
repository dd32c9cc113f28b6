package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

// Client talks to the review service over HTTP. It implements CatalogClient
// and FavoriteClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client for the given base URL (no trailing slash)
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "StargazerTerminal/1.0 (github.com/stargazerhq/stargazer-terminal)",
	}
}

// Wire types; the server speaks flat lat/lng fields and paged envelopes

type spotResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	QualityScore   *float64 `json:"quality_score"`
	LightPollution *float64 `json:"light_pollution"`
	CloudCover     *float64 `json:"cloud_cover"`
	Elevation      float64  `json:"elevation"`
	AddedBy        string   `json:"added_by"`
	IsFavorited    bool     `json:"is_favorited"`
	Reviews        []struct {
		Rating int `json:"rating"`
	} `json:"reviews"`
}

type eventResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	EventType   string  `json:"event_type"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type pagedSpots struct {
	Results []spotResponse `json:"results"`
	Next    string         `json:"next"`
}

type pagedEvents struct {
	Results []eventResponse `json:"results"`
	Next    string          `json:"next"`
}

type favoriteResponse struct {
	IsFavorited bool `json:"is_favorited"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s spotResponse) toModel() models.Spot {
	spot := models.Spot{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		Coordinates:    models.Coordinates{Lat: s.Latitude, Lng: s.Longitude},
		QualityScore:   s.QualityScore,
		LightPollution: s.LightPollution,
		CloudCover:     models.CloudCoverUnavailable,
		Elevation:      s.Elevation,
		AddedBy:        s.AddedBy,
		IsFavorited:    s.IsFavorited,
	}
	if s.CloudCover != nil {
		spot.CloudCover = *s.CloudCover
	}
	for _, r := range s.Reviews {
		spot.Reviews = append(spot.Reviews, models.Review{Rating: r.Rating})
	}
	return spot
}

func (e eventResponse) toModel() models.SkyEvent {
	return models.SkyEvent{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Type:        models.ParseEventType(e.EventType),
		Coordinates: models.Coordinates{Lat: e.Latitude, Lng: e.Longitude},
	}
}

// ListLocations retrieves all viewing locations, walking the server's fetch
// pagination until exhausted. The server's page size is its own business and
// independent of the client-side list pagination.
func (c *Client) ListLocations(ctx context.Context) ([]models.Spot, error) {
	var spots []models.Spot
	url := c.baseURL + "/api/locations/"
	for url != "" {
		var page pagedSpots
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("fetching locations: %w", err)
		}
		for _, s := range page.Results {
			spots = append(spots, s.toModel())
		}
		url = page.Next
	}
	return spots, nil
}

// ListEvents retrieves all celestial events
func (c *Client) ListEvents(ctx context.Context) ([]models.SkyEvent, error) {
	var events []models.SkyEvent
	url := c.baseURL + "/api/events/"
	for url != "" {
		var page pagedEvents
		if err := c.getJSON(ctx, url, &page); err != nil {
			return nil, fmt.Errorf("fetching events: %w", err)
		}
		for _, e := range page.Results {
			events = append(events, e.toModel())
		}
		url = page.Next
	}
	return events, nil
}

// CreateLocation submits a new location. HTTP 409 with a duplicate code maps
// to *DuplicateWarningError so the caller can offer a force resubmit.
func (c *Client) CreateLocation(ctx context.Context, req CreateLocationRequest) (*models.Spot, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/locations/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return nil, &DuplicateWarningError{Message: errResp.Message}
		}
		return nil, &DuplicateWarningError{Message: "a similar location already exists"}
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var created spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding created location: %w", err)
	}
	spot := created.toModel()
	return &spot, nil
}

// DeleteLocation removes a location by id
func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/api/locations/%d/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return nil
}

// Favorite marks a location favorited
func (c *Client) Favorite(ctx context.Context, id int64) (bool, error) {
	return c.postFavorite(ctx, id, "favorite")
}

// Unfavorite clears the favorite flag
func (c *Client) Unfavorite(ctx context.Context, id int64) (bool, error) {
	return c.postFavorite(ctx, id, "unfavorite")
}

func (c *Client) postFavorite(ctx context.Context, id int64, action string) (bool, error) {
	url := fmt.Sprintf("%s/api/locations/%d/%s/", c.baseURL, id, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("posting %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var fav favoriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&fav); err != nil {
		return false, fmt.Errorf("decoding %s response: %w", action, err)
	}
	return fav.IsFavorited, nil
}

// FavoriteStatus probes the live favorite flag for one location
func (c *Client) FavoriteStatus(ctx context.Context, id int64) (bool, error) {
	url := fmt.Sprintf("%s/api/locations/%d/favorite/", c.baseURL, id)
	var fav favoriteResponse
	if err := c.getJSON(ctx, url, &fav); err != nil {
		return false, fmt.Errorf("probing favorite status: %w", err)
	}
	return fav.IsFavorited, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
