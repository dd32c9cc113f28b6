package models

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two entity families shown on the map
type Kind string

const (
	KindLocation Kind = "location"
	KindEvent    Kind = "event"
)

// Key uniquely identifies an entity across both kinds. Numeric ids are only
// unique within a kind, so every cross-surface lookup (markers, selection,
// in-flight guards) is keyed by Key rather than by the raw id.
type Key struct {
	Kind Kind
	ID   int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Kind, k.ID)
}

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// EventType classifies celestial events
type EventType string

const (
	EventMeteor  EventType = "METEOR"
	EventEclipse EventType = "ECLIPSE"
	EventPlanet  EventType = "PLANET"
	EventAurora  EventType = "AURORA"
	EventComet   EventType = "COMET"
	EventOther   EventType = "OTHER"
)

// ParseEventType maps an API value to a known event type, falling back to OTHER
func ParseEventType(s string) EventType {
	switch EventType(strings.ToUpper(s)) {
	case EventMeteor, EventEclipse, EventPlanet, EventAurora, EventComet:
		return EventType(strings.ToUpper(s))
	default:
		return EventOther
	}
}

// Review is a single rating attached to a spot
type Review struct {
	Rating int `json:"rating"` // 1-5
}

// CloudCoverUnavailable marks a spot whose cloud cover reading is missing
const CloudCoverUnavailable = -1

// Spot is a viewing location. IsFavorited is the only field mutated client
// side; everything else is replaced wholesale on reload.
type Spot struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Coordinates    Coordinates `json:"coordinates"`
	QualityScore   *float64    `json:"quality_score"`   // 0-100, nil when not yet computed
	LightPollution *float64    `json:"light_pollution"` // nil when unavailable
	CloudCover     float64     `json:"cloud_cover"`     // 0-100, or CloudCoverUnavailable
	Elevation      float64     `json:"elevation"`       // meters
	AddedBy        string      `json:"added_by"`
	IsFavorited    bool        `json:"is_favorited"`
	Reviews        []Review    `json:"reviews"`
}

func (s *Spot) Key() Key                 { return Key{Kind: KindLocation, ID: s.ID} }
func (s *Spot) EntityKind() Kind         { return KindLocation }
func (s *Spot) Coords() Coordinates      { return s.Coordinates }
func (s *Spot) DisplayName() string      { return s.Name }
func (s *Spot) SearchText() string       { return s.Name + " " + s.Description }
func (s *Spot) Favorited() bool          { return s.IsFavorited }
func (s *Spot) OwnedBy() string          { return s.AddedBy }
func (s *Spot) CelestialType() EventType { return "" }

// HasCloudCover reports whether the cloud cover reading is usable
func (s *Spot) HasCloudCover() bool {
	return s.CloudCover >= 0
}

// AverageRating returns the mean review rating, or 0 with ok=false when the
// spot has no reviews yet
func (s *Spot) AverageRating() (float64, bool) {
	if len(s.Reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range s.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(s.Reviews)), true
}

// SkyEvent is a celestial event. Events are immutable for the lifetime of the
// page: no favorite flag, no owner, no client-side mutation.
type SkyEvent struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        EventType   `json:"event_type"`
	Coordinates Coordinates `json:"coordinates"`
}

func (e *SkyEvent) Key() Key                 { return Key{Kind: KindEvent, ID: e.ID} }
func (e *SkyEvent) EntityKind() Kind         { return KindEvent }
func (e *SkyEvent) Coords() Coordinates      { return e.Coordinates }
func (e *SkyEvent) DisplayName() string      { return e.Name }
func (e *SkyEvent) SearchText() string       { return e.Name + " " + e.Description }
func (e *SkyEvent) Favorited() bool          { return false }
func (e *SkyEvent) OwnedBy() string          { return "" }
func (e *SkyEvent) CelestialType() EventType { return e.Type }

// Entity is the read surface shared by spots and sky events; the filter
// engine, pagination and list rendering operate on it without caring which
// family a row belongs to.
type Entity interface {
	Key() Key
	EntityKind() Kind
	Coords() Coordinates
	DisplayName() string
	SearchText() string
	Favorited() bool
	OwnedBy() string
	CelestialType() EventType
}
