package models

import "testing"

func TestKeyString(t *testing.T) {
	k := Key{Kind: KindLocation, ID: 42}
	if k.String() != "location:42" {
		t.Errorf("Key.String() = %q, want 'location:42'", k.String())
	}

	// The same numeric id under a different kind must produce a distinct key
	e := Key{Kind: KindEvent, ID: 42}
	if k == e {
		t.Error("location and event keys with the same id should not be equal")
	}
}

func TestParseEventType(t *testing.T) {
	tests := []struct {
		input string
		want  EventType
	}{
		{"METEOR", EventMeteor},
		{"meteor", EventMeteor},
		{"Eclipse", EventEclipse},
		{"PLANET", EventPlanet},
		{"AURORA", EventAurora},
		{"COMET", EventComet},
		{"OTHER", EventOther},
		{"supernova", EventOther},
		{"", EventOther},
	}

	for _, tt := range tests {
		if got := ParseEventType(tt.input); got != tt.want {
			t.Errorf("ParseEventType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSpotAverageRating(t *testing.T) {
	s := &Spot{}
	if _, ok := s.AverageRating(); ok {
		t.Error("spot with no reviews should report no average rating")
	}

	s.Reviews = []Review{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	avg, ok := s.AverageRating()
	if !ok {
		t.Fatal("spot with reviews should report an average rating")
	}
	if avg != 4.0 {
		t.Errorf("AverageRating() = %v, want 4.0", avg)
	}
}

func TestSpotCloudCover(t *testing.T) {
	s := &Spot{CloudCover: CloudCoverUnavailable}
	if s.HasCloudCover() {
		t.Error("cloud cover of -1 should be reported unavailable")
	}

	s.CloudCover = 0
	if !s.HasCloudCover() {
		t.Error("cloud cover of 0 is a valid reading")
	}
}

func TestEntityInterface(t *testing.T) {
	spot := &Spot{ID: 1, Name: "Ridge Overlook", Description: "dark meadow", AddedBy: "u1", IsFavorited: true}
	event := &SkyEvent{ID: 1, Name: "Perseids", Type: EventMeteor}

	var entities []Entity = []Entity{spot, event}

	if entities[0].EntityKind() != KindLocation || entities[1].EntityKind() != KindEvent {
		t.Error("entity kinds not preserved through interface")
	}
	if entities[0].CelestialType() != "" {
		t.Error("spots carry no celestial type")
	}
	if entities[1].CelestialType() != EventMeteor {
		t.Error("event type not exposed through interface")
	}
	if entities[1].Favorited() {
		t.Error("events are never favorited")
	}
	if entities[0].SearchText() != "Ridge Overlook dark meadow" {
		t.Errorf("unexpected search text: %q", entities[0].SearchText())
	}
}
