package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargazerhq/stargazer-terminal/internal/api"
	"github.com/stargazerhq/stargazer-terminal/internal/models"
)

func TestCreateFlow(t *testing.T) {
	cat := &fakeCatalog{spots: testSpots(2)}
	m := loadModel(t, cat, &fakeFavorites{})
	m.viewport = m.viewport.FlyTo(46.8, -121.7)

	var model tea.Model
	model, _ = m.Update(key("n"))
	m = model.(Model)
	if m.state != StateCreate {
		t.Fatalf("state = %d, want StateCreate", m.state)
	}

	m.nameInput.SetValue("Paradise Overlook")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	if cmd == nil {
		t.Fatal("enter with a name should submit")
	}

	// Run the batched submit; one of the messages is the create result
	msg := runUntil[spotCreatedMsg](t, cmd)
	if len(cat.created) != 1 {
		t.Fatalf("create calls = %d, want 1", len(cat.created))
	}
	req := cat.created[0]
	if req.Latitude != 46.8 || req.Longitude != -121.7 {
		t.Errorf("new spot placed at %.1f, %.1f, want viewport center", req.Latitude, req.Longitude)
	}
	if req.Force {
		t.Error("first submit must not force")
	}

	model, _ = m.Update(msg)
	m = model.(Model)

	if m.state != StateBrowse {
		t.Errorf("state = %d, want StateBrowse after create", m.state)
	}
	if m.selected == nil {
		t.Fatal("new spot should be selected")
	}
	sp, ok := m.entities.Spot(m.selected.ID)
	if !ok || sp.Name != "Paradise Overlook" {
		t.Error("new spot should be in the store")
	}
	if _, ok := m.marks.Handle(*m.selected); !ok {
		t.Error("new spot should have a marker")
	}
}

func TestCreateDuplicateThenForce(t *testing.T) {
	cat := &fakeCatalog{
		spots:     testSpots(1),
		createErr: &api.DuplicateWarningError{Message: "A very similar location exists nearby"},
	}
	m := loadModel(t, cat, &fakeFavorites{})

	var model tea.Model
	model, _ = m.Update(key("n"))
	m = model.(Model)
	m.nameInput.SetValue("Dupe Hill")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	msg := runUntil[spotCreatedMsg](t, cmd)

	model, _ = m.Update(msg)
	m = model.(Model)

	if m.state != StateCreate {
		t.Fatal("duplicate warning should keep the form open")
	}
	if m.duplicateWarning == "" {
		t.Fatal("warning text should be shown")
	}

	// Second enter resubmits with force
	cat.createErr = nil
	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)
	msg = runUntil[spotCreatedMsg](t, cmd)

	if len(cat.created) != 2 {
		t.Fatalf("create calls = %d, want 2", len(cat.created))
	}
	if !cat.created[1].Force {
		t.Error("resubmit after duplicate warning should set force")
	}

	model, _ = m.Update(msg)
	m = model.(Model)
	if m.state != StateBrowse {
		t.Error("forced create should land back in browse")
	}
}

func TestEscCancelsCreate(t *testing.T) {
	cat := &fakeCatalog{spots: testSpots(1)}
	m := loadModel(t, cat, &fakeFavorites{})

	var model tea.Model
	model, _ = m.Update(key("n"))
	m = model.(Model)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)

	if m.state != StateBrowse {
		t.Error("esc should cancel the form")
	}
	if len(cat.created) != 0 {
		t.Error("nothing should have been submitted")
	}
}

func TestReloadRebuildsFromServer(t *testing.T) {
	cat := &fakeCatalog{spots: testSpots(2)}
	m := loadModel(t, cat, &fakeFavorites{})

	cat.spots = testSpots(5)
	var model tea.Model
	model, cmd := m.Update(key("r"))
	m = model.(Model)
	if m.state != StateLoading {
		t.Fatalf("state = %d, want StateLoading during reload", m.state)
	}

	spotsMsg := runUntil[spotsLoadedMsg](t, cmd)
	eventsMsg := runUntil[eventsLoadedMsg](t, cmd)
	model, _ = m.Update(spotsMsg)
	m = model.(Model)
	model, _ = m.Update(eventsMsg)
	m = model.(Model)

	if m.state != StateBrowse {
		t.Fatalf("state = %d, want StateBrowse after reload", m.state)
	}
	if m.entities.Len() != 5 {
		t.Errorf("store rows = %d, want 5 after reload", m.entities.Len())
	}
	if m.marks.Len() != 5 {
		t.Errorf("markers = %d, want 5 after reload", m.marks.Len())
	}
}

func TestSelectionSurvivesReloadWhenStillPresent(t *testing.T) {
	cat := &fakeCatalog{spots: testSpots(3)}
	m := loadModel(t, cat, &fakeFavorites{})

	target := models.Key{Kind: models.KindLocation, ID: 2}
	m.selectFromMarker(target)

	var model tea.Model
	model, _ = m.Update(spotsLoadedMsg{spots: testSpots(3)})
	m = model.(Model)
	model, _ = m.Update(eventsLoadedMsg{})
	m = model.(Model)

	if m.selected == nil || *m.selected != target {
		t.Error("selection should survive a reload that keeps the entity")
	}

	// Now reload without the entity: the selection must clear
	model, _ = m.Update(spotsLoadedMsg{spots: testSpots(1)})
	m = model.(Model)
	model, _ = m.Update(eventsLoadedMsg{})
	m = model.(Model)

	if m.selected != nil {
		t.Error("selection should clear when the entity vanished on reload")
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	cat := &fakeCatalog{
		spots: testSpots(12),
		events: []models.SkyEvent{
			{ID: 1, Name: "Perseids", Type: models.EventMeteor},
		},
	}
	m := loadModel(t, cat, &fakeFavorites{})

	if out := m.View(); out == "" {
		t.Error("browse view should render")
	}

	m.selectFromMarker(models.Key{Kind: models.KindLocation, ID: 3})
	if out := m.View(); out == "" {
		t.Error("view with selection should render")
	}

	var model tea.Model
	model, _ = m.Update(key("n"))
	m = model.(Model)
	if out := m.View(); out == "" {
		t.Error("create view should render")
	}
}

// runUntil executes a possibly-batched command tree and returns the first
// message of type T it produces
func runUntil[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	msgs := collect(cmd)
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m
		}
	}
	t.Fatalf("no %T among %d produced messages", zero, len(msgs))
	return zero
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
