package server

import (
	"errors"
	"testing"
	"time"

	"github.com/tbruckner/ce-intake/internal/core"
)

func newTestStore() (*SessionStore, *time.Time) {
	store := NewSessionStore()
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	return store, &current
}

func TestSessionCreateAndGet(t *testing.T) {
	store, _ := newTestStore()

	created := store.Create()
	if created.ID == "" {
		t.Fatal("created session has no id")
	}
	if created.CreatedAt != "2026-08-01T12:00:00Z" || created.UpdatedAt != created.CreatedAt {
		t.Errorf("timestamps = %q/%q, want store clock", created.CreatedAt, created.UpdatedAt)
	}
	if err := created.RoleSurvey.Validate(); err != nil {
		t.Errorf("default role survey invalid: %v", err)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get() id = %q, want %q", got.ID, created.ID)
	}

	if _, err := store.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionUpdateSurveys(t *testing.T) {
	store, clock := newTestStore()
	session := store.Create()

	*clock = clock.Add(time.Minute)
	role := core.ExampleRoleSurvey()
	updated, err := store.UpdateSurveys(session.ID, role, nil)
	if err != nil {
		t.Fatalf("UpdateSurveys() error: %v", err)
	}
	if updated.RoleSurvey.FirstPlacing != "our_company" {
		t.Errorf("role survey not replaced: %+v", updated.RoleSurvey)
	}
	// Nil keeps the existing product survey.
	if updated.ProductSurvey.SupplyForm != "single_device" {
		t.Errorf("product survey changed by nil update: %+v", updated.ProductSurvey)
	}
	if updated.UpdatedAt != "2026-08-01T12:01:00Z" {
		t.Errorf("UpdatedAt = %q, want advanced clock", updated.UpdatedAt)
	}
	if updated.CreatedAt != session.CreatedAt {
		t.Errorf("CreatedAt changed on update: %q", updated.CreatedAt)
	}

	if _, err := store.UpdateSurveys("missing", role, nil); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("UpdateSurveys(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionAttachAnalysis(t *testing.T) {
	store, _ := newTestStore()
	session := store.Create()

	analysis := &core.AnalysisResult{Meta: core.Meta{Model: "m"}}
	updated, err := store.AttachAnalysis(session.ID, analysis)
	if err != nil {
		t.Fatalf("AttachAnalysis() error: %v", err)
	}
	if updated.Analysis == nil || updated.Analysis.Meta.Model != "m" {
		t.Errorf("analysis not attached: %+v", updated.Analysis)
	}
}

func TestChecklistOverlay(t *testing.T) {
	store, _ := newTestStore()
	session := store.Create()

	state, err := store.Checklist(session.ID)
	if err != nil {
		t.Fatalf("Checklist() error: %v", err)
	}
	if len(state) != 0 {
		t.Errorf("fresh session overlay = %v, want empty", state)
	}

	key := core.ChecklistKey("eu-2023-1542", "SEC-1-1")
	status := core.StatusInProgress
	item, err := store.UpdateChecklistItem(session.ID, key, &status, nil)
	if err != nil {
		t.Fatalf("UpdateChecklistItem() error: %v", err)
	}
	if item.ID != key || item.Status != core.StatusInProgress {
		t.Errorf("item = %+v, want %s in_progress", item, key)
	}

	// Notes-only update keeps the status.
	notes := "Bericht angefordert"
	item, err = store.UpdateChecklistItem(session.ID, key, nil, &notes)
	if err != nil {
		t.Fatalf("notes update error: %v", err)
	}
	if item.Status != core.StatusInProgress || item.Notes != notes {
		t.Errorf("item = %+v, want merged status and notes", item)
	}

	// A fresh item with only notes starts at todo.
	other, err := store.UpdateChecklistItem(session.ID, "legacy-item", nil, &notes)
	if err != nil {
		t.Fatalf("fresh item update error: %v", err)
	}
	if other.Status != core.StatusTodo {
		t.Errorf("fresh item status = %q, want todo", other.Status)
	}

	state, _ = store.Checklist(session.ID)
	if len(state) != 2 {
		t.Errorf("overlay has %d items, want 2", len(state))
	}
}

func TestChecklistOverlayRejectsBadStatus(t *testing.T) {
	store, _ := newTestStore()
	session := store.Create()

	bad := "finished"
	_, err := store.UpdateChecklistItem(session.ID, "k", &bad, nil)
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *core.ValidationError", err)
	}
	if verr.Field != "status" {
		t.Errorf("Field = %q, want status", verr.Field)
	}

	status := core.StatusDone
	if _, err := store.UpdateChecklistItem("missing", "k", &status, nil); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown session error = %v, want ErrSessionNotFound", err)
	}
}

func TestChecklistReturnsCopy(t *testing.T) {
	store, _ := newTestStore()
	session := store.Create()

	status := core.StatusDone
	_, _ = store.UpdateChecklistItem(session.ID, "k", &status, nil)

	state, _ := store.Checklist(session.ID)
	state["k"] = core.ChecklistStatus{ID: "k", Status: core.StatusTodo}

	fresh, _ := store.Checklist(session.ID)
	if fresh["k"].Status != core.StatusDone {
		t.Error("mutating the returned map leaked into the store")
	}
}
