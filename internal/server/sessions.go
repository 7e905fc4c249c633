package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbruckner/ce-intake/internal/core"
)

// Session is one intake run: the two surveys plus the attached analysis.
type Session struct {
	ID            string               `json:"id"`
	CreatedAt     string               `json:"createdAt"`
	UpdatedAt     string               `json:"updatedAt"`
	RoleSurvey    core.RoleSurvey      `json:"roleSurvey"`
	ProductSurvey core.ProductSurvey   `json:"productSurvey"`
	Analysis      *core.AnalysisResult `json:"analysis,omitempty"`
}

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStore holds sessions and their checklist-status overlays in
// process. Checklist overlays are keyed by core.ChecklistKey so they keep
// resolving across the legacy plan upgrade.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	checklists map[string]map[string]core.ChecklistStatus
	now        func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*Session),
		checklists: make(map[string]map[string]core.ChecklistStatus),
		now:        time.Now,
	}
}

// Create starts a new session with default surveys.
func (s *SessionStore) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC().Format(time.RFC3339)
	session := &Session{
		ID:            uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
		RoleSurvey:    *core.DefaultRoleSurvey(),
		ProductSurvey: *core.DefaultProductSurvey(),
	}
	s.sessions[session.ID] = session
	return cloneSession(session)
}

// Get returns a session by id.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// UpdateSurveys replaces both survey documents whole.
func (s *SessionStore) UpdateSurveys(id string, role *core.RoleSurvey, product *core.ProductSurvey) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if role != nil {
		session.RoleSurvey = *role
	}
	if product != nil {
		session.ProductSurvey = *product
	}
	session.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return cloneSession(session), nil
}

// AttachAnalysis stores a finished analysis on the session.
func (s *SessionStore) AttachAnalysis(id string, analysis *core.AnalysisResult) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Analysis = analysis
	session.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return cloneSession(session), nil
}

// Checklist returns a copy of the session's checklist overlay state.
func (s *SessionStore) Checklist(id string) (map[string]core.ChecklistStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[id]; !ok {
		return nil, ErrSessionNotFound
	}
	state := make(map[string]core.ChecklistStatus, len(s.checklists[id]))
	for k, v := range s.checklists[id] {
		state[k] = v
	}
	return state, nil
}

// UpdateChecklistItem merges a status/notes update into the overlay for one
// checklist item. Nil fields keep the existing value; a fresh item defaults
// to "todo".
func (s *SessionStore) UpdateChecklistItem(id, itemKey string, status, notes *string) (core.ChecklistStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return core.ChecklistStatus{}, ErrSessionNotFound
	}
	if status != nil {
		switch *status {
		case core.StatusTodo, core.StatusInProgress, core.StatusDone:
		default:
			return core.ChecklistStatus{}, &core.ValidationError{Field: "status", Message: fmt.Sprintf("value %q not in [todo, in_progress, done]", *status)}
		}
	}

	state := s.checklists[id]
	if state == nil {
		state = make(map[string]core.ChecklistStatus)
		s.checklists[id] = state
	}

	item, exists := state[itemKey]
	if !exists {
		item = core.ChecklistStatus{ID: itemKey, Status: core.StatusTodo}
	}
	if status != nil {
		item.Status = *status
	}
	if notes != nil {
		item.Notes = *notes
	}
	state[itemKey] = item
	return item, nil
}

func cloneSession(session *Session) *Session {
	copied := *session
	return &copied
}
