package store

import (
	"encoding/json"
	"fmt"

	"github.com/ironiq/gymtap/internal/models"
)

const (
	activeSessionKey   = "activeSession"
	activeWorkoutIDKey = "activeWorkoutId"
)

// SessionStore persists the tracker's two durable facts: the active session
// (JSON) and the active workout id (raw string).
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// LoadActiveSession returns the stored active session, or nil when none.
func (s *SessionStore) LoadActiveSession() (*models.ActiveSession, error) {
	raw, ok, err := s.kv.Get(activeSessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session models.ActiveSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("corrupt active session record: %w", err)
	}
	return &session, nil
}

// PutActiveSession replaces the stored active session.
func (s *SessionStore) PutActiveSession(session *models.ActiveSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode active session: %w", err)
	}
	if err := s.kv.Put(activeSessionKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}
	return nil
}

// DeleteActiveSession removes the stored active session.
func (s *SessionStore) DeleteActiveSession() error {
	if err := s.kv.Delete(activeSessionKey); err != nil {
		return fmt.Errorf("failed to clear active session: %w", err)
	}
	return nil
}

// LoadActiveWorkoutID returns the stored workout id, or "" when none.
func (s *SessionStore) LoadActiveWorkoutID() (string, error) {
	id, ok, err := s.kv.Get(activeWorkoutIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to load active workout id: %w", err)
	}
	if !ok {
		return "", nil
	}
	return id, nil
}

// PutActiveWorkoutID replaces the stored workout id.
func (s *SessionStore) PutActiveWorkoutID(workoutID string) error {
	if err := s.kv.Put(activeWorkoutIDKey, workoutID); err != nil {
		return fmt.Errorf("failed to save active workout id: %w", err)
	}
	return nil
}

// DeleteActiveWorkoutID removes the stored workout id.
func (s *SessionStore) DeleteActiveWorkoutID() error {
	if err := s.kv.Delete(activeWorkoutIDKey); err != nil {
		return fmt.Errorf("failed to clear active workout id: %w", err)
	}
	return nil
}
