// Package workout owns the exercise/workout lifecycle: which exercise is
// active, which workout exercises are being grouped into, and the durable
// record of both. All transitions go through the Tracker; the payload codec
// and session matcher stay pure.
package workout

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ironiq/gymtap/internal/identity"
	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/store"
)

// State is the tracker's lifecycle position, derived from the two durable
// facts: active session present / active workout id present.
type State string

const (
	StateIdle             State = "idle"
	StateBetweenExercises State = "between_exercises"
	StateExerciseActive   State = "exercise_active"
)

// TapAction says which transition a Tap performed.
type TapAction string

const (
	TapStarted   TapAction = "started"
	TapCompleted TapAction = "completed"
)

// TapResult is the outcome of one successful tap.
type TapResult struct {
	Action    TapAction
	Started   *models.ActiveSession   // set when Action == TapStarted
	Completed *models.ExerciseSession // set when Action == TapCompleted
}

// Tracker is the workout/exercise state machine. One Tracker exists per
// process, constructed by the application root and handed to the CLI/TUI;
// transitions are serialized by an internal mutex and a transition is not
// complete until its durable write succeeded.
type Tracker struct {
	mu sync.Mutex

	store    *store.SessionStore
	repo     repository.Repository
	identity identity.Identity
	now      func() time.Time

	initialized bool
	active      *models.ActiveSession
	workoutID   string
	lastPayload *models.CompactPayload // duplicate-tap guard
}

// NewTracker wires the tracker to its collaborators. Call Init before any
// transition.
func NewTracker(s *store.SessionStore, repo repository.Repository, id identity.Identity) *Tracker {
	return &Tracker{
		store:    s,
		repo:     repo,
		identity: id,
		now:      time.Now,
	}
}

// SetNow overrides the tracker's clock. Test seam.
func (t *Tracker) SetNow(now func() time.Time) {
	t.now = now
}

// Init loads the durable state. Until it succeeds every transition fails
// with ErrNotInitialized; after it, local state survives a process restart.
func (t *Tracker) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	active, err := t.store.LoadActiveSession()
	if err != nil {
		return fmt.Errorf("failed to restore tracker state: %w", err)
	}
	workoutID, err := t.store.LoadActiveWorkoutID()
	if err != nil {
		return fmt.Errorf("failed to restore tracker state: %w", err)
	}

	t.active = active
	t.workoutID = workoutID
	t.initialized = true
	return nil
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.active != nil:
		return StateExerciseActive
	case t.workoutID != "":
		return StateBetweenExercises
	default:
		return StateIdle
	}
}

// ActiveSession returns a copy of the exercise in progress, or nil.
func (t *Tracker) ActiveSession() *models.ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	session := *t.active
	return &session
}

// ActiveWorkoutID returns the open workout's id, or "".
func (t *Tracker) ActiveWorkoutID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workoutID
}

// Tap applies one freshly read payload: tap-in when nothing is active,
// tap-out otherwise. A payload identical to the one the tracker just acted
// on is rejected with ErrDuplicateTap so a double read cannot double-apply.
func (t *Tracker) Tap(payload *models.CompactPayload) (*TapResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return nil, ErrNotInitialized
	}
	if payload.Equal(t.lastPayload) {
		return nil, ErrDuplicateTap
	}

	if t.active == nil {
		started, err := t.tapIn(payload)
		if err != nil {
			return nil, err
		}
		return &TapResult{Action: TapStarted, Started: started}, nil
	}

	completed, err := t.tapOut(payload)
	if err != nil {
		return nil, err
	}
	return &TapResult{Action: TapCompleted, Completed: completed}, nil
}

// TapIn starts a new exercise from a payload. Fails with ErrAlreadyActive
// when an exercise is already running.
func (t *Tracker) TapIn(payload *models.CompactPayload) (*models.ActiveSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized {
		return nil, ErrNotInitialized
	}
	return t.tapIn(payload)
}

func (t *Tracker) tapIn(payload *models.CompactPayload) (*models.ActiveSession, error) {
	if t.active != nil {
		return nil, ErrAlreadyActive
	}

	session := &models.ActiveSession{
		SessionID:   payload.NextSessionID,
		MachineID:   payload.MachineID,
		MachineType: payload.MachineType,
		StartedAt:   t.now(),
	}
	if err := t.store.PutActiveSession(session); err != nil {
		return nil, persistErr("tap-in", err)
	}

	t.active = session
	t.lastPayload = payload
	return session, nil
}

// TapOut completes the active exercise from a payload. The exercise is
// persisted before the active session is cleared; if the clear itself
// fails the session stays visible and a recovery clear sorts it out.
func (t *Tracker) TapOut(payload *models.CompactPayload) (*models.ExerciseSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized {
		return nil, ErrNotInitialized
	}
	return t.tapOut(payload)
}

func (t *Tracker) tapOut(payload *models.CompactPayload) (*models.ExerciseSession, error) {
	if t.active == nil {
		return nil, ErrNoActiveSession
	}

	entry, ok := Match(payload, t.active.SessionID)
	if !ok {
		return nil, &SessionNotFoundError{
			SessionID:  t.active.SessionID,
			Candidates: payload.Sessions,
		}
	}

	userID, err := t.identity.CurrentUserID()
	if err != nil {
		return nil, err
	}

	workoutID := t.workoutID
	if workoutID == "" {
		workoutID, err = t.repo.CreateWorkout(userID)
		if err != nil {
			return nil, persistErr("create workout", err)
		}
		if err := t.store.PutActiveWorkoutID(workoutID); err != nil {
			return nil, persistErr("save workout id", err)
		}
		t.workoutID = workoutID
	}

	ended := t.now()
	session := &models.ExerciseSession{
		SessionID:       t.active.SessionID,
		UserID:          userID,
		WorkoutID:       workoutID,
		MachineID:       t.active.MachineID,
		MachineType:     t.active.MachineType,
		StartedAt:       t.active.StartedAt,
		EndedAt:         ended,
		DurationSeconds: int(ended.Sub(t.active.StartedAt) / time.Second),
		Sets:            entry.Sets,
	}

	if err := t.repo.SaveExerciseSession(session); err != nil {
		return nil, persistErr("save exercise", err)
	}
	if err := t.store.DeleteActiveSession(); err != nil {
		return nil, persistErr("clear active session", err)
	}

	t.active = nil
	t.lastPayload = payload
	return session, nil
}

// CompleteWorkout closes the open workout. Name and notes are optional
// overrides for the repository defaults.
func (t *Tracker) CompleteWorkout(name, notes string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotInitialized
	}
	if t.active != nil {
		return ErrExerciseActive
	}
	if t.workoutID == "" {
		return ErrNoActiveWorkout
	}

	if err := t.repo.CompleteWorkout(t.workoutID, name, notes); err != nil {
		return persistErr("complete workout", err)
	}
	if err := t.store.DeleteActiveWorkoutID(); err != nil {
		return persistErr("clear workout id", err)
	}

	t.workoutID = ""
	t.lastPayload = nil
	return nil
}

// DiscardWorkout deletes the open workout and its exercises. Local state is
// cleared even when the repository delete fails, so a half-removed workout
// cannot wedge the tracker; a repository failure other than "not found" is
// still reported after the clear.
func (t *Tracker) DiscardWorkout() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotInitialized
	}
	if t.active != nil {
		return ErrExerciseActive
	}
	if t.workoutID == "" {
		return ErrNoActiveWorkout
	}

	deleteErr := t.repo.DeleteWorkout(t.workoutID)

	if err := t.store.DeleteActiveWorkoutID(); err != nil {
		return persistErr("clear workout id", err)
	}
	t.workoutID = ""
	t.lastPayload = nil

	if deleteErr != nil && !errors.Is(deleteErr, repository.ErrWorkoutNotFound) {
		return fmt.Errorf("workout discarded locally, repository delete failed: %w", deleteErr)
	}
	return nil
}

// RecoveryClear drops the active session without writing an exercise.
// Explicit operator action for the session-not-found situation; a no-op
// when nothing is active.
func (t *Tracker) RecoveryClear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return ErrNotInitialized
	}
	if t.active == nil {
		return nil
	}

	if err := t.store.DeleteActiveSession(); err != nil {
		return persistErr("recovery clear", err)
	}
	t.active = nil
	t.lastPayload = nil
	return nil
}
