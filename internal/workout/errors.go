package workout

import (
	"errors"
	"fmt"

	"github.com/ironiq/gymtap/internal/models"
)

var (
	// ErrAlreadyActive: tap-in attempted while an exercise is active.
	// The user has to tap out (or run a recovery clear) first.
	ErrAlreadyActive = errors.New("an exercise is already active")

	// ErrNoActiveSession: tap-out or recovery attempted with nothing active.
	ErrNoActiveSession = errors.New("no exercise is active")

	// ErrNoActiveWorkout: workout completion/discard with no open workout.
	ErrNoActiveWorkout = errors.New("no workout in progress")

	// ErrExerciseActive: workout completion attempted while an exercise
	// is still running.
	ErrExerciseActive = errors.New("finish the active exercise first")

	// ErrDuplicateTap: the tag produced the exact payload the tracker
	// just acted on; the read is ignored rather than double-applied.
	ErrDuplicateTap = errors.New("duplicate tap")

	// ErrNotInitialized: a transition was attempted before Init loaded
	// the durable state.
	ErrNotInitialized = errors.New("tracker not initialized")
)

// SessionNotFoundError: the tap-out payload does not contain the expected
// session with recorded sets. Recoverable; the active session stays put
// until the user taps again or runs a recovery clear. Candidates carries
// the raw session list from the tag for optional diagnostic display.
type SessionNotFoundError struct {
	SessionID  string
	Candidates []models.SessionEntry
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found on tag (%d candidates)", e.SessionID, len(e.Candidates))
}

// IsSessionNotFound reports whether err is a SessionNotFoundError.
func IsSessionNotFound(err error) bool {
	var snf *SessionNotFoundError
	return errors.As(err, &snf)
}

// PersistenceError: a durable store or repository write failed. The
// transition that hit it did not happen; in-memory state is unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
