// Package repository owns durable workout and exercise history. The
// tracker only ever talks to the Repository interface; the sqlite-backed
// implementation stands in for the remote workout database at the same
// boundary.
package repository

import (
	"errors"

	"github.com/ironiq/gymtap/internal/models"
)

// ErrWorkoutNotFound is returned for operations on a workout id the
// repository does not know.
var ErrWorkoutNotFound = errors.New("workout not found")

// ErrWorkoutCompleted is returned when completing a workout that was
// already completed; the in_progress -> completed transition happens
// exactly once.
var ErrWorkoutCompleted = errors.New("workout already completed")

// Repository is the collaborator the workout tracker persists through.
type Repository interface {
	// CreateWorkout opens a new in-progress workout for the user and
	// returns its id.
	CreateWorkout(userID string) (workoutID string, err error)

	// SaveExerciseSession stores one completed exercise. Sessions are
	// immutable once written.
	SaveExerciseSession(session *models.ExerciseSession) error

	// CompleteWorkout marks the workout completed. Name and notes
	// override the defaults when non-empty.
	CompleteWorkout(workoutID, name, notes string) error

	// DeleteWorkout removes the workout and its exercises.
	DeleteWorkout(workoutID string) error

	// WorkoutByID returns the workout, or ErrWorkoutNotFound.
	WorkoutByID(workoutID string) (*models.Workout, error)

	// ExercisesForWorkout returns the workout's exercises ordered by
	// start time ascending.
	ExercisesForWorkout(workoutID string) ([]models.ExerciseSession, error)

	// MostRecentExerciseForMachine returns the user's most recent
	// exercise on the given machine type by start time, or nil when the
	// user has never used it.
	MostRecentExerciseForMachine(userID, machineType string) (*models.ExerciseSession, error)

	// RecentWorkouts returns the user's workouts, most recent first.
	RecentWorkouts(userID string, limit int) ([]models.Workout, error)
}
