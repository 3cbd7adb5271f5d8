package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ironiq/gymtap/internal/models"
)

// Gorm is the sqlite-backed Repository.
type Gorm struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db, now: time.Now}
}

// CreateWorkout opens a new in-progress workout named after the date,
// e.g. "02/14/2026 Workout".
func (r *Gorm) CreateWorkout(userID string) (string, error) {
	now := r.now()
	workout := models.Workout{
		WorkoutID: uuid.NewString(),
		UserID:    userID,
		Name:      now.Format("01/02/2006") + " Workout",
		Status:    models.WorkoutInProgress,
		StartedAt: now,
	}

	if err := r.db.Create(&workout).Error; err != nil {
		return "", fmt.Errorf("failed to create workout: %w", err)
	}
	return workout.WorkoutID, nil
}

func (r *Gorm) SaveExerciseSession(session *models.ExerciseSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to save exercise session %s: %w", session.SessionID, err)
	}
	return nil
}

func (r *Gorm) CompleteWorkout(workoutID, name, notes string) error {
	workout, err := r.WorkoutByID(workoutID)
	if err != nil {
		return err
	}
	if workout.Status == models.WorkoutCompleted {
		return ErrWorkoutCompleted
	}

	now := r.now()
	workout.Status = models.WorkoutCompleted
	workout.EndedAt = &now
	if name != "" {
		workout.Name = name
	}
	if notes != "" {
		workout.Notes = notes
	}

	if err := r.db.Save(workout).Error; err != nil {
		return fmt.Errorf("failed to complete workout %s: %w", workoutID, err)
	}
	return nil
}

func (r *Gorm) DeleteWorkout(workoutID string) error {
	workout, err := r.WorkoutByID(workoutID)
	if err != nil {
		return err
	}

	if err := r.db.Delete(&models.ExerciseSession{}, "workout_id = ?", workoutID).Error; err != nil {
		return fmt.Errorf("failed to delete exercises of workout %s: %w", workoutID, err)
	}
	if err := r.db.Delete(workout).Error; err != nil {
		return fmt.Errorf("failed to delete workout %s: %w", workoutID, err)
	}
	return nil
}

func (r *Gorm) WorkoutByID(workoutID string) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.First(&workout, "workout_id = ?", workoutID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workout %s: %w", workoutID, err)
	}
	return &workout, nil
}

func (r *Gorm) ExercisesForWorkout(workoutID string) ([]models.ExerciseSession, error) {
	var sessions []models.ExerciseSession
	err := r.db.Where("workout_id = ?", workoutID).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises of workout %s: %w", workoutID, err)
	}
	return sessions, nil
}

func (r *Gorm) MostRecentExerciseForMachine(userID, machineType string) (*models.ExerciseSession, error) {
	var session models.ExerciseSession
	err := r.db.Where("user_id = ? AND machine_type = ?", userID, machineType).
		Order("started_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history for machine %s: %w", machineType, err)
	}
	return &session, nil
}

func (r *Gorm) RecentWorkouts(userID string, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent workouts: %w", err)
	}
	return workouts, nil
}
