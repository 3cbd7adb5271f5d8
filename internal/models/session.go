package models

import (
	"time"

	"gorm.io/gorm"
)

// ActiveSession is the locally remembered exercise in progress. Its presence
// in the durable store is the sole authority for "an exercise is active";
// at most one exists at any time.
type ActiveSession struct {
	SessionID   string    `json:"session_id"`
	MachineID   string    `json:"machine_id"`
	MachineType string    `json:"machine_type"`
	StartedAt   time.Time `json:"started_at"`
}

// ExerciseSession is one completed exercise on one machine. Immutable once
// written to the repository.
type ExerciseSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SessionID       string    `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID          string    `gorm:"not null;index" json:"user_id"`
	WorkoutID       string    `gorm:"not null;index" json:"workout_id"`
	MachineID       string    `gorm:"not null" json:"machine_id"`
	MachineType     string    `gorm:"not null;index" json:"machine_type"`
	StartedAt       time.Time `gorm:"not null" json:"started_at"`
	EndedAt         time.Time `gorm:"not null" json:"ended_at"`
	DurationSeconds int       `json:"duration_seconds"`
	Sets            []Set     `gorm:"serializer:json" json:"sets"`
}

// Duration returns the exercise length as a time.Duration.
func (s *ExerciseSession) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}
