package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkoutStatus is the lifecycle state of a workout. The only legal
// transition is in_progress -> completed, exactly once.
type WorkoutStatus string

const (
	WorkoutInProgress WorkoutStatus = "in_progress"
	WorkoutCompleted  WorkoutStatus = "completed"
)

// Workout is a user-defined grouping of exercise sessions.
type Workout struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	WorkoutID string        `gorm:"uniqueIndex;not null" json:"workout_id"`
	UserID    string        `gorm:"not null;index" json:"user_id"`
	Name      string        `json:"name"`
	Notes     string        `json:"notes"`
	Status    WorkoutStatus `gorm:"default:in_progress" json:"status"`
	StartedAt time.Time     `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time    `json:"ended_at"`
}
