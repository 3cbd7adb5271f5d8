package repository

import (
	"time"

	"github.com/ironiq/gymtap/internal/models"
)

// WorkoutSummary aggregates a workout's exercises for display.
type WorkoutSummary struct {
	Exercises      int
	TotalSets      int
	TotalReps      int
	TotalVolumeLbs int
	TotalDuration  time.Duration
}

// Summarize derives a summary from a workout's exercises. This is a
// derivation utility, so the unknown-weight sentinel counts as 0 here;
// the stored sets keep the sentinel untouched.
func Summarize(sessions []models.ExerciseSession) WorkoutSummary {
	var summary WorkoutSummary
	summary.Exercises = len(sessions)
	for _, session := range sessions {
		summary.TotalDuration += time.Duration(session.DurationSeconds) * time.Second
		for _, set := range session.Sets {
			summary.TotalSets++
			summary.TotalReps += set.Reps
			weight := set.WeightLbs
			if weight == models.WeightUnknown {
				weight = 0
			}
			summary.TotalVolumeLbs += weight * set.Reps
		}
	}
	return summary
}
