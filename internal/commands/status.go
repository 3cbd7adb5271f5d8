package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/workout"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current exercise and workout state",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		switch app.Tracker.State() {
		case workout.StateExerciseActive:
			active := app.Tracker.ActiveSession()
			elapsed := time.Since(active.StartedAt)
			fmt.Printf("🏋️  Exercise in progress on %s (machine %s)\n", active.MachineType, active.MachineID)
			fmt.Printf("Started at: %s\n", active.StartedAt.Format("15:04:05"))
			fmt.Printf("Elapsed time: %s\n", workout.FormatDuration(elapsed))
		case workout.StateBetweenExercises:
			fmt.Println("Between exercises — tap a machine to start the next one.")
		default:
			fmt.Println("No workout in progress. Tap a machine to start one.")
			return
		}

		workoutID := app.Tracker.ActiveWorkoutID()
		if workoutID == "" {
			return
		}
		sessions, err := app.Repo.ExercisesForWorkout(workoutID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		summary := repository.Summarize(sessions)
		fmt.Printf("Current workout: %d exercise(s), %d set(s), %s total\n",
			summary.Exercises, summary.TotalSets, workout.FormatDuration(summary.TotalDuration))
	}),
}
