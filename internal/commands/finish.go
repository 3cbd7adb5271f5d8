package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/workout"
)

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Complete the current workout",
	Long: `Complete the current workout and print its summary.

Examples:
  gymtap finish
  gymtap finish --name "Leg day" --notes "New PR on the press"`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		notes, _ := cmd.Flags().GetString("notes")

		workoutID := app.Tracker.ActiveWorkoutID()
		if err := app.Tracker.CompleteWorkout(name, notes); err != nil {
			switch {
			case errors.Is(err, workout.ErrExerciseActive):
				fmt.Println("Error: finish the active exercise first (tap the machine or run 'gymtap clear')")
			case errors.Is(err, workout.ErrNoActiveWorkout):
				fmt.Println("No workout in progress.")
			default:
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		completed, err := app.Repo.WorkoutByID(workoutID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		sessions, err := app.Repo.ExercisesForWorkout(workoutID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		summary := repository.Summarize(sessions)
		fmt.Printf("🎉 Completed workout: %s\n", completed.Name)
		fmt.Printf("Exercises: %d · Sets: %d · Reps: %d · Volume: %dlbs · Duration: %s\n",
			summary.Exercises, summary.TotalSets, summary.TotalReps,
			summary.TotalVolumeLbs, workout.FormatDuration(summary.TotalDuration))
		for _, session := range sessions {
			fmt.Printf("  %s — %s\n", session.MachineType, workout.FormatSets(app.Config, session.Sets))
		}
	}),
}

func init() {
	finishCmd.Flags().String("name", "", "Name the workout (default: dated name)")
	finishCmd.Flags().String("notes", "", "Attach notes to the workout")
}
