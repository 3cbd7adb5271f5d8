package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/workout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent workouts",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		userID, err := app.Identity.CurrentUserID()
		if err != nil {
			fmt.Println("Error: not signed in (set user_id in ~/.gymtap/config.yaml)")
			return
		}

		workouts, err := app.Repo.RecentWorkouts(userID, limit)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts yet. Tap a machine to start one.")
			return
		}

		for _, w := range workouts {
			sessions, err := app.Repo.ExercisesForWorkout(w.WorkoutID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			summary := repository.Summarize(sessions)

			status := "✅"
			if w.Status == models.WorkoutInProgress {
				status = "⏳"
			}
			fmt.Printf("%s %s — %d exercise(s), %d set(s), %s\n",
				status, w.Name, summary.Exercises, summary.TotalSets,
				workout.FormatDuration(summary.TotalDuration))
			if w.Notes != "" {
				fmt.Printf("   %s\n", w.Notes)
			}
		}
	}),
}

var lastCmd = &cobra.Command{
	Use:   "last [machine-type]",
	Short: "Show your most recent exercise on a machine type",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		machineType := args[0]

		userID, err := app.Identity.CurrentUserID()
		if err != nil {
			fmt.Println("Error: not signed in (set user_id in ~/.gymtap/config.yaml)")
			return
		}

		session, err := app.Repo.MostRecentExerciseForMachine(userID, machineType)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Printf("No recorded exercise on %s yet.\n", machineType)
			return
		}

		fmt.Printf("Last %s: %s\n", machineType, session.StartedAt.Format("Mon Jan 2 15:04"))
		fmt.Printf("Sets: %s\n", workout.FormatSets(app.Config, session.Sets))
		fmt.Printf("Duration: %s\n", workout.FormatDuration(session.Duration()))
	}),
}

func init() {
	historyCmd.Flags().Int("limit", 10, "How many workouts to show")
}
