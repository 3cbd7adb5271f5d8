package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/workout"
)

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard the current workout and its exercises",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if err := app.Tracker.DiscardWorkout(); err != nil {
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
		fmt.Println("🗑️  Workout discarded.")
	}),
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Abandon a stuck exercise without saving it",
	Long: `Drop the remembered active exercise without writing anything to history.
Use this when a tap-out keeps failing because the machine's tag no longer
lists your session.`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		active := app.Tracker.ActiveSession()
		if active == nil {
			fmt.Println("No exercise is active.")
			return
		}
		if err := app.Tracker.RecoveryClear(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🧹 Abandoned exercise on %s — nothing was saved.\n", active.MachineType)
	}),
}
