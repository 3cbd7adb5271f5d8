package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironiq/gymtap/internal/tagreader"
	"github.com/ironiq/gymtap/internal/tui"
	"github.com/ironiq/gymtap/internal/workout"
)

var tapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Read the machine's tag and start or finish an exercise",
	Long: `Read the machine's tag once. With no exercise active this starts one;
with an exercise active this finishes it and files it into the current workout.

Examples:
  gymtap tap          # Tap with interactive scan UI
  gymtap tap --no-ui  # Tap with plain output
  gymtap tap --debug  # Show the tag's session list when matching fails`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		noUI, _ := cmd.Flags().GetBool("no-ui")
		debug, _ := cmd.Flags().GetBool("debug")

		if !noUI {
			if err := tui.RunScanTUI(app.Config, app.Reader, app.Tracker); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		// Ctrl-C aborts the read; the reader classifies it as a cancel.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("📡 Hold the reader against the machine's tag...")
		payload, err := app.Reader.ReadTag(ctx)
		if err != nil {
			reportReadError(err)
			return
		}

		result, err := app.Tracker.Tap(payload)
		if err != nil {
			reportTapError(app, err, debug)
			return
		}

		switch result.Action {
		case workout.TapStarted:
			started := result.Started
			fmt.Printf("🏋️  Started exercise on %s (machine %s)\n", started.MachineType, started.MachineID)
			fmt.Printf("Started at: %s\n", started.StartedAt.Format("15:04:05"))
			fmt.Println("Tap again when you finish the exercise.")
		case workout.TapCompleted:
			completed := result.Completed
			fmt.Printf("✅ Finished %s: %s\n", completed.MachineType, workout.FormatSets(app.Config, completed.Sets))
			fmt.Printf("Exercise duration: %s\n", workout.FormatDuration(completed.Duration()))
			fmt.Println("Use 'gymtap finish' to complete the workout.")
		}
	}),
}

// reportReadError prints a read failure. A cancel is the user changing
// their mind, so it stays quiet.
func reportReadError(err error) {
	switch {
	case errors.Is(err, tagreader.ErrCancelled):
		// Silent no-op by design of the tap flow.
	case errors.Is(err, tagreader.ErrUnavailable):
		fmt.Println("Error: no tag reader on this machine (set tag_device in ~/.gymtap/config.yaml)")
	case errors.Is(err, tagreader.ErrDisabled):
		fmt.Println("Error: the tag reader is switched off")
	case errors.Is(err, tagreader.ErrTimeout):
		fmt.Println("Error: no tag found — hold the reader closer and try again")
	case errors.Is(err, tagreader.ErrBusy):
		fmt.Println("Error: a read is already in progress")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

// reportTapError prints a state-machine failure from a tap.
func reportTapError(app *App, err error, debug bool) {
	var snf *workout.SessionNotFoundError
	switch {
	case errors.As(err, &snf):
		fmt.Printf("Error: the tag has no finished data for your session %s yet.\n", snf.SessionID)
		fmt.Println("Wait a moment and tap again, or run 'gymtap clear' to abandon the exercise.")
		if debug {
			printCandidates(app, snf)
		}
	case errors.Is(err, workout.ErrDuplicateTap):
		fmt.Println("Already handled that tap — wait for the machine to update its tag.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

// printCandidates is the diagnostic surface for a failed match: the raw
// session list the tag offered.
func printCandidates(app *App, snf *workout.SessionNotFoundError) {
	if len(snf.Candidates) == 0 {
		fmt.Println("The tag listed no sessions at all.")
		return
	}
	fmt.Printf("The tag listed %d session(s):\n", len(snf.Candidates))
	for _, entry := range snf.Candidates {
		fmt.Printf("  [%s] %s: %s\n", entry.Role, entry.SessionID, workout.FormatSets(app.Config, entry.Sets))
	}
}

func init() {
	tapCmd.Flags().Bool("no-ui", false, "Tap without the interactive scan UI")
	tapCmd.Flags().Bool("debug", false, "Show the tag's raw session list when matching fails")
}
