package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for gymtap",
	Long:  `Display detailed help for all gymtap commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 ██████╗██╗   ██╗███╗   ███╗████████╗ █████╗ ██████╗
██╔════╝╚██╗ ██╔╝████╗ ████║╚══██╔══╝██╔══██╗██╔══██╗
██║  ███╗╚████╔╝ ██╔████╔██║   ██║   ███████║██████╔╝
██║   ██║ ╚██╔╝  ██║╚██╔╝██║   ██║   ██╔══██║██╔═══╝
╚██████╔╝  ██║   ██║ ╚═╝ ██║   ██║   ██║  ██║██║
 ╚═════╝   ╚═╝   ╚═╝     ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝

gymtap - Tap-to-track gym workouts

COMMANDS:

  tap                     Read the machine's tag: start or finish an exercise
    --no-ui               Plain output instead of the scan UI
    --debug               Show the tag's raw session list when matching fails

    A tap with no active exercise starts one on the machine you tapped.
    A tap with an exercise active finishes it and files it into the
    current workout (one is opened for you on the first finish).

  status                  Show the current exercise and workout state

  finish                  Complete the current workout and print its summary
    --name                Name the workout
    --notes               Attach notes

  discard                 Discard the current workout and its exercises
  clear                   Abandon a stuck exercise without saving it

  history                 Show recent workouts
    --limit               How many to show (default 10)

  last <machine-type>     Your most recent exercise on a machine type

  help                    Show this help
  version                 Show version information

Scan UI keys:
  esc/q         Cancel the read / leave the exercise running
  t             Tap again (finish the exercise)
  ctrl+c        Force quit

Configuration lives in ~/.gymtap/config.yaml (user_id, weight_unit,
tag_device); workout history in ~/.gymtap/gymtap.db.

`)
}
