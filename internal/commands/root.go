package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ironiq/gymtap/internal/config"
	"github.com/ironiq/gymtap/internal/db"
	"github.com/ironiq/gymtap/internal/identity"
	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/store"
	"github.com/ironiq/gymtap/internal/tagreader"
	"github.com/ironiq/gymtap/internal/tagsim"
	"github.com/ironiq/gymtap/internal/workout"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gymtap",
	Short: "Tap-to-track gym workouts",
	Long: `gymtap tracks exercise sessions on instrumented gym equipment.
Tap the reader against a machine to start an exercise, tap again to finish it;
exercises group into workouts you complete or discard from the terminal.`,
}

// App is the wired application: one instance built per invocation and
// passed by reference, no package-level state.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Repo     repository.Repository
	Identity identity.Identity
	Tracker  *workout.Tracker
	Reader   *tagreader.Reader
}

// newApp loads config, opens the database and wires the collaborators.
func newApp() (*App, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := db.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate database: %w", err)
	}
	gdb, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}

	who := identity.Static{UserID: cfg.UserID}
	tracker := workout.NewTracker(
		store.NewSessionStore(store.NewGormKV(gdb)),
		repository.NewGorm(gdb),
		who,
	)
	if err := tracker.Init(); err != nil {
		return nil, err
	}

	// Capability selection happens here, once; the reader itself never
	// branches on the platform.
	var tech tagreader.Technology = tagreader.Unavailable{}
	if cfg.TagDevice != "" {
		tech = tagsim.New(cfg.TagDevice)
	}

	return &App{
		Config:   cfg,
		DB:       gdb,
		Repo:     repository.NewGorm(gdb),
		Identity: who,
		Tracker:  tracker,
		Reader:   tagreader.New(tech, tagreader.DefaultPolicy()),
	}, nil
}

// withApp wraps a command function to build the application first.
func withApp(fn func(*App, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		app, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer db.Close(app.DB)
		fn(app, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gymtap %s (commit %s, built %s)\n", version, commit, date)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(tapCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
