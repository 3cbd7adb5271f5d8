package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ironiq/gymtap/internal/config"
	"github.com/ironiq/gymtap/internal/tagreader"
	"github.com/ironiq/gymtap/internal/workout"
)

// RunScanTUI starts the interactive tap TUI
func RunScanTUI(cfg *config.Config, reader *tagreader.Reader, tracker *workout.Tracker) error {
	model := NewScanModel(reader, tracker)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()

	// Handle exit messages after TUI closes
	if err != nil {
		return err
	}

	m, ok := finalModel.(ScanModel)
	if !ok {
		return nil
	}

	switch {
	case m.cancelled:
		// User backed out; nothing to report.
	case m.err != nil:
		reportScanError(cfg, m.err)
	case m.detached && m.active != nil:
		fmt.Printf("\n💡 Exercise still running on %s: tap the machine when you finish,\n", m.active.MachineType)
		fmt.Printf("   or use 'gymtap status' to check on it.\n")
	case m.result != nil && m.result.Action == workout.TapCompleted:
		completed := m.result.Completed
		fmt.Printf("✅ Finished %s: %s\n", completed.MachineType, workout.FormatSets(cfg, completed.Sets))
		fmt.Printf("📊 Exercise duration: %s\n", workout.FormatDuration(completed.Duration()))
	}

	return nil
}

func reportScanError(cfg *config.Config, err error) {
	var snf *workout.SessionNotFoundError
	switch {
	case errors.As(err, &snf):
		fmt.Printf("❌ The tag has no finished data for your session %s yet.\n", snf.SessionID)
		fmt.Println("   Wait a moment and tap again, or run 'gymtap clear' to abandon the exercise.")
	case errors.Is(err, workout.ErrDuplicateTap):
		fmt.Println("Already handled that tap — wait for the machine to update its tag.")
	case errors.Is(err, tagreader.ErrTimeout):
		fmt.Println("❌ No tag found — hold the reader closer and try again.")
	case errors.Is(err, tagreader.ErrUnavailable):
		fmt.Println("❌ No tag reader on this machine (set tag_device in ~/.gymtap/config.yaml).")
	case errors.Is(err, tagreader.ErrDisabled):
		fmt.Println("❌ The tag reader is switched off.")
	default:
		fmt.Printf("❌ Error: %v\n", err)
	}
}
