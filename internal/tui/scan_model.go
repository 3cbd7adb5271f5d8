package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/tagreader"
	"github.com/ironiq/gymtap/internal/workout"
)

// phase tracks which screen the scan TUI is showing.
type phase int

const (
	phaseScanning phase = iota // read in flight, spinner running
	phaseExercise              // tap-in succeeded, big elapsed clock
)

// ScanModel drives one or more taps: a scanning screen while the reader is
// working and a live exercise timer after a tap-in.
type ScanModel struct {
	width  int
	height int

	reader  *tagreader.Reader
	tracker *workout.Tracker

	phase   phase
	spinner spinner.Model

	// Exercise state after a tap-in
	active      *models.ActiveSession
	elapsedTime time.Duration

	// Exit state, consumed by RunScanTUI after the program quits
	result    *workout.TapResult
	err       error
	cancelled bool // user backed out of the scan
	detached  bool // user left the exercise running
}

// readResultMsg carries the outcome of one ReadTag call.
type readResultMsg struct {
	payload *models.CompactPayload
	err     error
}

// timerTickMsg is sent every second to update the exercise clock
type timerTickMsg struct{}

// NewScanModel creates a new scan TUI model
func NewScanModel(reader *tagreader.Reader, tracker *workout.Tracker) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return ScanModel{
		reader:  reader,
		tracker: tracker,
		phase:   phaseScanning,
		spinner: sp,
	}
}

// Init starts the first read and the spinner
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.readCmd(), m.spinner.Tick)
}

// readCmd runs one blocking ReadTag off the UI loop.
func (m ScanModel) readCmd() tea.Cmd {
	reader := m.reader
	return func() tea.Msg {
		payload, err := reader.ReadTag(context.Background())
		return readResultMsg{payload: payload, err: err}
	}
}

func tickTimer() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readResultMsg:
		return m.handleReadResult(msg)

	case timerTickMsg:
		if m.phase != phaseExercise || m.active == nil {
			return m, nil
		}
		m.elapsedTime = time.Since(m.active.StartedAt)
		return m, tickTimer()

	case spinner.TickMsg:
		if m.phase != phaseScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ScanModel) handleReadResult(msg readResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.cancelled = m.cancelled || tagreader.IsCancelled(msg.err)
		return m, tea.Quit
	}

	result, err := m.tracker.Tap(msg.payload)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}

	m.result = result
	if result.Action == workout.TapStarted {
		// Stay up and show the running exercise
		m.phase = phaseExercise
		m.active = result.Started
		m.elapsedTime = time.Since(result.Started.StartedAt)
		return m, tickTimer()
	}
	return m, tea.Quit
}

func (m ScanModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.reader.StopReading()
		m.cancelled = m.phase == phaseScanning
		return m, tea.Quit

	case "esc", "q":
		if m.phase == phaseScanning {
			// Abort the read; the pending readResultMsg quits for us.
			m.cancelled = true
			m.reader.StopReading()
			return m, nil
		}
		// Leave the exercise running in the background
		m.detached = true
		return m, tea.Quit

	case "t", "T":
		if m.phase == phaseExercise {
			// Tap out: second read against the same machine
			m.phase = phaseScanning
			return m, tea.Batch(m.readCmd(), m.spinner.Tick)
		}
	}

	return m, nil
}

// View renders the scan TUI
func (m ScanModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var panel string
	if m.phase == phaseScanning {
		panel = m.renderScanPanel(m.width, contentHeight)
	} else {
		panel = m.renderExercisePanel(m.width, contentHeight)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panel,
		helpBar,
	)
}

// renderScanPanel renders the scanning screen
func (m ScanModel) renderScanPanel(width, height int) string {
	var components []string

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render("📡  SCANNING FOR TAG"))

	components = append(components, lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width).
		Render(m.spinner.View()))

	hint := "Hold the reader against the machine's tag"
	if m.active != nil {
		hint = fmt.Sprintf("Tap %s again to finish the exercise", m.active.MachineType)
	}
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, hintStyle.Render(hint))

	content := strings.Join(components, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderExercisePanel renders the live exercise screen
func (m ScanModel) renderExercisePanel(width, height int) string {
	var components []string

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, headerStyle.Render("🏋️  EXERCISE IN PROGRESS"))

	machineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, machineStyle.Render(m.active.MachineType))

	idStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, idStyle.Render(fmt.Sprintf("machine %s", m.active.MachineID)))

	// Big clock display
	clockLines := strings.Split(renderBigClock(m.elapsedTime), "\n")
	var clock strings.Builder
	for _, line := range clockLines {
		clock.WriteString(lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(line))
		clock.WriteString("\n")
	}
	components = append(components, strings.TrimRight(clock.String(), "\n"))

	startedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, startedStyle.Render(
		fmt.Sprintf("Started at %s", m.active.StartedAt.Format("15:04:05"))))

	content := strings.Join(components, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m ScanModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "esc/q cancel · ctrl+c force quit"
	if m.phase == phaseExercise {
		helpText = "t tap out & save · esc/q exit (keep running) · ctrl+c force quit"
	}

	return helpStyle.Render(helpText)
}

// renderBigClock renders the elapsed time as ASCII art
func renderBigClock(duration time.Duration) string {
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	// ASCII art for digits (5x5 characters each)
	digits := map[rune][5]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if hours > 0 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		if digitArt, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(digitArt[i])
				lines[i].WriteString(" ") // Space between digits
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}
