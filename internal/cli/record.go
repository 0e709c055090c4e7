package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube"
	"github.com/mtouzot/heykube/internal/recorder"
	"github.com/mtouzot/heykube/internal/storage"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Interactive solve recording mode",
	Long: `Start an interactive TUI for recording solves with real-time move
display. Phases are detected automatically from the cube state.

Keyboard shortcuts:
  s       - Start a new solve (a scramble is suggested)
  e       - End the current solve
  h       - Flash a hint on the cube
  q/Esc   - Quit

The TUI displays moves in real-time as you turn the cube.`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type cubeConnectedMsg struct{ name string }
type cubeEventMsg struct{ ev cubeEvent }

// cubeEvent carries a callback notification from the BLE goroutine into
// the TUI event loop.
type cubeEvent struct {
	move   *heykube.Move
	phase  *heykube.Phase
	solved bool
}

// Model
type recordModel struct {
	cube       *heykube.HEYKUBE
	device     heykube.Device
	connected  bool
	deviceName string
	battery    int
	events     chan cubeEvent

	db        *storage.DB
	stateFile *recorder.StateFile
	session   *recorder.Session

	recording bool
	solveID   string
	scramble  string
	phase     heykube.Phase
	moves     []heykube.Move
	startTime time.Time
	elapsed   time.Duration

	width    int
	height   int
	err      error
	quitting bool
}

func newRecordModel(db *storage.DB, stateFile *recorder.StateFile, device heykube.Device) *recordModel {
	return &recordModel{
		db:        db,
		stateFile: stateFile,
		session:   recorder.NewSession(db, stateFile),
		device:    device,
		battery:   -1,
		events:    make(chan cubeEvent, 100),
	}
}

func (m *recordModel) Init() tea.Cmd {
	return tea.Batch(
		m.connectCube(),
		m.tickCmd(),
		m.listenForEvents(),
	)
}

func (m *recordModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return cubeEventMsg{ev: <-m.events}
	}
}

func (m *recordModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *recordModel) connectCube() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cube, err := heykube.Connect(ctx, m.device, heykube.WithLogger(newLogger()))
		if err != nil {
			m.err = fmt.Errorf("connection failed: %w", err)
			return nil
		}
		m.cube = cube

		// Callbacks run on the BLE notification goroutine; hand them to
		// the TUI through the channel, dropping when full.
		cube.OnMove(func(mv heykube.Move) {
			m.session.HandleMove(mv)
			select {
			case m.events <- cubeEvent{move: &mv}:
			default:
			}
		})
		cube.OnPhaseChange(func(p heykube.Phase, numCorrect int) {
			m.session.HandlePhase(p, numCorrect)
			select {
			case m.events <- cubeEvent{phase: &p}:
			default:
			}
		})
		cube.OnSolved(func() {
			m.session.HandleSolved()
			select {
			case m.events <- cubeEvent{solved: true}:
			default:
			}
		})

		return cubeConnectedMsg{name: cube.DeviceName()}
	}
}

func (m *recordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.cube != nil {
				m.cube.Close()
			}
			return m, tea.Quit

		case "s":
			if !m.recording && m.connected {
				return m, m.startSolve()
			}

		case "e":
			if m.recording {
				return m, m.endSolve()
			}

		case "h":
			if m.cube != nil {
				m.cube.FlashAllLights()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.recording {
			m.elapsed = time.Since(m.startTime)
		}
		return m, m.tickCmd()

	case cubeConnectedMsg:
		m.connected = true
		m.deviceName = msg.name
		if m.stateFile != nil {
			m.stateFile.SetLastDevice(m.device.UUID, m.deviceName)
		}
		if m.cube != nil {
			if batt, err := m.cube.ReadBattery(); err == nil {
				m.battery = batt.Capacity
			}
		}

	case cubeEventMsg:
		ev := msg.ev
		switch {
		case ev.move != nil:
			if m.recording {
				m.moves = append(m.moves, *ev.move)
			}
		case ev.phase != nil:
			m.phase = *ev.phase
		case ev.solved:
			if m.recording {
				m.recording = false
				m.phase = heykube.PhaseSolved
				if m.cube != nil {
					m.cube.PlaySound(1)
					m.cube.FlashAllLights()
				}
			}
		}
		return m, m.listenForEvents()
	}

	return m, nil
}

func (m *recordModel) startSolve() tea.Cmd {
	return func() tea.Msg {
		deviceName := m.deviceName
		deviceID := m.device.UUID

		scramble := heykube.FormatMoves(heykube.Scramble(20))

		solveID, err := m.session.Start("", scramble, deviceName, deviceID, version)
		if err != nil {
			m.err = err
			return nil
		}

		m.solveID = solveID
		m.scramble = scramble
		m.recording = true
		m.startTime = time.Now()
		m.elapsed = 0
		m.moves = nil
		m.phase = heykube.PhaseScrambled

		if m.cube != nil {
			m.cube.ClearHistory()
		}

		return nil
	}
}

func (m *recordModel) endSolve() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.End(); err != nil {
			m.err = err
			return nil
		}
		m.recording = false
		return nil
	}
}

func (m *recordModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("HEYKUBE Solve Recorder"))
	b.WriteString("\n\n")

	if m.connected {
		status := fmt.Sprintf("Connected: %s", m.deviceName)
		if m.battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", m.battery)
		}
		b.WriteString(statusStyle.Render(status))
	} else {
		b.WriteString(errorStyle.Render("Connecting..."))
	}
	b.WriteString("\n\n")

	if m.recording {
		b.WriteString(phaseStyle.Render(fmt.Sprintf("RECORDING: %s", m.formatElapsed())))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Solve ID: %s\n", m.solveID[:8]))
		if m.scramble != "" {
			b.WriteString(fmt.Sprintf("Scramble: %s\n", m.scramble))
		}
		b.WriteString(fmt.Sprintf("Phase: %s\n", phaseStyle.Render(m.phase.DisplayName())))
		b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.moves)))
		b.WriteString("\n")

		if len(m.moves) > 0 {
			b.WriteString("Moves: ")
			start := 0
			if len(m.moves) > 20 {
				start = len(m.moves) - 20
				b.WriteString("... ")
			}
			var notations []string
			for i := start; i < len(m.moves); i++ {
				notations = append(notations, m.moves[i].Notation())
			}
			b.WriteString(moveStyle.Render(strings.Join(notations, " ")))
			b.WriteString("\n")
		}
	} else {
		if m.solveID != "" {
			b.WriteString(fmt.Sprintf("Solve complete: %s\n", m.solveID))
			b.WriteString(fmt.Sprintf("Duration: %s\n", m.formatElapsed()))
			b.WriteString(fmt.Sprintf("Total moves: %d\n", len(m.moves)))
			if m.elapsed.Seconds() > 0 {
				tps := float64(len(m.moves)) / m.elapsed.Seconds()
				b.WriteString(fmt.Sprintf("TPS: %.2f\n", tps))
			}
			b.WriteString("\n")
			b.WriteString("Press 's' to start a new solve\n")
		} else {
			b.WriteString("Ready to record\n")
			b.WriteString("Press 's' to start\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	help := "Keys: s=start  h=flash  q=quit"
	if m.recording {
		help = "Keys: e=end  h=flash  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func (m *recordModel) formatElapsed() string {
	if m.elapsed < time.Minute {
		return fmt.Sprintf("%.1fs", m.elapsed.Seconds())
	}
	mins := int(m.elapsed.Minutes())
	secs := m.elapsed.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

func runRecord(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// Scan before starting the TUI so terminal output stays readable.
	devices, err := scanForCube(5 * time.Second)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("No HEYKUBE devices found.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return nil
	}

	// Prefer the last known device when it shows up in the scan.
	target := devices[0]
	if last := stateFile.LastDeviceID(); last != "" {
		for _, d := range devices {
			if d.UUID == last {
				target = d
				break
			}
		}
	}
	fmt.Printf("Found: %s\n", target.Name)

	if stateFile.HasActiveSolve() {
		fmt.Printf("Resuming active solve: %s\n", stateFile.ActiveSolveID())
	}

	model := newRecordModel(db, stateFile, target)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
