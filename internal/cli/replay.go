package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube"
	"github.com/mtouzot/heykube/internal/storage"
)

var (
	replaySpeed float64
	replayStep  bool
	replayLast  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [solve-id]",
	Short: "Replay a recorded solve",
	Long: `Replay a recorded solve move by move on a simulated cube. Useful
for reviewing a solve or debugging phase detection without the
physical cube.

Usage:
  heykube replay --last
  heykube replay <solve-id>
  heykube replay <solve-id> --speed 2.0
  heykube replay <solve-id> --step`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through moves manually")
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent solve")
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)

	var solveID string
	if replayLast {
		solve, err := solveRepo.GetLast()
		if err != nil {
			return fmt.Errorf("failed to get last solve: %w", err)
		}
		if solve == nil {
			return fmt.Errorf("no solves found")
		}
		solveID = solve.SolveID
	} else if len(args) > 0 {
		solveID = args[0]
	} else {
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	moveRepo := storage.NewMoveRepository(db)
	records, err := moveRepo.GetBySolve(solveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no moves found for solve %s", solveID)
	}

	solve, err := solveRepo.Get(solveID)
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}

	// Start from the scrambled position: a recorded solve ends solved,
	// so undoing the moves from a solved cube recovers the start state.
	moves := make([]heykube.Move, 0, len(records))
	for _, r := range records {
		mv, err := r.Move()
		if err != nil {
			return err
		}
		mv.Time = time.UnixMilli(r.TsMs)
		moves = append(moves, mv)
	}

	start := heykube.NewCube()
	start.Apply(heykube.ReverseMoves(moves)...)

	model := newReplayModel(solveID, solve, start, moves, replaySpeed, replayStep)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

type replayTickMsg struct{}

type replayModel struct {
	solveID string
	solve   *storage.Solve
	cube    *heykube.Cube
	moves   []heykube.Move
	index   int
	speed   float64
	step    bool
	playing bool
	quit    bool
}

func newReplayModel(solveID string, solve *storage.Solve, start *heykube.Cube, moves []heykube.Move, speed float64, step bool) *replayModel {
	return &replayModel{
		solveID: solveID,
		solve:   solve,
		cube:    start,
		moves:   moves,
		speed:   speed,
		step:    step,
		playing: !step,
	}
}

func (m *replayModel) Init() tea.Cmd {
	if m.playing {
		return m.nextTick()
	}
	return nil
}

// nextTick waits the recorded gap to the next move, scaled by speed.
func (m *replayModel) nextTick() tea.Cmd {
	delay := 200 * time.Millisecond
	if m.index > 0 && m.index < len(m.moves) {
		gap := m.moves[m.index].Time.Sub(m.moves[m.index-1].Time)
		if gap > 0 {
			delay = gap
		}
	}
	if m.speed > 0 {
		delay = time.Duration(float64(delay) / m.speed)
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replayTickMsg{}
	})
}

func (m *replayModel) advance() {
	if m.index >= len(m.moves) {
		return
	}
	m.cube.Apply(m.moves[m.index])
	m.index++
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case " ", "n", "right":
			m.advance()
			if m.playing && m.index < len(m.moves) {
				return m, m.nextTick()
			}
		case "p":
			m.playing = !m.playing
			if m.playing {
				return m, m.nextTick()
			}
		}

	case replayTickMsg:
		if m.playing {
			m.advance()
			if m.index < len(m.moves) {
				return m, m.nextTick()
			}
			m.playing = false
		}
	}
	return m, nil
}

func (m *replayModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Solve Replay"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Solve: %s\n", m.solveID))
	if m.solve != nil {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Started: %s", m.solve.StartedAt.Format("2006-01-02 15:04:05"))))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Move %d/%d", m.index, len(m.moves)))
	if m.index > 0 {
		b.WriteString(moveStyle.Render(fmt.Sprintf("  last: %s", m.moves[m.index-1].Notation())))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Phase: %s\n", phaseStyle.Render(m.cube.Phase().DisplayName())))
	b.WriteString("\n")
	b.WriteString(m.cube.String())
	b.WriteString("\n")

	if m.index >= len(m.moves) {
		b.WriteString(phaseStyle.Render("Replay complete"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Keys: space=step  p=play/pause  q=quit"))
	b.WriteString("\n")

	return b.String()
}
