package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtouzot/heykube/internal/analysis"
	"github.com/mtouzot/heykube/internal/recorder"
	"github.com/mtouzot/heykube/internal/storage"
)

var (
	listLimit int
	showLast  bool
	statsLast bool
	statsJSON bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Manage recorded solves",
	Long:  `Commands for listing, inspecting, and finishing HEYKUBE solve recordings.`,
}

var solveEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the current solve recording",
	Long:  `End the active solve recording session and store its final statistics.`,
	RunE:  runSolveEnd,
}

var solveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Long:  `Display a list of recent solve recordings with basic statistics.`,
	RunE:  runSolveList,
}

var solveStatsCmd = &cobra.Command{
	Use:   "stats [solve-id]",
	Short: "Show solve statistics",
	Long: `Compute and display statistics for a solve: overall and per-phase
turns per second, pauses, and movement profile.

Use --last for the most recent solve, --json for machine-readable output.`,
	RunE: runSolveStats,
}

var solveShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a specific solve including
metadata, phase transitions, and the full move sequence.

Use --last to show the most recent solve.`,
	RunE: runSolveShow,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.AddCommand(solveEndCmd)

	solveCmd.AddCommand(solveListCmd)
	solveListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")

	solveCmd.AddCommand(solveShowCmd)
	solveShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")

	solveCmd.AddCommand(solveStatsCmd)
	solveStatsCmd.Flags().BoolVar(&statsLast, "last", false, "Use the most recent solve")
	solveStatsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runSolveStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)

	var solveID string
	if statsLast {
		solve, err := solveRepo.GetLast()
		if err != nil {
			return fmt.Errorf("failed to get latest solve: %w", err)
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

	summary, err := analysis.Summarize(db, solveID)
	if err != nil {
		return err
	}

	if statsJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("Solve Statistics")
	fmt.Println("================")
	fmt.Println()
	fmt.Printf("ID:       %s\n", summary.SolveID)
	fmt.Printf("Started:  %s\n", summary.StartedAt)
	fmt.Printf("Moves:    %d\n", summary.TotalMoves)
	if summary.DurationMs > 0 {
		fmt.Printf("Duration: %s\n", formatDuration(time.Duration(summary.DurationMs)*time.Millisecond))
		fmt.Printf("TPS:      %.2f\n", summary.TPSOverall)
	}
	if summary.LongestPauseMs > 0 {
		fmt.Printf("Longest pause: %s\n", formatDuration(time.Duration(summary.LongestPauseMs)*time.Millisecond))
		fmt.Printf("Pauses > 1.5s: %d\n", summary.PauseCountOver1500)
	}
	if summary.FinalPhase != "" {
		fmt.Printf("Final phase: %s\n", summary.FinalPhase)
	}
	fmt.Println()

	if len(summary.PhaseStats) > 0 {
		fmt.Println("Phases")
		fmt.Println("------")
		fmt.Printf("%-18s  %-10s  %-6s  %s\n", "Phase", "Duration", "Moves", "TPS")
		for _, p := range summary.PhaseStats {
			fmt.Printf("%-18s  %-10s  %-6d  %.2f\n",
				p.Phase,
				formatDuration(time.Duration(p.DurationMs)*time.Millisecond),
				p.MoveCount,
				p.TPS,
			)
		}
		fmt.Println()
	}

	moveRepo := storage.NewMoveRepository(db)
	moves, err := moveRepo.GetBySolve(solveID)
	if err == nil && len(moves) > 0 {
		profile := analysis.AnalyzeMovementProfile(moves)
		fmt.Println("Movement")
		fmt.Println("--------")
		fmt.Printf("Most used face: %s (%d turns)\n", profile.MostUsedFace, profile.FaceCounts[profile.MostUsedFace])
		fmt.Printf("Prime turns:    %d\n", profile.PrimeCount)
		if profile.RotationCount > 0 {
			fmt.Printf("Rotations:      %d\n", profile.RotationCount)
		}
	}

	return nil
}

func runSolveEnd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	if !stateFile.HasActiveSolve() {
		return fmt.Errorf("no active solve in progress")
	}

	solveID := stateFile.ActiveSolveID()

	session := recorder.NewSession(db, stateFile)
	if err := session.Resume(solveID); err != nil {
		return fmt.Errorf("failed to resume solve: %w", err)
	}
	if err := session.End(); err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	solveRepo := storage.NewSolveRepository(db)
	solve, err := solveRepo.Get(solveID)
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}

	moveCount, _ := solveRepo.GetMoveCount(solveID)

	fmt.Printf("Solve ended: %s\n", solveID)
	fmt.Println()
	if solve != nil && solve.DurationMs != nil {
		duration := time.Duration(*solve.DurationMs) * time.Millisecond
		fmt.Printf("Duration: %s\n", formatDuration(duration))
		fmt.Printf("Moves: %d\n", moveCount)
		if *solve.DurationMs > 0 {
			tps := float64(moveCount) / (float64(*solve.DurationMs) / 1000.0)
			fmt.Printf("TPS: %.2f\n", tps)
		}
	}

	return nil
}

func runSolveList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solves, err := solveRepo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Record one with: heykube record")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-10s  %-6s  %-6s  %s\n", "ID", "Started", "Duration", "Moves", "TPS", "Notes")
	fmt.Println("------------------------------------  --------------------  ----------  ------  ------  -----")

	for _, s := range solves {
		duration := "-"
		moves := "-"
		tps := "-"

		if s.DurationMs != nil {
			d := time.Duration(*s.DurationMs) * time.Millisecond
			duration = formatDuration(d)
		}

		moveCount, _ := solveRepo.GetMoveCount(s.SolveID)
		if moveCount > 0 {
			moves = fmt.Sprintf("%d", moveCount)
			if s.DurationMs != nil && *s.DurationMs > 0 {
				tps = fmt.Sprintf("%.2f", float64(moveCount)/(float64(*s.DurationMs)/1000.0))
			}
		}

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		status := ""
		if s.EndedAt == nil {
			status = " (active)"
		}

		fmt.Printf("%-36s  %-20s  %-10s  %-6s  %-6s  %s%s\n",
			s.SolveID,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			duration,
			moves,
			tps,
			notes,
			status,
		)
	}

	return nil
}

func runSolveShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	moveRepo := storage.NewMoveRepository(db)
	eventRepo := storage.NewEventRepository(db)

	var solveID string
	if showLast {
		solves, err := solveRepo.List(1)
		if err != nil {
			return fmt.Errorf("failed to get latest solve: %w", err)
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	} else if len(args) > 0 {
		solveID = args[0]
	} else {
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	solve, err := solveRepo.Get(solveID)
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", solveID)
	}

	moves, err := moveRepo.GetBySolve(solveID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}

	phaseEvents, err := eventRepo.GetByType(solveID, "phase_change")
	if err != nil {
		return fmt.Errorf("failed to get phases: %w", err)
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()

	fmt.Printf("ID:      %s\n", solve.SolveID)
	fmt.Printf("Started: %s\n", solve.StartedAt.Format("2006-01-02 15:04:05"))
	if solve.EndedAt != nil {
		fmt.Printf("Ended:   %s\n", solve.EndedAt.Format("2006-01-02 15:04:05"))
	}
	if solve.ScrambleText != nil && *solve.ScrambleText != "" {
		fmt.Printf("Scramble: %s\n", *solve.ScrambleText)
	}
	if solve.FinalPhase != nil && *solve.FinalPhase != "" {
		fmt.Printf("Final phase: %s\n", *solve.FinalPhase)
	}
	if solve.Notes != nil && *solve.Notes != "" {
		fmt.Printf("Notes:   %s\n", *solve.Notes)
	}
	fmt.Println()

	fmt.Println("Statistics")
	fmt.Println("----------")
	fmt.Printf("Moves: %d\n", len(moves))
	if solve.DurationMs != nil {
		duration := time.Duration(*solve.DurationMs) * time.Millisecond
		fmt.Printf("Duration: %s\n", formatDuration(duration))
		if *solve.DurationMs > 0 && len(moves) > 0 {
			tps := float64(len(moves)) / (float64(*solve.DurationMs) / 1000.0)
			fmt.Printf("TPS: %.2f\n", tps)
		}
	}
	fmt.Println()

	if len(phaseEvents) > 0 {
		fmt.Println("Phases")
		fmt.Println("------")
		for _, ev := range phaseEvents {
			ts := time.Duration(ev.TsMs) * time.Millisecond
			fmt.Printf("  %-10s %s\n", formatDuration(ts), ev.PayloadJSON)
		}
		fmt.Println()
	}

	if len(moves) > 0 {
		fmt.Println("Moves")
		fmt.Println("-----")

		var line string
		for i, m := range moves {
			if len(line)+len(m.Notation)+1 > 60 {
				fmt.Println(line)
				line = m.Notation
			} else if line == "" {
				line = m.Notation
			} else {
				line += " " + m.Notation
			}

			if i == len(moves)-1 && line != "" {
				fmt.Println(line)
			}
		}
	}

	return nil
}

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
