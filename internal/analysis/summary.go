package analysis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mtouzot/heykube/internal/storage"
)

// Summarize computes full statistics for a recorded solve.
func Summarize(db *storage.DB, solveID string) (*SolveSummary, error) {
	solveRepo := storage.NewSolveRepository(db)
	moveRepo := storage.NewMoveRepository(db)
	eventRepo := storage.NewEventRepository(db)

	solve, err := solveRepo.Get(solveID)
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, fmt.Errorf("solve not found: %s", solveID)
	}

	moves, err := moveRepo.GetBySolve(solveID)
	if err != nil {
		return nil, err
	}

	summary := &SolveSummary{
		SolveID:            solve.SolveID,
		StartedAt:          solve.StartedAt.Format(time.RFC3339),
		TotalMoves:         len(moves),
		LongestPauseMs:     FindLongestPause(moves),
		PauseCountOver1500: CountPausesOver(moves, 1500),
		AvgMoveDurationMs:  CalculateAvgMoveDuration(moves),
	}
	if solve.EndedAt != nil {
		summary.EndedAt = solve.EndedAt.Format(time.RFC3339)
	}
	if solve.DurationMs != nil {
		summary.DurationMs = *solve.DurationMs
		summary.TPSOverall = CalculateTPS(len(moves), *solve.DurationMs)
	}
	if solve.FinalPhase != nil {
		summary.FinalPhase = *solve.FinalPhase
	}
	if solve.Notes != nil {
		summary.Notes = *solve.Notes
	}

	phases, err := phaseMarks(eventRepo, solveID)
	if err != nil {
		return nil, err
	}
	summary.PhaseStats = phaseStats(phases, moves, summary.DurationMs)

	return summary, nil
}

type phaseMark struct {
	Phase string
	TsMs  int64
}

func phaseMarks(eventRepo *storage.EventRepository, solveID string) ([]phaseMark, error) {
	events, err := eventRepo.GetByType(solveID, "phase_change")
	if err != nil {
		return nil, err
	}

	var marks []phaseMark
	for _, ev := range events {
		var payload struct {
			Phase string `json:"phase"`
		}
		if err := json.Unmarshal([]byte(ev.PayloadJSON), &payload); err != nil {
			continue
		}
		marks = append(marks, phaseMark{Phase: payload.Phase, TsMs: ev.TsMs})
	}
	return marks, nil
}

// phaseStats segments the move list by phase transition timestamps.
func phaseStats(marks []phaseMark, moves []storage.MoveRecord, endMs int64) []PhaseStats {
	if len(marks) == 0 {
		return nil
	}

	var stats []PhaseStats
	for i, mark := range marks {
		end := endMs
		if i+1 < len(marks) {
			end = marks[i+1].TsMs
		}
		if end < mark.TsMs {
			end = mark.TsMs
		}

		count := 0
		for _, m := range moves {
			if m.TsMs >= mark.TsMs && (m.TsMs < end || (i+1 == len(marks) && m.TsMs <= end)) {
				count++
			}
		}

		stats = append(stats, PhaseStats{
			Phase:      mark.Phase,
			StartTsMs:  mark.TsMs,
			EndTsMs:    end,
			DurationMs: end - mark.TsMs,
			MoveCount:  count,
			TPS:        CalculateTPS(count, end-mark.TsMs),
		})
	}
	return stats
}
