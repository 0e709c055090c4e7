// Package analysis computes statistics over recorded solves.
package analysis

import (
	"github.com/mtouzot/heykube/internal/storage"
)

// SolveSummary contains comprehensive statistics for a single solve.
type SolveSummary struct {
	SolveID            string       `json:"solve_id"`
	StartedAt          string       `json:"started_at"`
	EndedAt            string       `json:"ended_at,omitempty"`
	DurationMs         int64        `json:"duration_ms"`
	TotalMoves         int          `json:"total_moves"`
	TPSOverall         float64      `json:"tps_overall"`
	PhaseStats         []PhaseStats `json:"phase_stats,omitempty"`
	LongestPauseMs     int64        `json:"longest_pause_ms"`
	PauseCountOver1500 int          `json:"pause_count_over_1500ms"`
	AvgMoveDurationMs  float64      `json:"avg_move_duration_ms"`
	FinalPhase         string       `json:"final_phase,omitempty"`
	Notes              string       `json:"notes,omitempty"`
}

// PhaseStats contains statistics for a single solving phase.
type PhaseStats struct {
	Phase      string  `json:"phase"`
	StartTsMs  int64   `json:"start_ts_ms"`
	EndTsMs    int64   `json:"end_ts_ms"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

// PauseInfo represents a pause during solving.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// AnalyzePauses finds all significant pauses in a move sequence.
func AnalyzePauses(moves []storage.MoveRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second for a move sequence.
func CalculateTPS(moveCount int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moveCount) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []storage.MoveRecord) float64 {
	if len(moves) < 2 {
		return 0
	}

	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest pause in a move sequence.
func FindLongestPause(moves []storage.MoveRecord) int64 {
	var longest int64

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts pauses over a threshold.
func CountPausesOver(moves []storage.MoveRecord, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// MovementProfile analyzes the movement patterns in a solve.
type MovementProfile struct {
	FaceCounts    map[string]int `json:"face_counts"`
	PrimeCount    int            `json:"prime_count"`
	RotationCount int            `json:"rotation_count"`
	MostUsedFace  string         `json:"most_used_face"`
	FaceSequences map[string]int `json:"face_sequences"` // e.g. "RU" -> count
}

// AnalyzeMovementProfile analyzes which faces and turn directions are
// most used.
func AnalyzeMovementProfile(moves []storage.MoveRecord) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[string]int),
		FaceSequences: make(map[string]int),
	}

	for i, m := range moves {
		profile.FaceCounts[m.Face]++
		if m.Prime {
			profile.PrimeCount++
		}
		if m.Rotation {
			profile.RotationCount++
		}

		if i > 0 {
			profile.FaceSequences[moves[i-1].Face+m.Face]++
		}
	}

	maxFaceCount := 0
	for face, count := range profile.FaceCounts {
		if count > maxFaceCount {
			maxFaceCount = count
			profile.MostUsedFace = face
		}
	}

	return profile
}
