package analysis

import (
	"testing"

	"github.com/mtouzot/heykube/internal/storage"
)

func mkMoves(faces []string, tsMs []int64) []storage.MoveRecord {
	moves := make([]storage.MoveRecord, len(faces))
	for i := range faces {
		moves[i] = storage.MoveRecord{
			MoveIndex: i,
			Face:      faces[i],
			Notation:  faces[i],
			TsMs:      tsMs[i],
		}
	}
	return moves
}

func TestAnalyzePauses(t *testing.T) {
	moves := mkMoves(
		[]string{"R", "U", "R", "U"},
		[]int64{0, 200, 2200, 2400},
	)

	pauses := AnalyzePauses(moves, 1500)
	if len(pauses) != 1 {
		t.Fatalf("got %d pauses, want 1", len(pauses))
	}
	if pauses[0].AfterMoveIndex != 1 {
		t.Errorf("AfterMoveIndex = %d, want 1", pauses[0].AfterMoveIndex)
	}
	if pauses[0].DurationMs != 2000 {
		t.Errorf("DurationMs = %d, want 2000", pauses[0].DurationMs)
	}
	if pauses[0].TsMs != 200 {
		t.Errorf("TsMs = %d, want 200", pauses[0].TsMs)
	}
}

func TestAnalyzePausesNone(t *testing.T) {
	moves := mkMoves([]string{"R", "U"}, []int64{0, 100})
	if pauses := AnalyzePauses(moves, 1500); len(pauses) != 0 {
		t.Errorf("got %d pauses, want 0", len(pauses))
	}
	if pauses := AnalyzePauses(nil, 1500); len(pauses) != 0 {
		t.Errorf("empty input gave %d pauses", len(pauses))
	}
}

func TestCalculateTPS(t *testing.T) {
	if tps := CalculateTPS(30, 10000); tps != 3.0 {
		t.Errorf("TPS = %v, want 3.0", tps)
	}
	if tps := CalculateTPS(10, 0); tps != 0 {
		t.Errorf("zero duration TPS = %v, want 0", tps)
	}
	if tps := CalculateTPS(0, 5000); tps != 0 {
		t.Errorf("zero moves TPS = %v, want 0", tps)
	}
}

func TestCalculateAvgMoveDuration(t *testing.T) {
	moves := mkMoves([]string{"R", "U", "F"}, []int64{0, 300, 900})
	if avg := CalculateAvgMoveDuration(moves); avg != 450 {
		t.Errorf("avg = %v, want 450", avg)
	}
	if avg := CalculateAvgMoveDuration(moves[:1]); avg != 0 {
		t.Errorf("single move avg = %v, want 0", avg)
	}
}

func TestFindLongestPause(t *testing.T) {
	moves := mkMoves(
		[]string{"R", "U", "F", "D"},
		[]int64{0, 500, 3000, 3100},
	)
	if got := FindLongestPause(moves); got != 2500 {
		t.Errorf("longest pause = %d, want 2500", got)
	}
	if got := FindLongestPause(nil); got != 0 {
		t.Errorf("empty input = %d, want 0", got)
	}
}

func TestCountPausesOver(t *testing.T) {
	moves := mkMoves(
		[]string{"R", "U", "F", "D"},
		[]int64{0, 2000, 2100, 4200},
	)
	if got := CountPausesOver(moves, 1500); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if got := CountPausesOver(moves, 5000); got != 0 {
		t.Errorf("count over 5s = %d, want 0", got)
	}
}

func TestAnalyzeMovementProfile(t *testing.T) {
	moves := []storage.MoveRecord{
		{Face: "R", Notation: "R"},
		{Face: "U", Notation: "U'", Prime: true},
		{Face: "R", Notation: "R"},
		{Face: "x", Notation: "x", Rotation: true},
	}

	profile := AnalyzeMovementProfile(moves)
	if profile.FaceCounts["R"] != 2 || profile.FaceCounts["U"] != 1 {
		t.Errorf("FaceCounts = %v", profile.FaceCounts)
	}
	if profile.PrimeCount != 1 {
		t.Errorf("PrimeCount = %d, want 1", profile.PrimeCount)
	}
	if profile.RotationCount != 1 {
		t.Errorf("RotationCount = %d, want 1", profile.RotationCount)
	}
	if profile.MostUsedFace != "R" {
		t.Errorf("MostUsedFace = %q, want R", profile.MostUsedFace)
	}
	if profile.FaceSequences["RU"] != 1 || profile.FaceSequences["UR"] != 1 {
		t.Errorf("FaceSequences = %v", profile.FaceSequences)
	}
}

func TestPhaseStatsSegmentation(t *testing.T) {
	marks := []phaseMark{
		{Phase: "bottom_cross", TsMs: 0},
		{Phase: "bottom_layer", TsMs: 1000},
	}
	moves := mkMoves(
		[]string{"R", "U", "F", "D"},
		[]int64{100, 900, 1000, 2000},
	)

	stats := phaseStats(marks, moves, 2000)
	if len(stats) != 2 {
		t.Fatalf("got %d phases, want 2", len(stats))
	}

	if stats[0].MoveCount != 2 {
		t.Errorf("first phase moves = %d, want 2", stats[0].MoveCount)
	}
	if stats[0].DurationMs != 1000 {
		t.Errorf("first phase duration = %d, want 1000", stats[0].DurationMs)
	}
	// The last segment includes the move at its end timestamp.
	if stats[1].MoveCount != 2 {
		t.Errorf("last phase moves = %d, want 2", stats[1].MoveCount)
	}
	if stats[1].TPS != 2.0 {
		t.Errorf("last phase TPS = %v, want 2.0", stats[1].TPS)
	}

	if stats = phaseStats(nil, moves, 2000); stats != nil {
		t.Errorf("no marks should give nil stats, got %v", stats)
	}
}
