package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mtouzot/heykube"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	return db
}

func TestMigrateUp(t *testing.T) {
	db := testDB(t)

	version, err := db.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if version < 1 {
		t.Errorf("schema version = %d, want at least 1", version)
	}

	// A second run must be a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Errorf("second MigrateUp: %v", err)
	}
}

func TestSolveLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewSolveRepository(db)

	id, err := repo.Create("practice", "R U R' U'", "HEYKUBE-1234", "aa:bb:cc", "0.1.0")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned empty ID")
	}

	s, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s == nil {
		t.Fatal("Get returned nil for existing solve")
	}
	if s.SolveID != id {
		t.Errorf("SolveID = %q, want %q", s.SolveID, id)
	}
	if s.Notes == nil || *s.Notes != "practice" {
		t.Errorf("Notes = %v, want practice", s.Notes)
	}
	if s.ScrambleText == nil || *s.ScrambleText != "R U R' U'" {
		t.Errorf("ScrambleText = %v", s.ScrambleText)
	}
	if s.EndedAt != nil {
		t.Error("new solve should not have an end time")
	}

	if err := repo.End(id, "solved"); err != nil {
		t.Fatalf("End: %v", err)
	}
	s, err = repo.Get(id)
	if err != nil {
		t.Fatalf("Get after End: %v", err)
	}
	if s.EndedAt == nil {
		t.Error("ended solve should have an end time")
	}
	if s.DurationMs == nil || *s.DurationMs < 0 {
		t.Errorf("DurationMs = %v, want non-negative", s.DurationMs)
	}
	if s.FinalPhase == nil || *s.FinalPhase != "solved" {
		t.Errorf("FinalPhase = %v, want solved", s.FinalPhase)
	}
}

func TestSolveNullableFields(t *testing.T) {
	db := testDB(t)
	repo := NewSolveRepository(db)

	id, err := repo.Create("", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Notes != nil || s.ScrambleText != nil || s.DeviceName != nil {
		t.Errorf("empty fields should store as NULL: %+v", s)
	}
}

func TestGetMissingSolve(t *testing.T) {
	db := testDB(t)
	repo := NewSolveRepository(db)

	s, err := repo.Get("no-such-id")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s != nil {
		t.Errorf("Get for missing ID = %+v, want nil", s)
	}

	last, err := repo.GetLast()
	if err != nil {
		t.Fatalf("GetLast: %v", err)
	}
	if last != nil {
		t.Errorf("GetLast on empty DB = %+v, want nil", last)
	}
}

func TestListAndGetLast(t *testing.T) {
	db := testDB(t)
	repo := NewSolveRepository(db)

	// started_at ordering needs distinct second-resolution timestamps,
	// so backdate the first solve.
	first, err := repo.Create("first", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	backdated := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	if _, err := db.Exec("UPDATE solves SET started_at = ? WHERE solve_id = ?", backdated, first); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	second, err := repo.Create("second", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	solves, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(solves) != 2 {
		t.Fatalf("got %d solves, want 2", len(solves))
	}
	if solves[0].SolveID != second || solves[1].SolveID != first {
		t.Errorf("List not newest first: %q then %q", solves[0].SolveID, solves[1].SolveID)
	}

	last, err := repo.GetLast()
	if err != nil {
		t.Fatalf("GetLast: %v", err)
	}
	if last == nil || last.SolveID != second {
		t.Errorf("GetLast = %+v, want solve %q", last, second)
	}

	if solves, err = repo.List(1); err != nil || len(solves) != 1 {
		t.Errorf("List(1) = %d solves, err %v", len(solves), err)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := testDB(t)
	solveRepo := NewSolveRepository(db)
	moveRepo := NewMoveRepository(db)
	eventRepo := NewEventRepository(db)

	id, err := solveRepo.Create("", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	moves, err := heykube.ParseMoves("R U")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	for i, m := range moves {
		if _, err := moveRepo.Create(id, i, int64(i)*100, m); err != nil {
			t.Fatalf("Create move: %v", err)
		}
	}
	if _, err := eventRepo.Create(id, 0, "solved", "{}", nil); err != nil {
		t.Fatalf("Create event: %v", err)
	}

	if err := solveRepo.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	count, err := solveRepo.GetMoveCount(id)
	if err != nil {
		t.Fatalf("GetMoveCount: %v", err)
	}
	if count != 0 {
		t.Errorf("moves survived solve deletion: %d", count)
	}
	if n, err := eventRepo.Count(id); err != nil || n != 0 {
		t.Errorf("events survived solve deletion: %d, err %v", n, err)
	}
}

func TestMoveRoundtrip(t *testing.T) {
	db := testDB(t)
	solveRepo := NewSolveRepository(db)
	moveRepo := NewMoveRepository(db)

	id, err := solveRepo.Create("", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	parsed, err := heykube.ParseMoves("R U' F")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	for i, m := range parsed {
		if _, err := moveRepo.Create(id, i, int64(i)*250, m); err != nil {
			t.Fatalf("Create move %d: %v", i, err)
		}
	}

	records, err := moveRepo.GetBySolve(id)
	if err != nil {
		t.Fatalf("GetBySolve: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, rec := range records {
		if rec.MoveIndex != i {
			t.Errorf("record %d has MoveIndex %d", i, rec.MoveIndex)
		}
		if rec.TsMs != int64(i)*250 {
			t.Errorf("record %d has TsMs %d, want %d", i, rec.TsMs, int64(i)*250)
		}
		m, err := rec.Move()
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if m.Notation() != parsed[i].Notation() {
			t.Errorf("record %d decodes to %q, want %q", i, m.Notation(), parsed[i].Notation())
		}
	}

	notation, err := moveRepo.Notation(id)
	if err != nil {
		t.Fatalf("Notation: %v", err)
	}
	if notation != "R U' F" {
		t.Errorf("Notation = %q, want R U' F", notation)
	}

	count, err := solveRepo.GetMoveCount(id)
	if err != nil {
		t.Fatalf("GetMoveCount: %v", err)
	}
	if count != 3 {
		t.Errorf("GetMoveCount = %d, want 3", count)
	}
}

func TestCreateBatch(t *testing.T) {
	db := testDB(t)
	solveRepo := NewSolveRepository(db)
	moveRepo := NewMoveRepository(db)

	id, err := solveRepo.Create("", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	moves, err := heykube.ParseMoves("L D L' D'")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	base := time.Now()
	for i := range moves {
		moves[i].Time = base.Add(time.Duration(i) * 300 * time.Millisecond)
	}

	if err := moveRepo.CreateBatch(id, moves, 5); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	records, err := moveRepo.GetBySolve(id)
	if err != nil {
		t.Fatalf("GetBySolve: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].MoveIndex != 5 || records[3].MoveIndex != 8 {
		t.Errorf("batch indices %d..%d, want 5..8", records[0].MoveIndex, records[3].MoveIndex)
	}
	if records[1].TsMs-records[0].TsMs != 300 {
		t.Errorf("timestamps %d then %d, want 300ms apart", records[0].TsMs, records[1].TsMs)
	}
}

func TestEventRepository(t *testing.T) {
	db := testDB(t)
	solveRepo := NewSolveRepository(db)
	eventRepo := NewEventRepository(db)

	id, err := solveRepo.Create("", "", "", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw := "0302aa"
	if _, err := eventRepo.Create(id, 100, "phase_change", `{"phase":"bottom_cross","num_correct":0}`, nil); err != nil {
		t.Fatalf("Create event: %v", err)
	}
	if _, err := eventRepo.Create(id, 200, "phase_change", `{"phase":"solved","num_correct":0}`, nil); err != nil {
		t.Fatalf("Create event: %v", err)
	}
	if _, err := eventRepo.Create(id, 300, "solved", "{}", &raw); err != nil {
		t.Fatalf("Create event: %v", err)
	}

	events, err := eventRepo.GetBySolve(id)
	if err != nil {
		t.Fatalf("GetBySolve: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].TsMs != 100 || events[2].TsMs != 300 {
		t.Errorf("events not in time order: %d..%d", events[0].TsMs, events[2].TsMs)
	}
	if events[2].RawPayloadHex == nil || *events[2].RawPayloadHex != raw {
		t.Errorf("RawPayloadHex = %v, want %q", events[2].RawPayloadHex, raw)
	}

	phases, err := eventRepo.GetByType(id, "phase_change")
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if len(phases) != 2 {
		t.Errorf("got %d phase events, want 2", len(phases))
	}

	count, err := eventRepo.Count(id)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}
}
