package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/mtouzot/heykube"
	"github.com/mtouzot/heykube/internal/storage"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session manages a solve recording session. Wire HandleMove,
// HandlePhase, and HandleSolved into the cube's callbacks to
// capture a solve as it happens.
type Session struct {
	db        *storage.DB
	stateFile *StateFile

	mu        sync.RWMutex
	state     SessionState
	solveID   string
	startTime time.Time
	moveIndex int
	lastPhase heykube.Phase

	solveRepo *storage.SolveRepository
	eventRepo *storage.EventRepository
	moveRepo  *storage.MoveRepository

	onMove  func(heykube.Move)
	onPhase func(heykube.Phase)
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		db:        db,
		stateFile: stateFile,
		state:     StateIdle,
		lastPhase: heykube.PhaseScrambled,
		solveRepo: storage.NewSolveRepository(db),
		eventRepo: storage.NewEventRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
	}
}

// SetMoveCallback sets the callback for recorded moves.
func (s *Session) SetMoveCallback(cb func(heykube.Move)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = cb
}

// SetPhaseCallback sets the callback for phase changes.
func (s *Session) SetPhaseCallback(cb func(heykube.Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPhase = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SolveID returns the current solve ID.
func (s *Session) SolveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solveID
}

// ElapsedMs returns the elapsed time since solve start in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// MoveCount returns the current move count.
func (s *Session) MoveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moveIndex
}

// Phase returns the last observed solving phase.
func (s *Session) Phase() heykube.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPhase
}

// Start starts a new solve recording session.
func (s *Session) Start(notes, scramble, deviceName, deviceID, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("solve already in progress")
	}

	solveID, err := s.solveRepo.Create(notes, scramble, deviceName, deviceID, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	s.solveID = solveID
	s.startTime = time.Now()
	s.moveIndex = 0
	s.lastPhase = heykube.PhaseScrambled
	s.state = StateRecording

	if s.stateFile != nil {
		_ = s.stateFile.SetActiveSolve(solveID)
	}

	return solveID, nil
}

// End ends the current solve recording session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endLocked()
}

func (s *Session) endLocked() error {
	if s.state != StateRecording {
		return fmt.Errorf("no solve in progress")
	}

	if err := s.solveRepo.End(s.solveID, s.lastPhase.String()); err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		_ = s.stateFile.ClearActiveSolve()
	}

	return nil
}

// HandleMove records a single cube move. Safe to pass directly to
// HEYKUBE.OnMove.
func (s *Session) HandleMove(move heykube.Move) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if !move.Time.IsZero() {
		tsMs = move.Time.Sub(s.startTime).Milliseconds()
	}
	if tsMs < 0 {
		tsMs = 0
	}

	_, err := s.moveRepo.Create(s.solveID, s.moveIndex, tsMs, move)
	if err == nil {
		s.moveIndex++
	}
	cb := s.onMove
	s.mu.Unlock()

	if err == nil && cb != nil {
		cb(move)
	}
}

// HandlePhase records a solving phase transition. Safe to pass directly
// to HEYKUBE.OnPhaseChange.
func (s *Session) HandlePhase(phase heykube.Phase, numCorrect int) {
	s.mu.Lock()
	if s.state != StateRecording || phase == s.lastPhase {
		s.mu.Unlock()
		return
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	payload := fmt.Sprintf(`{"phase":%q,"num_correct":%d}`, phase.String(), numCorrect)
	_, _ = s.eventRepo.Create(s.solveID, tsMs, "phase_change", payload, nil)
	s.lastPhase = phase
	cb := s.onPhase
	s.mu.Unlock()

	if cb != nil {
		cb(phase)
	}
}

// HandleSolved records the solved event and ends the session. Safe to
// pass directly to HEYKUBE.OnSolved.
func (s *Session) HandleSolved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	_, _ = s.eventRepo.Create(s.solveID, tsMs, "solved", `{}`, nil)
	s.lastPhase = heykube.PhaseSolved
	_ = s.endLocked()
}

// RecordEvent stores an arbitrary cube event against the current solve.
func (s *Session) RecordEvent(eventType, payloadJSON string, rawHex *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no solve in progress")
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	_, err := s.eventRepo.Create(s.solveID, tsMs, eventType, payloadJSON, rawHex)
	return err
}

// Resume attempts to resume an interrupted solve.
func (s *Session) Resume(solveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	solve, err := s.solveRepo.Get(solveID)
	if err != nil {
		return fmt.Errorf("failed to get solve: %w", err)
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", solveID)
	}
	if solve.EndedAt != nil {
		return fmt.Errorf("solve already ended")
	}

	count, err := s.solveRepo.GetMoveCount(solveID)
	if err != nil {
		return fmt.Errorf("failed to get move count: %w", err)
	}

	s.solveID = solveID
	s.startTime = solve.StartedAt
	s.moveIndex = count
	s.lastPhase = heykube.PhaseScrambled
	s.state = StateRecording

	return nil
}
