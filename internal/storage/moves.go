package storage

import (
	"database/sql"
	"fmt"

	"github.com/mtouzot/heykube"
)

// MoveRecord represents a recorded move in the database.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	MoveIndex int
	TsMs      int64
	Notation  string
	Face      string
	Prime     bool
	Rotation  bool
}

// Move converts the record back to a heykube move.
func (m MoveRecord) Move() (heykube.Move, error) {
	moves, err := heykube.ParseMoves(m.Notation)
	if err != nil || len(moves) != 1 {
		return heykube.Move{}, fmt.Errorf("invalid stored notation %q", m.Notation)
	}
	return moves[0], nil
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(solveID string, moveIndex int, tsMs int64, move heykube.Move) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO moves (solve_id, move_index, ts_ms, notation, face, prime, rotation)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, solveID, moveIndex, tsMs, move.Notation(), move.Face.String(), move.Prime, move.Rotation)

	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves in a single transaction.
func (r *MoveRepository) CreateBatch(solveID string, moves []heykube.Move, startIndex int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, move := range moves {
			tsMs := move.Time.UnixMilli()
			_, err := tx.Exec(`
				INSERT INTO moves (solve_id, move_index, ts_ms, notation, face, prime, rotation)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, solveID, startIndex+i, tsMs, move.Notation(), move.Face.String(), move.Prime, move.Rotation)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all moves for a solve in order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, move_index, ts_ms, notation, face, prime, rotation
		FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SolveID, &m.MoveIndex, &m.TsMs,
			&m.Notation, &m.Face, &m.Prime, &m.Rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Notation returns the full solve as space-separated notation.
func (r *MoveRepository) Notation(solveID string) (string, error) {
	records, err := r.GetBySolve(solveID)
	if err != nil {
		return "", err
	}
	moves := make([]heykube.Move, 0, len(records))
	for _, rec := range records {
		m, err := rec.Move()
		if err != nil {
			return "", err
		}
		moves = append(moves, m)
	}
	return heykube.FormatMoves(moves), nil
}
