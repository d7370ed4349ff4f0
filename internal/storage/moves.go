package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/trichess"
)

// MoveRow represents a stored move.
type MoveRow struct {
	MoveID        int64
	GameID        string
	MoveIndex     int
	TsMs          int64
	Record        trichess.MoveRecord
	Notation      string
	SourceEventID *int64
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	q querier
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{q: db}
}

// Create stores a completed move and returns its ID.
func (r *MoveRepository) Create(gameID string, moveIndex int, tsMs int64, rec trichess.MoveRecord, sourceEventID *int64) (int64, error) {
	result, err := r.q.Exec(`
		INSERT INTO moves (
			game_id, move_index, ts_ms, turn, player, kind, piece_id,
			from_a, from_b, from_c, to_a, to_b, to_c, notation, source_event_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, gameID, moveIndex, tsMs, rec.Turn, rec.Player.String(), rec.Kind.String(), rec.PieceID,
		rec.From.A, rec.From.B, rec.From.C, rec.To.A, rec.To.B, rec.To.C,
		rec.Notation(), sourceEventID)
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// GetByGame retrieves all moves of a game in order.
func (r *MoveRepository) GetByGame(gameID string) ([]MoveRow, error) {
	rows, err := r.q.Query(`
		SELECT move_id, game_id, move_index, ts_ms, turn, player, kind, piece_id,
			from_a, from_b, from_c, to_a, to_b, to_c, notation, source_event_id
		FROM moves
		WHERE game_id = ?
		ORDER BY move_index
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRow
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

func scanMove(rows *sql.Rows) (MoveRow, error) {
	var (
		m            MoveRow
		player, kind string
		from, to     [3]int
	)

	err := rows.Scan(
		&m.MoveID, &m.GameID, &m.MoveIndex, &m.TsMs, &m.Record.Turn, &player, &kind, &m.Record.PieceID,
		&from[0], &from[1], &from[2], &to[0], &to[1], &to[2], &m.Notation, &m.SourceEventID,
	)
	if err != nil {
		return MoveRow{}, fmt.Errorf("failed to scan move: %w", err)
	}

	if m.Record.Player, err = trichess.ParsePlayer(player); err != nil {
		return MoveRow{}, fmt.Errorf("move %d: %w", m.MoveID, err)
	}
	if m.Record.Kind, err = trichess.ParsePieceKind(kind); err != nil {
		return MoveRow{}, fmt.Errorf("move %d: %w", m.MoveID, err)
	}
	if m.Record.From, err = trichess.NewCube(from[0], from[1], from[2]); err != nil {
		return MoveRow{}, fmt.Errorf("move %d: %w", m.MoveID, err)
	}
	if m.Record.To, err = trichess.NewCube(to[0], to[1], to[2]); err != nil {
		return MoveRow{}, fmt.Errorf("move %d: %w", m.MoveID, err)
	}

	return m, nil
}

// Count returns the number of moves in a game.
func (r *MoveRepository) Count(gameID string) (int, error) {
	var count int
	err := r.q.QueryRow("SELECT COUNT(*) FROM moves WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// GetNextIndex returns the next move index for a game.
func (r *MoveRepository) GetNextIndex(gameID string) (int, error) {
	var maxIndex sql.NullInt64
	err := r.q.QueryRow("SELECT MAX(move_index) FROM moves WHERE game_id = ?", gameID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}

	if !maxIndex.Valid {
		return 0, nil
	}

	return int(maxIndex.Int64) + 1, nil
}
