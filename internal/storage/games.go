package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game represents a game session in the database.
type Game struct {
	GameID     string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	Notes      *string
	AppVersion *string
}

// GameRepository provides CRUD operations for games.
type GameRepository struct {
	q querier
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{q: db}
}

// Create creates a new game and returns its ID.
func (r *GameRepository) Create(notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var notesPtr, appVersionPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	if appVersion != "" {
		appVersionPtr = &appVersion
	}

	_, err := r.q.Exec(`
		INSERT INTO games (game_id, started_at, notes, app_version)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), notesPtr, appVersionPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return id, nil
}

// End marks a game as finished and stores its duration.
func (r *GameRepository) End(gameID string) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.q.QueryRow("SELECT started_at FROM games WHERE game_id = ?", gameID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get game start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	_, err = r.q.Exec(`
		UPDATE games
		SET ended_at = ?, duration_ms = ?
		WHERE game_id = ?
	`, endedAt.Format(timeLayout), durationMs, gameID)
	if err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const gameColumns = `game_id, started_at, ended_at, duration_ms, notes, app_version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	var g Game
	var startedAtStr string
	var endedAtStr sql.NullString

	if err := row.Scan(&g.GameID, &startedAtStr, &endedAtStr, &g.DurationMs, &g.Notes, &g.AppVersion); err != nil {
		return nil, err
	}

	g.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		g.EndedAt = &t
	}

	return &g, nil
}

// Get retrieves a game by ID. It returns nil, nil when the game does not exist.
func (r *GameRepository) Get(gameID string) (*Game, error) {
	g, err := scanGame(r.q.QueryRow(`SELECT `+gameColumns+` FROM games WHERE game_id = ?`, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// GetLast retrieves the most recently started game.
func (r *GameRepository) GetLast() (*Game, error) {
	g, err := scanGame(r.q.QueryRow(`SELECT ` + gameColumns + ` FROM games ORDER BY started_at DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last game: %w", err)
	}
	return g, nil
}

// List retrieves recent games, newest first.
func (r *GameRepository) List(limit int) ([]Game, error) {
	rows, err := r.q.Query(`
		SELECT `+gameColumns+`
		FROM games
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}

	return games, rows.Err()
}

// Delete deletes a game and all related data (cascading).
func (r *GameRepository) Delete(gameID string) error {
	_, err := r.q.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
