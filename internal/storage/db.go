// Package storage provides SQLite persistence for recorded trichess games.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/SeamusWaldron/trichess"
)

const (
	dataDirName = ".trichess"
	dbFileName  = "trichess.db"
)

// querier is the part of *sql.DB and *sql.Tx the repositories use, so a
// repository can run inside or outside a transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// DB is the game database.
type DB struct {
	*sql.DB
	path string
}

// DefaultDir returns ~/.trichess, creating it if needed.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, dataDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// DefaultDBPath returns ~/.trichess/trichess.db.
func DefaultDBPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

// Open opens (or creates) the game database at dbPath.
// Call MigrateUp before using the repositories.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas are per connection, and a game has a single writer anyway.
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{DB: sqlDB, path: dbPath}, nil
}

// OpenDefault opens the database at DefaultDBPath.
func OpenDefault() (*DB, error) {
	path, err := DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// MigrateUp applies all pending migrations.
func (db *DB) MigrateUp() error {
	return applyMigrations(db.DB)
}

// CurrentVersion returns the applied schema version, 0 for a new file.
func (db *DB) CurrentVersion() (int, error) {
	return currentVersion(db.DB)
}

// Tx is an open transaction with the game repositories bound to it.
type Tx struct {
	Games  *GameRepository
	Moves  *MoveRepository
	Events *EventRepository
}

// Transaction runs fn in one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (db *DB) Transaction(fn func(*Tx) error) error {
	sqlTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{
		Games:  &GameRepository{q: sqlTx},
		Moves:  &MoveRepository{q: sqlTx},
		Events: &EventRepository{q: sqlTx},
	}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecordEvent stores one turn-controller event. apply runs after the insert
// and before the commit, so the caller can change the game there: an error
// from apply drops the event, and a failed insert never reaches apply.
func (db *DB) RecordEvent(gameID string, tsMs int64, eventType string, payload any, apply func() error) (int64, error) {
	var eventID int64
	err := db.Transaction(func(tx *Tx) error {
		id, err := tx.Events.Create(gameID, tsMs, eventType, payload)
		if err != nil {
			return err
		}
		eventID = id
		if apply != nil {
			return apply()
		}
		return nil
	})
	return eventID, err
}

// RecordMove stores a completed move as a move event plus the move row that
// points back at it. Both rows are written, or neither. apply runs last,
// inside the transaction, like in RecordEvent.
func (db *DB) RecordMove(gameID string, moveIndex int, tsMs int64, rec trichess.MoveRecord, apply func() error) (int64, error) {
	var moveID int64
	err := db.Transaction(func(tx *Tx) error {
		eventID, err := tx.Events.Create(gameID, tsMs, EventMove, rec)
		if err != nil {
			return err
		}
		moveID, err = tx.Moves.Create(gameID, moveIndex, tsMs, rec, &eventID)
		if err != nil {
			return err
		}
		if apply != nil {
			return apply()
		}
		return nil
	})
	return moveID, err
}
