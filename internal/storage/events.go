package storage

import (
	"encoding/json"
	"fmt"
)

// Event types written by a recording session.
const (
	EventSelect        = "select"
	EventSelectInvalid = "select_invalid"
	EventMove          = "move"
	EventCapture       = "capture"
	EventCancel        = "cancel"
	EventAdvance       = "advance"
)

// Event represents a turn-controller event in the database.
type Event struct {
	EventID     int64
	GameID      string
	TsMs        int64
	EventType   string
	PayloadJSON string
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal([]byte(e.PayloadJSON), v); err != nil {
		return fmt.Errorf("failed to decode %s event %d: %w", e.EventType, e.EventID, err)
	}
	return nil
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	q querier
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{q: db}
}

// Create stores an event with payload marshalled as JSON and returns its ID.
func (r *EventRepository) Create(gameID string, tsMs int64, eventType string, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	result, err := r.q.Exec(`
		INSERT INTO events (game_id, ts_ms, event_type, payload_json)
		VALUES (?, ?, ?, ?)
	`, gameID, tsMs, eventType, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// GetByGame retrieves all events for a game in insertion order.
func (r *EventRepository) GetByGame(gameID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, game_id, ts_ms, event_type, payload_json
		FROM events
		WHERE game_id = ?
		ORDER BY event_id
	`, gameID)
}

// GetByType retrieves all events of a specific type for a game.
func (r *EventRepository) GetByType(gameID, eventType string) ([]Event, error) {
	return r.query(`
		SELECT event_id, game_id, ts_ms, event_type, payload_json
		FROM events
		WHERE game_id = ? AND event_type = ?
		ORDER BY event_id
	`, gameID, eventType)
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.q.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.EventID, &e.GameID, &e.TsMs, &e.EventType, &e.PayloadJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Count returns the number of events for a game.
func (r *EventRepository) Count(gameID string) (int, error) {
	var count int
	err := r.q.QueryRow("SELECT COUNT(*) FROM events WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
