package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/storage"
)

var (
	ErrNotRecording     = errors.New("recorder: no game in progress")
	ErrAlreadyRecording = errors.New("recorder: game already in progress")
	ErrGameNotFound     = errors.New("recorder: game not found")
	ErrGameEnded        = errors.New("recorder: game already ended")
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

// SelectEvent is the payload of select and select_invalid events.
type SelectEvent struct {
	Player string        `json:"player"`
	At     trichess.Cube `json:"at"`
	Error  string        `json:"error,omitempty"`
}

// CaptureEvent is the payload of capture events.
type CaptureEvent struct {
	Player string         `json:"player"`
	Piece  trichess.Piece `json:"piece"`
}

// TurnEvent is the payload of cancel and advance events.
type TurnEvent struct {
	Player string `json:"player"`
	Turn   int    `json:"turn"`
}

// Session drives a trichess.Game and records every turn-controller action.
type Session struct {
	db         *storage.DB
	stateFile  *StateFile
	game       *trichess.Game
	log        zerolog.Logger
	appVersion string

	mu        sync.Mutex
	state     SessionState
	gameID    string
	startTime time.Time
	moveIndex int

	gameRepo  *storage.GameRepository
	moveRepo  *storage.MoveRepository
	eventRepo *storage.EventRepository
}

// NewSession creates a session recording game into db. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, game *trichess.Game, log zerolog.Logger) *Session {
	return &Session{
		db:        db,
		stateFile: stateFile,
		game:      game,
		log:       log.With().Str("component", "recorder").Logger(),
		state:     StateIdle,
		gameRepo:  storage.NewGameRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
		eventRepo: storage.NewEventRepository(db),
	}
}

// SetAppVersion sets the version stored with new games.
func (s *Session) SetAppVersion(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appVersion = v
}

// Game returns the game being recorded.
func (s *Session) Game() *trichess.Game {
	return s.game
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameID returns the current game ID.
func (s *Session) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// MoveCount returns the number of moves recorded so far.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveIndex
}

// Start resets the game and begins recording it.
func (s *Session) Start(notes string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	if err := s.game.Reset(); err != nil {
		return "", fmt.Errorf("failed to reset game: %w", err)
	}

	gameID, err := s.gameRepo.Create(notes, s.appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	s.gameID = gameID
	s.startTime = time.Now()
	s.moveIndex = 0
	s.state = StateRecording
	s.track()

	s.log.Info().Str("game", gameID).Msg("Game started")
	return gameID, nil
}

// End finishes the current game.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.gameRepo.End(s.gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	s.state = StateEnded
	s.forget()

	s.log.Info().Str("game", s.gameID).Int("moves", s.moveIndex).Msg("Game ended")
	return nil
}

// Resume continues an unfinished game by replaying its recorded moves,
// captures and turn advances onto a fresh board.
func (s *Session) Resume(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return ErrAlreadyRecording
	}

	g, err := s.gameRepo.Get(gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if g == nil {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if g.EndedAt != nil {
		return fmt.Errorf("%w: %s", ErrGameEnded, gameID)
	}

	if err := s.game.Reset(); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	events, err := s.eventRepo.GetByGame(gameID)
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := s.replay(e); err != nil {
			return fmt.Errorf("failed to replay event %d: %w", e.EventID, err)
		}
	}

	nextIndex, err := s.moveRepo.GetNextIndex(gameID)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}

	s.gameID = gameID
	s.startTime = g.StartedAt
	s.moveIndex = nextIndex
	s.state = StateRecording
	s.track()

	s.log.Info().
		Str("game", gameID).
		Int("events", len(events)).
		Int("turn", s.game.State().Counter).
		Msg("Game resumed")
	return nil
}

func (s *Session) replay(e storage.Event) error {
	switch e.EventType {
	case storage.EventMove:
		var rec trichess.MoveRecord
		if err := e.Decode(&rec); err != nil {
			return err
		}
		if err := s.game.Select(rec.From); err != nil {
			return err
		}
		_, err := s.game.Move(rec.To)
		return err
	case storage.EventCapture:
		var ce CaptureEvent
		if err := e.Decode(&ce); err != nil {
			return err
		}
		_, err := s.game.Capture(ce.Piece.Position)
		return err
	case storage.EventAdvance:
		s.game.AdvanceTurn()
	}
	// Selections and cancellations leave no trace on the board.
	return nil
}

// Select selects the piece on at. Rejected selections are recorded too.
// The selection event is written after the game has decided; selections
// are never replayed, so a failed write cannot skew a resumed board.
func (s *Session) Select(at trichess.Cube) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	player := s.game.State().Player
	selErr := s.game.Select(at)

	ev := SelectEvent{Player: player.String(), At: at}
	eventType := storage.EventSelect
	if selErr != nil {
		ev.Error = selErr.Error()
		eventType = storage.EventSelectInvalid
	}
	if _, err := s.eventRepo.Create(s.gameID, s.elapsedMs(), eventType, ev); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	return selErr
}

// Move moves the selected piece to the empty tile to.
//
// The move event and the move row are written in one transaction, and the
// board changes only inside it once both rows are in. A failed insert
// leaves the game untouched, so the board and the tables never disagree.
func (s *Session) Move(to trichess.Cube) (trichess.MoveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return trichess.MoveRecord{}, ErrNotRecording
	}

	rec, err := s.game.PlanMove(to)
	if err != nil {
		return trichess.MoveRecord{}, err
	}

	_, err = s.db.RecordMove(s.gameID, s.moveIndex, s.elapsedMs(), rec, func() error {
		_, err := s.game.Move(to)
		return err
	})
	if err != nil {
		return trichess.MoveRecord{}, fmt.Errorf("failed to record move: %w", err)
	}
	s.moveIndex++
	s.track()

	return rec, nil
}

// Capture captures the opponent piece on at.
func (s *Session) Capture(at trichess.Cube) (trichess.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return trichess.Piece{}, ErrNotRecording
	}

	target, ok := s.game.PieceAt(at)
	if !ok {
		return trichess.Piece{}, fmt.Errorf("%w: %s", trichess.ErrNoPiece, at)
	}
	target.Captured = true

	var captured trichess.Piece
	ev := CaptureEvent{Player: s.game.State().Player.String(), Piece: target}
	_, err := s.db.RecordEvent(s.gameID, s.elapsedMs(), storage.EventCapture, ev, func() error {
		p, err := s.game.Capture(at)
		captured = p
		return err
	})
	if err != nil {
		return trichess.Piece{}, s.recordErr(err)
	}
	return captured, nil
}

// Cancel drops the current selection.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	st := s.game.State()
	ev := TurnEvent{Player: st.Player.String(), Turn: st.Counter}
	_, err := s.db.RecordEvent(s.gameID, s.elapsedMs(), storage.EventCancel, ev, s.game.Cancel)
	if err != nil {
		return s.recordErr(err)
	}
	return nil
}

// Advance passes the turn without a move.
func (s *Session) Advance() (trichess.TurnState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return trichess.TurnState{}, ErrNotRecording
	}

	before := s.game.State()
	ev := TurnEvent{Player: before.Player.String(), Turn: before.Counter}
	_, err := s.db.RecordEvent(s.gameID, s.elapsedMs(), storage.EventAdvance, ev, func() error {
		s.game.AdvanceTurn()
		return nil
	})
	if err != nil {
		return before, s.recordErr(err)
	}
	s.track()

	return s.game.State(), nil
}

// recordErr passes game rule errors through unchanged and labels the rest
// as storage failures.
func (s *Session) recordErr(err error) error {
	if errors.Is(err, trichess.ErrInvalidSelection) ||
		errors.Is(err, trichess.ErrNoSelection) ||
		errors.Is(err, trichess.ErrNoPiece) {
		return err
	}
	return fmt.Errorf("failed to record event: %w", err)
}

func (s *Session) elapsedMs() int64 {
	return time.Since(s.startTime).Milliseconds()
}

// track saves the current turn of the recorded game to the state file.
func (s *Session) track() {
	if s.stateFile == nil {
		return
	}
	if err := s.stateFile.Track(s.gameID, s.game.State(), s.moveIndex); err != nil {
		s.log.Warn().Err(err).Msg("Failed to update state file")
	}
}

// forget drops the recorded game from the state file.
func (s *Session) forget() {
	if s.stateFile == nil {
		return
	}
	if err := s.stateFile.Forget(s.gameID); err != nil {
		s.log.Warn().Err(err).Msg("Failed to update state file")
	}
}
