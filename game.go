package trichess

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Game is one game session. It owns the board and the turn controller;
// all mutations go through its methods, which serialize writers. Direction
// queries only take the read lock.
type Game struct {
	mu sync.RWMutex

	cfg     *config
	log     zerolog.Logger
	metrics *sessionMetrics

	board   *Board
	turn    *TurnController
	history []MoveRecord

	turnCallback func(TurnState)
}

// NewGame generates the board, places the starting pieces and starts at
// White's first turn.
func NewGame(opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := newSessionMetrics(cfg.meter)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		log:     cfg.logger.With().Str("component", "game").Logger(),
		metrics: m,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	board, err := generateBoard(g.cfg.footprint)
	if err != nil {
		return fmt.Errorf("generate board: %w", err)
	}
	if err := board.SetupPieces(); err != nil {
		return fmt.Errorf("setup pieces: %w", err)
	}

	g.board = board
	g.turn = NewTurnController()
	g.turn.OnTurnChange(g.onTurnChange)
	g.history = nil

	g.log.Debug().
		Int("tiles", board.Len()).
		Int("pieces", len(board.pieces)).
		Msg("Board ready")
	return nil
}

// Reset starts a fresh game on a newly generated board.
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reset()
}

// OnTurnChange sets a callback that fires when the turn passes.
// It runs with the session locked and must not call back into the Game.
func (g *Game) OnTurnChange(cb func(TurnState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.turnCallback = cb
}

func (g *Game) onTurnChange(s TurnState) {
	g.log.Info().
		Str("player", s.Player.String()).
		Int("turn", s.Counter).
		Msg("Turn passed")
	if g.turnCallback != nil {
		g.turnCallback(s)
	}
}

// State returns the current turn state.
func (g *Game) State() TurnState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.turn.State()
}

// Selected returns a copy of the selected piece.
func (g *Game) Selected() (Piece, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p := g.turn.Selected()
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// TileAt returns a copy of the tile at c.
func (g *Game) TileAt(c Cube) (Tile, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t, ok := g.board.TileAt(c)
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// PieceAt returns a copy of the piece standing on c.
func (g *Game) PieceAt(c Cube) (Piece, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.board.PieceAt(c)
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// View calls fn with the board under the read lock. fn must not keep
// the board or mutate it.
func (g *Game) View(fn func(*Board)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.board)
}

// Select selects the piece standing on at for the current player.
func (g *Game) Select(at Cube) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := g.turn.State().Player
	piece, _ := g.board.PieceAt(at)

	if err := g.turn.SelectPiece(piece); err != nil {
		g.metrics.invalidSelection(player)
		g.log.Debug().Err(err).Str("at", at.String()).Msg("Selection rejected")
		return err
	}

	g.log.Debug().Str("piece", piece.String()).Msg("Piece selected")
	return nil
}

// SelectedDirections returns the direction set of the selected piece.
func (g *Game) SelectedDirections() ([]Cube, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p := g.turn.Selected()
	if p == nil {
		return nil, false, ErrNoSelection
	}
	return PossibleDirections(p.Owner, p.Kind)
}

// PlanMove returns the record Move(to) would produce, without changing
// anything. It fails the way Move would.
func (g *Game) PlanMove(to Cube) (MoveRecord, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.planMove(to)
}

func (g *Game) planMove(to Cube) (MoveRecord, error) {
	p := g.turn.Selected()
	if p == nil {
		return MoveRecord{}, ErrNoSelection
	}
	if !g.board.Contains(to) {
		return MoveRecord{}, fmt.Errorf("move %s: %w: %s", p, ErrOffBoard, to)
	}
	if other, ok := g.board.PieceAt(to); ok {
		return MoveRecord{}, fmt.Errorf("move %s: %w: %s holds %s", p, ErrOccupied, to, other)
	}

	return MoveRecord{
		Turn:    g.turn.State().Counter,
		Player:  p.Owner,
		Kind:    p.Kind,
		PieceID: p.ID,
		From:    p.Position,
		To:      to,
	}, nil
}

// Move moves the selected piece to the empty tile to and passes the turn.
// Whether the destination is reachable is decided by the caller.
func (g *Game) Move(to Cube) (MoveRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, err := g.planMove(to)
	if err != nil {
		return MoveRecord{}, err
	}

	if _, err := g.board.MovePiece(rec.From, to); err != nil {
		return MoveRecord{}, fmt.Errorf("move %s: %w", rec, err)
	}
	if err := g.turn.CompleteMove(); err != nil {
		return MoveRecord{}, err
	}

	if g.cfg.moveHistory {
		g.history = append(g.history, rec)
	}
	g.metrics.turnCompleted(rec.Player)
	g.log.Info().Str("move", rec.Notation()).Int("turn", rec.Turn).Msg("Move completed")
	return rec, nil
}

// Capture marks the piece on at as captured. A player cannot capture
// their own piece. Capture does not pass the turn and is not tied to the
// selection phase: it can be called any number of times in a turn, before
// or after Select. Limiting captures is up to the move resolver.
func (g *Game) Capture(at Cube) (Piece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	target, ok := g.board.PieceAt(at)
	if !ok {
		return Piece{}, fmt.Errorf("%w: %s", ErrNoPiece, at)
	}
	if target.Owner == g.turn.State().Player {
		return Piece{}, fmt.Errorf("%w: %s is not an opponent piece", ErrInvalidSelection, target)
	}

	p, err := g.board.CapturePiece(at)
	if err != nil {
		return Piece{}, err
	}
	g.log.Info().Str("piece", p.String()).Msg("Piece captured")
	return *p, nil
}

// Cancel drops the current selection without passing the turn.
func (g *Game) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := g.turn.State().Player
	if err := g.turn.CancelSelection(); err != nil {
		return err
	}
	g.metrics.cancelled(player)
	return nil
}

// AdvanceTurn passes the turn without a move.
func (g *Game) AdvanceTurn() TurnState {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := g.turn.State().Player
	g.turn.AdvanceTurnDirectly()
	g.metrics.turnCompleted(player)
	return g.turn.State()
}

// History returns the completed moves, oldest first.
func (g *Game) History() []MoveRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]MoveRecord(nil), g.history...)
}

// IsInvalidSelection reports whether err is a rejected selection.
func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}
