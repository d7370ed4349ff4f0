package trichess

import "fmt"

// Phase is the selection phase within a turn.
type Phase uint8

const (
	// PhaseIdle means no piece is selected.
	PhaseIdle Phase = iota

	// PhasePieceSelected means a piece is selected and awaits a destination.
	PhasePieceSelected
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePieceSelected:
		return "piece_selected"
	default:
		return "unknown"
	}
}

// TurnState is a snapshot of whose turn it is.
type TurnState struct {
	Player  Player `json:"player"`
	Counter int    `json:"counter"`
	Phase   Phase  `json:"phase"`
}

// TurnController tracks the current player, the turn counter and the
// selection phase. It is not safe for concurrent use; Game serializes
// access to it.
type TurnController struct {
	state    TurnState
	selected *Piece

	turnCallback func(TurnState)
}

// NewTurnController creates a controller at White's first turn, Idle.
func NewTurnController() *TurnController {
	return &TurnController{
		state: TurnState{Player: White, Counter: 1, Phase: PhaseIdle},
	}
}

// OnTurnChange sets a callback that fires after the turn passes to the
// next player.
func (t *TurnController) OnTurnChange(cb func(TurnState)) {
	t.turnCallback = cb
}

// State returns the current turn state.
func (t *TurnController) State() TurnState {
	return t.state
}

// Selected returns the selected piece, or nil when Idle.
func (t *TurnController) Selected() *Piece {
	return t.selected
}

// SelectPiece selects p for the current player. It is valid only while
// Idle, for an uncaptured piece the current player owns. Otherwise the
// state is left unchanged and an ErrInvalidSelection error is returned.
func (t *TurnController) SelectPiece(p *Piece) error {
	switch {
	case t.state.Phase != PhaseIdle:
		return fmt.Errorf("%w: %s already selected", ErrInvalidSelection, t.selected)
	case p == nil:
		return fmt.Errorf("%w: no piece", ErrInvalidSelection)
	case p.Owner != t.state.Player:
		return fmt.Errorf("%w: %s belongs to %s, %s to move", ErrInvalidSelection, p, p.Owner, t.state.Player)
	case p.Captured:
		return fmt.Errorf("%w: %w: %s", ErrInvalidSelection, ErrPieceCaptured, p)
	}

	t.selected = p
	t.state.Phase = PhasePieceSelected
	return nil
}

// CompleteMove ends the turn of the selected piece: the phase returns to
// Idle, the next player is to move and the counter increases.
func (t *TurnController) CompleteMove() error {
	if t.state.Phase != PhasePieceSelected {
		return ErrNoSelection
	}
	t.clearSelection()
	t.advance()
	return nil
}

// CancelSelection returns to Idle without passing the turn.
func (t *TurnController) CancelSelection() error {
	if t.state.Phase != PhasePieceSelected {
		return ErrNoSelection
	}
	t.clearSelection()
	return nil
}

// AdvanceTurnDirectly passes the turn without a selection. Any pending
// selection is dropped.
func (t *TurnController) AdvanceTurnDirectly() {
	t.clearSelection()
	t.advance()
}

func (t *TurnController) clearSelection() {
	t.selected = nil
	t.state.Phase = PhaseIdle
}

func (t *TurnController) advance() {
	t.state.Player = t.state.Player.Next()
	t.state.Counter++
	if t.turnCallback != nil {
		t.turnCallback(t.state)
	}
}
