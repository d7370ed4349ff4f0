package trichess

import (
	"fmt"
	"strings"
)

// PieceKind enumerates the piece types present in the starting layout.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen // Placed at setup; no movement rule is defined.
	King
)

// AllPieceKinds lists every piece kind.
var AllPieceKinds = []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the lowercase kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Symbol returns the single-letter symbol used in notation.
func (k PieceKind) Symbol() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// ParsePieceKind parses a kind name or symbol, case-insensitive.
func ParsePieceKind(s string) (PieceKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, k := range AllPieceKinds {
		if needle == k.String() || needle == strings.ToLower(k.Symbol()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: piece kind %q", ErrInvalidNotation, s)
}

// Piece is a single game piece. Captured pieces stay on record with
// Captured set; they are never deleted while a game is live.
type Piece struct {
	ID       int       `json:"id"`
	Kind     PieceKind `json:"kind"`
	Owner    Player    `json:"owner"`
	Position Cube      `json:"position"`
	Captured bool      `json:"captured"`
}

// String returns a short description such as "white rook (-5,1,4)".
func (p *Piece) String() string {
	s := fmt.Sprintf("%s %s %s", p.Owner, p.Kind, p.Position)
	if p.Captured {
		s += " (captured)"
	}
	return s
}
