package trichess

import "fmt"

// directionRule builds a piece kind's direction set from a player's axes.
type directionRule struct {
	directions func(Axes) []Cube
	sliding    bool
}

// directionRules is indexed by PieceKind. Queen has no entry.
var directionRules = map[PieceKind]directionRule{
	Pawn:   {directions: pawnDirections, sliding: false},
	Knight: {directions: knightDirections, sliding: false},
	Bishop: {directions: BishopDirections, sliding: true},
	Rook:   {directions: RookDirections, sliding: true},
	King:   {directions: kingDirections, sliding: false},
}

// PossibleDirections returns the direction vectors of a piece of the given
// kind owned by p, and whether the piece may repeat a step (sliding).
//
// The result is a raw direction oracle: it does not consult the board.
// Queen returns ErrUnspecifiedPieceKind because its rule is not defined.
func PossibleDirections(p Player, kind PieceKind) ([]Cube, bool, error) {
	if !p.Valid() {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}

	rule, ok := directionRules[kind]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnspecifiedPieceKind, kind)
	}

	return rule.directions(AxesFor(p)), rule.sliding, nil
}

// BishopDirections returns the six bishop-like vectors:
// up-left, up, up-right and their negations.
func BishopDirections(a Axes) []Cube {
	return []Cube{
		a.bishopUpLeft(),
		a.bishopUp(),
		a.bishopUpRight(),
		a.bishopDownRight(),
		a.bishopDown(),
		a.bishopDownLeft(),
	}
}

// RookDirections returns the six rook-like vectors:
// left-up, right-up, right and their negations.
func RookDirections(a Axes) []Cube {
	return []Cube{
		a.rookLeftUp(),
		a.rookRightUp(),
		a.rookRight(),
		a.rookRightDown(),
		a.rookLeftDown(),
		a.rookLeft(),
	}
}

// kingDirections walks the twelve bishop and rook vectors clockwise.
func kingDirections(a Axes) []Cube {
	return []Cube{
		a.bishopUpLeft(),
		a.rookLeftUp(),
		a.bishopUp(),
		a.rookRightUp(),
		a.bishopUpRight(),
		a.rookRight(),
		a.bishopDownRight(),
		a.rookRightDown(),
		a.bishopDown(),
		a.rookLeftDown(),
		a.bishopDownLeft(),
		a.rookLeft(),
	}
}

// knightDirections pairs every bishop-like vector with each of its two
// adjacent rook-like vectors.
func knightDirections(a Axes) []Cube {
	return []Cube{
		a.bishopUpLeft().Add(a.rookLeft()),
		a.bishopUpLeft().Add(a.rookLeftUp()),
		a.bishopUp().Add(a.rookLeftUp()),
		a.bishopUp().Add(a.rookRightUp()),
		a.bishopUpRight().Add(a.rookRightUp()),
		a.bishopUpRight().Add(a.rookRight()),
		a.bishopDownRight().Add(a.rookRight()),
		a.bishopDownRight().Add(a.rookRightDown()),
		a.bishopDown().Add(a.rookRightDown()),
		a.bishopDown().Add(a.rookLeftDown()),
		a.bishopDownLeft().Add(a.rookLeftDown()),
		a.bishopDownLeft().Add(a.rookLeft()),
	}
}

// pawnDirections returns the forward rook-like pair only.
// Whether these are moves, captures or both is left to the caller.
func pawnDirections(a Axes) []Cube {
	return []Cube{
		a.rookLeftUp(),
		a.rookRightUp(),
	}
}
