package trichess

import (
	"errors"
	"fmt"
)

// Sentinel errors for the trichess package.
var (
	// Structural errors
	ErrInvariantViolation = errors.New("trichess: cube coordinate invariant violated")
	ErrRegionCollision    = fmt.Errorf("%w: tile coordinate generated twice", ErrInvariantViolation)

	// Selection errors
	ErrInvalidSelection = errors.New("trichess: invalid selection")
	ErrNoSelection      = errors.New("trichess: no piece selected")
	ErrInvalidPlayer    = errors.New("trichess: invalid player")

	// Rule errors
	ErrUnspecifiedPieceKind = errors.New("trichess: movement rule not implemented for piece kind")

	// Board errors
	ErrOffBoard      = errors.New("trichess: coordinate is not on the board")
	ErrOccupied      = errors.New("trichess: tile is occupied")
	ErrNoPiece       = errors.New("trichess: no piece at coordinate")
	ErrPieceCaptured = errors.New("trichess: piece is captured")

	// Parsing errors
	ErrInvalidNotation = errors.New("trichess: invalid notation")
)
