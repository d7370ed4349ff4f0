package trichess

import (
	"fmt"
	"strings"
)

// Player identifies one of the three sides.
type Player uint8

const (
	White Player = iota
	Brown
	Black
)

// AllPlayers lists the players in turn order.
var AllPlayers = []Player{White, Brown, Black}

// Next returns the player whose turn follows p: White -> Brown -> Black -> White.
func (p Player) Next() Player {
	return (p + 1) % 3
}

// Valid reports whether p is one of the three players.
func (p Player) Valid() bool {
	return p <= Black
}

// mustBeValid panics on a player outside White, Brown, Black.
func mustBeValid(p Player) {
	if !p.Valid() {
		panic(fmt.Sprintf("%v: %d", ErrInvalidPlayer, p))
	}
}

// String returns the lowercase player name.
func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Brown:
		return "brown"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("player(%d)", p)
	}
}

// Letter returns a one-letter abbreviation: W, N (brown) or B.
func (p Player) Letter() string {
	switch p {
	case White:
		return "W"
	case Brown:
		return "N"
	case Black:
		return "B"
	default:
		return "?"
	}
}

// ParsePlayer parses a player name or abbreviation.
// Accepts "white"/"w", "brown"/"br"/"n" and "black"/"b", case-insensitive.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "brown", "br", "n":
		return Brown, nil
	case "black", "b":
		return Black, nil
	default:
		return 0, fmt.Errorf("%w: player %q", ErrInvalidNotation, s)
	}
}
