package trichess

import (
	"fmt"
	"strings"
)

// MoveRecord is one completed move.
type MoveRecord struct {
	Turn    int       `json:"turn"`
	Player  Player    `json:"player"`
	Kind    PieceKind `json:"kind"`
	PieceID int       `json:"piece_id"`
	From    Cube      `json:"from"`
	To      Cube      `json:"to"`
}

// Notation returns the move as "<player> <kind> <from>-<to>".
// Example: W R (-5,1,4)-(-4,-1,5)
func (m MoveRecord) Notation() string {
	return fmt.Sprintf("%s %s %s-%s", m.Player.Letter(), m.Kind.Symbol(), m.From, m.To)
}

// String returns the notation string (alias for Notation).
func (m MoveRecord) String() string {
	return m.Notation()
}

// ParseMoveRecord parses the Notation form back into a record.
// Turn and PieceID are not part of the notation and are left zero.
func ParseMoveRecord(s string) (MoveRecord, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return MoveRecord{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, s)
	}

	player, err := parsePlayerLetter(fields[0])
	if err != nil {
		return MoveRecord{}, err
	}
	kind, err := ParsePieceKind(fields[1])
	if err != nil {
		return MoveRecord{}, err
	}

	from, to, ok := strings.Cut(fields[2], ")-(")
	if !ok {
		return MoveRecord{}, fmt.Errorf("%w: move %q", ErrInvalidNotation, s)
	}
	fromCube, err := ParseCube(from + ")")
	if err != nil {
		return MoveRecord{}, err
	}
	toCube, err := ParseCube("(" + to)
	if err != nil {
		return MoveRecord{}, err
	}

	return MoveRecord{Player: player, Kind: kind, From: fromCube, To: toCube}, nil
}

func parsePlayerLetter(s string) (Player, error) {
	for _, p := range AllPlayers {
		if strings.EqualFold(s, p.Letter()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: player %q", ErrInvalidNotation, s)
}

// FormatMoves formats moves one per line.
func FormatMoves(moves []MoveRecord) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fmt.Sprintf("%d. %s", m.Turn, m.Notation())
	}

	return strings.Join(parts, "\n")
}
