package trichess

import "fmt"

// homeStarts holds the coordinate of each player's first home-row tile.
// Rows advance along the player's Forward axis and files along Right.
var homeStarts = [3]Cube{
	White: MustCube(-5, 1, 4),
	Brown: MustCube(5, -6, 1),
	Black: MustCube(2, 4, -6),
}

// homeLayout lists the starting rows, home edge first.
var homeLayout = [][]PieceKind{
	{Rook, Queen, King, Rook},
	{Knight, Bishop, Bishop, Bishop, Knight},
	{Pawn, Pawn, Pawn, Pawn, Pawn, Pawn},
}

// PiecesPerPlayer is the number of pieces each player starts with.
const PiecesPerPlayer = 15

// HomeStart returns the first tile of p's home row.
// It panics if p is not a valid player.
func HomeStart(p Player) Cube {
	mustBeValid(p)
	return homeStarts[p]
}

// HomeLayout returns a copy of the starting rows, home edge first.
func HomeLayout() [][]PieceKind {
	out := make([][]PieceKind, len(homeLayout))
	for i, row := range homeLayout {
		out[i] = append([]PieceKind(nil), row...)
	}
	return out
}

// HomeSquare returns the coordinate of file f in row r of p's starting area.
func HomeSquare(p Player, row, file int) Cube {
	axes := AxesFor(p)
	return HomeStart(p).Add(axes.Forward.Scale(row)).Add(axes.Right.Scale(file))
}

// SetupPieces places every player's starting pieces, White first.
// The board must be empty of pieces.
func (b *Board) SetupPieces() error {
	for _, p := range AllPlayers {
		for row, kinds := range homeLayout {
			for file, kind := range kinds {
				at := HomeSquare(p, row, file)
				if _, err := b.PlacePiece(kind, p, at); err != nil {
					return fmt.Errorf("place %s %s: %w", p, kind, err)
				}
			}
		}
	}
	return nil
}
