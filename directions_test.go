package trichess

import (
	"errors"
	"testing"
)

func cubeSet(cs []Cube) map[Cube]bool {
	set := make(map[Cube]bool, len(cs))
	for _, c := range cs {
		set[c] = true
	}
	return set
}

func closedUnderNegation(cs []Cube) bool {
	set := cubeSet(cs)
	for _, c := range cs {
		if !set[c.Neg()] {
			return false
		}
	}
	return true
}

func disjoint(a, b []Cube) bool {
	set := cubeSet(a)
	for _, c := range b {
		if set[c] {
			return false
		}
	}
	return true
}

func mustDirections(t *testing.T, p Player, k PieceKind) ([]Cube, bool) {
	t.Helper()
	dirs, sliding, err := PossibleDirections(p, k)
	if err != nil {
		t.Fatalf("PossibleDirections(%s, %s): %v", p, k, err)
	}
	return dirs, sliding
}

func TestAxesSumToZero(t *testing.T) {
	for _, p := range AllPlayers {
		if s := AxesFor(p).Sum(); s != Origin {
			t.Errorf("%s axes sum to %s", p, s)
		}
	}
}

func TestAxesRotation(t *testing.T) {
	white := AxesFor(White)
	if AxesFor(Brown) != white.Rotate() {
		t.Error("Brown axes should be White rotated 120°")
	}
	if AxesFor(Black) != white.Rotate().Rotate() {
		t.Error("Black axes should be White rotated 240°")
	}
	if white.Rotate().Rotate().Rotate() != white {
		t.Error("three rotations should return White's axes")
	}
}

func TestAxesAreUnitCubeVectors(t *testing.T) {
	for _, p := range AllPlayers {
		a := AxesFor(p)
		for _, v := range []Cube{a.Forward, a.Right, a.Left} {
			if !v.Valid() || v.Distance(Origin) != 1 {
				t.Errorf("%s axis %s is not a unit cube vector", p, v)
			}
		}
	}
}

func TestWhiteAxesMatchHomePlacement(t *testing.T) {
	a := AxesFor(White)
	if a.Forward != MustCube(1, -1, 0) || a.Right != MustCube(0, 1, -1) || a.Left != MustCube(-1, 0, 1) {
		t.Errorf("unexpected White axes %+v", a)
	}
}

func TestBishopAndRookSets(t *testing.T) {
	for _, p := range AllPlayers {
		bishop, bSliding := mustDirections(t, p, Bishop)
		rook, rSliding := mustDirections(t, p, Rook)

		if !bSliding || !rSliding {
			t.Errorf("%s bishop and rook should slide", p)
		}
		if len(cubeSet(bishop)) != 6 || len(cubeSet(rook)) != 6 {
			t.Errorf("%s bishop/rook should have 6 distinct vectors", p)
		}
		if !closedUnderNegation(bishop) {
			t.Errorf("%s bishop set not closed under negation", p)
		}
		if !closedUnderNegation(rook) {
			t.Errorf("%s rook set not closed under negation", p)
		}
		if !disjoint(bishop, rook) {
			t.Errorf("%s bishop and rook sets overlap", p)
		}
	}
}

func TestKingIsBishopUnionRook(t *testing.T) {
	for _, p := range AllPlayers {
		bishop, _ := mustDirections(t, p, Bishop)
		rook, _ := mustDirections(t, p, Rook)
		king, sliding := mustDirections(t, p, King)

		if sliding {
			t.Errorf("%s king should not slide", p)
		}
		kingSet := cubeSet(king)
		if len(kingSet) != 12 {
			t.Errorf("%s king has %d distinct vectors, want 12", p, len(kingSet))
		}
		for _, v := range append(bishop, rook...) {
			if !kingSet[v] {
				t.Errorf("%s king is missing %s", p, v)
			}
		}
	}
}

func TestKnightSet(t *testing.T) {
	for _, p := range AllPlayers {
		knight, sliding := mustDirections(t, p, Knight)
		king, _ := mustDirections(t, p, King)

		if sliding {
			t.Errorf("%s knight should not slide", p)
		}
		if len(cubeSet(knight)) != 12 {
			t.Errorf("%s knight has %d distinct vectors, want 12", p, len(cubeSet(knight)))
		}
		if !disjoint(knight, king) {
			t.Errorf("%s knight overlaps king", p)
		}
		if !closedUnderNegation(knight) {
			t.Errorf("%s knight set not closed under negation", p)
		}
	}
}

func TestKnightWhiteVectors(t *testing.T) {
	knight, _ := mustDirections(t, White, Knight)
	want := []Cube{
		MustCube(-1, -4, 5), MustCube(1, -5, 4), MustCube(4, -5, 1), MustCube(5, -4, -1),
		MustCube(5, -1, -4), MustCube(4, 1, -5), MustCube(1, 4, -5), MustCube(-1, 5, -4),
		MustCube(-4, 5, -1), MustCube(-5, 4, 1), MustCube(-5, 1, 4), MustCube(-4, -1, 5),
	}
	if len(knight) != len(want) {
		t.Fatalf("got %d knight vectors", len(knight))
	}
	for i := range want {
		if knight[i] != want[i] {
			t.Errorf("knight[%d] = %s, want %s", i, knight[i], want[i])
		}
	}
}

func TestPawnForwardOnly(t *testing.T) {
	for _, p := range AllPlayers {
		pawn, sliding := mustDirections(t, p, Pawn)
		rook, _ := mustDirections(t, p, Rook)

		if sliding {
			t.Errorf("%s pawn should not slide", p)
		}
		if len(pawn) != 2 {
			t.Fatalf("%s pawn has %d vectors, want 2", p, len(pawn))
		}
		rookSet := cubeSet(rook)
		for _, v := range pawn {
			if !rookSet[v] {
				t.Errorf("%s pawn vector %s is not rook-like", p, v)
			}
		}
		if closedUnderNegation(pawn) {
			t.Errorf("%s pawn set must not be closed under negation", p)
		}

		a := AxesFor(p)
		if pawn[0] != a.Forward.Sub(a.Right) || pawn[1] != a.Forward.Sub(a.Left) {
			t.Errorf("%s pawn vectors %v are not fw-rt, fw-lt", p, pawn)
		}
	}
}

func TestDirectionsRotateWithPlayer(t *testing.T) {
	kinds := []PieceKind{Pawn, Knight, Bishop, Rook, King}
	for _, k := range kinds {
		white, _ := mustDirections(t, White, k)
		brown, _ := mustDirections(t, Brown, k)
		black, _ := mustDirections(t, Black, k)
		for i := range white {
			if brown[i] != white[i].Rotate() {
				t.Errorf("%s[%d]: brown %s != rotated white %s", k, i, brown[i], white[i].Rotate())
			}
			if black[i] != brown[i].Rotate() {
				t.Errorf("%s[%d]: black %s != rotated brown %s", k, i, black[i], brown[i].Rotate())
			}
		}
	}
}

func TestDirectionVectorsAreValid(t *testing.T) {
	for _, p := range AllPlayers {
		for _, k := range []PieceKind{Pawn, Knight, Bishop, Rook, King} {
			dirs, _ := mustDirections(t, p, k)
			for _, d := range dirs {
				if !d.Valid() || d == Origin {
					t.Errorf("%s %s direction %s is not a valid step", p, k, d)
				}
			}
		}
	}
}

func TestQueenIsUnspecified(t *testing.T) {
	for _, p := range AllPlayers {
		dirs, _, err := PossibleDirections(p, Queen)
		if !errors.Is(err, ErrUnspecifiedPieceKind) {
			t.Errorf("%s queen: expected ErrUnspecifiedPieceKind, got %v", p, err)
		}
		if dirs != nil {
			t.Errorf("%s queen should return no directions", p)
		}
	}
}

func TestUnknownPlayerRejected(t *testing.T) {
	for _, p := range []Player{Player(3), Player(7)} {
		_, _, err := PossibleDirections(p, Rook)
		if !errors.Is(err, ErrInvalidPlayer) {
			t.Errorf("player %d: expected ErrInvalidPlayer, got %v", p, err)
		}
		if errors.Is(err, ErrInvalidNotation) {
			t.Errorf("player %d: reported as a notation error", p)
		}
	}
}

func TestUnknownPlayerPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"AxesFor", func() { AxesFor(Player(3)) }},
		{"HomeStart", func() { HomeStart(Player(4)) }},
		{"HomeSquare", func() { HomeSquare(Player(5), 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic for an invalid player", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestWhiteRookAtHomeStart(t *testing.T) {
	game, err := NewGame()
	if err != nil {
		t.Fatal(err)
	}
	rook, ok := game.PieceAt(HomeStart(White))
	if !ok || rook.Kind != Rook || rook.Owner != White {
		t.Fatalf("expected White rook at home start, got %+v", rook)
	}

	dirs, sliding := mustDirections(t, rook.Owner, rook.Kind)
	if !sliding {
		t.Error("rook should slide")
	}
	a := AxesFor(White)
	want := []Cube{
		a.Forward.Sub(a.Right),
		a.Forward.Sub(a.Left),
		a.Right.Sub(a.Left),
		a.Forward.Sub(a.Right).Neg(),
		a.Forward.Sub(a.Left).Neg(),
		a.Right.Sub(a.Left).Neg(),
	}
	if len(dirs) != len(want) {
		t.Fatalf("got %d rook directions, want 6", len(dirs))
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("rook[%d] = %s, want %s", i, dirs[i], want[i])
		}
	}
}
