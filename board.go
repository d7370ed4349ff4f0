package trichess

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Region tags which of the three overlapping generators produced a tile.
// It is provenance only and does not gate movement.
type Region uint8

const (
	RegionWhite Region = iota
	RegionBrown
	RegionBlack
)

// AllRegions lists every region.
var AllRegions = []Region{RegionWhite, RegionBrown, RegionBlack}

func (r Region) String() string {
	switch r {
	case RegionWhite:
		return "white"
	case RegionBrown:
		return "brown"
	case RegionBlack:
		return "black"
	default:
		return "?"
	}
}

// Tile is one board cell. Position and Region never change after generation.
type Tile struct {
	Position Cube   `json:"position"`
	Region   Region `json:"region"`
}

// Board maps cube coordinates to tiles and tracks piece occupancy.
// Insertion is explicit: a coordinate can be added only once.
type Board struct {
	tiles    map[Cube]*Tile
	occupant map[Cube]*Piece
	pieces   []*Piece // every piece ever placed, captured ones included
}

// newBoard creates an empty board.
func newBoard() *Board {
	return &Board{
		tiles:    make(map[Cube]*Tile),
		occupant: make(map[Cube]*Piece),
	}
}

// insertTile adds a tile, failing if the coordinate is invalid or already present.
func (b *Board) insertTile(pos Cube, region Region) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: tile %s", ErrInvariantViolation, pos)
	}
	if existing, ok := b.tiles[pos]; ok {
		return fmt.Errorf("%w: %s from %s region already generated by %s region",
			ErrRegionCollision, pos, region, existing.Region)
	}
	b.tiles[pos] = &Tile{Position: pos, Region: region}
	return nil
}

// Len returns the number of tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// TileAt returns the tile at c. The second result is false when c is not
// on the board.
func (b *Board) TileAt(c Cube) (*Tile, bool) {
	t, ok := b.tiles[c]
	return t, ok
}

// PieceAt returns the uncaptured piece standing on c, if any.
func (b *Board) PieceAt(c Cube) (*Piece, bool) {
	p, ok := b.occupant[c]
	return p, ok
}

// Contains reports whether c is a board tile.
func (b *Board) Contains(c Cube) bool {
	_, ok := b.tiles[c]
	return ok
}

// Tiles returns all tiles ordered by (A, B).
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		tiles = append(tiles, t)
	}
	slices.SortFunc(tiles, func(x, y *Tile) int {
		return CompareCubes(x.Position, y.Position)
	})
	return tiles
}

// TilesIn returns the tiles of one region ordered by (A, B).
func (b *Board) TilesIn(region Region) []*Tile {
	var out []*Tile
	for _, t := range b.Tiles() {
		if t.Region == region {
			out = append(out, t)
		}
	}
	return out
}

// RegionCount returns the number of tiles generated for region.
func (b *Board) RegionCount(region Region) int {
	n := 0
	for _, t := range b.tiles {
		if t.Region == region {
			n++
		}
	}
	return n
}

// Pieces returns every piece placed on the board, captured ones included,
// in placement order.
func (b *Board) Pieces() []*Piece {
	return slices.Clone(b.pieces)
}

// PiecesOf returns the uncaptured pieces owned by p in placement order.
func (b *Board) PiecesOf(p Player) []*Piece {
	var out []*Piece
	for _, pc := range b.pieces {
		if pc.Owner == p && !pc.Captured {
			out = append(out, pc)
		}
	}
	return out
}

// PlacePiece puts a new piece on an empty tile.
func (b *Board) PlacePiece(kind PieceKind, owner Player, at Cube) (*Piece, error) {
	if !b.Contains(at) {
		return nil, fmt.Errorf("%w: %s", ErrOffBoard, at)
	}
	if other, ok := b.occupant[at]; ok {
		return nil, fmt.Errorf("%w: %s holds %s", ErrOccupied, at, other)
	}

	p := &Piece{
		ID:       len(b.pieces) + 1,
		Kind:     kind,
		Owner:    owner,
		Position: at,
	}
	b.pieces = append(b.pieces, p)
	b.occupant[at] = p
	return p, nil
}

// MovePiece relocates the piece on from to the empty tile to.
// Path blocking and legality are the caller's concern.
func (b *Board) MovePiece(from, to Cube) (*Piece, error) {
	p, ok := b.occupant[from]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if !b.Contains(to) {
		return nil, fmt.Errorf("%w: %s", ErrOffBoard, to)
	}
	if other, ok := b.occupant[to]; ok {
		return nil, fmt.Errorf("%w: %s holds %s", ErrOccupied, to, other)
	}

	delete(b.occupant, from)
	p.Position = to
	b.occupant[to] = p
	return p, nil
}

// CapturePiece marks the piece on at as captured and frees the tile.
// The piece keeps its last position for the record.
func (b *Board) CapturePiece(at Cube) (*Piece, error) {
	p, ok := b.occupant[at]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, at)
	}
	p.Captured = true
	delete(b.occupant, at)
	return p, nil
}

// clearPieces removes every piece, keeping the tiles.
func (b *Board) clearPieces() {
	b.occupant = make(map[Cube]*Piece)
	b.pieces = nil
}

// CompareCubes orders coordinates by A, then B.
// C follows from the invariant.
func CompareCubes(x, y Cube) int {
	if x.A != y.A {
		return x.A - y.A
	}
	if x.B != y.B {
		return x.B - y.B
	}
	return x.C - y.C
}
