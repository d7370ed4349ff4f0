package trichess

import (
	"fmt"
	"math"
)

// Footprint is the surface size of one tile. Grid index steps are scaled
// by 1.5*Width per i and 0.75*Height per j.
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultFootprint is the footprint of a hex tile whose centers sit
// exactly on the cube lattice: sqrt(3)/2 across, 1 tall.
var DefaultFootprint = Footprint{Width: math.Sqrt(3) / 2, Height: 1}

// GridIndex is an (i, j) position in a region's rectangular index space.
type GridIndex struct {
	I int
	J int
}

// RegionShape describes how one region is carved out of a rectangle of
// grid indices.
type RegionShape struct {
	Region   Region
	IMin     int
	IMax     int
	JMin     int
	JMax     int
	Excluded map[GridIndex]struct{}
	CenterX  float64
	CenterZ  float64
}

// excludedSet builds an exclusion set from (i, j) pairs.
func excludedSet(pairs ...[2]int) map[GridIndex]struct{} {
	set := make(map[GridIndex]struct{}, len(pairs))
	for _, p := range pairs {
		set[GridIndex{I: p[0], J: p[1]}] = struct{}{}
	}
	return set
}

// RegionShapes returns the three region shapes for a footprint, in
// generation order: White, Black, Brown.
func RegionShapes(fp Footprint) []RegionShape {
	return []RegionShape{
		{
			Region: RegionWhite,
			IMin:   -3,
			IMax:   3,
			JMin:   -6,
			JMax:   4,
			Excluded: excludedSet(
				[2]int{-3, 3}, [2]int{-3, -1}, [2]int{-3, -3}, [2]int{-3, -5},
				[2]int{-2, -4}, [2]int{-2, -6},
				[2]int{2, -6},
				[2]int{3, -3}, [2]int{3, -5},
			),
			CenterX: -fp.Width / 2,
			CenterZ: 0.25,
		},
		{
			Region: RegionBlack,
			IMin:   -3,
			IMax:   3,
			JMin:   -6,
			JMax:   5,
			Excluded: excludedSet(
				[2]int{-3, 5}, [2]int{-3, -1}, [2]int{-3, -3}, [2]int{-3, -5},
				[2]int{-2, -4}, [2]int{-2, -6},
				[2]int{0, -6},
				[2]int{2, -4}, [2]int{2, -6},
				[2]int{3, 5}, [2]int{3, -1}, [2]int{3, -3}, [2]int{3, -5},
			),
			CenterX: 0,
			CenterZ: -fp.Height / 2,
		},
		{
			Region: RegionBrown,
			IMin:   -3,
			IMax:   3,
			JMin:   -6,
			JMax:   4,
			Excluded: excludedSet(
				[2]int{-3, -3}, [2]int{-3, -5},
				[2]int{-2, -6},
				[2]int{2, -4}, [2]int{2, -6},
				[2]int{3, 3}, [2]int{3, -1}, [2]int{3, -3}, [2]int{3, -5},
			),
			CenterX: fp.Width / 2,
			CenterZ: 0.25,
		},
	}
}

// Positions enumerates the surface positions of the shape's tiles,
// bottom row first, left to right within a row.
func (s RegionShape) Positions(fp Footprint) [][2]float64 {
	var out [][2]float64
	for j := s.JMin; j <= s.JMax; j++ {
		for i := s.IMin; i <= s.IMax; i++ {
			if _, skip := s.Excluded[GridIndex{I: i, J: j}]; skip {
				continue
			}
			// Matching parity selects the hex-packed sub-lattice.
			if !sameParity(i, j) {
				continue
			}
			x := s.CenterX + 1.5*fp.Width*float64(i)
			z := s.CenterZ + 0.75*fp.Height*float64(j)
			out = append(out, [2]float64{x, z})
		}
	}
	return out
}

func sameParity(i, j int) bool {
	return (i%2 == 0) == (j%2 == 0)
}

// GenerateBoard builds the tile set of all three regions.
// Generation is deterministic; any coordinate produced twice aborts with
// ErrRegionCollision.
func GenerateBoard(opts ...Option) (*Board, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return generateBoard(cfg.footprint)
}

func generateBoard(fp Footprint) (*Board, error) {
	if fp.Width <= 0 || fp.Height <= 0 {
		return nil, fmt.Errorf("%w: footprint %vx%v", ErrInvariantViolation, fp.Width, fp.Height)
	}

	b := newBoard()
	for _, shape := range RegionShapes(fp) {
		for _, pos := range shape.Positions(fp) {
			c := WorldToCube(pos[0], pos[1])
			if err := b.insertTile(c, shape.Region); err != nil {
				return nil, fmt.Errorf("generate %s region: %w", shape.Region, err)
			}
		}
	}
	return b, nil
}
