// Package trichess provides the rule-geometry core of a three-player chess
// variant played on three interlocking hexagonal regions (White, Brown and
// Black).
//
// # Features
//
//   - Exact mapping between board-surface positions and cube coordinates
//   - Deterministic generation of the 87-tile board
//   - Per-player movement direction sets under 120° rotational symmetry
//   - Three-way turn rotation with a selection phase
//
// # Quick Start
//
// Create a game session and inspect a piece:
//
//	game, err := trichess.NewGame()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := game.Select(trichess.HomeStart(trichess.White)); err != nil {
//	    log.Fatal(err)
//	}
//
//	dirs, sliding, err := game.SelectedDirections()
//	fmt.Println(dirs, sliding, err)
//
// # Standalone Geometry
//
// The geometry functions need no session:
//
//	c := trichess.WorldToCube(0, -0.5) // (0,0,0)
//	x, z, _ := trichess.CubeToWorld(c) // 0, -0.5
//
//	dirs, sliding, _ := trichess.PossibleDirections(trichess.Brown, trichess.Rook)
//
// # Turn Order
//
// Turns rotate White -> Brown -> Black -> White. A turn counter starts at 1
// and increases by one for every completed move.
//
// Direction sets are raw: walking them against board occupancy, blocking and
// captures is left to the caller.
package trichess
