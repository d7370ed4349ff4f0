// trichess - CLI for three-player hexagonal chess.
package main

import (
	"github.com/SeamusWaldron/trichess/internal/cli"
)

func main() {
	cli.Execute()
}
