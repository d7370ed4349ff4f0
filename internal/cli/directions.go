package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/render"
)

var directionsFrom string

var directionsCmd = &cobra.Command{
	Use:   "directions <player> <kind>",
	Short: "List movement directions for a piece kind",
	Long: `Print the direction vectors a piece kind may move along for a player,
and whether it slides. With --from, also list the on-board tiles one step
away along each direction.

Examples:
  trichess directions white rook
  trichess directions brown N --from 5,-4,-1`,
	Args: cobra.ExactArgs(2),
	RunE: runDirections,
}

func init() {
	rootCmd.AddCommand(directionsCmd)
	directionsCmd.Flags().StringVar(&directionsFrom, "from", "", "Origin coordinate a,b,c")
}

func runDirections(cmd *cobra.Command, args []string) error {
	player, err := trichess.ParsePlayer(args[0])
	if err != nil {
		return err
	}
	kind, err := trichess.ParsePieceKind(args[1])
	if err != nil {
		return err
	}

	dirs, sliding, err := trichess.PossibleDirections(player, kind)
	if err != nil {
		return fmt.Errorf("%s %s: %w", player, kind, err)
	}

	out := cmd.OutOrStdout()
	axes := trichess.AxesFor(player)
	fmt.Fprintf(out, "%s %s\n", player, kind)
	fmt.Fprintf(out, "Axes:       forward %s  right %s  left %s\n", axes.Forward, axes.Right, axes.Left)
	fmt.Fprintf(out, "Sliding:    %t\n", sliding)
	fmt.Fprintf(out, "Directions: %s\n", formatCubes(dirs))

	if directionsFrom == "" {
		return nil
	}

	from, err := parseCubeArg(directionsFrom)
	if err != nil {
		return err
	}
	b, err := trichess.GenerateBoard(trichess.WithFootprint(settings.Board.TileWidth, settings.Board.TileHeight))
	if err != nil {
		return err
	}
	if !b.Contains(from) {
		return fmt.Errorf("%w: %s", trichess.ErrOffBoard, from)
	}

	var targets []trichess.Cube
	onBoard := render.Targets(b, from, dirs)
	for _, d := range dirs {
		if to := from.Add(d); onBoard[to] {
			targets = append(targets, to)
		}
	}
	fmt.Fprintf(out, "Targets:    %s\n", formatCubes(targets))
	return nil
}
