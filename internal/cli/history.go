package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/storage"
)

var (
	historyGameID string
	historyFormat string
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the moves of a game",
	Long: `Print the move list of a recorded game in text or JSON format.
Without --id the most recent game is used.

Examples:
  trichess history
  trichess history --id <game_id> --format json
  trichess history --format txt -o moves.txt`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyGameID, "id", "", "Game ID")
	historyCmd.Flags().StringVar(&historyFormat, "format", "txt", "Output format (txt, json)")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Output file (default: stdout)")
}

type historyJSON struct {
	GameID string           `json:"game_id"`
	Moves  []historyMoveRow `json:"moves"`
}

type historyMoveRow struct {
	Index    int                 `json:"index"`
	TsMs     int64               `json:"ts_ms"`
	Notation string              `json:"notation"`
	Move     trichess.MoveRecord `json:"move"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyFormat != "txt" && historyFormat != "json" {
		return fmt.Errorf("unknown format %q (txt, json)", historyFormat)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	gameID := historyGameID
	if gameID == "" {
		last, err := storage.NewGameRepository(db).GetLast()
		if err != nil {
			return err
		}
		if last == nil {
			return fmt.Errorf("no games recorded")
		}
		gameID = last.GameID
	}

	rows, err := storage.NewMoveRepository(db).GetByGame(gameID)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if historyOutput != "" {
		f, err := os.Create(historyOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if historyFormat == "json" {
		doc := historyJSON{GameID: gameID, Moves: make([]historyMoveRow, 0, len(rows))}
		for _, r := range rows {
			doc.Moves = append(doc.Moves, historyMoveRow{
				Index:    r.MoveIndex,
				TsMs:     r.TsMs,
				Notation: r.Notation,
				Move:     r.Record,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	moves := make([]trichess.MoveRecord, len(rows))
	for i, r := range rows {
		moves[i] = r.Record
	}
	if len(moves) == 0 {
		fmt.Fprintf(out, "Game %s has no moves\n", shortID(gameID))
		return nil
	}
	fmt.Fprintln(out, trichess.FormatMoves(moves))
	return nil
}
