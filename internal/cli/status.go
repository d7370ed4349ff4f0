package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess/internal/config"
	"github.com/SeamusWaldron/trichess/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database, configuration and active game",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "trichess status")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	cfgFile := config.ConfigFileUsed()
	if cfgFile == "" {
		cfgFile = "(defaults)"
	}
	fmt.Fprintf(out, "Config:   %s\n", cfgFile)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(out, "Database: %s\n", db.Path())
	if v, err := db.CurrentVersion(); err == nil {
		fmt.Fprintf(out, "Schema:   v%d\n", v)
	}

	games := storage.NewGameRepository(db)
	all, err := games.List(10000)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Games:    %d\n", len(all))
	if len(all) > 0 {
		fmt.Fprintf(out, "Last:     %s (%s)\n", shortID(all[0].GameID), all[0].StartedAt.Local().Format(time.RFC3339))
	}

	fmt.Fprintln(out)

	sf, err := openStateFile(db)
	if err != nil {
		return err
	}
	if active, ok := sf.Active(); ok {
		invalid, err := storage.NewEventRepository(db).GetByType(active.GameID, storage.EventSelectInvalid)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Active game: %s\n", active.GameID)
		fmt.Fprintf(out, "  Turn %d, %s to move, %d moves\n", active.Turn, active.ToMove(), active.Moves)
		fmt.Fprintf(out, "  Invalid selections: %d\n", len(invalid))
		fmt.Fprintf(out, "  Last played: %s\n", active.UpdatedAt.Local().Format(time.RFC3339))
		fmt.Fprintln(out, "  (Use 'trichess play --resume' to continue or 'trichess games end' to finish)")
	} else {
		fmt.Fprintln(out, "No active game")
	}

	return nil
}
