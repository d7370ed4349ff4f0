package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess/internal/storage"
)

var (
	gamesLimit int
	gamesID    string
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage recorded games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent games",
	RunE:  runGamesList,
}

var gamesEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active game (or the game given by --id)",
	RunE:  runGamesEnd,
}

var gamesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a game and its moves",
	RunE:  runGamesDelete,
}

func init() {
	rootCmd.AddCommand(gamesCmd)
	gamesCmd.AddCommand(gamesListCmd, gamesEndCmd, gamesDeleteCmd)

	gamesListCmd.Flags().IntVarP(&gamesLimit, "limit", "n", 10, "Number of games to show")
	gamesEndCmd.Flags().StringVar(&gamesID, "id", "", "Game ID")
	gamesDeleteCmd.Flags().StringVar(&gamesID, "id", "", "Game ID")
}

func runGamesList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := storage.NewGameRepository(db).List(gamesLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games recorded")
		return nil
	}

	moveRepo := storage.NewMoveRepository(db)
	fmt.Fprintf(out, "%-8s  %-20s  %-8s  %5s  %s\n", "ID", "Started", "Duration", "Moves", "Notes")
	for _, g := range games {
		n, err := moveRepo.Count(g.GameID)
		if err != nil {
			return err
		}

		duration := "active"
		if g.DurationMs != nil {
			duration = formatDuration(time.Duration(*g.DurationMs) * time.Millisecond)
		}
		notes := ""
		if g.Notes != nil {
			notes = *g.Notes
		}

		fmt.Fprintf(out, "%-8s  %-20s  %-8s  %5d  %s\n",
			shortID(g.GameID), g.StartedAt.Local().Format("2006-01-02 15:04:05"), duration, n, notes)
	}
	return nil
}

func runGamesEnd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sf, err := openStateFile(db)
	if err != nil {
		return err
	}

	id := gamesID
	if id == "" {
		id = sf.ActiveGameID()
	}
	if id == "" {
		return fmt.Errorf("no active game; specify --id")
	}

	if err := storage.NewGameRepository(db).End(id); err != nil {
		return err
	}
	if err := sf.Forget(id); err != nil {
		return err
	}

	logger.Info().Str("game", id).Msg("Game ended")
	fmt.Fprintf(cmd.OutOrStdout(), "Ended game %s\n", shortID(id))
	return nil
}

func runGamesDelete(cmd *cobra.Command, args []string) error {
	if gamesID == "" {
		return fmt.Errorf("specify --id")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewGameRepository(db).Delete(gamesID); err != nil {
		return err
	}

	sf, err := openStateFile(db)
	if err != nil {
		return err
	}
	if err := sf.Forget(gamesID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted game %s\n", shortID(gamesID))
	return nil
}
