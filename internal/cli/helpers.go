package cli

import (
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/SeamusWaldron/trichess"
	"github.com/SeamusWaldron/trichess/internal/recorder"
	"github.com/SeamusWaldron/trichess/internal/storage"
)

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func openStateFile(db *storage.DB) (*recorder.StateFile, error) {
	sf, err := recorder.NewStateFile(recorder.StatePathFor(db.Path()))
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// gameOptions builds game options from the loaded settings.
func gameOptions() []trichess.Option {
	opts := []trichess.Option{
		trichess.WithFootprint(settings.Board.TileWidth, settings.Board.TileHeight),
		trichess.WithMoveHistory(settings.History.Enabled),
		trichess.WithLogger(logger),
	}
	if !settings.Metrics.Enabled {
		opts = append(opts, trichess.WithMeter(noop.NewMeterProvider().Meter("trichess")))
	}
	return opts
}

// parseCubeArg parses a coordinate argument such as "-5,1,4".
func parseCubeArg(s string) (trichess.Cube, error) {
	c, err := trichess.ParseCube(s)
	if err != nil {
		return trichess.Cube{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return c, nil
}

func formatCubes(cs []trichess.Cube) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
