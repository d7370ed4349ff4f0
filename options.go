package trichess

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Option configures board generation and game sessions.
type Option func(*config)

type config struct {
	footprint   Footprint
	moveHistory bool
	logger      zerolog.Logger
	meter       metric.Meter
}

func defaultConfig() *config {
	return &config{
		footprint:   DefaultFootprint,
		moveHistory: true,
		logger:      zerolog.Nop(),
	}
}

// WithFootprint overrides the tile footprint used to lay out the regions.
// Footprints other than DefaultFootprint may produce colliding coordinates,
// in which case board generation fails.
func WithFootprint(width, height float64) Option {
	return func(c *config) {
		c.footprint = Footprint{Width: width, Height: height}
	}
}

// WithMoveHistory enables or disables move history tracking.
// When enabled (default), completed moves are kept and accessible via History().
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithLogger sets the logger used by a game session. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMeter sets the meter used for session counters.
// The default is the global OpenTelemetry meter, a no-op unless a provider is installed.
func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}
