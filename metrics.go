package trichess

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/SeamusWaldron/trichess"

// sessionMetrics holds the counters a game session reports.
type sessionMetrics struct {
	invalidSelections metric.Int64Counter
	turnsCompleted    metric.Int64Counter
	cancellations     metric.Int64Counter
}

// newSessionMetrics creates the session counters. A nil meter uses the
// global provider, which is a no-op unless one is installed.
func newSessionMetrics(m metric.Meter) (*sessionMetrics, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}

	var (
		sm  sessionMetrics
		err error
	)

	sm.invalidSelections, err = m.Int64Counter(
		"trichess.selections.invalid",
		metric.WithDescription("Selections rejected by the turn controller"),
	)
	if err != nil {
		return nil, err
	}

	sm.turnsCompleted, err = m.Int64Counter(
		"trichess.turns.completed",
		metric.WithDescription("Turns passed to the next player"),
	)
	if err != nil {
		return nil, err
	}

	sm.cancellations, err = m.Int64Counter(
		"trichess.selections.cancelled",
		metric.WithDescription("Selections cancelled without a move"),
	)
	if err != nil {
		return nil, err
	}

	return &sm, nil
}

func playerAttr(p Player) metric.AddOption {
	return metric.WithAttributes(attribute.String("player", p.String()))
}

func (m *sessionMetrics) invalidSelection(p Player) {
	m.invalidSelections.Add(context.Background(), 1, playerAttr(p))
}

func (m *sessionMetrics) turnCompleted(p Player) {
	m.turnsCompleted.Add(context.Background(), 1, playerAttr(p))
}

func (m *sessionMetrics) cancelled(p Player) {
	m.cancellations.Add(context.Background(), 1, playerAttr(p))
}
