// Package metrics exports card generation measurements to Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tsawler/cardsheet/assemble"
)

// Metrics observes generation runs. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// Runs by outcome: "complete", "failed", "rejected"
	Runs *prometheus.CounterVec

	// State transitions by target state
	Transitions *prometheus.CounterVec

	Cards        prometheus.Counter
	Pages        prometheus.Counter
	CardLatency  prometheus.Histogram
	RunLatency   prometheus.Histogram
	RosterErrors *prometheus.CounterVec
}

// New registers the metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cardsheet_generation_runs_total",
			Help: "Card sheet generation runs by outcome",
		}, []string{"outcome"}),

		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cardsheet_state_transitions_total",
			Help: "Generator state transitions by target state",
		}, []string{"state"}),

		Cards: f.NewCounter(prometheus.CounterOpts{
			Name: "cardsheet_cards_rendered_total",
			Help: "Cards drawn across all runs",
		}),

		Pages: f.NewCounter(prometheus.CounterOpts{
			Name: "cardsheet_pages_emitted_total",
			Help: "Pages in completed documents",
		}),

		CardLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardsheet_card_render_duration_seconds",
			Help:    "Time to render one card including its code image",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		RunLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardsheet_generation_duration_seconds",
			Help:    "Duration of full generation runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		RosterErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cardsheet_roster_errors_total",
			Help: "Rejected roster uploads by reason",
		}, []string{"reason"}),
	}
}

// StateChanged implements assemble.Observer.
func (m *Metrics) StateChanged(s assemble.State) {
	if m != nil {
		m.Transitions.WithLabelValues(s.String()).Inc()
	}
}

// CardRendered implements assemble.Observer.
func (m *Metrics) CardRendered(d time.Duration) {
	if m != nil {
		m.Cards.Inc()
		m.CardLatency.Observe(d.Seconds())
	}
}

// Finished implements assemble.Observer.
func (m *Metrics) Finished(cards, pages int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(Outcome(err)).Inc()
	if err == nil {
		m.Pages.Add(float64(pages))
		m.RunLatency.Observe(d.Seconds())
	}
}

// IncrementRosterError records a rejected upload.
func (m *Metrics) IncrementRosterError(reason string) {
	if m != nil {
		m.RosterErrors.WithLabelValues(reason).Inc()
	}
}

// Outcome classifies a run result for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "complete"
	case errors.Is(err, assemble.ErrPrecondition):
		return "rejected"
	default:
		return "failed"
	}
}
