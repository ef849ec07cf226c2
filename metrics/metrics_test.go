package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/cardsheet/assemble"
)

var _ assemble.Observer = (*Metrics)(nil)

func newMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewWithRegisterer(reg), reg
}

func TestObserverCounts(t *testing.T) {
	m, _ := newMetrics(t)

	m.StateChanged(assemble.Initializing)
	m.StateChanged(assemble.EmittingCard)
	m.StateChanged(assemble.EmittingCard)
	m.CardRendered(2 * time.Millisecond)
	m.CardRendered(3 * time.Millisecond)
	m.StateChanged(assemble.Complete)
	m.Finished(2, 1, 40*time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("emitting_card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("complete")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Cards))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pages))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("complete")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CardLatency))
}

func TestFailedRunsSkipPages(t *testing.T) {
	m, _ := newMetrics(t)

	failure := &assemble.GenerationError{Index: 3, ID: "24CS004", Err: errors.New("boom")}
	m.Finished(3, 0, time.Second, failure)
	m.Finished(0, 0, 0, assemble.ErrNoRecords)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("rejected")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Pages))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "complete"},
		{assemble.ErrNoRecords, "rejected"},
		{fmt.Errorf("wrapped: %w", assemble.ErrGenerationFailed), "failed"},
		{errors.New("other"), "failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "Outcome(%v)", tt.err)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.StateChanged(assemble.Failed)
		m.CardRendered(time.Millisecond)
		m.Finished(1, 1, time.Millisecond, nil)
		m.IncrementRosterError("invalid")
	})
}

func TestRegistration(t *testing.T) {
	m, reg := newMetrics(t)
	m.IncrementRosterError("missing_column")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["cardsheet_roster_errors_total"])

	assert.Panics(t, func() { NewWithRegisterer(reg) }, "duplicate registration should panic")
}
