package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNewMetrics(reg)

	m.ObserveTurn("rule", time.Millisecond, nil)
	m.ObserveTurn("rule", time.Millisecond, nil)
	m.ObserveTurn("memory", time.Millisecond, nil)
	m.ObserveTurn("", time.Millisecond, errors.New("no response"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.turns.WithLabelValues("rule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turnErrors))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.SessionOpened()
	m.SessionEvicted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsEvicted))

	count, err := testutil.GatherAndCount(reg, "eliza_turn_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTurn("rule", time.Millisecond, nil)
		m.SessionOpened()
		m.SessionClosed()
		m.SessionEvicted()
	})
}
