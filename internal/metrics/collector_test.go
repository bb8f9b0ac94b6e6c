package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	c := New()

	c.IncUploaded(100)
	c.IncUploaded(50)
	c.IncFailed()
	c.IncSkipped()
	c.ObserveDuration(10 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.objectsTotal.WithLabelValues("uploaded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.objectsTotal.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.objectsTotal.WithLabelValues("skipped")))
	assert.Equal(t, float64(150), testutil.ToFloat64(c.bytesTotal))
}

func TestInflightGauge(t *testing.T) {
	c := New()

	c.InflightInc()
	c.InflightInc()
	assert.Equal(t, float64(2), testutil.ToFloat64(c.inflightWorkers))

	c.InflightDec()
	assert.Equal(t, float64(1), testutil.ToFloat64(c.inflightWorkers))
}

func TestCollectorsDoNotCollide(t *testing.T) {
	// Each collector owns its registry, so building two must not panic.
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
