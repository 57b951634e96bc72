package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerObserveDurationRecordsElapsed(t *testing.T) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "test_timer_duration_seconds",
	})

	timer := NewTimer()
	time.Sleep(time.Millisecond)
	timer.ObserveDuration(histogram)

	var metric io_prometheus_client.Metric
	require.NoError(t, histogram.Write(&metric))
	assert.EqualValues(t, 1, metric.GetHistogram().GetSampleCount())
	assert.Greater(t, metric.GetHistogram().GetSampleSum(), 0.0)
}

func TestHandlerIsNotNil(t *testing.T) {
	assert.NotNil(t, Handler())
}
