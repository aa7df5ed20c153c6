package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPreviewMetrics(reg)

	m.ObservePreview("ethereum", "ok", 10*time.Millisecond)
	m.ObservePreview("ethereum", "ok", 20*time.Millisecond)
	m.ObservePreview("", "unknown_network", time.Millisecond)
	m.ObserveRow("ERC20", true)
	m.ObserveRow("ERC721", false)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.previews.WithLabelValues("ethereum", "ok")), 0.0001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.previews.WithLabelValues(UnknownNetwork, "unknown_network")), 0.0001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.rows.WithLabelValues("ERC721", "unavailable")), 0.0001)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestPreviewMetrics_NilSafe(t *testing.T) {
	var m *PreviewMetrics
	assert.NotPanics(t, func() {
		m.ObservePreview("ethereum", "ok", time.Second)
		m.ObserveRow("NONE", true)
	})
}
