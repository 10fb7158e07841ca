package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IngestsTotal.WithLabelValues("delimited-text", "ok").Inc()
	m.RowsParsed.Add(12)
	m.RowsDropped.Add(3)
	m.IngestDuration.Observe(0.25)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.IngestsTotal.WithLabelValues("delimited-text", "ok")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.RowsParsed))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RowsDropped))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}
