package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	m := &dto.Metric{}
	if err := cv.WithLabelValues(labels...).Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestRepresentationsTotal(t *testing.T) {
	before := getCounterValue(RepresentationsTotal, AdapterRoute, "application/hal+json", "hal")
	RepresentationsTotal.WithLabelValues(AdapterRoute, "application/hal+json", "hal").Inc()
	after := getCounterValue(RepresentationsTotal, AdapterRoute, "application/hal+json", "hal")
	assert.Equal(t, before+1, after)
}

func TestRegistryGathers(t *testing.T) {
	LinkDiscoveriesTotal.WithLabelValues(ResultFound).Inc()
	TraversalHopsTotal.Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["hypermedia_link_discoveries_total"])
	assert.True(t, names["hypermedia_traversal_hops_total"])
}
