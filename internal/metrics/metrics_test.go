package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOrder(t *testing.T) {
	m := NewServerMetrics(prometheus.NewRegistry(), "menu")

	m.ObserveOrder("created")
	m.ObserveOrder("created")
	m.ObserveOrder("not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Orders.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Orders.WithLabelValues("not_found")))

	var nilMetrics *ServerMetrics
	assert.NotPanics(t, func() { nilMetrics.ObserveOrder("created") })
}
