package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheLookup("hit")
	m.CacheLookup("hit")
	m.CacheLookup("miss")
	m.Resolution("parent_imdb")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LibraryCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LibraryCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("parent_imdb")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup("hit")
		m.LibraryCall("VideoLibrary.GetMovies", "ok")
		m.Resolution("title_only")
		m.ProviderCall("search", "ok")
		m.Ranked(3)
	})
}
