package httphandler

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_UnmatchedPathsShareOneLabel(t *testing.T) {
	server := newTestServer(t, listingAPI(), &fakePrefs{})

	for _, p := range []string{"/no-such/one", "/no-such/two"} {
		resp, err := http.Get(server.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	seenUnmatched := false
	for _, mf := range families {
		if mf.GetName() != "credpanel_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() != "route" {
					continue
				}
				assert.NotContains(t, []string{"/no-such/one", "/no-such/two"}, l.GetValue())
				if l.GetValue() == "unmatched" {
					seenUnmatched = true
				}
			}
		}
	}
	assert.True(t, seenUnmatched, "expected a shared label for unmatched paths")
}
