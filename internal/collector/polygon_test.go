package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoboAdvisor/internal/model"
)

// rewriteTransport sends every request to target, keeping path and query.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestPolygonFetcher(t *testing.T, handler http.HandlerFunc) *PolygonFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	hc := &http.Client{Transport: rewriteTransport{target: target}}
	return &PolygonFetcher{
		client:   polygon.NewWithClient("test-key", hc),
		Lookback: 100 * 24 * time.Hour,
		now:      func() time.Time { return time.Date(2018, 6, 9, 0, 0, 0, 0, time.UTC) },
	}
}

// Bars are 04:00 UTC on 2018-06-08 and 2018-06-07, out of order on purpose.
const polygonBody = `{"status":"OK","ticker":"MSFT","resultsCount":2,"adjusted":true,"results":[
{"o":711,"h":759.45,"l":706.715,"c":745.21,"v":2519200,"t":1528430400000},
{"o":741,"h":753.13,"l":710,"c":729.83,"v":2712300,"t":1528344000000}]}`

func TestPolygonFetcher_FetchDaily(t *testing.T) {
	var path string
	f := newTestPolygonFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(polygonBody))
	})

	raw, err := f.FetchDaily(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/v2/aggs/ticker/MSFT/range/1/day/"), path)
	assert.Equal(t, "MSFT", raw.Symbol)
	assert.Equal(t, "2018-06-08", raw.LastRefreshed)
	require.Len(t, raw.Bars, 2)
	assert.Equal(t, model.RawBar{
		model.FieldOpen:   "711",
		model.FieldHigh:   "759.45",
		model.FieldLow:    "706.715",
		model.FieldClose:  "745.21",
		model.FieldVolume: "2519200",
	}, raw.Bars["2018-06-08"])
	assert.Equal(t, "729.83", raw.Bars["2018-06-07"][model.FieldClose])
}

func TestPolygonFetcher_NoResults(t *testing.T) {
	f := newTestPolygonFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","ticker":"ZZZZ","resultsCount":0,"adjusted":true}`))
	})

	_, err := f.FetchDaily(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.True(t, model.IsSymbolNotFound(err), "got %v", err)
}

func TestNewPolygonFetcher_RequiresKey(t *testing.T) {
	_, err := NewPolygonFetcher("")
	assert.Error(t, err)
}
