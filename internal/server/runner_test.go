package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	v1 "github.com/vomadrid/vomadrid/internal/api/v1"
	"github.com/vomadrid/vomadrid/internal/api/v1/mocks"
	"github.com/vomadrid/vomadrid/internal/catalog"
	"github.com/vomadrid/vomadrid/internal/metrics"
)

func newTestRunner(t *testing.T, gatherer prometheus.Gatherer) (*Runner, *mocks.MockCatalog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cat := mocks.NewMockCatalog(ctrl)
	api, err := v1.New(v1.ServerDeps{Catalog: cat}, nil)
	require.NoError(t, err)
	return NewRunner(Config{Addr: "127.0.0.1:0"}, api, gatherer, nil), cat
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Healthz(t *testing.T) {
	r, _ := newTestRunner(t, nil)

	w := get(t, r.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.CacheLookup("movies:active", true)
	r, _ := newTestRunner(t, reg)

	w := get(t, r.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `vomadrid_cache_lookups_total{keyspace="movies",result="hit"} 1`)
}

func TestRouter_NoMetricsWithoutGatherer(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	assert.Equal(t, http.StatusNotFound, get(t, r.Handler(), "/metrics").Code)
}

func TestRouter_MountsAPI(t *testing.T) {
	r, cat := newTestRunner(t, nil)
	cat.EXPECT().ListCinemas(gomock.Any()).Return([]catalog.Cinema{{ID: "c1", Name: "Golem"}}, nil)

	w := get(t, r.Handler(), "/api/v1/cinemas")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Golem")
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestRouter_RecoversPanics(t *testing.T) {
	r, cat := newTestRunner(t, nil)
	cat.EXPECT().Facets(gomock.Any()).DoAndReturn(func(context.Context) (catalog.Facets, error) {
		panic("boom")
	})

	w := get(t, r.Handler(), "/api/v1/facets")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRunner_ServeAndShutdown(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunner_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	r, _ := newTestRunner(t, nil)
	r.config.Addr = ln.Addr().String()
	assert.Error(t, r.Run(context.Background()), "address already in use")
}
