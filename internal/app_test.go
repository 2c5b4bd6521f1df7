package internal

import (
	"dropxhub/internal/controllers"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"dropxhub/internal/storage"
	"dropxhub/internal/structures"
	"dropxhub/internal/testutil"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, metricsEnabled bool) http.Handler {
	t.Helper()
	_, router := newTestMux(t)
	conf := &structures.Config{
		Catalog: structures.CatalogConfig{SeedSamples: true},
		Metrics: structures.MetricsConfig{Enabled: metricsEnabled},
	}
	logger := &routeTestLogger{}
	catalog := services.NewCatalogService(conf, storage.NewMemoryStorage(), logger, providers.NewMetricsProvider(&structures.Config{}))
	return NewHandler(conf, router, controllers.NewHealthController(catalog), logger, providers.NewMetricsProvider(&structures.Config{}))
}

func TestNewHandler_Health(t *testing.T) {
	h := newTestHandler(t, false)
	rr := serve(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	assert.Contains(t, rr.Body.String(), `"listings":4`)
}

func TestNewHandler_MetricsToggle(t *testing.T) {
	off := newTestHandler(t, false)
	assert.Equal(t, http.StatusNotFound, serve(off, http.MethodGet, "/metrics", "").Code)

	on := newTestHandler(t, true)
	rr := serve(on, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "go_goroutines"))
}

func TestNewHandler_RoutesAPI(t *testing.T) {
	h := newTestHandler(t, false)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/listings", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/nowhere", "").Code)
}

func TestNewApp_ListenFailureClosesResources(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()
	port := taken.Addr().(*net.TCPAddr).Port

	conf := &structures.Config{
		AppName:   "DropXHub",
		WebServer: structures.Server{Host: "127.0.0.1", Port: port},
	}
	logger := &testutil.MockLogger{}
	store := testutil.NewMockStorage()

	app, err := NewApp(conf, http.NewServeMux(), store, logger)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.True(t, logger.Closed)
	assert.True(t, store.Closed)
}
