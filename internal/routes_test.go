package internal

import (
	"dropxhub/internal/controllers"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"dropxhub/internal/storage"
	"dropxhub/internal/structures"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- minimal mocks for routes test ---

type routeTestLogger struct{}

func (m *routeTestLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *routeTestLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *routeTestLogger) Close()                                                  {}

type routeTestCache struct{}

func (m *routeTestCache) Get(_ string) ([]byte, bool) { return nil, false }
func (m *routeTestCache) Set(_ string, _ []byte)      {}
func (m *routeTestCache) Clear()                      {}

func newTestMux(t *testing.T) (*http.ServeMux, providers.RouterProviderInterface) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("route-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	conf := &structures.Config{
		Catalog: structures.CatalogConfig{SeedSamples: true, RelatedLimit: 4},
		Admin:   structures.AdminConfig{PasswordHash: string(hash)},
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	logger := &routeTestLogger{}
	cache := &routeTestCache{}
	store := storage.NewMemoryStorage()
	metrics := providers.NewMetricsProvider(conf)

	catalog := services.NewCatalogService(conf, store, logger, metrics)
	prefs := services.NewPreferenceService(store, logger)
	notifications := services.NewNotificationService(store, logger, services.NewLogAlerter(logger))
	admin := services.NewAdminService(conf, store, logger, catalog)

	router := InitRoutes(
		controllers.NewCatalogController(conf, logger, catalog, prefs, cache),
		controllers.NewPreferenceController(logger, prefs),
		controllers.NewNotificationController(logger, notifications),
		controllers.NewAdminController(logger, admin, catalog, notifications, cache),
	)

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux, router
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	_, router := newTestMux(t)
	routes := router.GetRoutes()
	require.Len(t, routes, 41)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	for _, u := range []string{"/listings", "/listing", "/listing/download", "/search", "/review", "/preferences", "/notifications", "/admin/login", "/admin/listings", "/admin/import", "/admin/settings/api-key"} {
		assert.Contains(t, urls, u)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux, _ := newTestMux(t)

	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, http.MethodPost, "/listings", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, http.MethodGet, "/listing/download?id=1", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, http.MethodGet, "/admin/login", "").Code)
}

func TestInitRoutes_AdminRequiresLogin(t *testing.T) {
	mux, _ := newTestMux(t)

	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodGet, "/admin/stats", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodPost, "/admin/listing/delete?id=1", "").Code)

	require.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/admin/login", `{"password":"route-secret"}`).Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/admin/stats", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/admin/listing/delete?id=1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(mux, http.MethodGet, "/listing?id=1", "").Code)

	require.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/admin/logout", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodGet, "/admin/stats", "").Code)
}

func TestInitRoutes_PublicFlow(t *testing.T) {
	mux, _ := newTestMux(t)

	assert.Equal(t, http.StatusOK, serve(mux, http.MethodGet, "/listing?id=2", "").Code)
	assert.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/preferences/favorite?id=2", "").Code)

	rr := serve(mux, http.MethodGet, "/preferences", "")
	assert.JSONEq(t, `{"theme":"system","recentlyViewed":["2"],"favorites":["2"]}`, rr.Body.String())
}
