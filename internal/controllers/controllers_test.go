package controllers

import (
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"dropxhub/internal/structures"
	"dropxhub/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

const adminPassword = "letmein-please"

// testEnv wires real services over in-memory storage.
type testEnv struct {
	storage       *testutil.MockStorage
	cache         *testutil.MockCache
	catalog       services.CatalogServiceInterface
	preferences   services.PreferenceServiceInterface
	notifications services.NotificationServiceInterface
	admin         services.AdminServiceInterface

	catalogCtl      *CatalogController
	preferenceCtl   *PreferenceController
	notificationCtl *NotificationController
	adminCtl        *AdminController
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	conf := &structures.Config{
		Catalog: structures.CatalogConfig{SeedSamples: true, RelatedLimit: 4},
		Admin:   structures.AdminConfig{PasswordHash: string(hash)},
	}
	logger := &mockLogger{}
	env := &testEnv{
		storage: testutil.NewMockStorage(),
		cache:   testutil.NewMockCache(),
	}
	env.catalog = services.NewCatalogService(conf, env.storage, logger, &testutil.MockMetrics{})
	env.preferences = services.NewPreferenceService(env.storage, logger)
	env.notifications = services.NewNotificationService(env.storage, logger, services.NewLogAlerter(logger))
	env.admin = services.NewAdminService(conf, env.storage, logger, env.catalog)

	env.catalogCtl = NewCatalogController(conf, logger, env.catalog, env.preferences, env.cache)
	env.preferenceCtl = NewPreferenceController(logger, env.preferences)
	env.notificationCtl = NewNotificationController(logger, env.notifications)
	env.adminCtl = NewAdminController(logger, env.admin, env.catalog, env.notifications, env.cache)
	return env
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
