package controllers

import (
	"dropxhub/internal/models"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, env *testEnv) {
	t.Helper()
	rr := do(env.adminCtl.Login, http.MethodPost, "/admin/login", `{"password":"`+adminPassword+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.Login, http.MethodPost, "/admin/login", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, env.admin.IsAuthenticated())

	login(t, env)
	assert.True(t, env.admin.IsAuthenticated())

	rr = do(env.adminCtl.Logout, http.MethodPost, "/admin/logout", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, env.admin.IsAuthenticated())
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	h := env.adminCtl.RequireAuth(env.adminCtl.Stats)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	login(t, env)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 4, decode[models.CatalogStats](t, rr).TotalApps)
}

func TestAdminListings_Manage(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.Listings, http.MethodGet, "/admin/listings?sortBy=name&order=asc", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"2", "3", "4", "1"}, listingIDs(decode[[]models.Listing](t, rr)))
}

func TestAdminAddListing(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"X","version":"1.0","description":"d","downloadLink":"http://x"}`
	rr := do(env.adminCtl.AddListing, http.MethodPost, "/admin/listing/add", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	created := decode[models.Listing](t, rr)
	front := env.catalog.Listings()[0]
	assert.Equal(t, created.ID, front.ID)
	assert.Zero(t, front.Downloads)
	assert.Zero(t, front.Views)
	assert.Empty(t, front.Categories)

	n := env.notifications.Notifications()[0]
	assert.Equal(t, "New App Available", n.Title)
	assert.Equal(t, "/app/"+created.ID, n.Link)
}

func TestAdminAddListing_MissingField(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.AddListing, http.MethodPost, "/admin/listing/add", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 4, env.catalog.Count())
	assert.Len(t, env.notifications.Notifications(), 2)
}

func TestAdminEditListing(t *testing.T) {
	env := newTestEnv(t)
	l, _ := env.catalog.GetListingByID("2")
	l.Version = "3.1.0"
	body, err := json.Marshal(l)
	require.NoError(t, err)

	rr := do(env.adminCtl.EditListing, http.MethodPost, "/admin/listing/edit", string(body))
	require.Equal(t, http.StatusOK, rr.Code)
	saved := decode[models.Listing](t, rr)
	assert.Equal(t, "3.1.0", saved.Version)
	assert.NotEqual(t, l.UpdatedAt, saved.UpdatedAt)

	rr = do(env.adminCtl.EditListing, http.MethodPost, "/admin/listing/edit", `{"id":"zzz"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = do(env.adminCtl.EditListing, http.MethodPost, "/admin/listing/edit", `{"name":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminDeleteListing(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.DeleteListing, http.MethodPost, "/admin/listing/delete?id=1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, env.catalog.Count())

	rr = do(env.adminCtl.DeleteListing, http.MethodPost, "/admin/listing/delete?id=1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminAddCategory(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.AddCategory, http.MethodPost, "/admin/category", `{"name":"  Art  "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	cats := decode[[]string](t, rr)
	assert.Equal(t, "Adventure", cats[0])
	assert.Contains(t, cats, "Art")

	rr = do(env.adminCtl.AddCategory, http.MethodPost, "/admin/category", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminSettings(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.Settings, http.MethodGet, "/admin/settings", "")
	assert.Equal(t, models.DefaultAdminSettings(), decode[models.AdminSettings](t, rr))

	s := models.DefaultAdminSettings()
	s.FontSize = 18
	body, _ := json.Marshal(s)
	rr = do(env.adminCtl.UpdateSettings, http.MethodPost, "/admin/settings/update", string(body))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 18, env.admin.Settings().FontSize)

	s.FontSize = 99
	body, _ = json.Marshal(s)
	rr = do(env.adminCtl.UpdateSettings, http.MethodPost, "/admin/settings/update", string(body))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(env.adminCtl.ResetSettings, http.MethodPost, "/admin/settings/reset", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.DefaultAdminSettings(), env.admin.Settings())
}

func TestAdminAccount(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.UpdateAccount, http.MethodPost, "/admin/account/update", `{"email":"me@example.com","username":"boss"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.AdminAccount{Email: "me@example.com", Username: "boss"}, decode[models.AdminAccount](t, rr))

	rr = do(env.adminCtl.UpdateAccount, http.MethodPost, "/admin/account/update", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(env.adminCtl.Account, http.MethodGet, "/admin/account", "")
	assert.Equal(t, "me@example.com", decode[models.AdminAccount](t, rr).Email)
}

func TestAdminUpdateAccount_InvalidUsernameKeepsEmail(t *testing.T) {
	env := newTestEnv(t)
	before := env.admin.Account()

	rr := do(env.adminCtl.UpdateAccount, http.MethodPost, "/admin/account/update", `{"email":"other@example.com","username":"ab"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[errorResponse](t, rr).Fields, "username")
	assert.Equal(t, before, env.admin.Account())
}

func TestAdminGenerateAPIKey(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.GenerateAPIKey, http.MethodPost, "/admin/settings/api-key", "")
	require.Equal(t, http.StatusOK, rr.Code)

	key := decode[apiKeyResponse](t, rr).APIKey
	assert.True(t, strings.HasPrefix(key, "sk_admin_"))
	assert.Equal(t, key, env.admin.Settings().APIKey)

	rr = do(env.adminCtl.GenerateAPIKey, http.MethodPost, "/admin/settings/api-key", "")
	assert.NotEqual(t, key, decode[apiKeyResponse](t, rr).APIKey)
}

func TestAdminChangePassword_TooLong(t *testing.T) {
	env := newTestEnv(t)
	long := strings.Repeat("x", 80)
	body := `{"currentPassword":"` + adminPassword + `","newPassword":"` + long + `","confirmPassword":"` + long + `"}`
	rr := do(env.adminCtl.ChangePassword, http.MethodPost, "/admin/password", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NoError(t, env.admin.Login(adminPassword))
}

func TestAdminChangePassword(t *testing.T) {
	env := newTestEnv(t)
	body := `{"currentPassword":"` + adminPassword + `","newPassword":"brand-new-pass","confirmPassword":"brand-new-pass"}`
	rr := do(env.adminCtl.ChangePassword, http.MethodPost, "/admin/password", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, env.admin.Login("brand-new-pass"))

	rr = do(env.adminCtl.ChangePassword, http.MethodPost, "/admin/password", `{"currentPassword":"x","newPassword":"short","confirmPassword":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminExportImport(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.adminCtl.Export, http.MethodGet, "/admin/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Disposition"), "attachment; filename=dropx-hub-export-"))

	export := decode[models.DataExport](t, rr)
	assert.Len(t, export.Apps, 4)

	export.Apps = export.Apps[2:]
	body, err := json.Marshal(export)
	require.NoError(t, err)
	rr = do(env.adminCtl.Import, http.MethodPost, "/admin/import", string(body))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, importResponse{Imported: 2}, decode[importResponse](t, rr))
	assert.Equal(t, []string{"3", "4"}, listingIDs(env.catalog.Listings()))

	rr = do(env.adminCtl.Import, http.MethodPost, "/admin/import", `{"categories":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminClearCache(t *testing.T) {
	env := newTestEnv(t)
	do(env.catalogCtl.Categories, http.MethodGet, "/categories", "")
	require.NotEmpty(t, env.cache.Data)

	rr := do(env.adminCtl.ClearCache, http.MethodPost, "/admin/cache/clear", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, env.cache.Data)
}
