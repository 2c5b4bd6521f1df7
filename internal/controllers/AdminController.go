package controllers

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"fmt"
	"net/http"
	"strings"
)

type AdminController struct {
	logger        providers.Logger
	admin         services.AdminServiceInterface
	catalog       services.CatalogServiceInterface
	notifications services.NotificationServiceInterface
	cache         providers.CacheProviderInterface
}

func NewAdminController(logger providers.Logger, admin services.AdminServiceInterface, catalog services.CatalogServiceInterface, notifications services.NotificationServiceInterface, cache providers.CacheProviderInterface) *AdminController {
	return &AdminController{
		logger:        logger,
		admin:         admin,
		catalog:       catalog,
		notifications: notifications,
		cache:         cache,
	}
}

// RequireAuth rejects requests while the admin session flag is unset.
func (ac *AdminController) RequireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ac.admin.IsAuthenticated() {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}
		next(w, r)
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	if err := ac.admin.Login(req.Password); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}

func (ac *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.admin.Logout(); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}

func (ac *AdminController) Listings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, ac.catalog.Manage(models.ManageQuery{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		SortBy:   models.ManageSort(q.Get("sortBy")),
		Order:    models.SortOrder(q.Get("order")),
	}))
}

// AddListing publishes the form and announces the new listing.
func (ac *AdminController) AddListing(w http.ResponseWriter, r *http.Request) {
	var form models.ListingForm
	if !decodeBody(w, r, maxRequestBodySize, &form) {
		return
	}
	listing, err := ac.admin.PublishListing(form)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}

	_, err = ac.notifications.AddNotification(
		"New App Available",
		fmt.Sprintf("%s %s has been published", listing.Name, listing.Version),
		models.SeveritySuccess,
		"/app/"+listing.ID,
	)
	if err != nil {
		ac.logger.Warnf(providers.TypePost, "Unable to announce listing %s: %s", listing.ID, err)
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (ac *AdminController) EditListing(w http.ResponseWriter, r *http.Request) {
	var listing models.Listing
	if !decodeBody(w, r, maxRequestBodySize, &listing) {
		return
	}
	if listing.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id is required"})
		return
	}
	if err := ac.admin.SaveListing(listing); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	saved, _ := ac.catalog.GetListingByID(listing.ID)
	writeJSON(w, http.StatusOK, saved)
}

func (ac *AdminController) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := ac.catalog.DeleteListing(id); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (ac *AdminController) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}
	if err := ac.catalog.AddCategory(name); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ac.catalog.Categories())
}

func (ac *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.admin.Stats())
}

func (ac *AdminController) Settings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.admin.Settings())
}

func (ac *AdminController) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AdminSettings
	if !decodeBody(w, r, maxRequestBodySize, &settings) {
		return
	}
	if err := ac.admin.UpdateSettings(settings); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ac.admin.Settings())
}

func (ac *AdminController) ResetSettings(w http.ResponseWriter, r *http.Request) {
	if err := ac.admin.ResetSettings(); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ac.admin.Settings())
}

type apiKeyResponse struct {
	APIKey string `json:"apiKey"`
}

func (ac *AdminController) GenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	key, err := ac.admin.GenerateAPIKey()
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, apiKeyResponse{APIKey: key})
}

func (ac *AdminController) Account(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.admin.Account())
}

func (ac *AdminController) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.AdminAccount
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	account, err := ac.admin.UpdateAccount(req)
	if err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (ac *AdminController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordChange
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	if err := ac.admin.ChangePassword(req); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}

func (ac *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	export := ac.admin.Export()
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=dropx-hub-export-%s.json", export.ExportDate[:10]))
	writeJSON(w, http.StatusOK, export)
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (ac *AdminController) Import(w http.ResponseWriter, r *http.Request) {
	var data models.DataExport
	if !decodeBody(w, r, maxImportBodySize, &data) {
		return
	}
	if err := ac.admin.Import(data); err != nil {
		writeError(w, r, ac.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Imported: len(data.Apps)})
}

// ClearCache drops every cached catalog response.
func (ac *AdminController) ClearCache(w http.ResponseWriter, r *http.Request) {
	ac.cache.Clear()
	writeJSON(w, http.StatusOK, statusOK)
}
