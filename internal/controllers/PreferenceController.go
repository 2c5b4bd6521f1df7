package controllers

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"net/http"
)

type PreferenceController struct {
	logger      providers.Logger
	preferences services.PreferenceServiceInterface
}

func NewPreferenceController(logger providers.Logger, preferences services.PreferenceServiceInterface) *PreferenceController {
	return &PreferenceController{logger: logger, preferences: preferences}
}

func (pc *PreferenceController) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.preferences.Snapshot())
}

type themeRequest struct {
	Theme models.Theme `json:"theme"`
}

func (pc *PreferenceController) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	if err := pc.preferences.SetTheme(req.Theme); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pc.preferences.Snapshot())
}

type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func (pc *PreferenceController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := pc.preferences.ToggleFavorite(id); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{ID: id, Favorite: pc.preferences.IsFavorite(id)})
}

func (pc *PreferenceController) ClearRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	if err := pc.preferences.ClearRecentlyViewed(); err != nil {
		writeError(w, r, pc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK)
}
