package controllers

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"dropxhub/internal/structures"
	"fmt"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	defaultTopLimit      = 10
	defaultTrendingLimit = 10
	defaultFeaturedLimit = 5
	defaultNewLimit      = 10
)

type CatalogController struct {
	logger       providers.Logger
	catalog      services.CatalogServiceInterface
	preferences  services.PreferenceServiceInterface
	cache        providers.CacheProviderInterface
	relatedLimit int
}

func NewCatalogController(conf *structures.Config, logger providers.Logger, catalog services.CatalogServiceInterface, preferences services.PreferenceServiceInterface, cache providers.CacheProviderInterface) *CatalogController {
	return &CatalogController{
		logger:       logger,
		catalog:      catalog,
		preferences:  preferences,
		cache:        cache,
		relatedLimit: conf.Catalog.RelatedLimit,
	}
}

// serveFromCacheOrCompute caches read-only responses. Keys carry the catalog
// revision, so any mutation makes older entries unreachable.
func (cc *CatalogController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() any) {
	cacheKey = strconv.FormatUint(cc.catalog.Revision(), 10) + ":" + cacheKey
	if data, ok := cc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gson, err := json.Marshal(compute())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (cc *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := models.BrowseQuery{
		Search:       q.Get("q"),
		Category:     q.Get("category"),
		FeaturedOnly: cast.ToBool(q.Get("featured")),
		Sort:         models.BrowseSort(q.Get("sort")),
	}
	key := fmt.Sprintf("list:%q:%q:%t:%s", query.Search, query.Category, query.FeaturedOnly, query.Sort)
	cc.serveFromCacheOrCompute(w, key, func() any {
		return cc.catalog.Browse(query)
	})
}

type detailResponse struct {
	Listing            models.Listing   `json:"app"`
	Related            []models.Listing `json:"related"`
	Favorite           bool             `json:"favorite"`
	RatingDistribution [5]int           `json:"ratingDistribution"`
}

// Detail records the view before reading, so the response already counts it.
func (cc *CatalogController) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := cc.catalog.IncrementViews(id); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	if err := cc.preferences.AddToRecentlyViewed(id); err != nil {
		cc.logger.Warnf(providers.TypeGet, "Unable to record recently viewed %s: %s", id, err)
	}

	listing, found := cc.catalog.GetListingByID(id)
	if !found {
		writeError(w, r, cc.logger, services.ErrListingNotFound)
		return
	}
	dist, _ := cc.catalog.RatingDistribution(id)
	writeJSON(w, http.StatusOK, detailResponse{
		Listing:            listing,
		Related:            cc.catalog.GetRelatedListings(id, cc.relatedLimit),
		Favorite:           cc.preferences.IsFavorite(id),
		RatingDistribution: dist,
	})
}

type downloadResponse struct {
	DownloadLink string `json:"downloadLink"`
	Downloads    int    `json:"downloads"`
}

func (cc *CatalogController) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := cc.catalog.IncrementDownloads(id); err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	listing, _ := cc.catalog.GetListingByID(id)
	writeJSON(w, http.StatusOK, downloadResponse{DownloadLink: listing.DownloadLink, Downloads: listing.Downloads})
}

func (cc *CatalogController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	cc.serveFromCacheOrCompute(w, fmt.Sprintf("search:%q", query), func() any {
		return cc.catalog.SearchListings(query)
	})
}

func (cc *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	cc.serveFromCacheOrCompute(w, "categories", func() any {
		return cc.catalog.Categories()
	})
}

func (cc *CatalogController) Top(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit := queryLimit(r, defaultTopLimit)
	cc.serveFromCacheOrCompute(w, fmt.Sprintf("top:%q:%d", category, limit), func() any {
		return cc.catalog.GetTopListings(category, limit)
	})
}

func (cc *CatalogController) Trending(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultTrendingLimit)
	cc.serveFromCacheOrCompute(w, fmt.Sprintf("trending:%d", limit), func() any {
		return cc.catalog.GetTrendingListings(limit)
	})
}

func (cc *CatalogController) Featured(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultFeaturedLimit)
	cc.serveFromCacheOrCompute(w, fmt.Sprintf("featured:%d", limit), func() any {
		return cc.catalog.GetFeaturedListings(limit)
	})
}

func (cc *CatalogController) NewReleases(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultNewLimit)
	cc.serveFromCacheOrCompute(w, fmt.Sprintf("new:%d", limit), func() any {
		return cc.catalog.GetNewReleases(limit)
	})
}

func (cc *CatalogController) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	stars := cast.ToInt(r.URL.Query().Get("stars"))
	query := models.ReviewQuery{Stars: stars, Sort: models.ReviewSort(r.URL.Query().Get("sort"))}

	reviews, found := cc.catalog.Reviews(id, query)
	if !found {
		writeError(w, r, cc.logger, services.ErrListingNotFound)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (cc *CatalogController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var form models.ReviewForm
	if !decodeBody(w, r, maxRequestBodySize, &form) {
		return
	}
	review, err := cc.catalog.SubmitReview(form)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (cc *CatalogController) LikeReview(w http.ResponseWriter, r *http.Request) {
	cc.react(w, r, true)
}

func (cc *CatalogController) DislikeReview(w http.ResponseWriter, r *http.Request) {
	cc.react(w, r, false)
}

func (cc *CatalogController) react(w http.ResponseWriter, r *http.Request, like bool) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	reviewID := r.URL.Query().Get("review")
	if reviewID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "review is required"})
		return
	}
	review, err := cc.catalog.ReactToReview(id, reviewID, like)
	if err != nil {
		writeError(w, r, cc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
