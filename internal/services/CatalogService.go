package services

import (
	"cmp"
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/storage/interfaces"
	"dropxhub/internal/structures"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type CatalogServiceInterface interface {
	AddListing(listing models.Listing) error
	EditListing(listing models.Listing) error
	DeleteListing(id string) error
	GetListingByID(id string) (models.Listing, bool)
	AddCategory(name string) error
	AddReview(listingID string, review models.Review) error
	UpdateReview(listingID, reviewID string, patch models.ReviewPatch) error
	SubmitReview(form models.ReviewForm) (models.Review, error)
	ReactToReview(listingID, reviewID string, like bool) (models.Review, error)
	IncrementViews(id string) error
	IncrementDownloads(id string) error
	ReplaceAll(listings []models.Listing, categories []string) error

	Listings() []models.Listing
	Categories() []string
	Count() int
	Revision() uint64

	SearchListings(query string) []models.Listing
	GetRelatedListings(id string, limit int) []models.Listing
	GetTopListings(category string, limit int) []models.Listing
	GetTrendingListings(limit int) []models.Listing
	GetListingsByCategory(category string) []models.Listing
	GetFeaturedListings(limit int) []models.Listing
	GetNewReleases(limit int) []models.Listing
	Browse(q models.BrowseQuery) []models.Listing
	Manage(q models.ManageQuery) []models.Listing
	Reviews(listingID string, q models.ReviewQuery) ([]models.Review, bool)
	RatingDistribution(listingID string) ([5]int, bool)
}

// CatalogService owns the listings and categories. Every mutation is
// written to storage before the in-memory state is replaced.
type CatalogService struct {
	mu         sync.RWMutex
	storage    interfaces.KeyValueStorage
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	now        Clock
	newID      func() string
	listings   []models.Listing
	categories []string
	revision   atomic.Uint64
}

func NewCatalogService(conf *structures.Config, storage interfaces.KeyValueStorage, logger providers.Logger, metrics providers.MetricsProviderInterface) CatalogServiceInterface {
	cs := &CatalogService{
		storage: storage,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	cs.restore(conf.Catalog.SeedSamples)
	cs.metrics.SetListingsTotal(len(cs.listings))
	return cs
}

func (cs *CatalogService) restore(seed bool) {
	var listings []models.Listing
	found, err := loadJSON(cs.storage, KeyListings, &listings)
	switch {
	case err != nil:
		cs.logger.Errorf(providers.TypeApp, "Unable to restore listings, using defaults: %s", err)
		listings = defaultListings(seed)
	case !found:
		listings = defaultListings(seed)
		if err := saveJSON(cs.storage, KeyListings, listings); err != nil {
			cs.logger.Errorf(providers.TypeApp, "Unable to save default listings: %s", err)
		}
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	var categories []string
	found, err = loadJSON(cs.storage, KeyCategories, &categories)
	switch {
	case err != nil:
		cs.logger.Errorf(providers.TypeApp, "Unable to restore categories, using defaults: %s", err)
		categories = slices.Clone(initialCategories)
	case !found:
		categories = slices.Clone(initialCategories)
		if err := saveJSON(cs.storage, KeyCategories, categories); err != nil {
			cs.logger.Errorf(providers.TypeApp, "Unable to save default categories: %s", err)
		}
	}
	if categories == nil {
		categories = []string{}
	}

	cs.listings = listings
	cs.categories = categories
	cs.logger.Infof(providers.TypeApp, "Catalog restored: %d listings, %d categories", len(listings), len(categories))
}

func defaultListings(seed bool) []models.Listing {
	if !seed {
		return []models.Listing{}
	}
	return sampleListings()
}

// commitListings persists next and swaps it in. Callers hold mu.
func (cs *CatalogService) commitListings(next []models.Listing) error {
	if err := saveJSON(cs.storage, KeyListings, next); err != nil {
		return fmt.Errorf("persist listings: %w", err)
	}
	cs.listings = next
	cs.revision.Add(1)
	cs.metrics.SetListingsTotal(len(next))
	return nil
}

func (cs *CatalogService) indexOf(id string) int {
	return slices.IndexFunc(cs.listings, func(l models.Listing) bool { return l.ID == id })
}

// updateListing applies fn to a copy of the listing with the given id.
func (cs *CatalogService) updateListing(id string, fn func(l *models.Listing) error) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return ErrListingNotFound
	}
	l := cs.listings[i].Clone()
	if err := fn(&l); err != nil {
		return err
	}
	next := slices.Clone(cs.listings)
	next[i] = l
	return cs.commitListings(next)
}

func (cs *CatalogService) AddListing(listing models.Listing) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	next := make([]models.Listing, 0, len(cs.listings)+1)
	next = append(next, listing.Clone())
	next = append(next, cs.listings...)
	return cs.commitListings(next)
}

func (cs *CatalogService) EditListing(listing models.Listing) error {
	return cs.updateListing(listing.ID, func(l *models.Listing) error {
		*l = listing.Clone()
		return nil
	})
}

func (cs *CatalogService) DeleteListing(id string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	i := cs.indexOf(id)
	if i < 0 {
		return ErrListingNotFound
	}
	next := slices.Delete(slices.Clone(cs.listings), i, i+1)
	return cs.commitListings(next)
}

func (cs *CatalogService) GetListingByID(id string) (models.Listing, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	i := cs.indexOf(id)
	if i < 0 {
		return models.Listing{}, false
	}
	return cs.listings[i].Clone(), true
}

func (cs *CatalogService) AddCategory(name string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if slices.Contains(cs.categories, name) {
		return nil
	}
	next := append(slices.Clone(cs.categories), name)
	slices.Sort(next)
	if err := saveJSON(cs.storage, KeyCategories, next); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}
	cs.categories = next
	cs.revision.Add(1)
	return nil
}

// AddReview appends the review and resets rating to the mean of all reviews.
func (cs *CatalogService) AddReview(listingID string, review models.Review) error {
	err := cs.updateListing(listingID, func(l *models.Listing) error {
		l.Reviews = append(l.Reviews, review)
		total := 0
		for _, r := range l.Reviews {
			total += r.Rating
		}
		l.Rating = float64(total) / float64(len(l.Reviews))
		l.UpdatedAt = isoTime(cs.now())
		return nil
	})
	if err == nil {
		cs.metrics.IncListingEvent("review")
	}
	return err
}

// UpdateReview merges patch into one review. The listing rating is left as is.
func (cs *CatalogService) UpdateReview(listingID, reviewID string, patch models.ReviewPatch) error {
	return cs.updateListing(listingID, func(l *models.Listing) error {
		i := slices.IndexFunc(l.Reviews, func(r models.Review) bool { return r.ID == reviewID })
		if i < 0 {
			return ErrReviewNotFound
		}
		l.Reviews[i].Apply(patch)
		return nil
	})
}

// SubmitReview validates a user review and adds it with zeroed reactions.
func (cs *CatalogService) SubmitReview(form models.ReviewForm) (models.Review, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Comment = strings.TrimSpace(form.Comment)
	if err := validateStruct(&form); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ID:       cs.newID(),
		Username: form.Username,
		Rating:   form.Rating,
		Comment:  form.Comment,
		Date:     isoTime(cs.now()),
	}
	if err := cs.AddReview(form.ListingID, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// ReactToReview bumps the like or dislike counter of one review.
func (cs *CatalogService) ReactToReview(listingID, reviewID string, like bool) (models.Review, error) {
	var updated models.Review
	err := cs.updateListing(listingID, func(l *models.Listing) error {
		i := slices.IndexFunc(l.Reviews, func(r models.Review) bool { return r.ID == reviewID })
		if i < 0 {
			return ErrReviewNotFound
		}
		var patch models.ReviewPatch
		if like {
			n := l.Reviews[i].Likes + 1
			patch.Likes = &n
		} else {
			n := l.Reviews[i].Dislikes + 1
			patch.Dislikes = &n
		}
		l.Reviews[i].Apply(patch)
		updated = l.Reviews[i]
		return nil
	})
	return updated, err
}

func (cs *CatalogService) IncrementViews(id string) error {
	err := cs.updateListing(id, func(l *models.Listing) error {
		l.Views++
		return nil
	})
	if err == nil {
		cs.metrics.IncListingEvent("view")
	}
	return err
}

func (cs *CatalogService) IncrementDownloads(id string) error {
	err := cs.updateListing(id, func(l *models.Listing) error {
		l.Downloads++
		return nil
	})
	if err == nil {
		cs.metrics.IncListingEvent("download")
	}
	return err
}

// ReplaceAll swaps the whole catalog; a nil categories slice keeps the current list.
func (cs *CatalogService) ReplaceAll(listings []models.Listing, categories []string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	next := make([]models.Listing, 0, len(listings))
	for i := range listings {
		next = append(next, listings[i].Clone())
	}

	cats := cs.categories
	if categories != nil {
		cats = slices.Clone(categories)
		slices.Sort(cats)
		cats = slices.Compact(cats)
		if err := saveJSON(cs.storage, KeyCategories, cats); err != nil {
			return fmt.Errorf("persist categories: %w", err)
		}
	}
	if err := cs.commitListings(next); err != nil {
		if categories != nil {
			if rbErr := saveJSON(cs.storage, KeyCategories, cs.categories); rbErr != nil {
				cs.logger.Errorf(providers.TypeApp, "Unable to roll back categories: %s", rbErr)
			}
		}
		return err
	}
	cs.categories = cats
	return nil
}

func (cs *CatalogService) Listings() []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cloneListings(cs.listings)
}

func (cs *CatalogService) Categories() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return slices.Clone(cs.categories)
}

func (cs *CatalogService) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.listings)
}

func (cs *CatalogService) Revision() uint64 {
	return cs.revision.Load()
}

// SearchListings matches name, description or any category, ignoring case.
// A blank query matches nothing.
func (cs *CatalogService) SearchListings(query string) []models.Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Listing{}
	}

	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.filter(func(l *models.Listing) bool {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Description), q) {
			return true
		}
		return slices.ContainsFunc(l.Categories, func(c string) bool {
			return strings.Contains(strings.ToLower(c), q)
		})
	})
}

func (cs *CatalogService) GetRelatedListings(id string, limit int) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	i := cs.indexOf(id)
	if i < 0 || len(cs.listings[i].Categories) == 0 {
		return []models.Listing{}
	}
	target := &cs.listings[i]

	type scored struct {
		listing models.Listing
		score   int
	}
	var candidates []scored
	for j := range cs.listings {
		l := &cs.listings[j]
		if l.ID == id {
			continue
		}
		score := 0
		for _, c := range l.Categories {
			if target.HasCategory(c) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{listing: *l, score: score})
		}
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Or(cmp.Compare(b.score, a.score), cmp.Compare(b.listing.Rating, a.listing.Rating))
	})

	candidates = limitOf(candidates, limit)
	out := make([]models.Listing, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.listing.Clone())
	}
	return out
}

func (cs *CatalogService) GetTopListings(category string, limit int) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := cs.filter(func(l *models.Listing) bool {
		return category == "" || l.HasCategory(category)
	})
	slices.SortStableFunc(out, byRatingDesc)
	return limitOf(out, limit)
}

// GetTrendingListings ranks by 0.7*downloads + 0.3*views. There is no time decay.
func (cs *CatalogService) GetTrendingListings(limit int) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := cloneListings(cs.listings)
	slices.SortStableFunc(out, func(a, b models.Listing) int {
		return cmp.Compare(b.TrendingScore(), a.TrendingScore())
	})
	return limitOf(out, limit)
}

func (cs *CatalogService) GetListingsByCategory(category string) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.filter(func(l *models.Listing) bool { return l.HasCategory(category) })
}

// GetFeaturedListings returns featured or highly rated listings, featured first.
func (cs *CatalogService) GetFeaturedListings(limit int) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := cs.filter(func(l *models.Listing) bool { return l.Featured || l.Rating >= 4.5 })
	slices.SortStableFunc(out, func(a, b models.Listing) int {
		return cmp.Compare(boolRank(b.Featured), boolRank(a.Featured))
	})
	return limitOf(out, limit)
}

func (cs *CatalogService) GetNewReleases(limit int) []models.Listing {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := cloneListings(cs.listings)
	slices.SortStableFunc(out, byCreatedDesc)
	return limitOf(out, limit)
}

func (cs *CatalogService) Reviews(listingID string, q models.ReviewQuery) ([]models.Review, bool) {
	l, ok := cs.GetListingByID(listingID)
	if !ok {
		return nil, false
	}
	return filterReviews(l.Reviews, q), true
}

func (cs *CatalogService) RatingDistribution(listingID string) ([5]int, bool) {
	var dist [5]int
	l, ok := cs.GetListingByID(listingID)
	if !ok {
		return dist, false
	}
	for _, r := range l.Reviews {
		if r.Rating >= 1 && r.Rating <= 5 {
			dist[r.Rating-1]++
		}
	}
	return dist, true
}

// filter returns clones of matching listings in catalog order. Callers hold mu.
func (cs *CatalogService) filter(keep func(l *models.Listing) bool) []models.Listing {
	out := []models.Listing{}
	for i := range cs.listings {
		if keep(&cs.listings[i]) {
			out = append(out, cs.listings[i].Clone())
		}
	}
	return out
}

func cloneListings(in []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(in))
	for i := range in {
		out = append(out, in[i].Clone())
	}
	return out
}

func byRatingDesc(a, b models.Listing) int {
	return cmp.Compare(b.Rating, a.Rating)
}

func byCreatedDesc(a, b models.Listing) int {
	return parseTime(b.CreatedAt).Compare(parseTime(a.CreatedAt))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
