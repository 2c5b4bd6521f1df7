package services

import (
	"cmp"
	"dropxhub/internal/models"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Browse is the public list projection. A non-empty search goes through
// SearchListings, so a whitespace-only query yields nothing.
func (cs *CatalogService) Browse(q models.BrowseQuery) []models.Listing {
	var out []models.Listing
	if q.Search != "" {
		out = cs.SearchListings(q.Search)
	} else {
		out = cs.Listings()
	}

	out = slices.DeleteFunc(out, func(l models.Listing) bool {
		if q.Category != "" && !l.HasCategory(q.Category) {
			return true
		}
		return q.FeaturedOnly && !l.Featured
	})

	switch q.Sort {
	case models.SortNewest:
		slices.SortStableFunc(out, byCreatedDesc)
	case models.SortRating:
		slices.SortStableFunc(out, byRatingDesc)
	default:
		slices.SortStableFunc(out, func(a, b models.Listing) int {
			return cmp.Compare(b.Downloads, a.Downloads)
		})
	}
	return out
}

// Manage is the admin table projection. Search covers name and description only.
func (cs *CatalogService) Manage(q models.ManageQuery) []models.Listing {
	search := strings.ToLower(q.Search)
	out := slices.DeleteFunc(cs.Listings(), func(l models.Listing) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Name), search) &&
			!strings.Contains(strings.ToLower(l.Description), search) {
			return true
		}
		return q.Category != "" && !l.HasCategory(q.Category)
	})

	var compare func(a, b models.Listing) int
	switch q.SortBy {
	case models.ManageByName:
		coll := collate.New(language.English, collate.IgnoreCase)
		compare = func(a, b models.Listing) int { return coll.CompareString(a.Name, b.Name) }
	case models.ManageByDownloads:
		compare = func(a, b models.Listing) int { return cmp.Compare(a.Downloads, b.Downloads) }
	case models.ManageByRating:
		compare = func(a, b models.Listing) int { return cmp.Compare(a.Rating, b.Rating) }
	default:
		compare = func(a, b models.Listing) int {
			return parseTime(a.UpdatedAt).Compare(parseTime(b.UpdatedAt))
		}
	}

	if q.Order == models.OrderAsc {
		slices.SortStableFunc(out, compare)
	} else {
		slices.SortStableFunc(out, func(a, b models.Listing) int { return compare(b, a) })
	}
	return out
}

func filterReviews(reviews []models.Review, q models.ReviewQuery) []models.Review {
	out := slices.Clone(reviews)
	if out == nil {
		out = []models.Review{}
	}
	if q.Stars != 0 {
		out = slices.DeleteFunc(out, func(r models.Review) bool { return r.Rating != q.Stars })
	}

	switch q.Sort {
	case models.ReviewsHelpful:
		slices.SortStableFunc(out, func(a, b models.Review) int {
			return cmp.Compare(b.Helpfulness(), a.Helpfulness())
		})
	case models.ReviewsHighest:
		slices.SortStableFunc(out, func(a, b models.Review) int { return cmp.Compare(b.Rating, a.Rating) })
	case models.ReviewsLowest:
		slices.SortStableFunc(out, func(a, b models.Review) int { return cmp.Compare(a.Rating, b.Rating) })
	default:
		slices.SortStableFunc(out, func(a, b models.Review) int {
			return parseTime(b.Date).Compare(parseTime(a.Date))
		})
	}
	return out
}
