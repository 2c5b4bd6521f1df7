package services

import (
	"cmp"
	"dropxhub/internal/models"
	"math"
	"slices"
)

const topDownloadedLimit = 5

// ComputeStats builds the admin dashboard figures from a catalog snapshot.
// Ties for top app and most viewed go to the earlier listing.
func ComputeStats(listings []models.Listing) models.CatalogStats {
	stats := models.CatalogStats{
		TotalApps:            len(listings),
		CategoryDistribution: map[string]int{},
		TopDownloaded:        []models.ListingTotals{},
	}

	for i := range listings {
		l := &listings[i]
		stats.TotalDownloads += l.Downloads
		stats.TotalViews += l.Views

		if l.Downloads > stats.TopApp.Count {
			stats.TopApp = models.NameCount{Name: l.Name, Count: l.Downloads}
		}
		if l.Views > stats.MostViewed.Count {
			stats.MostViewed = models.NameCount{Name: l.Name, Count: l.Views}
		}
		for _, c := range l.Categories {
			stats.CategoryDistribution[c]++
		}
		if l.Rating > 0 {
			bucket := min(int(math.Floor(l.Rating)), 5) - 1
			if bucket >= 0 {
				stats.RatingDistribution[bucket]++
			}
		}
	}

	ranked := slices.Clone(listings)
	slices.SortStableFunc(ranked, func(a, b models.Listing) int {
		return cmp.Compare(b.Downloads, a.Downloads)
	})
	for _, l := range limitOf(ranked, topDownloadedLimit) {
		stats.TopDownloaded = append(stats.TopDownloaded, models.ListingTotals{
			ID:        l.ID,
			Name:      l.Name,
			Downloads: l.Downloads,
			Views:     l.Views,
			Rating:    l.Rating,
		})
	}
	return stats
}
