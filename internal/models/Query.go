package models

type BrowseSort string

const (
	SortPopular BrowseSort = "popular"
	SortNewest  BrowseSort = "newest"
	SortRating  BrowseSort = "rating"
)

// BrowseQuery drives the public catalog list.
type BrowseQuery struct {
	Search       string     `json:"q"`
	Category     string     `json:"category"`
	FeaturedOnly bool       `json:"featured"`
	Sort         BrowseSort `json:"sort"`
}

type ManageSort string

const (
	ManageByName      ManageSort = "name"
	ManageByDownloads ManageSort = "downloads"
	ManageByRating    ManageSort = "rating"
	ManageByDate      ManageSort = "date"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ManageQuery drives the admin listing table.
type ManageQuery struct {
	Search   string     `json:"q"`
	Category string     `json:"category"`
	SortBy   ManageSort `json:"sortBy"`
	Order    SortOrder  `json:"order"`
}

type ReviewSort string

const (
	ReviewsRecent  ReviewSort = "recent"
	ReviewsHelpful ReviewSort = "helpful"
	ReviewsHighest ReviewSort = "highest"
	ReviewsLowest  ReviewSort = "lowest"
)

// ReviewQuery filters by star bucket when Stars is non-zero.
type ReviewQuery struct {
	Stars int        `json:"stars"`
	Sort  ReviewSort `json:"sort"`
}
