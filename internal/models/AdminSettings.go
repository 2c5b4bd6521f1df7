package models

// AdminSettings are admin UI preferences. They are stored and served
// as-is; nothing in the catalog reads them.
type AdminSettings struct {
	Theme              string `json:"theme" validate:"required|in:light,dark,system"`
	Language           string `json:"language" validate:"required"`
	CompactMode        bool   `json:"compactMode"`
	EmailNotifications bool   `json:"emailNotifications"`
	TwoFactorAuth      bool   `json:"twoFactorAuth"`
	FontSize           int    `json:"fontSize" validate:"required|int|min:10|max:32"`
	AccentColor        string `json:"accentColor" validate:"required"`
	AnimationSpeed     string `json:"animationSpeed" validate:"required|in:slow,normal,fast"`
	APIKey             string `json:"apiKey,omitempty"`
}

func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		Theme:              "system",
		Language:           "english",
		CompactMode:        false,
		EmailNotifications: true,
		TwoFactorAuth:      false,
		FontSize:           16,
		AccentColor:        "purple",
		AnimationSpeed:     "normal",
	}
}

type AdminAccount struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func DefaultAdminAccount() AdminAccount {
	return AdminAccount{Email: "admin@dropxhub.com", Username: "admin"}
}

// DataExport is the admin export document; Import accepts the same shape.
type DataExport struct {
	Apps       []Listing      `json:"apps"`
	Categories []string       `json:"categories"`
	Settings   *AdminSettings `json:"settings,omitempty"`
	ExportDate string         `json:"exportDate"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CatalogStats struct {
	TotalApps            int             `json:"totalApps"`
	TotalDownloads       int             `json:"totalDownloads"`
	TotalViews           int             `json:"totalViews"`
	TopApp               NameCount       `json:"topApp"`
	MostViewed           NameCount       `json:"mostViewed"`
	CategoryDistribution map[string]int  `json:"categoryDistribution"`
	RatingDistribution   [5]int          `json:"ratingDistribution"`
	TopDownloaded        []ListingTotals `json:"topDownloaded"`
}

type ListingTotals struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Downloads int     `json:"downloads"`
	Views     int     `json:"views"`
	Rating    float64 `json:"rating"`
}
