package models

import "slices"

// Listing is one catalog entry. Field names match the persisted JSON layout.
type Listing struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Version        string           `json:"version"`
	Logo           string           `json:"logo"`
	Description    string           `json:"description"`
	DownloadLink   string           `json:"downloadLink"`
	Categories     []string         `json:"categories"`
	Rating         float64          `json:"rating"`
	Reviews        []Review         `json:"reviews"`
	Downloads      int              `json:"downloads"`
	Views          int              `json:"views"`
	Featured       bool             `json:"featured"`
	Screenshots    []string         `json:"screenshots"`
	VersionHistory []VersionHistory `json:"versionHistory"`
	CreatedAt      string           `json:"createdAt"`
	UpdatedAt      string           `json:"updatedAt"`
	Developer      *Developer       `json:"developer,omitempty"`
	Size           string           `json:"size,omitempty"`
	Requirements   string           `json:"requirements,omitempty"`
	Permissions    []string         `json:"permissions"`
}

type Review struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	Likes    int    `json:"likes,omitempty"`
	Dislikes int    `json:"dislikes,omitempty"`
}

// ReviewPatch carries the fields UpdateReview merges; nil means unchanged.
type ReviewPatch struct {
	Username *string `json:"username,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
	Comment  *string `json:"comment,omitempty"`
	Likes    *int    `json:"likes,omitempty"`
	Dislikes *int    `json:"dislikes,omitempty"`
}

type VersionHistory struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Changes string `json:"changes"`
}

type Developer struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
}

func (l *Listing) HasCategory(category string) bool {
	return slices.Contains(l.Categories, category)
}

// TrendingScore is the static blend used by the trending query.
func (l *Listing) TrendingScore() float64 {
	return float64(l.Downloads)*0.7 + float64(l.Views)*0.3
}

// Clone returns a deep copy so callers never share slices with the store.
func (l *Listing) Clone() Listing {
	c := *l
	c.Categories = slices.Clone(l.Categories)
	c.Reviews = slices.Clone(l.Reviews)
	c.Screenshots = slices.Clone(l.Screenshots)
	c.VersionHistory = slices.Clone(l.VersionHistory)
	c.Permissions = slices.Clone(l.Permissions)
	if l.Developer != nil {
		d := *l.Developer
		c.Developer = &d
	}
	return c
}

func (r *Review) Apply(p ReviewPatch) {
	if p.Username != nil {
		r.Username = *p.Username
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
	if p.Likes != nil {
		r.Likes = *p.Likes
	}
	if p.Dislikes != nil {
		r.Dislikes = *p.Dislikes
	}
}

// Helpfulness is likes minus dislikes.
func (r *Review) Helpfulness() int {
	return r.Likes - r.Dislikes
}
