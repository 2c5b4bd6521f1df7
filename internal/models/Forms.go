package models

// ListingForm is the admin "add app" form.
type ListingForm struct {
	Name           string           `json:"name" validate:"required"`
	Version        string           `json:"version" validate:"required"`
	Logo           string           `json:"logo"`
	Description    string           `json:"description" validate:"required"`
	DownloadLink   string           `json:"downloadLink" validate:"required"`
	Categories     []string         `json:"categories"`
	Featured       bool             `json:"featured"`
	Screenshots    []string         `json:"screenshots"`
	VersionHistory []VersionHistory `json:"versionHistory"`
	Developer      *Developer       `json:"developer,omitempty"`
	Size           string           `json:"size,omitempty"`
	Requirements   string           `json:"requirements,omitempty"`
	Permissions    []string         `json:"permissions"`
}

// ReviewForm is a user review submission.
type ReviewForm struct {
	ListingID string `json:"appId" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Rating    int    `json:"rating" validate:"required|int|min:1|max:5"`
	Comment   string `json:"comment" validate:"required"`
}

type PasswordChange struct {
	Current string `json:"currentPassword"`
	New     string `json:"newPassword"`
	Confirm string `json:"confirmPassword"`
}
