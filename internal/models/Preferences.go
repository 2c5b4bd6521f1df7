package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

type Preferences struct {
	Theme          Theme    `json:"theme"`
	RecentlyViewed []string `json:"recentlyViewed"`
	Favorites      []string `json:"favorites"`
}
