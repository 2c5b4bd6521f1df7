package services

import "dropxhub/internal/models"

const placeholderLogo = "/placeholder.svg?height=512&width=512"

var initialCategories = []string{
	"Business",
	"Education",
	"Entertainment",
	"Food & Drink",
	"Games",
	"Health & Fitness",
	"Lifestyle",
	"Music",
	"Photography",
	"Productivity",
	"Social",
	"Utilities",
	"Weather",
	"Developer Tools",
	"Adventure",
}

// sampleListings seeds an empty catalog.
func sampleListings() []models.Listing {
	return []models.Listing{
		{
			ID:           "1",
			Name:         "Weather Forecast",
			Version:      "2.1.0",
			Logo:         placeholderLogo,
			Description:  "Hourly and 14-day forecasts, severe weather alerts and interactive radar maps.",
			DownloadLink: "https://example.com/weather-app",
			Categories:   []string{"Utilities", "Weather"},
			Rating:       4.5,
			Reviews: []models.Review{
				{ID: "101", Username: "WeatherFan", Rating: 5, Comment: "Accurate and easy to read.", Date: "2023-11-20T00:00:00.000Z", Likes: 12, Dislikes: 1},
				{ID: "102", Username: "TravellerJoe", Rating: 4, Comment: "Radar map is great, widgets could be better.", Date: "2023-10-02T00:00:00.000Z", Likes: 4},
			},
			Downloads:   25000,
			Views:       42000,
			Featured:    true,
			Screenshots: []string{placeholderLogo},
			VersionHistory: []models.VersionHistory{
				{Version: "2.0.0", Date: "2023-08-01", Changes: "Redesigned forecast view."},
				{Version: "2.1.0", Date: "2023-12-01", Changes: "Severe weather alerts."},
			},
			CreatedAt:    "2023-05-10T00:00:00.000Z",
			UpdatedAt:    "2023-12-01T00:00:00.000Z",
			Developer:    &models.Developer{Name: "Weather Tech Inc.", Website: "https://example.com/weathertech", Email: "support@example.com"},
			Size:         "45 MB",
			Requirements: "Android 8.0+ or iOS 13.0+",
			Permissions:  []string{"Location", "Notifications"},
		},
		{
			ID:           "2",
			Name:         "Fitness Tracker",
			Version:      "3.0.2",
			Logo:         placeholderLogo,
			Description:  "Track workouts, steps and heart rate with weekly progress reports.",
			DownloadLink: "https://example.com/fitness-app",
			Categories:   []string{"Health & Fitness", "Lifestyle"},
			Rating:       4.5,
			Reviews: []models.Review{
				{ID: "201", Username: "FitnessFanatic", Rating: 5, Comment: "Keeps me motivated.", Date: "2023-11-05T00:00:00.000Z", Likes: 8},
				{ID: "202", Username: "RunnerGirl", Rating: 4, Comment: "GPS tracking drifts a little.", Date: "2023-09-18T00:00:00.000Z", Likes: 3, Dislikes: 1},
			},
			Downloads:   18500,
			Views:       31000,
			Screenshots: []string{placeholderLogo},
			VersionHistory: []models.VersionHistory{
				{Version: "3.0.0", Date: "2023-07-12", Changes: "Heart rate zones."},
				{Version: "3.0.2", Date: "2023-11-10", Changes: "Bug fixes."},
			},
			CreatedAt:    "2023-03-22T00:00:00.000Z",
			UpdatedAt:    "2023-11-10T00:00:00.000Z",
			Developer:    &models.Developer{Name: "FitTech Solutions"},
			Size:         "78 MB",
			Requirements: "Android 9.0+ or iOS 14.0+",
			Permissions:  []string{"Location", "Motion & Fitness"},
		},
		{
			ID:           "3",
			Name:         "Recipe Book",
			Version:      "1.5.3",
			Logo:         placeholderLogo,
			Description:  "Thousands of recipes with shopping lists and step-by-step cooking mode.",
			DownloadLink: "https://example.com/recipe-app",
			Categories:   []string{"Food & Drink", "Lifestyle"},
			Rating:       4.0,
			Reviews: []models.Review{
				{ID: "301", Username: "ChefMaster", Rating: 5, Comment: "Cooking mode is brilliant.", Date: "2023-08-30T00:00:00.000Z", Likes: 6},
				{ID: "302", Username: "HomeCook", Rating: 3, Comment: "Needs more vegetarian options.", Date: "2023-07-14T00:00:00.000Z", Likes: 2, Dislikes: 2},
			},
			Downloads:   12000,
			Views:       19500,
			Featured:    true,
			Screenshots: []string{},
			VersionHistory: []models.VersionHistory{
				{Version: "1.5.3", Date: "2023-09-05", Changes: "Shopping list sync."},
			},
			CreatedAt:    "2023-02-15T00:00:00.000Z",
			UpdatedAt:    "2023-09-05T00:00:00.000Z",
			Developer:    &models.Developer{Name: "Culinary Apps Inc."},
			Size:         "62 MB",
			Requirements: "Android 7.0+ or iOS 12.0+",
			Permissions:  []string{"Storage"},
		},
		{
			ID:           "4",
			Name:         "Task Manager",
			Version:      "4.2.1",
			Logo:         placeholderLogo,
			Description:  "Projects, deadlines and shared task boards for small teams.",
			DownloadLink: "https://example.com/task-app",
			Categories:   []string{"Productivity", "Business"},
			Rating:       5,
			Reviews: []models.Review{
				{ID: "401", Username: "ProductivityGuru", Rating: 5, Comment: "Replaced three other tools for me.", Date: "2023-11-01T00:00:00.000Z", Likes: 15},
			},
			Downloads:   30000,
			Views:       45000,
			Screenshots: []string{placeholderLogo},
			VersionHistory: []models.VersionHistory{
				{Version: "4.2.0", Date: "2023-10-01", Changes: "Team boards."},
				{Version: "4.2.1", Date: "2023-11-15", Changes: "Performance improvements."},
			},
			CreatedAt:    "2022-12-05T00:00:00.000Z",
			UpdatedAt:    "2023-11-15T00:00:00.000Z",
			Developer:    &models.Developer{Name: "Productive Software Ltd."},
			Size:         "35 MB",
			Requirements: "Android 8.0+ or iOS 13.0+",
			Permissions:  []string{"Notifications", "Calendar"},
		},
	}
}
