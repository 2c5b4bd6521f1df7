package internal

import (
	"dropxhub/internal/controllers"
	"dropxhub/internal/providers"
	"net/http"
)

func InitRoutes(catalog *controllers.CatalogController, preferences *controllers.PreferenceController, notifications *controllers.NotificationController, admin *controllers.AdminController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/listings", http.HandlerFunc(catalog.List))
	routers.Get("/listing", http.HandlerFunc(catalog.Detail))
	routers.Post("/listing/download", http.HandlerFunc(catalog.Download))
	routers.Get("/search", http.HandlerFunc(catalog.Search))
	routers.Get("/categories", http.HandlerFunc(catalog.Categories))
	routers.Get("/top", http.HandlerFunc(catalog.Top))
	routers.Get("/trending", http.HandlerFunc(catalog.Trending))
	routers.Get("/featured", http.HandlerFunc(catalog.Featured))
	routers.Get("/new", http.HandlerFunc(catalog.NewReleases))
	routers.Get("/reviews", http.HandlerFunc(catalog.Reviews))
	routers.Post("/review", http.HandlerFunc(catalog.SubmitReview))
	routers.Post("/review/like", http.HandlerFunc(catalog.LikeReview))
	routers.Post("/review/dislike", http.HandlerFunc(catalog.DislikeReview))

	routers.Get("/preferences", http.HandlerFunc(preferences.Get))
	routers.Post("/preferences/theme", http.HandlerFunc(preferences.SetTheme))
	routers.Post("/preferences/favorite", http.HandlerFunc(preferences.ToggleFavorite))
	routers.Post("/preferences/recent/clear", http.HandlerFunc(preferences.ClearRecentlyViewed))

	routers.Get("/notifications", http.HandlerFunc(notifications.List))
	routers.Post("/notifications/add", http.HandlerFunc(notifications.Add))
	routers.Post("/notifications/read", http.HandlerFunc(notifications.MarkAsRead))
	routers.Post("/notifications/read-all", http.HandlerFunc(notifications.MarkAllAsRead))
	routers.Post("/notifications/clear", http.HandlerFunc(notifications.Clear))
	routers.Post("/notifications/clear-all", http.HandlerFunc(notifications.ClearAll))

	routers.Post("/admin/login", http.HandlerFunc(admin.Login))
	routers.Post("/admin/logout", admin.RequireAuth(admin.Logout))
	routers.Get("/admin/listings", admin.RequireAuth(admin.Listings))
	routers.Post("/admin/listing/add", admin.RequireAuth(admin.AddListing))
	routers.Post("/admin/listing/edit", admin.RequireAuth(admin.EditListing))
	routers.Post("/admin/listing/delete", admin.RequireAuth(admin.DeleteListing))
	routers.Post("/admin/category", admin.RequireAuth(admin.AddCategory))
	routers.Get("/admin/stats", admin.RequireAuth(admin.Stats))
	routers.Get("/admin/settings", admin.RequireAuth(admin.Settings))
	routers.Post("/admin/settings/update", admin.RequireAuth(admin.UpdateSettings))
	routers.Post("/admin/settings/reset", admin.RequireAuth(admin.ResetSettings))
	routers.Post("/admin/settings/api-key", admin.RequireAuth(admin.GenerateAPIKey))
	routers.Get("/admin/account", admin.RequireAuth(admin.Account))
	routers.Post("/admin/account/update", admin.RequireAuth(admin.UpdateAccount))
	routers.Post("/admin/password", admin.RequireAuth(admin.ChangePassword))
	routers.Get("/admin/export", admin.RequireAuth(admin.Export))
	routers.Post("/admin/import", admin.RequireAuth(admin.Import))
	routers.Post("/admin/cache/clear", admin.RequireAuth(admin.ClearCache))
	return routers
}
