package api

import (
	"log"
	stdhttp "net/http"

	"rentalprima/internal/auth"
	"rentalprima/internal/config"
	"rentalprima/internal/domain/models"
	h "rentalprima/internal/http/handlers"
	"rentalprima/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	System        h.SystemHandler
	Auth          h.AuthHandler
	Listings      h.ListingHandler
	Users         h.UserHandler
	Admins        h.AdminHandler
	Categories    h.CategoryHandler
	Settings      h.SettingHandler
	Notifications h.NotificationHandler
	Reports       h.ReportHandler
	Resolver      auth.Resolver
}

func NewRouter(env config.Env, hs Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	authRequired := middleware.Authenticate(hs.Resolver)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", hs.System.Health)
		api.GET("/db-check", hs.System.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", hs.Auth.Login)
		authGroup.POST("/register", hs.Auth.Register)
		authGroup.GET("/me", authRequired, hs.Auth.Me)
		authGroup.GET("/logout", authRequired, hs.Auth.Logout)

		// Listings. Static segments are registered before the :id route
		// so gin does not treat them as listing IDs.
		listings := api.Group("/listings")
		listings.GET("", hs.Listings.List)
		listings.GET("/featured", hs.Listings.Featured)
		listings.GET("/vendor/:userId", hs.Listings.ByVendor)
		listings.GET("/category/:categoryId", hs.Listings.ByCategory)
		listings.GET("/:id", hs.Listings.Get)
		listings.POST("", authRequired, hs.Listings.Create)
		listings.PUT("/:id", authRequired, hs.Listings.Update)
		listings.DELETE("/:id", authRequired, hs.Listings.Delete)

		// Users
		users := api.Group("/users", authRequired, adminOnly)
		users.GET("", hs.Users.List)
		users.GET("/:id", hs.Users.Get)
		users.POST("", hs.Users.Create)
		users.PUT("/:id", hs.Users.Update)
		users.DELETE("/:id", hs.Users.Delete)

		// Admin accounts
		admins := api.Group("/admins", authRequired, superAdminOnly)
		admins.GET("", hs.Admins.List)
		admins.GET("/:id", hs.Admins.Get)
		admins.POST("", hs.Admins.Create)
		admins.PUT("/:id", hs.Admins.Update)
		admins.DELETE("/:id", hs.Admins.Delete)

		// Categories
		categories := api.Group("/categories")
		categories.GET("", hs.Categories.List)
		categories.GET("/:id", hs.Categories.Get)
		categories.POST("", authRequired, adminOnly, hs.Categories.Create)
		categories.PUT("/:id", authRequired, adminOnly, hs.Categories.Update)
		categories.DELETE("/:id", authRequired, adminOnly, hs.Categories.Delete)

		// Settings
		settings := api.Group("/settings", authRequired)
		settings.GET("", adminOnly, hs.Settings.Get)
		settings.PUT("", superAdminOnly, hs.Settings.Update)

		// Notifications
		notifications := api.Group("/notifications", authRequired, adminOnly)
		notifications.GET("", hs.Notifications.List)
		notifications.GET("/:id", hs.Notifications.Get)
		notifications.PUT("/:id", hs.Notifications.MarkRead)
		notifications.DELETE("/:id", hs.Notifications.Delete)

		// Reports
		reports := api.Group("/reports", authRequired, adminOnly)
		reports.GET("/listings.pdf", hs.Reports.Listings)
	}

	return r
}
