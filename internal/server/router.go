package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/mfg-tool-dashboard/internal/constants"
	"github.com/yukikurage/mfg-tool-dashboard/internal/handlers"
	"github.com/yukikurage/mfg-tool-dashboard/internal/middleware"
)

// NewRouter registers every route on a fresh gin engine.
func NewRouter(app *App, store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadUser(app.Auth))

	maxUpload := app.Config.MaxUploadBytes
	if maxUpload > 0 {
		r.MaxMultipartMemory = maxUpload
	}

	authHandler := handlers.NewAuthHandler(app.Auth)
	dashboardHandler := handlers.NewDashboardHandler(app.Tools)
	adminHandler := handlers.NewAdminHandler(app.Users, app.Tools, app.Importer, handlers.AdminOptions{
		DefaultCSVPath: app.Config.DefaultCSVPath(),
		MaxUploadBytes: maxUpload,
	})
	healthHandler := handlers.NewHealthHandler(app.DB)

	requireAuth := middleware.RequireAuth(app.Auth)
	requireAdmin := middleware.RequireAdmin()

	r.GET("/health", healthHandler.Health)

	// Public pages
	r.GET("/", dashboardHandler.Index)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", requireAuth, authHandler.Logout)

	// Operator routes
	user := r.Group("/user")
	user.Use(requireAuth, middleware.RequireOperator())
	{
		user.GET("/dashboard", dashboardHandler.UserDashboard)
		user.POST("/update-tool", dashboardHandler.UpdateAssignedTool)
	}

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(requireAuth, requireAdmin)
	{
		admin.GET("", adminHandler.AdminPage)
		admin.POST("/create-user", adminHandler.CreateUser)
		admin.POST("/update-user/:id", adminHandler.UpdateUser)
		admin.DELETE("/delete-user/:id", adminHandler.DeleteUser)
		admin.POST("/update-tool/:id", adminHandler.UpdateTool)
	}

	// API routes
	api := r.Group("/api")
	{
		api.GET("/tools", dashboardHandler.ListTools)
		api.POST("/reload", requireAuth, requireAdmin, adminHandler.Reload)
		api.POST("/upload", requireAuth, requireAdmin, adminHandler.Upload)
	}

	return r
}
