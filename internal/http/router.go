package http

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Pages are rendered from <TemplatesPath>/*.html when present and as JSON otherwise.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(auth.SessionContext(cfg.SessionManager))
	router.Use(AuthContextMiddleware())

	// Define custom template functions
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"subtract": func(a, b int) int {
			return a - b
		},
	}

	html := false
	if cfg.TemplatesPath != "" {
		if matches, _ := filepath.Glob(filepath.Join(cfg.TemplatesPath, "*.html")); len(matches) > 0 {
			tmpl := template.Must(template.New("").Funcs(funcMap).ParseFiles(matches...))
			router.SetHTMLTemplate(tmpl)
			html = true
		}
	}
	render := NewRenderer(cfg.SessionManager, html)

	// Serve static files
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	var events auth.EventLogger
	if cfg.AuditService != nil {
		events = cfg.AuditService
	}
	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig, events)
	authController.RegisterRoutes(router)

	var uploadsCheck Pinger
	if cfg.Covers != nil {
		uploadsCheck = cfg.Covers
	}
	health := NewHealthController(cfg.Database, uploadsCheck, cfg.Version)
	catalogController := NewCatalogController(cfg.Catalog, render)
	adminController := NewAdminController(cfg.Catalog, render)

	// Health endpoints
	router.GET("/health", health.Status)

	// Public catalogue
	router.GET("/", catalogController.Index)
	router.GET("/book/:id", catalogController.BookPage)
	if cfg.Covers != nil {
		coversController := NewCoversController(cfg.Catalog, cfg.Covers)
		router.GET("/book/:id/cover", coversController.GetCover)
	}

	// Admin routes
	admin := router.Group("/", auth.RequireAdmin(cfg.SessionManager))
	admin.GET("/add_book", adminController.AddBookPage)
	admin.POST("/add_book", limitBody(cfg.MaxUploadBytes), adminController.AddBook)
	admin.GET("/edit_book/:id", adminController.EditBookPage)
	admin.POST("/edit_book/:id", limitBody(cfg.MaxUploadBytes), adminController.EditBook)
	admin.POST("/admin/delete_book/:id", adminController.DeleteBook)
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService, render)
		admin.GET("/admin/audit", auditController.AuditLogPage)
	}

	router.NoRoute(func(c *gin.Context) {
		render.Error(c, http.StatusNotFound, "Page not found")
	})

	return router
}
