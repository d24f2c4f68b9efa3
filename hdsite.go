// Package hdsite is the backend for the Hospital Digital marketing site:
// a public multilingual blog API over SQLite and a cookie-token-gated
// content-management API, built with Echo.
//
// The package exposes an App that wires together the store, cache,
// middleware, and HTTP handlers; cmd/hdsite is the production entry point.
package hdsite

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// App is the central application. It wires together the store, cache,
// limiter, middleware, and routes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *BlogCache

	log          zerolog.Logger
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		log:       zerolog.New(os.Stdout).With().Timestamp().Str("service", "hdsite").Logger(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, and routes, then
// starts the HTTP server. It blocks until the server stops.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}

	a.log.Info().Str("addr", a.Config.Addr).Str("db", a.Config.DatabasePath).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init performs everything Start does short of listening. Split out so
// tests can exercise the full stack through httptest.
func (a *App) init() error {
	if a.Config.AdminUsername == "" {
		return fmt.Errorf("hdsite: AdminUsername is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("hdsite: AdminPassword is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("hdsite: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewBlogCache(a.Store, a.Config.BlogCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static assets, including uploaded featured images
	e.Static("/public", a.staticDir)

	// Public surface
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/blogs", a.handleListBlogs)
	e.GET("/api/blogs/slug/:slug", a.handleGetBlogBySlug)
	e.GET("/api/blogs/:id", a.handleGetBlog)

	// Session endpoints
	e.POST("/api/auth", a.handleLogin)
	e.DELETE("/api/auth", a.handleLogout)
	e.GET("/api/auth/check", a.handleAuthCheck)

	// Content management, all behind the same verify-the-token guard
	admin := e.Group("", a.requireAuth)
	admin.POST("/api/blogs", a.handleCreateBlog)
	admin.PUT("/api/blogs/:id", a.handleUpdateBlog)
	admin.DELETE("/api/blogs/:id", a.handleDeleteBlog)
	admin.POST("/api/images", a.handleImageUpload)
	admin.GET("/api/images", a.handleImageList)
	admin.DELETE("/api/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
