// Package flatpost is a preview server for flat-file blog posts built with
// Go, Echo, and templ. Posts are read from a source directory, parsed on
// demand and served as pages, JSON records, an RSS feed and a sitemap.
//
// Sites can provide their own templ templates via the ViewFuncs struct;
// any nil field falls back to the default pages in package views.
package flatpost

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/microcosm-cc/bluemonday"

	"github.com/eringen/flatpost/markdown"
	"github.com/eringen/flatpost/parser"
	"github.com/eringen/flatpost/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Index       func(site views.SiteConfig, posts []parser.Post) templ.Component
	Post        func(site views.SiteConfig, post parser.Post, posts []parser.Post) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Index == nil {
		v.Index = views.Index
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the preview application. It wires together the parser, source
// directory, cache, handlers, middleware, and templates.
type App struct {
	Config Config
	Echo   *echo.Echo
	Parser *parser.Parser
	Source *Source
	Cache  *PostCache
	Views  ViewFuncs
	Logger *log.Logger

	lexicon      *markdown.ChromaLexicon
	textPolicy   *bluemonday.Policy
	reloads      *Limiter
	customRoutes []func(*App)
	staticDir    string
	ready        bool
}

// New creates an App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	views.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup builds the parser, source, cache, middleware and routes. Start
// calls it; tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Logger == nil {
		l, err := NewLogger("flatpost", a.Config.LogLevel)
		if err != nil {
			return err
		}
		a.Logger = l
	}
	if a.Parser == nil {
		p, err := NewParser(a.Config, a.Logger)
		if err != nil {
			return err
		}
		a.Parser = p
	}

	a.Source = &Source{Dir: a.Config.SourceDir, Parser: a.Parser, Logger: a.Logger}
	a.Cache = NewPostCache(a.Source, a.Config.PostCacheTTL)
	a.lexicon = markdown.NewChromaLexicon(a.Config.HighlightStyle)
	a.textPolicy = bluemonday.StrictPolicy()
	a.reloads = NewLimiter(10, time.Minute)

	a.Echo.HideBanner = true
	a.Echo.Logger = a.Logger

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the App up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	if a.Config.Watch {
		w, err := NewWatcher(a.Config.SourceDir, a.Source.Matches, a.Logger)
		if err != nil {
			return err
		}
		defer w.Close()
		w.OnChange = func(string) { a.Cache.Invalidate() }
		go w.Run(ctx)
		a.Logger.Infof("watching %s for changes", a.Config.SourceDir)
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Infof("serving %s on %s", a.Config.SourceDir, a.Config.Addr)
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("flatpost: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/preview.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/highlight.css", a.handleHighlightCSS)

	// Site-owned assets
	if a.staticDir != "" {
		e.Static("/public", a.staticDir)
	}
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleIndex)
	e.GET("/post/:name/", a.handlePost)
	e.GET("/title-pic/:name/", a.handleTitlePic)

	api := e.Group("/api")
	api.GET("/posts/", a.handleAPIPosts)
	api.GET("/posts/:name/", a.handleAPIPost)
	api.POST("/parse/", a.handleParse, middleware.BodyLimit("1M"))

	e.POST("/reload/", a.handleReload, a.reloads.Middleware())
}
