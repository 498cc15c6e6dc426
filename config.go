package flatpost

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/eringen/flatpost/markdown"
	"github.com/eringen/flatpost/parser"
)

// Config holds all configuration for a flatpost preview site.
type Config struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr      string // Listen address (default ":3000")
	SourceDir string // Directory holding post files (default "posts")
	SourceExt string // Post file extension (default ".md")
	Charset   string // Encoding of post files (default "utf-8")

	HighlightStyle string        // chroma style for code blocks (default "monokai")
	PostCacheTTL   time.Duration // Post cache TTL (default 5min)
	LogLevel       string        // debug, info, warn, error or off (default "info")
	Watch          bool          // Invalidate the cache when SourceDir changes
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SourceDir == "" {
		c.SourceDir = "posts"
	}
	if c.SourceExt == "" {
		c.SourceExt = parser.DefaultExtension
	}
	if c.Charset == "" {
		c.Charset = parser.DefaultCharset
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = markdown.DefaultStyle
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// NewLogger returns a gommon logger at the given level name.
func NewLogger(prefix, level string) (*log.Logger, error) {
	l := log.New(prefix)
	switch level {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "", "info":
		l.SetLevel(log.INFO)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		return nil, fmt.Errorf("flatpost: unknown log level %q", level)
	}
	return l, nil
}

// NewParser builds the post parser described by cfg, with code blocks
// highlighted in cfg.HighlightStyle.
func NewParser(cfg Config, logger *log.Logger) (*parser.Parser, error) {
	cfg.setDefaults()
	r := markdown.New(markdown.WithLexicon(markdown.NewChromaLexicon(cfg.HighlightStyle)))
	p, err := parser.New(
		parser.WithRenderer(r),
		parser.WithExtension(cfg.SourceExt),
		parser.WithCharset(cfg.Charset),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("flatpost: %w", err)
	}
	return p, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir serves a directory of site-owned assets under /public.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used by the App and the Echo instance.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithParser sets the parser posts are read with. By default one is built
// from the Config with NewParser.
func WithParser(p *parser.Parser) Option {
	return func(a *App) {
		a.Parser = p
	}
}
