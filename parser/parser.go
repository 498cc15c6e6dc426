// Package parser turns flat-file post sources into Post records.
//
// A post source is a head block holding the title and an optional title
// picture, a separator line, and a Markdown body:
//
//	My Title
//	images/cover.png
//	---
//	The *body* in Markdown.
//
// Post files are named after their creation time, e.g. 2023-04-01-09-30.md.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/flatpost/markdown"
)

// SummaryLength is the number of body characters rendered into a summary.
const SummaryLength = 200

// DefaultExtension is the source file extension used unless configured.
const DefaultExtension = ".md"

// Post is a parsed post. Name, Datetime and Filepath are only set when the
// post was read from a file.
type Post struct {
	Title    string    `json:"title"`
	Markdown string    `json:"markdown"`
	HTML     string    `json:"html"`
	Summary  string    `json:"summary"`
	TitlePic string    `json:"title_pic"`
	Name     string    `json:"name,omitempty"`
	Datetime time.Time `json:"datetime,omitzero"`
	Filepath string    `json:"filepath,omitempty"`
}

// Field returns the record field with the given JSON name.
func (p Post) Field(name string) (string, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "markdown":
		return p.Markdown, true
	case "html":
		return p.HTML, true
	case "summary":
		return p.Summary, true
	case "title_pic":
		return p.TitlePic, true
	case "name":
		return p.Name, true
	case "datetime":
		if p.Datetime.IsZero() {
			return "", true
		}
		return p.Datetime.Format(time.RFC3339), true
	case "filepath":
		return p.Filepath, true
	}
	return "", false
}

// Parser parses post sources. It is immutable once built and safe for
// concurrent use.
type Parser struct {
	renderer *markdown.Renderer
	ext      string
	charset  Charset
	loc      *time.Location
	logger   *log.Logger
}

type options struct {
	renderer *markdown.Renderer
	ext      string
	charset  string
	loc      *time.Location
	logger   *log.Logger
}

// Option configures a Parser.
type Option func(*options)

// WithRenderer sets the Markdown renderer used for bodies and summaries.
func WithRenderer(r *markdown.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithExtension sets the source file extension stripped from file names.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.ext = ext
	}
}

// WithCharset sets the encoding label used to decode post files.
func WithCharset(label string) Option {
	return func(o *options) {
		o.charset = label
	}
}

// WithLocation sets the time zone file name timestamps are read in (default UTC).
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New builds a Parser. It fails only if the configured charset is unknown.
func New(opts ...Option) (*Parser, error) {
	o := options{
		ext:     DefaultExtension,
		charset: DefaultCharset,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(&o)
	}

	cs, err := LookupCharset(o.charset)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	if o.renderer == nil {
		o.renderer = markdown.New()
	}
	if o.loc == nil {
		o.loc = time.UTC
	}
	if o.logger == nil {
		o.logger = log.New("parser")
	}

	return &Parser{
		renderer: o.renderer,
		ext:      o.ext,
		charset:  cs,
		loc:      o.loc,
		logger:   o.logger,
	}, nil
}

// Extension returns the configured source file extension.
func (p *Parser) Extension() string {
	return p.ext
}

// Renderer returns the Markdown renderer shared by all parses.
func (p *Parser) Renderer() *markdown.Renderer {
	return p.renderer
}

// Parse parses a post source. The returned Post has no file metadata.
func (p *Parser) Parse(source string) (Post, error) {
	head, body, err := Split(source)
	if err != nil {
		return Post{}, err
	}
	title, titlePic, err := ParseHead(head)
	if err != nil {
		return Post{}, err
	}

	return Post{
		Title:    title,
		Markdown: body,
		HTML:     p.renderer.Render(body),
		Summary:  p.renderer.Render(truncate(body, SummaryLength)),
		TitlePic: titlePic,
	}, nil
}

// ParseBytes decodes raw with the configured charset and parses it.
func (p *Parser) ParseBytes(raw []byte) (Post, error) {
	source, err := p.charset.Decode(raw)
	if err != nil {
		return Post{}, err
	}
	return p.Parse(source)
}

// ParseFile reads, decodes and parses the post at path, adding the
// metadata carried by its file name. Failures are returned as *FileError.
func (p *Parser) ParseFile(path string) (Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return Post{}, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Post{}, &FileError{Path: path, Err: err}
	}
	post, err := p.ParseBytes(raw)
	if err != nil {
		return Post{}, &FileError{Path: path, Err: err}
	}
	meta, err := p.ParseFilename(path)
	if err != nil {
		return Post{}, &FileError{Path: path, Err: err}
	}
	post.Name = meta.Name
	post.Datetime = meta.Datetime
	post.Filepath = meta.Filepath

	p.logger.Debugf("parsed %s (%q)", path, post.Title)
	return post, nil
}

// ParseFiles parses paths concurrently. Files that fail are reported in
// the returned errors and skipped; the rest are returned newest first.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]Post, []*FileError) {
	posts := make([]Post, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			posts[i], errs[i] = p.ParseFile(path)
			return nil
		})
	}
	_ = g.Wait()

	var (
		parsed   []Post
		failures []*FileError
	)
	for i, err := range errs {
		if err != nil {
			var fe *FileError
			if !errors.As(err, &fe) {
				fe = &FileError{Path: paths[i], Err: err}
			}
			failures = append(failures, fe)
			continue
		}
		parsed = append(parsed, posts[i])
	}
	SortPosts(parsed)
	return parsed, failures
}

// SortPosts orders posts newest first, then by name.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Datetime.Equal(posts[j].Datetime) {
			return posts[i].Datetime.After(posts[j].Datetime)
		}
		return posts[i].Name < posts[j].Name
	})
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
