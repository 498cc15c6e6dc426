// Package views holds the default pages of the preview server. Each page is
// a templ.Component, so a site can swap any of them for its own templ
// templates.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/flatpost/parser"
)

// htmlWriter keeps the first write error so page bodies read top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func page(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Layout wraps content in the document shell shared by every page.
func Layout(site SiteConfig, meta PageMeta, content templ.Component) templ.Component {
	return page(func(h *htmlWriter) {
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		description := meta.Description
		if description == "" {
			description = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		h.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		h.raw("<title>")
		h.text(title)
		h.raw("</title>\n")
		if description != "" {
			h.raw("<meta name=\"description\" content=\"")
			h.text(description)
			h.raw("\">\n<meta property=\"og:description\" content=\"")
			h.text(description)
			h.raw("\">\n")
		}
		h.raw("<meta property=\"og:title\" content=\"")
		h.text(title)
		h.raw("\">\n<meta property=\"og:type\" content=\"")
		h.text(ogType)
		h.raw("\">\n")
		if meta.URL != "" {
			h.raw("<link rel=\"canonical\" href=\"")
			h.text(meta.URL)
			h.raw("\">\n<meta property=\"og:url\" content=\"")
			h.text(meta.URL)
			h.raw("\">\n")
		}
		if meta.Image != "" {
			h.raw("<meta property=\"og:image\" content=\"")
			h.text(meta.Image)
			h.raw("\">\n")
		}
		h.raw("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\">\n")
		h.raw("<link rel=\"stylesheet\" href=\"/public/preview.css\">\n")
		h.raw("<link rel=\"stylesheet\" href=\"/public/highlight.css\">\n")
		if meta.JSONLD != "" {
			h.raw("<script type=\"application/ld+json\">")
			h.raw(meta.JSONLD)
			h.raw("</script>\n")
		}
		h.raw("</head>\n<body>\n<header><a class=\"site-name\" href=\"/\">")
		h.text(site.Name)
		h.raw("</a></header>\n<main>\n")
		h.component(content)
		h.raw("</main>\n<footer>")
		if site.Author != "" {
			h.text(site.Author)
			h.raw(" &middot; ")
		}
		h.raw("<a href=\"/feed.xml\">RSS</a></footer>\n</body>\n</html>\n")
	})
}

// Index lists posts newest first with their summaries.
func Index(site SiteConfig, posts []parser.Post) templ.Component {
	meta := PageMeta{
		Title:  site.Name,
		URL:    buildURL(site.URL),
		JSONLD: WebsiteJsonLD(site),
	}
	return Layout(site, meta, page(func(h *htmlWriter) {
		if len(posts) == 0 {
			h.raw("<p class=\"empty\">No posts yet.</p>\n")
			return
		}
		h.raw("<ul class=\"posts\">\n")
		for _, p := range posts {
			h.raw("<li class=\"post-summary\">\n<h2><a href=\"/post/")
			h.text(p.Name)
			h.raw("/\">")
			h.text(p.Title)
			h.raw("</a></h2>\n<p class=\"date\">")
			h.text(FormatDate(p.Datetime))
			h.raw("</p>\n<div class=\"summary\">")
			h.component(templ.Raw(p.Summary))
			h.raw("</div>\n</li>\n")
		}
		h.raw("</ul>\n")
	}))
}

// Post renders a single post. posts is the full listing, used for
// newer/older navigation.
func Post(site SiteConfig, post parser.Post, posts []parser.Post) templ.Component {
	meta := PageMeta{
		Title:  post.Title,
		URL:    PostURL(site, post),
		OGType: "article",
		JSONLD: BlogPostingJsonLD(site, post),
	}
	pic := TitlePicURL(post)
	if pic != "" {
		meta.Image = pic
	}
	newer, older := Neighbors(post, posts)

	return Layout(site, meta, page(func(h *htmlWriter) {
		h.raw("<article>\n<h1>")
		h.text(post.Title)
		h.raw("</h1>\n<p class=\"date\">")
		h.text(FormatDate(post.Datetime))
		h.raw(" &middot; ")
		h.text(WordCount(post))
		h.raw("</p>\n")
		if pic != "" {
			h.raw("<img class=\"title-pic\" src=\"")
			h.text(pic)
			h.raw("\" alt=\"")
			h.text(post.Title)
			h.raw("\">\n")
		}
		h.raw("<div class=\"content\">\n")
		h.component(templ.Raw(post.HTML))
		h.raw("</div>\n</article>\n")

		if newer == nil && older == nil {
			return
		}
		h.raw("<nav class=\"pager\">\n")
		if newer != nil {
			h.raw("<a rel=\"prev\" href=\"/post/")
			h.text(newer.Name)
			h.raw("/\">&larr; ")
			h.text(newer.Title)
			h.raw("</a>\n")
		}
		if older != nil {
			h.raw("<a rel=\"next\" href=\"/post/")
			h.text(older.Name)
			h.raw("/\">")
			h.text(older.Title)
			h.raw(" &rarr;</a>\n")
		}
		h.raw("</nav>\n")
	}))
}

func NotFound(site SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Not found"}, page(func(h *htmlWriter) {
		h.raw("<h1>Not found</h1>\n<p>There is no post at this address. <a href=\"/\">Back to all posts</a>.</p>\n")
	}))
}

func ServerError(site SiteConfig) templ.Component {
	return Layout(site, PageMeta{Title: "Error"}, page(func(h *htmlWriter) {
		h.raw("<h1>Something went wrong</h1>\n<p>The post sources could not be read. Check the server log.</p>\n")
	}))
}
