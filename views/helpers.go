package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/eringen/flatpost/parser"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostURL returns the canonical URL of a post page.
func PostURL(site SiteConfig, post parser.Post) string {
	return buildURL(site.URL, "post", post.Name)
}

// TitlePicURL returns where the page should load the post's title picture
// from. Remote pictures are linked directly.
func TitlePicURL(post parser.Post) string {
	switch {
	case post.TitlePic == "":
		return ""
	case strings.HasPrefix(post.TitlePic, "http://"), strings.HasPrefix(post.TitlePic, "https://"):
		return post.TitlePic
	}
	return "/title-pic/" + url.PathEscape(post.Name) + "/"
}

// FormatDate renders a post timestamp as "2006-01-02 15:04 (3 days ago)".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04") + " (" + humanize.Time(t) + ")"
}

// WordCount returns the number of whitespace separated words in a post body,
// formatted with thousands separators.
func WordCount(post parser.Post) string {
	n := len(strings.Fields(post.Markdown))
	if n == 1 {
		return "1 word"
	}
	return humanize.Comma(int64(n)) + " words"
}

// Neighbors returns the posts listed directly before (newer) and after
// (older) current in posts.
func Neighbors(current parser.Post, posts []parser.Post) (newer, older *parser.Post) {
	for i := range posts {
		if posts[i].Name != current.Name {
			continue
		}
		if i > 0 {
			newer = &posts[i-1]
		}
		if i+1 < len(posts) {
			older = &posts[i+1]
		}
		break
	}
	return newer, older
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post parser.Post) string {
	postURL := PostURL(cfg, post)
	data := map[string]interface{}{
		"@context":  "https://schema.org",
		"@type":     "BlogPosting",
		"headline":  post.Title,
		"url":       postURL,
		"wordCount": len(strings.Fields(post.Markdown)),
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !post.Datetime.IsZero() {
		data["datePublished"] = post.Datetime.Format(time.RFC3339)
	}
	if pic := TitlePicURL(post); pic != "" {
		if strings.HasPrefix(pic, "/") {
			pic = strings.TrimRight(cfg.URL, "/") + pic
		}
		data["image"] = pic
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
