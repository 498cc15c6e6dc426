package flatpost

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpost/parser"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// feedDescription reduces a rendered summary to plain text.
func (a *App) feedDescription(summaryHTML string) string {
	return strings.Join(strings.Fields(a.textPolicy.Sanitize(summaryHTML)), " ")
}

func (a *App) buildFeed(posts []parser.Post) rssXML {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := PostURL(base, p.Name)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: a.feedDescription(p.Summary),
			PubDate:     p.Datetime.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	if len(posts) > 0 {
		feed.Channel.LastBuildDate = posts[0].Datetime.Format(time.RFC1123Z)
	}
	return feed
}

func (a *App) renderRSS(c echo.Context, posts []parser.Post) error {
	return renderXML(c, "application/rss+xml; charset=utf-8", a.buildFeed(posts))
}
