package views

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/flatpost/parser"
)

var testSite = SiteConfig{
	Name:        "Notes",
	URL:         "https://example.com",
	Description: "A test site",
	Author:      "Jo",
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func testPosts() []parser.Post {
	return []parser.Post{
		{
			Title:    "Newest",
			Name:     "2024-02-01-10-00",
			Datetime: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
			Summary:  "<p>newest summary</p>\n",
			HTML:     "<p>newest body</p>\n",
			Markdown: "newest body",
		},
		{
			Title:    "Middle <3",
			Name:     "2023-06-01-10-00",
			Datetime: time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC),
			TitlePic: "images/cover.png",
			Summary:  "<p>middle summary</p>\n",
			HTML:     "<h1>Middle</h1>\n<p>body</p>\n",
			Markdown: "# Middle\n\nbody",
		},
		{
			Title:    "Oldest",
			Name:     "2022-01-01-10-00",
			Datetime: time.Date(2022, 1, 1, 10, 0, 0, 0, time.UTC),
			TitlePic: "https://cdn.example.com/x.png",
		},
	}
}

func TestIndex(t *testing.T) {
	out := render(t, Index(testSite, testPosts()))

	assert.Contains(t, out, "<title>Notes</title>")
	assert.Contains(t, out, `<a href="/post/2024-02-01-10-00/">Newest</a>`)
	assert.Contains(t, out, "Middle &lt;3")
	assert.Contains(t, out, "<p>middle summary</p>")
	assert.Contains(t, out, "2024-02-01 10:00")
	assert.Contains(t, out, `"@type":"WebSite"`)
}

func TestIndexEmpty(t *testing.T) {
	out := render(t, Index(testSite, nil))
	assert.Contains(t, out, "No posts yet.")
}

func TestPost(t *testing.T) {
	posts := testPosts()
	out := render(t, Post(testSite, posts[1], posts))

	assert.Contains(t, out, "<title>Middle &lt;3 | Notes</title>")
	assert.Contains(t, out, "<h1>Middle</h1>\n<p>body</p>")
	assert.Contains(t, out, `src="/title-pic/2023-06-01-10-00/"`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/post/2023-06-01-10-00/">`)
	assert.Contains(t, out, `<a rel="prev" href="/post/2024-02-01-10-00/">`)
	assert.Contains(t, out, `<a rel="next" href="/post/2022-01-01-10-00/">`)
	assert.Contains(t, out, "3 words")
	assert.Contains(t, out, `og:type" content="article"`)
}

func TestPostWithoutNeighbors(t *testing.T) {
	post := testPosts()[0]
	out := render(t, Post(testSite, post, []parser.Post{post}))
	assert.NotContains(t, out, `class="pager"`)
	assert.NotContains(t, out, "title-pic")
}

func TestErrorPages(t *testing.T) {
	assert.Contains(t, render(t, NotFound(testSite)), "<h1>Not found</h1>")
	assert.Contains(t, render(t, ServerError(testSite)), "<h1>Something went wrong</h1>")
}

func TestTitlePicURL(t *testing.T) {
	posts := testPosts()
	assert.Equal(t, "", TitlePicURL(posts[0]))
	assert.Equal(t, "/title-pic/2023-06-01-10-00/", TitlePicURL(posts[1]))
	assert.Equal(t, "https://cdn.example.com/x.png", TitlePicURL(posts[2]))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))

	got := FormatDate(time.Date(2001, 9, 9, 1, 46, 0, 0, time.UTC))
	assert.Contains(t, got, "2001-09-09 01:46 (")
	assert.Contains(t, got, "ago)")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, "1 word", WordCount(parser.Post{Markdown: "one"}))
	assert.Equal(t, "0 words", WordCount(parser.Post{}))

	var body bytes.Buffer
	for i := 0; i < 1500; i++ {
		body.WriteString("w ")
	}
	assert.Equal(t, "1,500 words", WordCount(parser.Post{Markdown: body.String()}))
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := testPosts()[1]

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(testSite, post)), &data))

	assert.Equal(t, "BlogPosting", data["@type"])
	assert.Equal(t, "Middle <3", data["headline"])
	assert.Equal(t, "https://example.com/post/2023-06-01-10-00/", data["url"])
	assert.Equal(t, "2023-06-01T10:00:00Z", data["datePublished"])
	assert.Equal(t, "https://example.com/title-pic/2023-06-01-10-00/", data["image"])
}

func TestJsonLDIsScriptSafe(t *testing.T) {
	post := parser.Post{Title: "</script><script>alert(1)</script>", Name: "x"}
	assert.NotContains(t, BlogPostingJsonLD(testSite, post), "</script>")
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"post", "a"}, "https://example.com/post/a/"},
		{"https://example.com/blog/", []string{"post", "a"}, "https://example.com/blog/post/a/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, buildURL(tt.base, tt.segments...), "buildURL(%q, %q)", tt.base, tt.segments)
	}
}
