package flatpost

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSources = map[string]string{
	"2024-01-02-03-04.md": "First\ncover.png\n---\n# Hello\n\nSome `code` and *text*.\n",
	"2023-05-06-07-08.md": "Second\n---\nBody with https://example.org link\n\n```go\nfunc main() {}\n```\n",
	"2022-01-01-00-00.md": "Escape\n../secret.png\n---\nx\n",
	"2021-01-01-00-00.md": "Remote\nhttps://cdn.example.com/p.png\n---\nx\n",
	"broken.md":           "no separator",
	"notes.txt":           "Ignored\n---\nnot a post",
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestSourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range testSources {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	writeTestPNG(t, filepath.Join(dir, "cover.png"), 1000, 500)
	return dir
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := newTestSourceDir(t)
	logger, err := NewLogger("test", "off")
	require.NoError(t, err)

	app := New(Config{
		Name:        "Preview",
		URL:         "https://example.com",
		Description: "Test posts",
		SourceDir:   dir,
	}, ViewFuncs{}, WithLogger(logger))
	require.NoError(t, app.Setup())
	return app
}

func do(t *testing.T, app *App, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.RemoteAddr = "203.0.113.1:4321"
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, app, http.MethodGet, target, "")
}
