package flatpost

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxTitlePicWidth = 800
	jpegQuality      = 80
)

var errOutsideSource = errors.New("title picture outside source directory")

// thumbnail decodes an image from src, scales it down to at most maxWidth
// pixels wide and encodes it as JPEG.
func thumbnail(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

func isRemote(pic string) bool {
	return strings.HasPrefix(pic, "http://") || strings.HasPrefix(pic, "https://")
}

// titlePicPath resolves a title picture relative to the source directory.
func (a *App) titlePicPath(pic string) (string, error) {
	dir := filepath.Clean(a.Config.SourceDir)
	p := filepath.Join(dir, filepath.FromSlash(strings.TrimSpace(pic)))
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errOutsideSource
	}
	return p, nil
}

func (a *App) handleTitlePic(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	pic := strings.TrimSpace(post.TitlePic)
	if pic == "" {
		return echo.ErrNotFound
	}
	if isRemote(pic) {
		return c.Redirect(http.StatusFound, pic)
	}

	path, err := a.titlePicPath(pic)
	if err != nil {
		a.Logger.Warnf("post %s: %v: %q", post.Name, err, pic)
		return echo.ErrNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.ErrNotFound
		}
		return err
	}
	defer f.Close()

	data, _, err := thumbnail(f, maxTitlePicWidth)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "invalid title picture").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
