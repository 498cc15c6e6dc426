package flatpost

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpost/parser"
)

func (a *App) handleIndex(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Index(a.site(), posts))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, c.Param("name"))
	if err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(a.site(), post, posts))
}

func (a *App) handleAPIPosts(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []parser.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAPIPost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if field := c.QueryParam("field"); field != "" {
		v, ok := post.Field(field)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown field "+field)
		}
		return c.String(http.StatusOK, v)
	}
	return c.JSON(http.StatusOK, post)
}

// handleParse parses a post source sent as the request body without
// touching the source directory.
func (a *App) handleParse(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	post, err := a.Parser.ParseBytes(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleReload(c echo.Context) error {
	a.Cache.Invalidate()
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"posts": len(posts)})
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleHighlightCSS(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/css; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.lexicon.WriteCSS(c.Response())
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml"
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: "+sitemap+"\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		err = echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	}
	he, ok := err.(*echo.HTTPError)
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if !ok || he.Code >= 500 {
			c.Logger().Errorf("server error: %v", err)
		}
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
