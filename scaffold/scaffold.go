// Package scaffold provides the embedded template new post files are
// created from.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var postTemplate = template.Must(template.ParseFS(Templates, "templates/post.md.tmpl"))

// PostData holds the template variables of a new post.
type PostData struct {
	Title    string
	TitlePic string
}

// Validate reports head values that would not survive a round trip through
// the post parser.
func (d PostData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	for _, v := range []string{d.Title, d.TitlePic} {
		if strings.ContainsAny(v, "\r\n\v\f\x1c\x1d\x1e\u0085\u2028\u2029") {
			return fmt.Errorf("%q: line breaks are not allowed in the head", v)
		}
		if strings.Contains(v, "---") {
			return fmt.Errorf("%q: the head must not contain the separator", v)
		}
	}
	return nil
}

// RenderPost writes the source of a new post to w.
func RenderPost(w io.Writer, data PostData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	return postTemplate.ExecuteTemplate(w, "post.md.tmpl", data)
}
