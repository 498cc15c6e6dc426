package flatpost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/eringen/flatpost/parser"
)

// Source is a directory of post files.
type Source struct {
	Dir    string
	Parser *parser.Parser
	Logger *log.Logger
}

// Matches reports whether name looks like a post file of this source:
// it carries the parser's extension and is not hidden.
func (s *Source) Matches(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, s.Parser.Extension())
}

// Paths lists the post files in Dir in name order. Subdirectories are not
// descended into.
func (s *Source) Paths() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("flatpost: list sources: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !s.Matches(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.Dir, e.Name()))
	}
	return paths, nil
}

// Load parses every post file in Dir, newest first. Files that fail to
// parse are logged and left out.
func (s *Source) Load(ctx context.Context) ([]parser.Post, error) {
	paths, err := s.Paths()
	if err != nil {
		return nil, err
	}
	posts, failures := s.Parser.ParseFiles(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, fe := range failures {
		s.Logger.Warnf("skipping post: %v", fe)
	}
	s.Logger.Debugf("loaded %d posts from %s", len(posts), s.Dir)
	return posts, nil
}
