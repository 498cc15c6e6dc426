package flatpost

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"
)

// Watcher calls OnChange whenever a post file in the watched directory is
// created, written, removed or renamed.
type Watcher struct {
	OnChange func(path string)

	w      *fsnotify.Watcher
	match  func(name string) bool
	logger *log.Logger
}

// NewWatcher starts watching dir. Only events for names accepted by match
// are reported.
func NewWatcher(dir string, match func(name string) bool, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("flatpost: watch: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("flatpost: watch %s: %w", dir, err)
	}
	return &Watcher{w: fw, match: match, logger: logger}, nil
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod || !w.match(ev.Name) {
				continue
			}
			w.logger.Debugf("source changed: %s", ev)
			if w.OnChange != nil {
				w.OnChange(ev.Name)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("watch: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
