// Package shaderwatch reports when a shader resource changes on disk.
//
// The parent directory is watched rather than the file itself because most
// editors save by writing a new file and renaming it over the old one.
package shaderwatch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/logger"
)

// Watcher delivers a notification on Changes whenever the file is written
// or recreated. Bursts coalesce into a single pending notification.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// New starts watching path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()

	logger.Debug("watching shader", zap.String("path", abs))
	return w, nil
}

// Changes returns the notification channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("shader watcher error", zap.String("path", w.path), zap.Error(err))
		}
	}
}
