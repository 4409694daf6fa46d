package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/logger"
)

// docWatcher watches the open document for on-disk changes. A change
// triggers a session swap in the viewer, so edits made while reviewing
// are picked up without restarting.
type docWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// newDocWatcher starts watching the directory containing path. Watching
// the directory rather than the file survives editors that replace the
// file on save.
func newDocWatcher(path string) (*docWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	return &docWatcher{watcher: watcher, path: path}, nil
}

// waitForChange returns a command that blocks until the watched document
// is written or replaced, then reports the change.
func (w *docWatcher) waitForChange() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					logger.Debug("document changed on disk: %s", w.path)
					return messages.DocumentChanged{Path: w.path}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}
}

// Close stops the watcher.
func (w *docWatcher) Close() error {
	return w.watcher.Close()
}
