package session

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/equiply/equiply-cli/internal/logging"
)

// StoreWatcher observes the persistent store's database file and publishes
// EventStorageChanged when it is modified, which covers mutations made by
// another running instance sharing the same store.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	bus     *Bus
	log     logging.Logger
}

// NewStoreWatcher watches the directory containing path; watching the
// directory instead of the file survives rename-and-replace writes.
func NewStoreWatcher(path string, bus *Bus, log logging.Logger) (*StoreWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &StoreWatcher{
		watcher: watcher,
		path:    filepath.Clean(path),
		bus:     bus,
		log:     log.With("component", "storewatcher"),
	}, nil
}

// Run forwards file-change events until ctx is cancelled or the watcher is
// closed. It is meant to run on its own goroutine.
func (w *StoreWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			w.log.Debug(ctx, "store file changed", "op", event.Op.String())
			w.bus.Publish(EventStorageChanged)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "watch error", "error", err)
		}
	}
}

func (w *StoreWatcher) Close() error {
	return w.watcher.Close()
}
