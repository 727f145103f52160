package devserver

import (
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"appshell/internal/ipc"
	"appshell/internal/logger"
)

// assetWatcher turns filesystem changes under the assets dir into "reload"
// events for connected dev clients.
type assetWatcher struct {
	watcher *fsnotify.Watcher
	bus     *ipc.Bus
	log     logger.Logger
	root    string
}

func newAssetWatcher(root string, bus *ipc.Bus, log logger.Logger) (*assetWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &assetWatcher{watcher: fsw, bus: bus, log: log, root: root}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// addRecursive registers root and every directory below it. fsnotify
// watches are not recursive on their own.
func (w *assetWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *assetWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				// New directories need their own watch.
				_ = w.addRecursive(event.Name)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				rel, err := filepath.Rel(w.root, event.Name)
				if err != nil {
					rel = event.Name
				}
				w.bus.Emit("reload", filepath.ToSlash(rel))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warning("DevServer", "asset watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (w *assetWatcher) Close() {
	w.watcher.Close()
}
