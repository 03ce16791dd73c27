package host

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the entry each time its file is written and runs until ctx
// is cancelled. A reload that fails is logged and the previous values stay
// in place.
func (e *Entry) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(e.path); err != nil {
		return err
	}

	slog.Info("host: watching entry", "path", e.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			n, err := e.Reload()
			if err != nil {
				slog.Error("host: reload failed, keeping previous content",
					"path", e.path, "err", err)
				continue
			}
			if n > 0 {
				slog.Info("host: entry reloaded", "path", e.path, "changed", n)
			}

			_ = watcher.Add(e.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("host: watcher error", "err", err)
		}
	}
}
