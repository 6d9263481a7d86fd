package dataset

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/supplylens/supplylens/pkg/types"
)

// Watch monitors a JSON dataset file and calls onChange with the reloaded
// dataset each time it is written. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that saves
// which write a temp file and rename it over path keep being observed.
//
// A reload that fails to parse, or fails validation when strict is set, is
// logged and skipped; onChange is not called and the caller keeps serving
// the previous dataset.
func Watch(ctx context.Context, path string, strict bool, onChange func(*types.Dataset)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("dataset: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename over path arrives as Create on path.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			ds, err := Load(ctx, path, strict)
			if err != nil {
				slog.Error("dataset: reload failed, keeping previous dataset",
					"path", path, "err", err)
				continue
			}

			slog.Info("dataset: reloaded", "path", path,
				"shipments", len(ds.Shipments), "suppliers", len(ds.Suppliers))
			onChange(ds)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("dataset: watcher error", "err", err)
		}
	}
}
