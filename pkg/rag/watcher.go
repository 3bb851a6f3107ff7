package rag

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// IngestFunc receives the path of a file that appeared or changed in the
// watched knowledge directory.
type IngestFunc func(ctx context.Context, path string) error

// Watcher auto-ingests documents dropped into a directory.
type Watcher struct {
	dir    string
	ingest IngestFunc
	accept func(string) bool
	settle time.Duration
	log    *slog.Logger
	fsw    *fsnotify.Watcher
	done   chan struct{}
}

// NewWatcher creates a directory watcher. accept filters by filename and may
// be nil to accept everything.
func NewWatcher(dir string, ingest IngestFunc, accept func(string) bool, log *slog.Logger) *Watcher {
	if accept == nil {
		accept = func(string) bool { return true }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		dir:    dir,
		ingest: ingest,
		accept: accept,
		settle: 500 * time.Millisecond,
		log:    log,
		done:   make(chan struct{}),
	}
}

// Start ingests files already present in the directory, then watches for
// creations and writes until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if !w.accept(path) {
			continue
		}
		if err := w.ingest(ctx, path); err != nil {
			w.log.Warn("initial ingest failed", "path", path, "error", err)
		}
	}

	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.fsw.Add(w.dir); err != nil {
		w.fsw.Close()
		return err
	}

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			// Editors and copies fire several writes; let the file settle first.
			time.Sleep(w.settle)
			if err := w.ingest(ctx, event.Name); err != nil {
				w.log.Warn("ingest failed", "path", event.Name, "error", err)
				continue
			}
			w.log.Info("ingested from knowledge dir", "path", event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

// Wait blocks until the watch loop has exited.
func (w *Watcher) Wait() {
	<-w.done
}
