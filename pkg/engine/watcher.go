package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/getmockd/mockserver/internal/mockfs"
	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/metrics"
)

// FileEvent describes a change in the mock directory.
type FileEvent struct {
	// Path is relative to the mock root, slash-separated.
	Path string
	// Op is one of "create", "write", "remove", "rename" or "chmod".
	Op string
}

// Watcher reports changes below a mock root. It adds newly created
// directories to the watch so the whole tree stays covered.
type Watcher struct {
	index   *mockfs.Index
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewWatcher creates a Watcher for the mock root behind index.
func NewWatcher(index *mockfs.Index, log *slog.Logger, m *metrics.Metrics) *Watcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{index: index, log: log, metrics: m}
}

// Run watches until ctx is done. notify, when non-nil, is called for every
// event after it has been logged.
func (w *Watcher) Run(ctx context.Context, notify func(FileEvent)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.index.Root()); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.index.Root(), err)
	}
	dirs, err := w.index.Directories()
	if err != nil {
		return fmt.Errorf("failed to list mock directories: %w", err)
	}
	for _, d := range dirs {
		if err := fw.Add(w.index.Dir(d)); err != nil {
			w.log.Warn("watch add failed", "dir", d, "error", err)
		}
	}
	w.log.Info("watching mock directory", "root", w.index.Root(), "directories", len(dirs)+1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := fw.Add(ev.Name); err != nil && !os.IsNotExist(err) {
						w.log.Warn("watch add failed", "dir", ev.Name, "error", err)
					}
				}
			}
			fe := FileEvent{Path: w.relative(ev.Name), Op: opName(ev.Op)}
			w.log.Info("mock directory changed", "file", fe.Path, "op", fe.Op)
			w.metrics.RecordFileEvent(fe.Op)
			if notify != nil {
				notify(fe)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) relative(name string) string {
	rel, err := filepath.Rel(w.index.Root(), name)
	if err != nil {
		return name
	}
	return filepath.ToSlash(rel)
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	case op.Has(fsnotify.Chmod):
		return "chmod"
	default:
		return strings.ToLower(op.String())
	}
}
