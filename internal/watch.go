package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnoverse/wv/internal/types"
	"go.uber.org/zap"
)

// StartWatching re-verifies source files as they change under the given
// paths. A file path watches its parent directory, so saves through
// rename-and-replace editors are still seen. Reports are delivered to
// onReport from the watch goroutine.
func (e *Engine) StartWatching(paths []string, onReport func(*types.Report)) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchPaths = paths
	e.onReport = onReport

	for _, root := range e.watchPaths {
		info, err := os.Stat(root)
		if err == nil && !info.IsDir() {
			err = e.watcher.Add(filepath.Dir(root))
		} else if err == nil {
			err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return e.watcher.Add(path)
				}
				return nil
			})
		}
		if err != nil {
			e.watcher.Close()
			e.watcher = nil
			return fmt.Errorf("error adding %s to watcher: %w", root, err)
		}
	}

	e.watching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if !e.watching {
		return nil
	}
	e.watching = false
	return e.watcher.Close()
}

// watchLoop drains watcher events until the watcher closes.
func (e *Engine) watchLoop() {
	for {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".wl") {
		return
	}

	// editors fire several writes in quick succession; treat them as one
	time.Sleep(100 * time.Millisecond)

	report, err := e.Run(context.Background(), event.Name)
	if err != nil {
		e.logger.Error("watch: verification failed",
			zap.String("file", event.Name),
			zap.Error(err))
		return
	}
	if e.onReport != nil {
		e.onReport(report)
	}
}
