package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/cslint/internal/stylesheet"
	tt "github.com/gnolang/cslint/internal/types"
)

// debounce groups bursts of writes to the same file into one lint run.
const debounce = 100 * time.Millisecond

// Watch lints stylesheets under dirs whenever they are written and passes
// the results to report. It blocks until ctx is done.
func (e *Engine) Watch(ctx context.Context, logger *zap.Logger, dirs []string, report func(string, []tt.Issue)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if len(dirs) == 0 {
		dirs = []string{e.rootDir}
	}
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	pending := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range pending {
			timer.Stop()
		}
	}()
	ready := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isWatchedEvent(event) {
				continue
			}
			name := event.Name
			if timer, exists := pending[name]; exists {
				timer.Reset(debounce)
				continue
			}
			pending[name] = time.AfterFunc(debounce, func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})
		case name := <-ready:
			delete(pending, name)
			issues, err := e.Run(name)
			if err != nil {
				logger.Error("Error linting file", zap.String("file", name), zap.Error(err))
				continue
			}
			report(name, issues)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func isWatchedEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	ext := filepath.Ext(event.Name)
	for _, want := range stylesheet.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
