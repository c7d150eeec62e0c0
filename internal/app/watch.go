package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tacogips/clismith/internal/component"
	"github.com/tacogips/clismith/internal/config"
	"github.com/tacogips/clismith/internal/debug"
)

// DefaultDebounce is how long Watch waits for events to settle.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions contains options for Watch.
type WatchOptions struct {
	GenerateOptions
	// Debounce is the quiet period before regenerating; 0 uses DefaultDebounce.
	Debounce time.Duration
	// OnGenerate receives the outcome of every generation, including the
	// initial one. Pipeline errors are reported here and do not stop Watch.
	OnGenerate func(*GenerateResult, error)
}

// Watch generates once, then regenerates whenever the configuration file or
// a file under the templates directory changes. It returns when ctx is done.
// Changes that leave every input byte-identical are ignored.
func Watch(ctx context.Context, opts WatchOptions) error {
	debug.DebugSection("[app] Watch workflow start")

	if opts.ConfigPath == "" {
		return NewValidationError("configuration path cannot be empty", nil)
	}
	configPath, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return NewValidationError("failed to resolve configuration path", err)
	}
	opts.ConfigPath = configPath

	var templatesDir string
	if opts.TemplatesDir != "" {
		if templatesDir, err = filepath.Abs(opts.TemplatesDir); err != nil {
			return NewValidationError("failed to resolve templates directory", err)
		}
		opts.TemplatesDir = templatesDir
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = config.DefaultSettings().Cache.Templates
	}
	store, err := component.Open(templatesDir, cacheSize)
	if err != nil {
		return NewLoadError("failed to open templates", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewWatchError("failed to create file watcher", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so the parent directory is
	// watched rather than the file itself.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		return NewWatchError("failed to watch configuration directory", err)
	}
	if templatesDir != "" {
		if err := addRecursive(watcher, templatesDir); err != nil {
			return NewWatchError("failed to watch templates directory", err)
		}
	}

	run := func() {
		result, err := generateWith(ctx, opts.GenerateOptions, store)
		if err != nil {
			debug.Debug("[app] Watch generation failed: %v", err)
		}
		if opts.OnGenerate != nil {
			opts.OnGenerate(result, err)
		}
	}

	lastHash := HashInputs(configPath, templatesDir)
	run()

	var settle <-chan time.Time
	templatesChanged := false
	for {
		select {
		case <-ctx.Done():
			debug.Debug("[app] Watch stopped")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			inTemplates := templatesDir != "" && isWithin(templatesDir, ev.Name)
			if filepath.Clean(ev.Name) != configPath && !inTemplates {
				continue
			}
			debug.Debug("[app] Watch event: %s %s", ev.Op, ev.Name)
			if inTemplates {
				templatesChanged = true
				if ev.Has(fsnotify.Create) {
					if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
						_ = addRecursive(watcher, ev.Name)
					}
				}
			}
			settle = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Debug("[app] Watch error: %v", err)

		case <-settle:
			settle = nil
			hash := HashInputs(configPath, templatesDir)
			if hash == lastHash {
				debug.Debug("[app] Inputs unchanged, skipping regeneration")
				continue
			}
			lastHash = hash
			if templatesChanged {
				store.Purge()
				templatesChanged = false
			}
			run()
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
