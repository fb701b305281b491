package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/raster3d/internal/app"
	"github.com/taigrr/raster3d/internal/config"
)

// debounce collapses bursts of events from editors that write in steps.
const debounce = 150 * time.Millisecond

// watchedFiles lists the inputs a frame depends on.
func watchedFiles(cfg config.Config) []string {
	var files []string
	for _, p := range []string{*configPath, cfg.Model, cfg.Textures.Diffuse, cfg.Textures.Normal} {
		if p != "" {
			files = append(files, filepath.Clean(p))
		}
	}
	return files
}

// runWatch renders -o, then renders it again every time one of the input
// files changes. Parent directories are watched so files replaced by rename
// are still seen.
func runWatch(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range watchedFiles(cfg) {
		files[f] = true
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	if len(files) == 0 {
		logger.Warn("nothing to watch; pass -config, -model or texture paths")
	}

	render := func() {
		cfg, err := loadConfig()
		if err != nil {
			logger.Error("reload config", "err", err)
			return
		}
		a, err := app.New(cfg, logger)
		if err != nil {
			logger.Error("rebuild scene", "err", err)
			return
		}
		if err := renderOne(a, *at, *output, logger); err != nil {
			logger.Error("render", "err", err)
		}
	}
	render()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("changed", "file", ev.Name, "op", ev.Op.String())
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			render()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "err", err)
		}
	}
}
