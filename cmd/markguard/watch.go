package main

import (
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/markguard/markguard/internal/config"
	"github.com/markguard/markguard/internal/report"
	"github.com/markguard/markguard/internal/runner"
)

// debounce collapses editor save bursts into one rescan.
const debounce = 300 * time.Millisecond

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	setupLogger(false)

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	if err := runWatch(root, *configPath, nil); err != nil {
		slog.Error("watch failed", "error", err)
		os.Exit(1)
	}
}

// runWatch rescans root whenever a file under it changes, until stop is
// closed. A nil stop channel watches forever.
func runWatch(root, configPath string, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root); err != nil {
		return err
	}

	rescan := func() {
		cfg, err := config.Load(configPath)
		if err != nil {
			slog.Error("failed to load config", "path", configPath, "error", err)
			return
		}
		res, err := runner.Run(runner.Options{Config: cfg, Roots: []string{root}})
		if err != nil {
			slog.Error("scan failed", "error", err)
			return
		}
		report.WriteText(os.Stdout, report.Build(res.Files, res.Scanned, res.Duration))
	}

	rescan()

	var timer *time.Timer
	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isHidden(ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rescan)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(path) && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// isHidden reports whether any path element starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
