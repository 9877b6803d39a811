// Package runner walks template trees and applies the lint rule to every
// selected file.
package runner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/markguard/markguard/internal/config"
	"github.com/markguard/markguard/internal/engine"
	"github.com/markguard/markguard/internal/report"
	"github.com/markguard/markguard/internal/template"
)

// Options configures a scan run.
type Options struct {
	// Config supplies the custom message and the include/exclude file
	// selection. Required.
	Config *config.Config

	// Roots are the files and directories to scan. Directories are
	// walked recursively; files named explicitly are always scanned,
	// bypassing the include patterns.
	Roots []string
}

// Result carries the outcome of one run over all roots.
type Result struct {
	Files    []report.FileOffenses
	Scanned  int
	Duration time.Duration
}

// Run scans every selected file under the given roots. An unreadable file
// is logged and skipped rather than failing the run; only a missing root
// or a walk failure is an error.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("run: config is nil")
	}

	start := time.Now()
	res := &Result{}
	rule := engine.Rule{CustomMessage: opts.Config.CustomMessage}

	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("run: stat %q: %w", root, err)
		}

		if !info.IsDir() {
			scanFile(rule, root, res)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if !opts.Config.Matches(rel) {
				return nil
			}
			scanFile(rule, path, res)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("run: walk %q: %w", root, err)
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}

// scanFile lints one file and records its offenses.
func scanFile(rule engine.Rule, path string, res *Result) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("skipping unreadable file", "path", path, "error", err)
		return
	}

	res.Scanned++
	offenses := rule.Run(template.Parse(string(data)))
	res.Files = append(res.Files, report.FileOffenses{File: path, Offenses: offenses})
}
