// Package main implements the markguard CLI, a content-security linter
// for HTML templates with embedded code expressions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/markguard/markguard/internal/config"
	"github.com/markguard/markguard/internal/report"
	"github.com/markguard/markguard/internal/runner"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "--version":
		cmdVersion(os.Args[2:])
	case "doctor":
		cmdDoctor(os.Args[2:])
	case "scan":
		cmdScan(os.Args[2:])
	case "watch":
		cmdWatch(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `markguard — CSP linter for HTML templates

Usage: markguard <command> [flags]

Commands:
  version    Print version information
  doctor     Check environment and configuration
  scan       Lint template files and report offenses
  watch      Rescan automatically when files change

Use "markguard <command> --help" for more information.
`)
}

func setupLogger(jsonOutput bool) {
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

// --- version ---

func cmdVersion(args []string) {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]string{
			"version":    version,
			"commit":     commit,
			"build_date": buildDate,
		})
	} else {
		fmt.Printf("markguard %s (commit %s, built %s)\n", version, commit, buildDate)
	}
}

// --- doctor ---

func cmdDoctor(args []string) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	setupLogger(false)
	allPass := true

	// Check 1: config file exists (a missing file means defaults apply).
	if _, err := os.Stat(*configPath); err != nil {
		fmt.Printf("INFO  %s not found, defaults apply\n", *configPath)
	} else {
		fmt.Printf("PASS  %s exists\n", *configPath)
	}

	// Check 2: config parses, validates, and its patterns compile.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("FAIL  config validation: %v\n", err)
		allPass = false
	} else {
		fmt.Printf("PASS  config parses and validates\n")
		fmt.Printf("PASS  %d include / %d exclude patterns compile\n", len(cfg.Include), len(cfg.Exclude))
	}

	if !allPass {
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed.")
}

// --- scan ---

func cmdScan(args []string) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "config file path")
	jsonOut := fs.Bool("json", false, "output as JSON")
	outFile := fs.String("out", "", "also write the JSON report to this file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	setupLogger(*jsonOut)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	res, err := runner.Run(runner.Options{Config: cfg, Roots: fs.Args()})
	if err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}

	summary := report.Build(res.Files, res.Scanned, res.Duration)

	if *outFile != "" {
		if err := report.WriteJSONFile(*outFile, summary); err != nil {
			slog.Error("failed to write report", "path", *outFile, "error", err)
			os.Exit(1)
		}
	}

	if *jsonOut {
		if err := report.WriteJSON(os.Stdout, summary); err != nil {
			slog.Error("failed to encode report", "error", err)
			os.Exit(1)
		}
	} else {
		report.WriteText(os.Stdout, summary)
	}

	if summary.OffenseCount > 0 {
		os.Exit(1)
	}
}
