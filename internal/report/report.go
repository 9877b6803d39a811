// Package report builds and renders scan reports for markguard.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/markguard/markguard/internal/engine"
)

// FileOffenses groups the offenses found in a single template file.
type FileOffenses struct {
	File     string           `json:"file"`
	Offenses []engine.Offense `json:"offenses"`
}

// Summary is the full result of one scan invocation.
type Summary struct {
	Version      int            `json:"version"`
	CreatedAt    string         `json:"created_at"`
	FilesScanned int            `json:"files_scanned"`
	OffenseCount int            `json:"offense_count"`
	Duration     string         `json:"duration"`
	Files        []FileOffenses `json:"files,omitempty"`
}

// Build assembles a Summary from per-file results. Files without offenses
// are counted but not listed.
func Build(files []FileOffenses, scanned int, duration time.Duration) *Summary {
	s := &Summary{
		Version:      1,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		FilesScanned: scanned,
		Duration:     duration.Round(time.Millisecond).String(),
	}
	for _, f := range files {
		if len(f.Offenses) == 0 {
			continue
		}
		s.OffenseCount += len(f.Offenses)
		s.Files = append(s.Files, f)
	}
	return s
}

// WriteText renders the summary for humans: one "file:line:column" header
// per offense followed by its message, then a totals line.
func WriteText(w io.Writer, s *Summary) {
	for _, f := range s.Files {
		for _, o := range f.Offenses {
			fmt.Fprintf(w, "%s:%s\n  %s\n", f.File, o.Span, o.Message)
		}
	}
	if s.OffenseCount == 0 {
		fmt.Fprintf(w, "No offenses found in %d files (%s)\n", s.FilesScanned, s.Duration)
		return
	}
	fmt.Fprintf(w, "\n%d offenses in %d of %d files (%s)\n",
		s.OffenseCount, len(s.Files), s.FilesScanned, s.Duration)
}

// WriteJSON renders the summary as indented JSON to w.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the summary atomically to path: the JSON is
// written to a temporary file in the same directory, then renamed. The
// file is created with mode 0o644.
func WriteJSONFile(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write report ensure dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp.*")
	if err != nil {
		return fmt.Errorf("write report create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write report write temp: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write report close temp: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write report rename: %w", err)
	}

	return nil
}
