// Package report writes a YAML manifest describing a batch run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdf2xlsx"
	"github.com/tsawler/pdf2xlsx/batch"
)

// Manifest is the on-disk form of a run.
type Manifest struct {
	RunID        string  `yaml:"run_id"`
	InputRoot    string  `yaml:"input_root"`
	OutputFolder string  `yaml:"output_folder"`
	Started      string  `yaml:"started"`
	Finished     string  `yaml:"finished"`
	Duration     string  `yaml:"duration"`
	Succeeded    int     `yaml:"succeeded"`
	Failed       int     `yaml:"failed"`
	Files        []Entry `yaml:"files"`
}

// Entry describes one converted file.
type Entry struct {
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output,omitempty"`
	Status   string   `yaml:"status"`
	Error    string   `yaml:"error,omitempty"`
	Pages    int      `yaml:"pages"`
	Rows     int      `yaml:"rows"`
	Columns  int      `yaml:"columns"`
	Warnings []string `yaml:"warnings,omitempty"`
}

// FromSummary builds the manifest of a finished run.
func FromSummary(s *batch.Summary) *Manifest {
	m := &Manifest{
		RunID:        s.RunID,
		InputRoot:    s.InputRoot,
		OutputFolder: s.OutputFolder,
		Started:      s.Started.Format(time.RFC3339),
		Finished:     s.Finished.Format(time.RFC3339),
		Duration:     s.Finished.Sub(s.Started).Round(time.Millisecond).String(),
		Succeeded:    s.Succeeded(),
		Failed:       s.Failed(),
		Files:        make([]Entry, 0, len(s.Files)),
	}
	for _, res := range s.Files {
		m.Files = append(m.Files, entry(res))
	}
	return m
}

func entry(res *pdf2xlsx.Result) Entry {
	e := Entry{
		Input:   res.Input,
		Status:  "ok",
		Pages:   res.Pages,
		Rows:    res.Rows,
		Columns: res.Columns,
	}
	if res.OK() {
		e.Output = res.Output
	} else {
		e.Status = res.Kind.String()
		if res.Err != nil {
			e.Error = res.Err.Error()
		}
	}
	for _, w := range res.Warnings {
		e.Warnings = append(e.Warnings, w.String())
	}
	return e
}

// Write marshals the manifest of s to path, creating parent folders.
func Write(path string, s *batch.Summary) error {
	data, err := yaml.Marshal(FromSummary(s))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report folder: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &m, nil
}
