// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains boundary detection and field extraction over
// documents and writes per-document deal reports.
// Implements: prd003-pipeline-cli (R1-R3);
//
//	docs/ARCHITECTURE § Pipeline Interface.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deal-engine/internal/boundary"
	"github.com/pdiddy/deal-engine/internal/extract"
	"github.com/pdiddy/deal-engine/pkg/types"
)

// Report is the on-disk representation of one document's run: what was
// processed, with which settings, and everything both stages produced. A
// saved report can be reloaded without re-running the engine.
type Report struct {
	Source     ReportSource           `json:"source" yaml:"source"`
	Config     ReportConfig           `json:"config" yaml:"config"`
	Detection  types.DetectionResult  `json:"detection" yaml:"detection"`
	Extraction types.ExtractionResult `json:"extraction" yaml:"extraction"`
}

// ReportSource identifies the document a report was generated from.
type ReportSource struct {
	// FileName is the source document name.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`

	// RunID correlates the report with the batch run that produced it.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Bytes is the size of the source text.
	Bytes int `json:"bytes" yaml:"bytes"`
}

// ReportConfig echoes the settings that produced the report.
type ReportConfig struct {
	Detection  types.DetectionConfig  `json:"detection" yaml:"detection"`
	Extraction types.ExtractionConfig `json:"extraction" yaml:"extraction"`
}

// Process runs both stages over one document's text. fileName is stamped
// into the report and every record's source location; it may be empty for
// text that did not come from a file. Per prd003-pipeline-cli R1.1-R1.2.
func Process(text, fileName string, cfg types.PipelineConfig) Report {
	extCfg := cfg.Extraction
	if fileName != "" {
		extCfg.SourceFileName = fileName
	}

	det := boundary.Detect(text, cfg.Detection)
	ext := extract.Extract(text, det.Boundaries, extCfg)

	return Report{
		Source: ReportSource{
			FileName:    fileName,
			GeneratedAt: time.Now().UTC(),
			Bytes:       len(text),
		},
		Config: ReportConfig{
			Detection:  cfg.Detection,
			Extraction: extCfg,
		},
		Detection:  det,
		Extraction: ext,
	}
}

// ProcessFile reads a document and runs both stages over it.
func ProcessFile(path string, cfg types.PipelineConfig) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading document %s: %w", path, err)
	}
	return Process(string(data), filepath.Base(path), cfg), nil
}

// BatchSummary counts per-document outcomes of a batch run.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of documents examined.
func (s BatchSummary) Total() int {
	return s.Processed + s.Skipped + s.Failed
}

// HasFailures reports whether any document failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ProcessDir runs both stages over every .txt and .md document in the
// configured documents directory, writing a <name>-deals.yaml report per
// document. Documents whose report is newer than the source are skipped.
// Progress goes to w, one line per document; failures are reported and the
// walk continues. Per prd003-pipeline-cli R2.1-R2.5.
func ProcessDir(ctx context.Context, cfg types.PipelineConfig, w io.Writer) (BatchSummary, error) {
	docsDir := cfg.DocumentsDir
	if docsDir == "" {
		docsDir = types.DefaultPipelineConfig().DocumentsDir
	}
	reportsDir := cfg.ReportsDir
	if reportsDir == "" {
		reportsDir = types.DefaultPipelineConfig().ReportsDir
	}

	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating reports directory: %w", err)
	}

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("reading documents directory %s: %w", docsDir, err)
	}

	runID := uuid.NewString()
	fmt.Fprintf(w, "run %s\n", runID)

	var summary BatchSummary
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".txt" && ext != ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		srcPath := filepath.Join(docsDir, entry.Name())
		outPath := filepath.Join(reportsDir, name+"-deals.yaml")

		changed, err := hasChanged(srcPath, outPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		if !changed {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		report, err := ProcessFile(srcPath, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		report.Source.RunID = runID

		if err := WriteReport(outPath, report); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted %s (%d deals, %d duplicates)\n",
			name, len(report.Extraction.Deals), len(report.Extraction.Duplicates))
		summary.Processed++
	}

	return summary, nil
}

// hasChanged reports whether the document is newer than its report, or the
// report does not exist yet.
func hasChanged(srcPath, outPath string) (bool, error) {
	srcInfo, err := os.Stat(srcPath)
	if err != nil {
		return false, fmt.Errorf("stat document %s: %w", srcPath, err)
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat report %s: %w", outPath, err)
	}

	return srcInfo.ModTime().After(outInfo.ModTime()), nil
}

// WriteReport saves a report as YAML.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadReport reads a previously written report back.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading report %s: %w", path, err)
	}
	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return report, nil
}
