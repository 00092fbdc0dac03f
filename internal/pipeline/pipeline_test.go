// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deal-engine/pkg/types"
)

const twoDealDocument = `Deal: Acme Platform Migration
Customer: Acme Corporation
Value: $150,000
Status: qualified
Expected Close: 2025-06-30
Owner: Jane Smith

Deal: Globex Cloud Renewal
Customer: Globex Inc
Value: $75k
Status: discovery
Probability: 60%`

func TestProcess_TwoDealDocument(t *testing.T) {
	report := Process(twoDealDocument, "pipeline.txt", types.DefaultPipelineConfig())

	assert.Equal(t, "pipeline.txt", report.Source.FileName)
	assert.Equal(t, len(twoDealDocument), report.Source.Bytes)
	require.Len(t, report.Detection.Boundaries, 2)
	require.Len(t, report.Extraction.Deals, 2)
	assert.Empty(t, report.Extraction.Warnings)

	acme := report.Extraction.Deals[0]
	assert.Equal(t, "Acme Platform Migration", acme.DealName)
	assert.Equal(t, "Acme Corporation", acme.CustomerName)
	require.NotNil(t, acme.DealValue)
	assert.InDelta(t, 150000, *acme.DealValue, 0.01)
	assert.Equal(t, "USD", acme.Currency)
	assert.Equal(t, "qualified", acme.Status)
	assert.Equal(t, "Jane Smith", acme.Owner)
	require.NotNil(t, acme.ExpectedCloseDate)
	assert.True(t, acme.ExpectedCloseDate.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "pipeline.txt", acme.SourceLocation.FileName)

	globex := report.Extraction.Deals[1]
	assert.Equal(t, "Globex Cloud Renewal", globex.DealName)
	require.NotNil(t, globex.DealValue)
	assert.InDelta(t, 75000, *globex.DealValue, 0.01)
	assert.Equal(t, "discovery", globex.Status)
	require.NotNil(t, globex.Probability)
	assert.Equal(t, 60, *globex.Probability)

	assert.NotEqual(t, acme.ID, globex.ID)
	assert.Equal(t, 2, report.Extraction.Statistics.TotalDeals)
	assert.Equal(t, 0, report.Extraction.Statistics.DuplicatesRemoved)
	assert.Equal(t, 2, report.Extraction.Statistics.FieldCounts[types.FieldDealValue])
	assert.Equal(t, 1, report.Extraction.Statistics.FieldCounts[types.FieldProbability])
}

func TestProcess_EmptyText(t *testing.T) {
	report := Process("", "", types.DefaultPipelineConfig())

	assert.Equal(t, 0, report.Source.Bytes)
	assert.Empty(t, report.Detection.Boundaries)
	assert.Empty(t, report.Extraction.Deals)
}

func TestProcessFile_ReadsDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acme.txt")
	require.NoError(t, os.WriteFile(path, []byte(twoDealDocument), 0o644))

	report, err := ProcessFile(path, types.DefaultPipelineConfig())
	require.NoError(t, err)
	assert.Equal(t, "acme.txt", report.Source.FileName)
	assert.Len(t, report.Extraction.Deals, 2)
}

func TestProcessFile_MissingFile(t *testing.T) {
	_, err := ProcessFile(filepath.Join(t.TempDir(), "absent.txt"), types.DefaultPipelineConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading document")
}

func TestWriteReport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acme-deals.yaml")
	report := Process(twoDealDocument, "acme.txt", types.DefaultPipelineConfig())

	require.NoError(t, WriteReport(path, report))
	loaded, err := LoadReport(path)
	require.NoError(t, err)

	assert.Equal(t, report.Source.FileName, loaded.Source.FileName)
	assert.Equal(t, report.Source.Bytes, loaded.Source.Bytes)
	assert.WithinDuration(t, report.Source.GeneratedAt, loaded.Source.GeneratedAt, time.Second)
	require.Len(t, loaded.Extraction.Deals, len(report.Extraction.Deals))
	assert.Equal(t, report.Extraction.Deals[0].DealName, loaded.Extraction.Deals[0].DealName)
	require.NotNil(t, loaded.Extraction.Deals[0].DealValue)
	assert.InDelta(t, *report.Extraction.Deals[0].DealValue, *loaded.Extraction.Deals[0].DealValue, 0.01)
}

func TestLoadReport_MissingFile(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading report")
}

func batchConfig(t *testing.T) (types.PipelineConfig, string, string) {
	t.Helper()
	root := t.TempDir()
	docs := filepath.Join(root, "documents")
	reports := filepath.Join(root, "reports")
	require.NoError(t, os.MkdirAll(docs, 0o755))

	cfg := types.DefaultPipelineConfig()
	cfg.DocumentsDir = docs
	cfg.ReportsDir = reports
	return cfg, docs, reports
}

func TestProcessDir_ProcessesAndSkips(t *testing.T) {
	cfg, docs, reports := batchConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(docs, "acme.txt"), []byte(twoDealDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "globex.md"), []byte("Deal: Globex Expansion Review\nValue: $40,000"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "notes.pdf"), []byte("ignored"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "archive"), 0o755))

	var buf bytes.Buffer
	summary, err := ProcessDir(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, summary.Total())
	assert.False(t, summary.HasFailures())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "run "))
	assert.Contains(t, out, "extracted acme")
	assert.Contains(t, out, "extracted globex")

	loaded, err := LoadReport(filepath.Join(reports, "acme-deals.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.Source.RunID)
	assert.Len(t, loaded.Extraction.Deals, 2)

	// A second run sees reports newer than their documents.
	buf.Reset()
	summary, err = ProcessDir(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Contains(t, buf.String(), "skipped acme")

	// Touching a document makes only that one eligible again.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(docs, "acme.txt"), future, future))
	buf.Reset()
	summary, err = ProcessDir(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
}

func TestProcessDir_ContextCancelled(t *testing.T) {
	cfg, docs, _ := batchConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(docs, "acme.txt"), []byte(twoDealDocument), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	summary, err := ProcessDir(ctx, cfg, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Processed)
}

func TestProcessDir_MissingDocumentsDir(t *testing.T) {
	cfg, _, _ := batchConfig(t)
	cfg.DocumentsDir = filepath.Join(cfg.DocumentsDir, "absent")

	var buf bytes.Buffer
	_, err := ProcessDir(context.Background(), cfg, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading documents directory")
}

func TestFormatTable_ListsDeals(t *testing.T) {
	report := Process(twoDealDocument, "acme.txt", types.DefaultPipelineConfig())

	var buf bytes.Buffer
	FormatTable(report, &buf)
	out := buf.String()
	assert.Contains(t, out, "Acme Platform Migration")
	assert.Contains(t, out, "Globex Cloud Renewal")
	assert.Contains(t, out, "2 deals")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(Report{}, &buf)
	assert.Contains(t, buf.String(), "No deals found.")
}

func TestFormatJSON_Valid(t *testing.T) {
	report := Process(twoDealDocument, "acme.txt", types.DefaultPipelineConfig())

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(report, &buf))

	var parsed Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Len(t, parsed.Extraction.Deals, 2)
}

func TestFormatBoundariesTable_ListsBoundaries(t *testing.T) {
	report := Process(twoDealDocument, "acme.txt", types.DefaultPipelineConfig())

	var buf bytes.Buffer
	FormatBoundariesTable(report.Detection, &buf)
	out := buf.String()
	assert.Contains(t, out, "keyword")
	assert.Contains(t, out, "2 boundaries")
}

func TestFormatBoundariesTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatBoundariesTable(types.DetectionResult{}, &buf)
	assert.Contains(t, buf.String(), "No boundaries found.")
}
