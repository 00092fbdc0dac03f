// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// FormatTable writes a report's deals as an aligned table to w.
// Per prd003-pipeline-cli R4.3.
func FormatTable(report Report, w io.Writer) {
	deals := report.Extraction.Deals
	if len(deals) == 0 {
		fmt.Fprintln(w, "No deals found.")
		return
	}

	fmt.Fprintf(w, "%-30s  %-24s  %-14s  %-12s  %-10s  %-5s  %s\n",
		"Deal", "Customer", "Value", "Status", "Close", "Conf", "Method")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, d := range deals {
		fmt.Fprintf(w, "%-30s  %-24s  %-14s  %-12s  %-10s  %-5.2f  %s\n",
			truncate(d.DealName, 30),
			truncate(d.CustomerName, 24),
			formatValue(d),
			truncate(d.Status, 12),
			formatClose(d),
			d.Confidence,
			d.ExtractionMetadata.DetectionMethod)
	}

	fmt.Fprintf(w, "\n%d deals", len(deals))
	if n := report.Extraction.Statistics.DuplicatesRemoved; n > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", n)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes a report as indented JSON to w.
func FormatJSON(report Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// FormatYAML writes a report as YAML to w.
func FormatYAML(report Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(report)
}

// FormatBoundariesTable writes detected boundaries as an aligned table to w.
// Per prd003-pipeline-cli R4.2.
func FormatBoundariesTable(result types.DetectionResult, w io.Writer) {
	if len(result.Boundaries) == 0 {
		fmt.Fprintln(w, "No boundaries found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-5s  %-12s  %-14s  %s\n",
		"#", "Method", "Conf", "Lines", "Offsets", "Trigger")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for i, b := range result.Boundaries {
		fmt.Fprintf(w, "%-4d  %-10s  %-5.2f  %-12s  %-14s  %s\n",
			i+1,
			b.DetectionMethod,
			b.Confidence,
			fmt.Sprintf("%d-%d", b.StartLine, b.EndLine),
			fmt.Sprintf("%d-%d", b.StartIndex, b.EndIndex),
			truncate(b.Trigger, 40))
	}

	fmt.Fprintf(w, "\n%d boundaries (mean confidence %.2f)\n",
		result.Statistics.TotalBoundaries, result.Statistics.AverageConfidence)
}

// FormatBoundariesJSON writes a detection result as indented JSON to w.
func FormatBoundariesJSON(result types.DetectionResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// formatValue renders a deal's value and currency for display.
func formatValue(d types.ExtractedDeal) string {
	if d.DealValue == nil {
		return ""
	}
	return fmt.Sprintf("%s %.0f", d.Currency, *d.DealValue)
}

// formatClose renders a deal's expected close date for display.
func formatClose(d types.ExtractedDeal) string {
	if d.ExpectedCloseDate == nil {
		return ""
	}
	return d.ExpectedCloseDate.Format("2006-01-02")
}

// truncate shortens s to max bytes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
