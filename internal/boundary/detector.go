// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boundary segments unstructured business text into spans that each
// look like a single sales deal. Three strategies scan the full text
// independently; their candidates are pooled, reconciled, validated, and
// capped. Implements: prd001-boundary-detection (R1-R5);
//
//	docs/ARCHITECTURE § Boundary Detection.
package boundary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// Detect runs all detection strategies over text and returns the reconciled
// boundary set. It never fails on content: anomalies surface as warnings and
// empty or whitespace-only input yields an empty result.
// Per prd001-boundary-detection R4.1-R4.5.
func Detect(text string, cfg types.DetectionConfig) types.DetectionResult {
	result := types.DetectionResult{Boundaries: []types.Boundary{}}
	if strings.TrimSpace(text) == "" {
		result.Statistics = computeStatistics(result.Boundaries)
		return result
	}

	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = types.DefaultMinConfidence
	}
	maxBoundaries := cfg.MaxBoundaries
	if maxBoundaries <= 0 {
		maxBoundaries = types.DefaultMaxBoundaries
	}

	var candidates []types.Boundary
	candidates = append(candidates, detectKeywords(text)...)
	candidates = append(candidates, detectNumberedLists(text)...)
	candidates = append(candidates, detectStructure(text)...)

	if cfg.MergeOverlapping {
		candidates = reconcile(candidates, len(text))
	} else {
		sortByStart(candidates)
	}

	candidates, warnings := validateBoundaries(text, candidates)

	kept := make([]types.Boundary, 0, len(candidates))
	for _, b := range candidates {
		if b.Confidence >= minConfidence {
			kept = append(kept, b)
		}
	}
	if len(kept) > maxBoundaries {
		warnings = append(warnings, fmt.Sprintf(
			"discarding %d boundaries beyond the cap of %d", len(kept)-maxBoundaries, maxBoundaries))
		kept = kept[:maxBoundaries]
	}

	assignLines(text, kept)
	result.Boundaries = kept
	result.Statistics = computeStatistics(kept)
	result.Warnings = warnings
	return result
}

// line pairs a line's text with its starting byte offset. Line text does not
// include the trailing newline.
type line struct {
	text  string
	start int
}

// splitLines splits text into lines, recording each line's byte offset.
func splitLines(text string) []line {
	raw := strings.Split(text, "\n")
	lines := make([]line, len(raw))
	pos := 0
	for i, s := range raw {
		lines[i] = line{text: s, start: pos}
		pos += len(s) + 1
	}
	return lines
}

// sortByStart orders boundaries by start index, breaking ties in favor of
// the higher confidence. Per R2.1.
func sortByStart(boundaries []types.Boundary) {
	sort.SliceStable(boundaries, func(i, j int) bool {
		if boundaries[i].StartIndex != boundaries[j].StartIndex {
			return boundaries[i].StartIndex < boundaries[j].StartIndex
		}
		return boundaries[i].Confidence > boundaries[j].Confidence
	})
}

// assignLines fills in 1-based start and end line numbers. Per R4.3.
func assignLines(text string, boundaries []types.Boundary) {
	lines := splitLines(text)
	lineAt := func(offset int) int {
		return sort.Search(len(lines), func(i int) bool { return lines[i].start > offset })
	}
	for i := range boundaries {
		boundaries[i].StartLine = lineAt(boundaries[i].StartIndex)
		end := boundaries[i].EndIndex
		if end > boundaries[i].StartIndex {
			end--
		}
		boundaries[i].EndLine = lineAt(end)
	}
}

// computeStatistics tallies boundaries per method and the mean confidence.
// Per R4.4.
func computeStatistics(boundaries []types.Boundary) types.DetectionStatistics {
	stats := types.DetectionStatistics{
		TotalBoundaries: len(boundaries),
		ByMethod:        make(map[types.DetectionMethod]int),
	}
	var sum float64
	for _, b := range boundaries {
		stats.ByMethod[b.DetectionMethod]++
		sum += b.Confidence
	}
	if len(boundaries) > 0 {
		stats.AverageConfidence = sum / float64(len(boundaries))
	}
	return stats
}
