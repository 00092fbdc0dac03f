// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"fmt"
	"math"
	"regexp"

	"github.com/pdiddy/deal-engine/pkg/types"
)

const (
	// mergeProximity is how close two candidate starts must be, in bytes,
	// to merge even without overlap.
	mergeProximity = 50

	// hybridBonus is added when candidates from different strategies agree
	// on a span.
	hybridBonus = 0.1

	// minBoundaryLength is the shortest content that can describe a deal.
	minBoundaryLength = 20

	// maxBoundaryLength is the content length above which a boundary is
	// flagged as possibly holding more than one deal.
	maxBoundaryLength = 5000
)

// fiveLettersRe is the minimal run of letters valid boundary content needs.
var fiveLettersRe = regexp.MustCompile(`[A-Za-z]{5}`)

// reconcile sorts candidates and merges overlapping or near-adjacent ones in
// a single walk. The higher-confidence side anchors each merge and keeps its
// trigger; the span extends to cover both. Agreement between different
// strategies earns a confidence bonus and the merged span reports the hybrid
// method. After the walk every end index is re-derived so the boundaries
// tile the text without overlap. Per R2.1-R2.5.
func reconcile(candidates []types.Boundary, textLen int) []types.Boundary {
	if len(candidates) == 0 {
		return candidates
	}
	sortByStart(candidates)

	merged := []types.Boundary{candidates[0]}
	for _, c := range candidates[1:] {
		curr := &merged[len(merged)-1]
		overlaps := c.StartIndex < curr.EndIndex
		near := c.StartIndex-curr.StartIndex <= mergeProximity
		if !overlaps && !near {
			merged = append(merged, c)
			continue
		}

		base := *curr
		if c.Confidence > base.Confidence {
			base = c
		}
		if curr.EndIndex > base.EndIndex {
			base.EndIndex = curr.EndIndex
		}
		if c.EndIndex > base.EndIndex {
			base.EndIndex = c.EndIndex
		}
		if c.DetectionMethod != curr.DetectionMethod {
			base.Confidence = math.Min(1.0, base.Confidence+hybridBonus)
			base.DetectionMethod = types.MethodHybrid
		}
		*curr = base
	}

	for i := range merged {
		if i+1 < len(merged) {
			merged[i].EndIndex = merged[i+1].StartIndex
		} else {
			merged[i].EndIndex = textLen
		}
	}
	return merged
}

// validateBoundaries drops spans too small to describe a deal and warns on
// spans long enough to hold several. Per R3.1-R3.2.
func validateBoundaries(text string, boundaries []types.Boundary) ([]types.Boundary, []string) {
	kept := make([]types.Boundary, 0, len(boundaries))
	var warnings []string
	for _, b := range boundaries {
		content := text[b.StartIndex:b.EndIndex]
		if len(content) < minBoundaryLength || !fiveLettersRe.MatchString(content) {
			continue
		}
		if len(content) > maxBoundaryLength {
			warnings = append(warnings, fmt.Sprintf(
				"boundary at offset %d spans %d characters and may cover more than one deal",
				b.StartIndex, len(content)))
		}
		kept = append(kept, b)
	}
	return kept, warnings
}
