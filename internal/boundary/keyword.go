// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"regexp"
	"strings"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// keywordTier groups line-start markers that share a confidence level.
type keywordTier struct {
	confidence float64
	re         *regexp.Regexp
}

// keywordTiers lists marker tiers in precedence order: explicit deal labels,
// then account-style labels, then generic company labels. Markers match at
// the start of a line, case-insensitively, with an optional ":", "#", or "-"
// separator. A line matches at most one tier, the first.
// Per prd001-boundary-detection R1.1.
var keywordTiers = []keywordTier{
	{0.95, regexp.MustCompile(`(?i)^\s*(?:deal|opportunity)(?:\s+name)?\b\s*[:#-]?`)},
	{0.80, regexp.MustCompile(`(?i)^\s*(?:account|customer|prospect|lead|project)\b\s*[:#-]?`)},
	{0.65, regexp.MustCompile(`(?i)^\s*(?:company|client|partner)\b\s*[:#-]?`)},
}

// detectKeywords opens a boundary at every line matching a marker tier.
// Keyword boundaries tile the text: each ends where the next begins and the
// last runs to the end of the text. Per R1.1-R1.2.
func detectKeywords(text string) []types.Boundary {
	var candidates []types.Boundary
	for _, ln := range splitLines(text) {
		for _, tier := range keywordTiers {
			if tier.re.MatchString(ln.text) {
				candidates = append(candidates, types.Boundary{
					StartIndex:      ln.start,
					Confidence:      tier.confidence,
					DetectionMethod: types.MethodKeyword,
					Trigger:         strings.TrimSpace(ln.text),
				})
				break
			}
		}
	}
	for i := range candidates {
		if i+1 < len(candidates) {
			candidates[i].EndIndex = candidates[i+1].StartIndex
		} else {
			candidates[i].EndIndex = len(text)
		}
	}
	return candidates
}
