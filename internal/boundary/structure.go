// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"regexp"
	"strings"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// structureConfidence is the score assigned to paragraph-shaped boundaries.
const structureConfidence = 0.50

// minIndicators is how many indicators a paragraph needs to qualify.
const minIndicators = 2

// structureIndicators are the signals a paragraph is scored against: money,
// value language, customer language, timeline language, status language, and
// corporate suffixes. Per prd001-boundary-detection R1.4.
var structureIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*\d`),
	regexp.MustCompile(`(?i)\b(?:value|amount|price|deal)\b`),
	regexp.MustCompile(`(?i)\b(?:customer|client|account)\b`),
	regexp.MustCompile(`(?i)\b(?:clos(?:e|es|ed|ing)|expected|timeline)\b`),
	regexp.MustCompile(`(?i)\b(?:status|stage|phase)\b`),
	companySuffixRe,
}

// paragraph pairs a paragraph's text with its byte span.
type paragraph struct {
	text  string
	start int
	end   int
}

// splitParagraphs groups consecutive non-blank lines into paragraphs.
func splitParagraphs(text string) []paragraph {
	var paragraphs []paragraph
	var open bool
	var curr paragraph
	for _, ln := range splitLines(text) {
		if strings.TrimSpace(ln.text) == "" {
			if open {
				paragraphs = append(paragraphs, curr)
				open = false
			}
			continue
		}
		if !open {
			open = true
			curr = paragraph{start: ln.start}
			curr.text = ln.text
		} else {
			curr.text += "\n" + ln.text
		}
		curr.end = ln.start + len(ln.text)
	}
	if open {
		paragraphs = append(paragraphs, curr)
	}
	return paragraphs
}

// detectStructure scores blank-line-delimited paragraphs against the
// indicator list. Paragraphs containing a keyword marker line are skipped;
// the keyword strategy owns those spans. Per R1.4-R1.5.
func detectStructure(text string) []types.Boundary {
	var candidates []types.Boundary
	for _, p := range splitParagraphs(text) {
		if containsKeywordMarker(p.text) {
			continue
		}
		hits := 0
		for _, re := range structureIndicators {
			if re.MatchString(p.text) {
				hits++
			}
		}
		if hits >= minIndicators {
			candidates = append(candidates, types.Boundary{
				StartIndex:      p.start,
				EndIndex:        p.end,
				Confidence:      structureConfidence,
				DetectionMethod: types.MethodStructure,
				Trigger:         "paragraph-indicators",
			})
		}
	}
	return candidates
}

// containsKeywordMarker reports whether any line of the paragraph matches a
// keyword tier.
func containsKeywordMarker(par string) bool {
	for _, ln := range strings.Split(par, "\n") {
		for _, tier := range keywordTiers {
			if tier.re.MatchString(ln) {
				return true
			}
		}
	}
	return false
}
