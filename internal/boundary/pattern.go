// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package boundary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// patternConfidence is the score assigned to numbered-list boundaries.
const patternConfidence = 0.70

// numberedEntryRe matches a numbered list entry like "3. Acme renewal".
var numberedEntryRe = regexp.MustCompile(`^\s*(\d+)\.\s+(.+)$`)

// capitalizedPhraseRe matches two or more capitalized words in a row.
var capitalizedPhraseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+`)

// companySuffixRe matches a corporate suffix such as "Inc" or "LLC".
var companySuffixRe = regexp.MustCompile(`\b(?:Inc|Corp|LLC|Ltd|Co)\b\.?`)

// moneyRe matches dollar amounts and shorthand like "250k" or "2 million".
var moneyRe = regexp.MustCompile(`(?i)\$\s*\d[\d,]*(?:\.\d+)?|\b\d+(?:\.\d+)?\s*(?:k|m|million|thousand)\b`)

// threeLettersRe requires a minimal run of letters for deal-shaped content.
var threeLettersRe = regexp.MustCompile(`[A-Za-z]{3}`)

// looksLikeDeal reports whether numbered-entry content resembles a deal: a
// run of letters plus a capitalized phrase, a company suffix, or a monetary
// amount. Per R1.3.
func looksLikeDeal(content string) bool {
	if !threeLettersRe.MatchString(content) {
		return false
	}
	return capitalizedPhraseRe.MatchString(content) ||
		companySuffixRe.MatchString(content) ||
		moneyRe.MatchString(content)
}

// detectNumberedLists groups consecutive deal-shaped numbered entries into
// one boundary per list. A blank line, a non-qualifying line, or the end of
// the text closes the open group; an entry numbered 1 while a group is open
// closes it and starts the next. Per R1.3.
func detectNumberedLists(text string) []types.Boundary {
	var candidates []types.Boundary
	var open bool
	var groupStart, groupEnd int
	var trigger string

	closeGroup := func() {
		if !open {
			return
		}
		candidates = append(candidates, types.Boundary{
			StartIndex:      groupStart,
			EndIndex:        groupEnd,
			Confidence:      patternConfidence,
			DetectionMethod: types.MethodPattern,
			Trigger:         trigger,
		})
		open = false
	}

	for _, ln := range splitLines(text) {
		m := numberedEntryRe.FindStringSubmatch(ln.text)
		if m == nil || !looksLikeDeal(m[2]) {
			closeGroup()
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n == 1 {
			closeGroup()
		}
		if !open {
			open = true
			groupStart = ln.start
			trigger = strings.TrimSpace(ln.text)
		}
		groupEnd = ln.start + len(ln.text)
	}
	closeGroup()
	return candidates
}
