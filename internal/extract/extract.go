// Package extract turns detected boundaries into structured deal records.
// Each passage runs through a field pattern table with value normalization,
// a name fallback chain, similarity-based deduplication, and a confidence
// filter. Implements: prd002-field-extraction (R1-R6);
//
//	docs/ARCHITECTURE § Field Extraction.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/pdiddy/deal-engine/pkg/types"
)

const (
	// fieldBaseConfidence is the floor for a pattern-matched field's own
	// confidence; the field's boost is added on top.
	fieldBaseConfidence = 0.8

	// rawTextLimit is how much of a passage is carried on the record.
	rawTextLimit = 500
)

// Extract builds deal records from the given boundaries over text. It never
// fails on content: passages that yield no record become warnings, invalid
// spans are skipped, and empty inputs produce an empty result.
// Per prd002-field-extraction R6.1-R6.5.
func Extract(text string, boundaries []types.Boundary, cfg types.ExtractionConfig) types.ExtractionResult {
	result := types.ExtractionResult{Deals: []types.ExtractedDeal{}}

	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = types.DefaultMinConfidence
	}
	threshold := cfg.DeduplicationThreshold
	if threshold <= 0 {
		threshold = types.DefaultDeduplicationThreshold
	}
	fields := selectFields(cfg.FieldsToExtract)

	var warnings []string
	var deals []types.ExtractedDeal
	for _, b := range boundaries {
		deal, err := extractOne(text, b, fields, cfg.SourceFileName)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("boundary at offset %d: %v", b.StartIndex, err))
			continue
		}
		if deal == nil {
			continue
		}
		deals = append(deals, *deal)
	}

	var duplicates []types.ExtractedDeal
	if cfg.Deduplicate {
		deals, duplicates = deduplicate(deals, threshold)
	}

	// The confidence filter runs after deduplication so a low-scoring
	// record can still knock out its weaker duplicates first.
	kept := make([]types.ExtractedDeal, 0, len(deals))
	for _, d := range deals {
		if d.Confidence >= minConfidence {
			kept = append(kept, d)
		}
	}

	result.Deals = kept
	result.Duplicates = duplicates
	result.Statistics = computeStatistics(kept, duplicates)
	result.Warnings = warnings
	return result
}

// extractOne builds a single record from one boundary's passage. A nil deal
// with nil error means the span was empty; an error means the passage
// yielded no usable record.
func extractOne(text string, b types.Boundary, fields []fieldPattern, fileName string) (*types.ExtractedDeal, error) {
	start, end := clampSpan(b.StartIndex, b.EndIndex, len(text))
	if end <= start {
		return nil, nil
	}
	passage := text[start:end]

	rawText := passage
	if len(rawText) > rawTextLimit {
		rawText = rawText[:rawTextLimit]
	}

	deal := &types.ExtractedDeal{
		Confidence:       b.Confidence,
		FieldConfidences: make(map[types.FieldName]float64),
		SourceLocation: types.SourceLocation{
			FileName:   fileName,
			StartIndex: start,
			EndIndex:   end,
			StartLine:  b.StartLine,
			EndLine:    b.EndLine,
		},
		RawText: rawText,
		ExtractionMetadata: types.ExtractionMetadata{
			DetectionMethod: b.DetectionMethod,
			ExtractedAt:     time.Now().UTC(),
			FieldsAttempted: len(fields),
		},
	}

	for _, f := range fields {
		m := firstMatch(f.patterns, passage)
		if m == nil {
			continue
		}
		if !applyField(deal, f.name, m) {
			continue
		}
		deal.Confidence += f.boost
		deal.FieldConfidences[f.name] = fieldBaseConfidence + f.boost
		deal.ExtractionMetadata.FieldsExtracted++
	}
	deal.Confidence = math.Min(1.0, deal.Confidence)

	if deal.DealName == "" {
		name := fallbackName(passage)
		if name == "" {
			return nil, errors.New("no deal name found")
		}
		deal.DealName = name
	}

	deal.ID = stableID(fileName, start, deal.DealName)
	return deal, nil
}

// firstMatch tries patterns in order and returns the first match's capture
// groups. Per R1.2.
func firstMatch(patterns []*regexp.Regexp, passage string) []string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(passage); m != nil {
			return m
		}
	}
	return nil
}

// applyField normalizes a raw match into the deal's typed field. It reports
// false when the captured value does not survive normalization, in which
// case the field stays absent and earns no boost.
func applyField(deal *types.ExtractedDeal, name types.FieldName, m []string) bool {
	switch name {
	case types.FieldDealName:
		deal.DealName = cleanCapture(m[1])
		return deal.DealName != ""
	case types.FieldCustomerName:
		deal.CustomerName = cleanCapture(m[1])
		return deal.CustomerName != ""
	case types.FieldDealValue:
		value, currency, ok := parseMonetary(m)
		if !ok {
			return false
		}
		deal.DealValue = &value
		deal.Currency = currency
		return true
	case types.FieldStatus:
		deal.Status = normalizeStatus(m[1])
		return deal.Status != ""
	case types.FieldOwner:
		deal.Owner = cleanCapture(m[1])
		return deal.Owner != ""
	case types.FieldExpectedCloseDate:
		t, ok := parseDate(m[1])
		if !ok {
			return false
		}
		deal.ExpectedCloseDate = &t
		return true
	case types.FieldProbability:
		p, ok := parseProbability(m[1])
		if !ok {
			return false
		}
		deal.Probability = &p
		return true
	case types.FieldDecisionMaker:
		deal.DecisionMaker = cleanCapture(m[1])
		return deal.DecisionMaker != ""
	case types.FieldDescription:
		deal.Description = cleanCapture(m[1])
		return deal.Description != ""
	}
	return false
}

// clampSpan confines a boundary's span to the text.
func clampSpan(start, end, textLen int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > textLen {
		end = textLen
	}
	return start, end
}

// stableID derives a short deterministic identifier for a record so repeat
// runs over unchanged text produce the same IDs. Per R6.3.
func stableID(fileName string, start int, dealName string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", fileName, start, dealName)))
	return hex.EncodeToString(sum[:])[:12]
}

// computeStatistics tallies kept records, removed duplicates, the mean
// confidence, and per-field extraction counts. Per R6.4.
func computeStatistics(deals, duplicates []types.ExtractedDeal) types.ExtractionStatistics {
	stats := types.ExtractionStatistics{
		TotalDeals:        len(deals),
		DuplicatesRemoved: len(duplicates),
		FieldCounts:       make(map[types.FieldName]int),
	}
	var sum float64
	for _, d := range deals {
		sum += d.Confidence
		for field := range d.FieldConfidences {
			stats.FieldCounts[field]++
		}
	}
	if len(deals) > 0 {
		stats.AverageConfidence = sum / float64(len(deals))
	}
	return stats
}
