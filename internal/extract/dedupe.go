// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strings"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// Similarity component weights. A component contributes only when both
// records carry the field; the score renormalizes over the weights that
// contributed. Per prd002-field-extraction R5.1.
const (
	nameWeight     = 0.4
	customerWeight = 0.3
	valueWeight    = 0.2
	statusWeight   = 0.1
)

// suffixTokens are corporate suffix words ignored when comparing names, so
// "Acme Corp" and "Acme Corporation" compare as the same company.
var suffixTokens = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"corp":         true,
	"corporation":  true,
	"llc":          true,
	"ltd":          true,
	"limited":      true,
	"co":           true,
	"company":      true,
}

// deduplicate walks records in order, comparing each against the kept set.
// The first kept record scoring at or above threshold consumes the
// candidate: the lower-confidence side moves to the duplicates list, and on
// a tie the earlier record wins. Comparison is pairwise and order-dependent;
// similarity is not transitive. Per R5.4-R5.5.
func deduplicate(deals []types.ExtractedDeal, threshold float64) (kept, duplicates []types.ExtractedDeal) {
	kept = make([]types.ExtractedDeal, 0, len(deals))
	for _, d := range deals {
		matched := false
		for i := range kept {
			if similarity(kept[i], d) < threshold {
				continue
			}
			matched = true
			if d.Confidence > kept[i].Confidence {
				duplicates = append(duplicates, kept[i])
				kept[i] = d
			} else {
				duplicates = append(duplicates, d)
			}
			break
		}
		if !matched {
			kept = append(kept, d)
		}
	}
	return kept, duplicates
}

// similarity scores two records on name, customer, value, and status
// agreement. Names always contribute; the other components require the
// field on both sides. Per R5.1-R5.3.
func similarity(a, b types.ExtractedDeal) float64 {
	score := nameWeight * tokenOverlap(a.DealName, b.DealName)
	total := nameWeight
	if a.CustomerName != "" && b.CustomerName != "" {
		score += customerWeight * tokenOverlap(a.CustomerName, b.CustomerName)
		total += customerWeight
	}
	if a.DealValue != nil && b.DealValue != nil {
		score += valueWeight * valueCloseness(*a.DealValue, *b.DealValue)
		total += valueWeight
	}
	if a.Status != "" && b.Status != "" {
		if a.Status == b.Status {
			score += statusWeight
		}
		total += statusWeight
	}
	return score / total
}

// tokenOverlap measures how much two names share: distinct lowercase tokens
// in common over distinct tokens overall, with corporate suffixes ignored.
// Per R5.2.
func tokenOverlap(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	common := 0
	for tok := range as {
		if bs[tok] {
			common++
		}
	}
	return float64(common) / float64(len(as)+len(bs)-common)
}

// tokenSet splits a name into distinct lowercase tokens, dropping
// punctuation and corporate suffix words.
func tokenSet(name string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = strings.Trim(tok, ".,;:&()")
		if tok == "" || suffixTokens[tok] {
			continue
		}
		set[tok] = true
	}
	return set
}

// valueCloseness maps the relative difference between two amounts onto
// [0, 1], with equal amounts scoring 1. Per R5.3.
func valueCloseness(a, b float64) float64 {
	if a == b {
		return 1
	}
	max := math.Max(math.Abs(a), math.Abs(b))
	if max == 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/max
}
