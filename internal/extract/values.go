// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monetaryMultipliers maps amount suffixes to their factors.
var monetaryMultipliers = map[string]float64{
	"k":        1_000,
	"thousand": 1_000,
	"m":        1_000_000,
	"million":  1_000_000,
}

// currencyCodeRe matches an explicit ISO currency code near an amount.
var currencyCodeRe = regexp.MustCompile(`\b(?:USD|EUR|GBP|CAD|AUD)\b`)

// parseMonetary normalizes a captured amount: commas stripped, k/m suffixes
// expanded. m is the full regex match; m[1] is the amount, m[2] (when
// present) the multiplier suffix. Values that do not parse as numbers yield
// no result. Per prd002-field-extraction R2.1.
func parseMonetary(m []string) (float64, string, bool) {
	primary := strings.ReplaceAll(strings.TrimSpace(m[1]), ",", "")
	value, err := strconv.ParseFloat(primary, 64)
	if err != nil {
		return 0, "", false
	}
	if len(m) > 2 {
		suffix := strings.ToLower(strings.TrimSpace(m[2]))
		if mult, ok := monetaryMultipliers[suffix]; ok {
			value *= mult
		}
	}
	return value, currencyFor(m[0]), true
}

// currencyFor picks the ISO code for a matched amount from its symbol or an
// explicit code token. Bare amounts default to USD. Per R2.2.
func currencyFor(match string) string {
	if code := currencyCodeRe.FindString(match); code != "" {
		return code
	}
	switch {
	case strings.Contains(match, "£"):
		return "GBP"
	case strings.Contains(match, "€"):
		return "EUR"
	}
	return "USD"
}

// dateLayouts are tried in order when normalizing a date capture: ISO forms
// first, then US slash and UK dash forms, then written-out dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"2-1-2006",
	"January 2, 2006",
	"January 2 2006",
}

// quarterRe matches quarter expressions like "Q1 2025".
var quarterRe = regexp.MustCompile(`(?i)^q([1-4])\s+(\d{4})$`)

// parseDate normalizes a captured date string. Layouts are tried in order,
// then the quarter form, which resolves to the last day of the quarter's
// middle month (Q1 2025 = 2025-02-28). Parses whose year falls outside
// 1900-2100 are rejected. Nothing parsing yields no result. Per R2.3.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), ".,;"))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil && plausibleYear(t) {
			return t, true
		}
	}
	if m := quarterRe.FindStringSubmatch(raw); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		// Day 0 of month 3q normalizes to the last day of month 3q-1,
		// the quarter's middle month.
		t := time.Date(year, time.Month(3*q), 0, 0, 0, 0, 0, time.UTC)
		if plausibleYear(t) {
			return t, true
		}
	}
	return time.Time{}, false
}

// plausibleYear guards against degenerate parses like two-digit years.
func plausibleYear(t time.Time) bool {
	return t.Year() >= 1900 && t.Year() <= 2100
}

// statusSynonyms maps stage words that vary across CRMs onto one vocabulary.
// Unmapped statuses pass through lowercased. Per R2.4.
var statusSynonyms = map[string]string{
	"new":            "registered",
	"open":           "registered",
	"won":            "closed-won",
	"closed won":     "closed-won",
	"lost":           "closed-lost",
	"closed lost":    "closed-lost",
	"negotiating":    "negotiation",
	"in negotiation": "negotiation",
}

// normalizeStatus lowercases a captured status and folds known synonyms.
func normalizeStatus(raw string) string {
	s := strings.ToLower(cleanCapture(raw))
	if mapped, ok := statusSynonyms[s]; ok {
		return mapped
	}
	return s
}

// parseProbability parses a percentage and clamps it to 0-100. Per R2.5.
func parseProbability(raw string) (int, bool) {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p, true
}

// cleanCapture trims whitespace and trailing punctuation from a raw string
// capture.
func cleanCapture(raw string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), ".,;:"))
}
