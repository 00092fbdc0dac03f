// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

const (
	// maxFirstLineName bounds how long a first-line fallback name may be.
	maxFirstLineName = 100

	// maxStandaloneName bounds how long a standalone-line fallback name
	// may be.
	maxStandaloneName = 60
)

// listMarkerRe strips a leading bullet or list number from a name candidate.
var listMarkerRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// nameLabelRe strips a leading deal label, with or without separator.
var nameLabelRe = regexp.MustCompile(`(?i)^\s*(?:deal|opportunity)(?:\s+name)?\s*[:#-]?\s*`)

// suffixedCompanyRe matches a capitalized phrase ending in a corporate
// suffix, the strongest fallback signal for a deal name.
var suffixedCompanyRe = regexp.MustCompile(`(?:[A-Z][\w&.'-]*[ \t]+){1,4}(?:Inc|Corp|LLC|Ltd|Co)\b\.?`)

// standaloneNameRe matches a line that is nothing but a capitalized
// multi-word phrase.
var standaloneNameRe = regexp.MustCompile(`^[A-Z][\w&.'-]*(?:[ \t]+[A-Z][\w&.'-]*)+$`)

// lettersRunRe is the minimal run of letters a usable name needs.
var lettersRunRe = regexp.MustCompile(`[A-Za-z]{3}`)

// fallbackName derives a deal name for passages where no name pattern
// matched. It tries the first non-blank line stripped of list markers and
// deal labels, then the first company phrase with a corporate suffix, then
// the first standalone capitalized line. An empty return means the passage
// yields no record. Per prd002-field-extraction R4.1-R4.4.
func fallbackName(passage string) string {
	if name := firstLineName(passage); name != "" {
		return name
	}
	if m := suffixedCompanyRe.FindString(passage); m != "" {
		return cleanCapture(m)
	}
	for _, ln := range strings.Split(passage, "\n") {
		ln = strings.TrimSpace(ln)
		if len(ln) < maxStandaloneName && standaloneNameRe.MatchString(ln) {
			return ln
		}
	}
	return ""
}

// firstLineName cleans the passage's first non-blank line into a name
// candidate. Per R4.1.
func firstLineName(passage string) string {
	for _, ln := range strings.Split(passage, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		ln = listMarkerRe.ReplaceAllString(ln, "")
		ln = nameLabelRe.ReplaceAllString(ln, "")
		ln = cleanCapture(ln)
		if ln != "" && len(ln) < maxFirstLineName && lettersRunRe.MatchString(ln) {
			return ln
		}
		return ""
	}
	return ""
}
