// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/deal-engine/pkg/types"
)

// fieldPattern binds one extractable field to its ordered patterns and its
// confidence boost. Patterns run against the whole passage in multiline
// mode; the first match wins.
type fieldPattern struct {
	name     types.FieldName
	boost    float64
	patterns []*regexp.Regexp
}

// fieldPatterns is the extraction table: nine fields tried in this order,
// each with its most specific patterns first. Labeled lines ("Value: $50k")
// outrank prose phrasings, which outrank bare inline forms.
// Per prd002-field-extraction R1.1-R1.2.
var fieldPatterns = []fieldPattern{
	{
		name:  types.FieldDealName,
		boost: 0.20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:deal|opportunity)(?:\s+name)?[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`(?im)^[ \t]*(?:re|subject)[ \t]*:[ \t]*(.+)$`),
			regexp.MustCompile(`(?i)(?:deal|opportunity)\s+(?:named|called)\s+"([^"]+)"`),
			regexp.MustCompile(`\b(?i:the)\s+([A-Z][\w&.-]*(?:\s+[A-Z][\w&.-]*){0,4})\s+(?i:deal|opportunity|renewal)\b`),
		},
	},
	{
		name:  types.FieldCustomerName,
		boost: 0.15,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:customer|client|account|prospect)(?:\s+name)?[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`\b(?i:customer|client|account)\s+(?i:is|was)\s+([A-Z][\w&.'-]*(?:\s+[A-Z][\w&.'-]*){0,4})`),
			regexp.MustCompile(`\b(?i:with|for|from)\s+((?:[A-Z][\w&.'-]*[ \t]+){1,4}(?:Inc|Corp|LLC|Ltd|Co)\b\.?)`),
			regexp.MustCompile(`((?:[A-Z][\w&.'-]*[ \t]+){1,4}(?:Inc|Corp|LLC|Ltd|Co)\b\.?)`),
		},
	},
	{
		name:  types.FieldDealValue,
		boost: 0.20,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:deal[ \t]+)?(?:value|amount|price|size|contract[ \t]+value)[ \t]*[:#-][ \t]*[$£€]?[ \t]*([\d,]+(?:\.\d+)?)[ \t]*([kKmM])?(?:[ \t]*(?:USD|EUR|GBP|CAD|AUD))?`),
			regexp.MustCompile(`[$£€][ \t]*([\d,]+(?:\.\d+)?)[ \t]*([kKmM])?`),
			regexp.MustCompile(`\b(?i:worth|valued[ \t]+at|priced[ \t]+at)[ \t]+[$£€]?[ \t]*([\d,]+(?:\.\d+)?)[ \t]*((?i:[km]|million|thousand))?`),
			regexp.MustCompile(`\b([\d,]+(?:\.\d+)?)[ \t]*([kKmM])\b`),
		},
	},
	{
		name:  types.FieldStatus,
		boost: 0.10,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:deal[ \t]+)?(?:status|stage|phase)[ \t]*[:#-][ \t]*([A-Za-z][A-Za-z /-]*?)[ \t]*$`),
			regexp.MustCompile(`\b(?i:currently|now)[ \t]+(?i:in)[ \t]+(?i:the[ \t]+)?([A-Za-z-]+)[ \t]+(?i:stage|phase)\b`),
			regexp.MustCompile(`(?i)\b(qualified|qualification|discovery|proposal|negotiation|negotiating|closed[- ]won|closed[- ]lost|won|lost|registered)\b`),
		},
	},
	{
		name:  types.FieldOwner,
		boost: 0.10,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:owner|rep|sales[ \t]+rep|account[ \t]+(?:manager|executive)|assigned[ \t]+to)[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`\b(?i:owned|managed|handled)[ \t]+(?i:by)[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)`),
			regexp.MustCompile(`\b(?i:owner[ \t]+is)[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)`),
		},
	},
	{
		name:  types.FieldExpectedCloseDate,
		boost: 0.15,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:expected[ \t]+)?(?:close|closing)(?:[ \t]+date)?[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`\b(?i:closes?|closing|expected[ \t]+to[ \t]+close)[ \t]+(?i:on|by|in)[ \t]+([A-Za-z0-9][A-Za-z0-9,/ -]*)`),
			regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?)?)\b`),
			regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
			regexp.MustCompile(`\b((?i:Q[1-4])[ \t]+\d{4})\b`),
			regexp.MustCompile(`\b((?i:January|February|March|April|May|June|July|August|September|October|November|December)[ \t]+\d{1,2},?[ \t]+\d{4})\b`),
		},
	},
	{
		name:  types.FieldProbability,
		boost: 0.10,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:probability|win[ \t]+(?:rate|chance)|likelihood)[ \t]*[:#-][ \t]*(\d{1,3})[ \t]*%?`),
			regexp.MustCompile(`\b(\d{1,3})[ \t]*%[ \t]+(?i:probability|chance|likelihood|likely)`),
			regexp.MustCompile(`\b(?i:probability[ \t]+(?:of|at|is))[ \t]+(\d{1,3})[ \t]*%?`),
		},
	},
	{
		name:  types.FieldDecisionMaker,
		boost: 0.05,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:decision[ \t]+maker|champion|sponsor|economic[ \t]+buyer|primary[ \t]+contact)[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`\b(?i:decision[ \t]+maker|champion)[ \t]+(?i:is)[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)?)`),
			regexp.MustCompile(`([A-Z][a-z]+[ \t]+[A-Z][a-z]+)[ \t]+(?i:is|will[ \t]+be)[ \t]+(?i:the[ \t]+)?(?i:decision[ \t]+maker|signing|approving)`),
		},
	},
	{
		name:  types.FieldDescription,
		boost: 0.05,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*(?:description|summary|overview)[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`(?im)^[ \t]*(?:notes?|details?|background|scope)[ \t]*[:#-][ \t]*(.+)$`),
			regexp.MustCompile(`\b(?i:opportunity[ \t]+to)[ \t]+([^.\n]{10,150})`),
		},
	},
}

// selectFields filters the pattern table to the requested fields, keeping
// table order. Empty means all nine. Per R1.3.
func selectFields(requested []types.FieldName) []fieldPattern {
	if len(requested) == 0 {
		return fieldPatterns
	}
	want := make(map[types.FieldName]bool, len(requested))
	for _, f := range requested {
		want[f] = true
	}
	fields := make([]fieldPattern, 0, len(fieldPatterns))
	for _, f := range fieldPatterns {
		if want[f.name] {
			fields = append(fields, f)
		}
	}
	return fields
}
