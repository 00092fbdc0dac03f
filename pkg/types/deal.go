// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FieldName identifies one of the extractable deal fields. The values double
// as keys in FieldConfidences, ExtractionStatistics.FieldCounts, and the
// fields-to-extract option. Per prd002-field-extraction R1.1.
type FieldName string

const (
	FieldDealName          FieldName = "dealName"
	FieldCustomerName      FieldName = "customerName"
	FieldDealValue         FieldName = "dealValue"
	FieldStatus            FieldName = "status"
	FieldOwner             FieldName = "owner"
	FieldExpectedCloseDate FieldName = "expectedCloseDate"
	FieldProbability       FieldName = "probability"
	FieldDecisionMaker     FieldName = "decisionMaker"
	FieldDescription       FieldName = "description"
)

// SourceLocation ties an extracted record back to the span of text it came
// from. Per prd002-field-extraction R6.2.
type SourceLocation struct {
	// FileName is the source document name as supplied by the caller.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`

	// StartIndex and EndIndex are the byte offsets of the span,
	// half-open like Boundary.
	StartIndex int `json:"start_index" yaml:"start_index"`
	EndIndex   int `json:"end_index" yaml:"end_index"`

	// StartLine and EndLine are 1-based line numbers.
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
}

// ExtractionMetadata records how and when a deal record was produced.
// Per prd002-field-extraction R6.2.
type ExtractionMetadata struct {
	// DetectionMethod is copied from the boundary the record came from.
	DetectionMethod DetectionMethod `json:"detection_method" yaml:"detection_method"`

	// ExtractedAt is the UTC timestamp of extraction. This is the only
	// non-deterministic value in a record.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`

	// FieldsExtracted counts fields that matched via the pattern table.
	FieldsExtracted int `json:"fields_extracted" yaml:"fields_extracted"`

	// FieldsAttempted counts fields the extractor tried.
	FieldsAttempted int `json:"fields_attempted" yaml:"fields_attempted"`
}

// ExtractedDeal is a structured sales-deal record extracted from one span of
// unstructured text. Only DealName is guaranteed; every other business field
// is present only when a pattern matched.
// Per prd002-field-extraction R1.1, R3.1-R3.2, R6.2-R6.3.
type ExtractedDeal struct {
	// ID is a stable identifier derived from the source name, span offset,
	// and deal name, consistent across re-extractions of unchanged text.
	// Per R6.3.
	ID string `json:"id" yaml:"id"`

	// DealName is the name of the deal or opportunity. Required; spans
	// yielding no name produce no record.
	DealName string `json:"deal_name" yaml:"deal_name"`

	// CustomerName is the customer, client, or account the deal is with.
	CustomerName string `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`

	// DealValue is the monetary value after normalization (commas removed,
	// k/m suffixes expanded).
	DealValue *float64 `json:"deal_value,omitempty" yaml:"deal_value,omitempty"`

	// Currency is the ISO 4217 code for DealValue, set only alongside it.
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`

	// Status is the normalized lowercase pipeline stage (e.g. "qualified",
	// "closed-won").
	Status string `json:"status,omitempty" yaml:"status,omitempty"`

	// Owner is the sales rep or account manager responsible for the deal.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`

	// ExpectedCloseDate is the normalized close date.
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty" yaml:"expected_close_date,omitempty"`

	// Probability is the win probability in percent, clamped to 0-100.
	Probability *int `json:"probability,omitempty" yaml:"probability,omitempty"`

	// DecisionMaker is the named decision maker or champion.
	DecisionMaker string `json:"decision_maker,omitempty" yaml:"decision_maker,omitempty"`

	// Description is free-form descriptive text found for the deal.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Confidence is the boundary confidence plus the boosts of all matched
	// fields, capped at 1.0. Per R3.1.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// FieldConfidences maps each pattern-matched field to its own
	// confidence (0.8 plus the field's boost). Fallback-derived deal names
	// do not appear here. Per R3.2.
	FieldConfidences map[FieldName]float64 `json:"field_confidences,omitempty" yaml:"field_confidences,omitempty"`

	// SourceLocation ties the record to the span it came from.
	SourceLocation SourceLocation `json:"source_location" yaml:"source_location"`

	// RawText is the first 500 characters of the span, for review.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// ExtractionMetadata records how and when the record was produced.
	ExtractionMetadata ExtractionMetadata `json:"extraction_metadata" yaml:"extraction_metadata"`
}

// ExtractionStatistics summarizes an extraction run.
// Per prd002-field-extraction R6.4.
type ExtractionStatistics struct {
	// TotalDeals is the number of records kept.
	TotalDeals int `json:"total_deals" yaml:"total_deals"`

	// DuplicatesRemoved is the number of records set aside as duplicates.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// AverageConfidence is the mean confidence of kept records, 0 when
	// there are none.
	AverageConfidence float64 `json:"average_confidence" yaml:"average_confidence"`

	// FieldCounts counts how many kept records carry each field via a
	// pattern match.
	FieldCounts map[FieldName]int `json:"field_counts" yaml:"field_counts"`
}

// ExtractionResult holds the output of field extraction over one document.
// Per prd002-field-extraction R6.1-R6.5.
type ExtractionResult struct {
	// Deals are the kept records, in boundary order.
	Deals []ExtractedDeal `json:"deals" yaml:"deals"`

	// Duplicates are records set aside by deduplication, kept for review.
	Duplicates []ExtractedDeal `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// Statistics summarizes the run.
	Statistics ExtractionStatistics `json:"statistics" yaml:"statistics"`

	// Warnings records spans that yielded no record and other non-fatal
	// anomalies.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
