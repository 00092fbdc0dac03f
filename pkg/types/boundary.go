// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DetectionMethod identifies which strategy produced a boundary.
// Per prd001-boundary-detection R5.1. The "nlp" method is reserved for a
// future model-backed strategy and is never produced today.
type DetectionMethod string

const (
	MethodKeyword   DetectionMethod = "keyword"
	MethodPattern   DetectionMethod = "pattern"
	MethodStructure DetectionMethod = "structure"
	MethodHybrid    DetectionMethod = "hybrid"
	MethodNLP       DetectionMethod = "nlp"
)

// Boundary marks a span of the source text believed to describe a single deal.
// Per prd001-boundary-detection R5.1-R5.3.
type Boundary struct {
	// StartIndex is the byte offset where the span begins.
	StartIndex int `json:"start_index" yaml:"start_index"`

	// EndIndex is the byte offset one past the span's last byte, so the
	// span is text[StartIndex:EndIndex].
	EndIndex int `json:"end_index" yaml:"end_index"`

	// Confidence is a float between 0.0 and 1.0 indicating how strongly
	// the span looks like a single deal.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// DetectionMethod names the strategy that produced the span. Spans
	// merged across strategies carry "hybrid".
	DetectionMethod DetectionMethod `json:"detection_method" yaml:"detection_method"`

	// Trigger records what fired: the matched header line for keyword
	// spans, or a short strategy label otherwise.
	Trigger string `json:"trigger" yaml:"trigger"`

	// StartLine is the 1-based line number of the span's first line.
	StartLine int `json:"start_line" yaml:"start_line"`

	// EndLine is the 1-based line number of the span's last line.
	EndLine int `json:"end_line" yaml:"end_line"`
}

// DetectionStatistics summarizes a detection run.
// Per prd001-boundary-detection R4.4.
type DetectionStatistics struct {
	// TotalBoundaries is the number of boundaries returned.
	TotalBoundaries int `json:"total_boundaries" yaml:"total_boundaries"`

	// ByMethod counts returned boundaries per detection method.
	ByMethod map[DetectionMethod]int `json:"by_method" yaml:"by_method"`

	// AverageConfidence is the mean confidence of returned boundaries,
	// 0 when there are none.
	AverageConfidence float64 `json:"average_confidence" yaml:"average_confidence"`
}

// DetectionResult holds the output of boundary detection over one document.
// Per prd001-boundary-detection R4.1-R4.5.
type DetectionResult struct {
	// Boundaries are the detected spans in start-index order.
	Boundaries []Boundary `json:"boundaries" yaml:"boundaries"`

	// Statistics summarizes the run.
	Statistics DetectionStatistics `json:"statistics" yaml:"statistics"`

	// Warnings records non-fatal anomalies, such as spans long enough to
	// hold several deals or candidates discarded by the boundary cap.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
