package types

// Engine defaults, applied wherever a config value is left at its zero value.
const (
	// DefaultMinConfidence is the floor below which boundaries and records
	// are dropped.
	DefaultMinConfidence = 0.3

	// DefaultMaxBoundaries caps how many boundaries detection returns.
	DefaultMaxBoundaries = 100

	// DefaultDeduplicationThreshold is the similarity score at or above
	// which two records are considered the same deal.
	DefaultDeduplicationThreshold = 0.85
)

// DetectionConfig holds settings for boundary detection.
// Per prd001-boundary-detection R2.6, R4.1-R4.2.
type DetectionConfig struct {
	// MinConfidence drops boundaries scoring below it (default 0.3).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// MaxBoundaries caps the number of boundaries returned (default 100).
	MaxBoundaries int `json:"max_boundaries" yaml:"max_boundaries"`

	// MergeOverlapping enables the reconciliation pass that merges
	// overlapping and near-adjacent candidates. DefaultDetectionConfig
	// turns it on; the zero value leaves every candidate separate.
	MergeOverlapping bool `json:"merge_overlapping" yaml:"merge_overlapping"`
}

// DefaultDetectionConfig returns the detection settings used when the caller
// has no opinion.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		MinConfidence:    DefaultMinConfidence,
		MaxBoundaries:    DefaultMaxBoundaries,
		MergeOverlapping: true,
	}
}

// ExtractionConfig holds settings for field extraction.
// Per prd002-field-extraction R1.3, R5.4, R6.1-R6.2.
type ExtractionConfig struct {
	// MinConfidence drops records scoring below it, after deduplication
	// (default 0.3).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// Deduplicate enables similarity-based deduplication.
	// DefaultExtractionConfig turns it on.
	Deduplicate bool `json:"deduplicate" yaml:"deduplicate"`

	// DeduplicationThreshold is the similarity score at or above which two
	// records collapse into one (default 0.85).
	DeduplicationThreshold float64 `json:"deduplication_threshold" yaml:"deduplication_threshold"`

	// FieldsToExtract restricts which fields the extractor attempts.
	// Empty means all nine.
	FieldsToExtract []FieldName `json:"fields_to_extract,omitempty" yaml:"fields_to_extract,omitempty"`

	// SourceFileName is stamped into each record's source location.
	SourceFileName string `json:"source_file_name,omitempty" yaml:"source_file_name,omitempty"`
}

// DefaultExtractionConfig returns the extraction settings used when the
// caller has no opinion.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MinConfidence:          DefaultMinConfidence,
		Deduplicate:            true,
		DeduplicationThreshold: DefaultDeduplicationThreshold,
	}
}

// PipelineConfig groups the stage configurations plus the directories the
// batch pipeline reads from and writes to.
// Per prd003-pipeline-cli R2.1, R5.1.
type PipelineConfig struct {
	Detection  DetectionConfig  `json:"detection" yaml:"detection"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`

	// DocumentsDir is the directory batch runs scan for source documents
	// (default "documents").
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// ReportsDir is the directory batch runs write per-document reports to
	// (default "reports").
	ReportsDir string `json:"reports_dir" yaml:"reports_dir"`
}

// DefaultPipelineConfig returns the pipeline settings used when no config
// file or flags override them.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Detection:    DefaultDetectionConfig(),
		Extraction:   DefaultExtractionConfig(),
		DocumentsDir: "documents",
		ReportsDir:   "reports",
	}
}
