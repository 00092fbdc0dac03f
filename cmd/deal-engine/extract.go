package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/deal-engine/internal/pipeline"
	"github.com/pdiddy/deal-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract deal records from one document or a whole directory",
	Long: `Extract runs boundary detection and field extraction over a document and
prints the resulting deal records as a table, JSON, or YAML. With --output
the full report is saved instead of printed.

With --batch, every .txt and .md document in the documents directory is
processed and a <name>-deals.yaml report is written per document. Documents
whose report is newer than the source are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	if batch, _ := cmd.Flags().GetBool("batch"); batch {
		return runExtractBatch(cmd, cfg)
	}

	if len(args) == 0 {
		return fmt.Errorf("document required: pass a file or use --batch")
	}

	report, err := pipeline.ProcessFile(args[0], cfg)
	if err != nil {
		return err
	}

	warnings := append(report.Detection.Warnings, report.Extraction.Warnings...)
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		report.Source.RunID = uuid.NewString()
		if err := pipeline.WriteReport(outPath, report); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d deals)\n", outPath, len(report.Extraction.Deals))
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		pipeline.FormatTable(report, os.Stdout)
	case "json":
		return pipeline.FormatJSON(report, os.Stdout)
	case "yaml":
		return pipeline.FormatYAML(report, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
	return nil
}

func runExtractBatch(cmd *cobra.Command, cfg types.PipelineConfig) error {
	summary, err := pipeline.ProcessDir(context.Background(), cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("%d processed, %d skipped, %d failed\n",
		summary.Processed, summary.Skipped, summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed", summary.Failed)
	}
	return nil
}

// knownFields maps the accepted --fields values onto field names.
var knownFields = map[string]types.FieldName{
	"dealName":          types.FieldDealName,
	"customerName":      types.FieldCustomerName,
	"dealValue":         types.FieldDealValue,
	"status":            types.FieldStatus,
	"owner":             types.FieldOwner,
	"expectedCloseDate": types.FieldExpectedCloseDate,
	"probability":       types.FieldProbability,
	"decisionMaker":     types.FieldDecisionMaker,
	"description":       types.FieldDescription,
}

// pipelineConfig resolves the full run configuration from extract's flags,
// the config file, and the built-in defaults, in that order. Detection has
// no flags on extract; it resolves from the config file alone.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()
	cfg.Detection = detectionConfigFromViper()

	cfg.Extraction.MinConfidence = flagOrViperFloat(cmd, "min-confidence", "extraction.min_confidence", cfg.Extraction.MinConfidence)
	cfg.Extraction.DeduplicationThreshold = flagOrViperFloat(cmd, "dedup-threshold", "extraction.deduplication_threshold", cfg.Extraction.DeduplicationThreshold)
	if noDedup, _ := cmd.Flags().GetBool("no-dedup"); noDedup {
		cfg.Extraction.Deduplicate = false
	}

	if fields, _ := cmd.Flags().GetStringSlice("fields"); len(fields) > 0 {
		for _, f := range fields {
			if name, ok := knownFields[f]; ok {
				cfg.Extraction.FieldsToExtract = append(cfg.Extraction.FieldsToExtract, name)
			} else {
				fmt.Fprintf(os.Stderr, "warning: unknown field %q ignored\n", f)
			}
		}
	}

	cfg.DocumentsDir = flagOrViperString(cmd, "documents-dir", "documents_dir", cfg.DocumentsDir)
	cfg.ReportsDir = flagOrViperString(cmd, "reports-dir", "reports_dir", cfg.ReportsDir)
	return cfg
}

func init() {
	extractCmd.Flags().Float64("min-confidence", types.DefaultMinConfidence, "drop records scoring below this, after deduplication")
	extractCmd.Flags().Float64("dedup-threshold", types.DefaultDeduplicationThreshold, "similarity at or above which records collapse")
	extractCmd.Flags().Bool("no-dedup", false, "keep near-duplicate records")
	extractCmd.Flags().StringSlice("fields", nil, "restrict extraction to these fields (e.g. dealName,dealValue)")
	extractCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	extractCmd.Flags().String("output", "", "write the full report to this file instead of printing")
	extractCmd.Flags().Bool("batch", false, "process every document in the documents directory")
	extractCmd.Flags().String("documents-dir", "documents", "directory scanned in batch mode")
	extractCmd.Flags().String("reports-dir", "reports", "directory batch reports are written to")

	rootCmd.AddCommand(extractCmd)
}
