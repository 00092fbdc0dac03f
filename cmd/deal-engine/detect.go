package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deal-engine/internal/boundary"
	"github.com/pdiddy/deal-engine/internal/pipeline"
	"github.com/pdiddy/deal-engine/pkg/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Find deal boundaries in a document",
	Long: `Detect scans one document for spans of text that each describe a single
deal, using keyword markers, numbered lists, and paragraph structure. It
prints the spans with their confidence, detection method, and trigger,
without extracting fields.

Useful for tuning: run detect before extract to see how a document will be
segmented.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading document %s: %w", args[0], err)
	}

	result := boundary.Detect(string(data), detectionConfig(cmd))

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return pipeline.FormatBoundariesJSON(result, os.Stdout)
	}
	pipeline.FormatBoundariesTable(result, os.Stdout)
	return nil
}

// detectionConfig resolves detection settings from detect's flags, the
// config file, and the built-in defaults, in that order.
func detectionConfig(cmd *cobra.Command) types.DetectionConfig {
	cfg := detectionConfigFromViper()
	cfg.MinConfidence = flagOrViperFloat(cmd, "min-confidence", "detection.min_confidence", cfg.MinConfidence)
	cfg.MaxBoundaries = flagOrViperInt(cmd, "max-boundaries", "detection.max_boundaries", cfg.MaxBoundaries)
	if noMerge, _ := cmd.Flags().GetBool("no-merge"); noMerge {
		cfg.MergeOverlapping = false
	}
	return cfg
}

// detectionConfigFromViper resolves detection settings from the config file
// alone, for commands that run detection without exposing its flags.
func detectionConfigFromViper() types.DetectionConfig {
	cfg := types.DefaultDetectionConfig()
	if viper.IsSet("detection.min_confidence") {
		cfg.MinConfidence = viper.GetFloat64("detection.min_confidence")
	}
	if viper.IsSet("detection.max_boundaries") {
		cfg.MaxBoundaries = viper.GetInt("detection.max_boundaries")
	}
	if viper.IsSet("detection.merge_overlapping") {
		cfg.MergeOverlapping = viper.GetBool("detection.merge_overlapping")
	}
	return cfg
}

func init() {
	detectCmd.Flags().Float64("min-confidence", types.DefaultMinConfidence, "drop boundaries scoring below this")
	detectCmd.Flags().Int("max-boundaries", types.DefaultMaxBoundaries, "cap on the number of boundaries returned")
	detectCmd.Flags().Bool("no-merge", false, "keep overlapping candidates separate instead of merging")
	detectCmd.Flags().Bool("json", false, "print the full detection result as JSON")

	rootCmd.AddCommand(detectCmd)
}
