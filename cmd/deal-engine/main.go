// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deal-engine CLI.
// Implements: prd001-boundary-detection, prd002-field-extraction,
//             prd003-pipeline-cli (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deal-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "deal-engine",
	Short: "Extract structured sales-deal records from unstructured text",
	Long: `deal-engine extracts structured sales-deal records from unstructured
business text: emails, meeting notes, call transcripts, and CRM exports.

Detection finds the spans of text that each describe a single deal;
extraction turns those spans into confidence-scored records. Each stage is
a subcommand: detect reports the spans, extract produces the records.
Batch runs write one YAML report per document for downstream tooling.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deal-engine.yaml or ~/.config/deal-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deal-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deal-engine"))
		}
	}

	viper.SetEnvPrefix("DEAL_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// flagOrViperFloat resolves a float setting: an explicitly set flag wins,
// then a config-file key, then the built-in default.
func flagOrViperFloat(cmd *cobra.Command, flag, key string, fallback float64) float64 {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetFloat64(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

// flagOrViperInt resolves an int setting with the same precedence.
func flagOrViperInt(cmd *cobra.Command, flag, key string, fallback int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

// flagOrViperString resolves a string setting with the same precedence.
func flagOrViperString(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
