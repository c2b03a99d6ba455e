// Package main provides the grexome-secondary command-line tool, a set of
// stream filters for variant-annotation pipelines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grexome-secondary",
		Short: "Stream filters for variant-annotation pipelines",
		Long: `grexome-secondary bundles the small filters of a variant-annotation
pipeline: building canonical/MANE transcript tables from Ensembl GTF,
converting those tables to BED, filtering variant tables on population
frequencies and cohort counts, and joining GTEX expression data.

Each subcommand reads standard input and writes standard output so they
compose with shell pipes.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newCanonicalTableCmd())
	cmd.AddCommand(newTable2BedCmd())
	cmd.AddCommand(newFilterCmd())
	cmd.AddCommand(newGTEXCmd())
	cmd.AddCommand(newStoreCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.grexome-secondary.yaml if present.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".grexome-secondary")
		viper.SetConfigType("yaml")
	}
	_ = viper.ReadInConfig()
}

// newLogger builds the stderr logger used by all subcommands.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
