package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/variants"
)

func newFilterCmd() *cobra.Command {
	var (
		maxAF float64
		minHR int
		noMod bool
		keep  []string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a variant table on frequencies and cohort counts",
		Long: `Read a tab-separated variant table on standard input and drop rows
whose population allele frequencies exceed --max-af, whose cohort
homozygous-reference count falls below --min-hr, or that fail the --keep
and --no-mod tests. The header and surviving rows are echoed unchanged.`,
		Example: `  grexome-secondary filter --max-af 0.01 --min-hr 100 < variants.tsv > rare.tsv
  grexome-secondary filter --no-mod --keep CANONICAL=YES < variants.tsv > rare.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kept, err := parseKeep(keep)
			if err != nil {
				return err
			}

			cfg := variants.FilterConfig{
				MaxAF:      viper.GetFloat64("filter.max-af"),
				MinHR:      viper.GetInt("filter.min-hr"),
				NoModifier: noMod,
				Keep:       kept,
			}

			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer logger.Sync()

			f := variants.NewFilter(cfg)
			f.SetLogger(logger)

			return f.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().Float64Var(&maxAF, "max-af", 0.01, "maximum population allele frequency")
	cmd.Flags().IntVar(&minHR, "min-hr", 100, "minimum cohort homozygous-reference count")
	cmd.Flags().BoolVar(&noMod, "no-mod", false, "drop rows with MODIFIER impact")
	cmd.Flags().StringArrayVar(&keep, "keep", nil, "only keep rows where COLUMN=VALUE (repeatable)")

	viper.BindPFlag("filter.max-af", cmd.Flags().Lookup("max-af"))
	viper.BindPFlag("filter.min-hr", cmd.Flags().Lookup("min-hr"))

	return cmd
}

// parseKeep parses repeated COLUMN=VALUE flags.
func parseKeep(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	kept := make(map[string]string, len(specs))
	for _, s := range specs {
		col, val, ok := strings.Cut(s, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid --keep %q: must be COLUMN=VALUE", s)
		}
		kept[col] = val
	}
	return kept, nil
}
