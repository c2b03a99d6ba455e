package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/variants"
)

func newGTEXCmd() *cobra.Command {
	var (
		gtexFile  string
		favorites []string
		after     string
	)

	cmd := &cobra.Command{
		Use:   "gtex",
		Short: "Join GTEX per-tissue expression onto a variant table",
		Long: `Read a tab-separated variant table on standard input and insert one
GTEX expression column per tissue right after the --after column, joined
on the SYMBOL column. Favorite tissues come first, renamed
GTEX_<tissue>_FAV; genes missing from the expression file get empty
cells.`,
		Example: `  grexome-secondary gtex --gtex gtex_medians.tsv.gz --favorites Testis,Ovary < variants.tsv > withExpression.tsv`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gtexFile == "" {
				return fmt.Errorf("--gtex is required")
			}

			g, err := variants.LoadGTEX(gtexFile, viper.GetStringSlice("gtex.favorites"))
			if err != nil {
				return err
			}

			return g.Join(cmd.InOrStdin(), cmd.OutOrStdout(), after)
		},
	}

	cmd.Flags().StringVar(&gtexFile, "gtex", "", "GTEX per-tissue expression file (gene symbol + one column per tissue)")
	cmd.Flags().StringSliceVar(&favorites, "favorites", nil, "tissues to list first, comma-separated")
	cmd.Flags().StringVar(&after, "after", variants.ColSymbol, "variant-table column the GTEX columns are inserted after")

	viper.BindPFlag("gtex.favorites", cmd.Flags().Lookup("favorites"))

	return cmd
}
