package main

import (
	"github.com/spf13/cobra"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/bed"
)

func newTable2BedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table2bed",
		Short: "Expand a transcript table into per-exon BED records",
		Long: `Read a transcript table on standard input and emit one BED row per
exon: chromosome, start, end, and "{transcript}_{exonNumber}". Exon 1 is
always the most upstream exon in transcript orientation, so numbering
counts down from the highest genomic coordinate on minus-strand
transcripts.`,
		Example: `  grexome-secondary canonical-table --select canonical < in.gtf | grexome-secondary table2bed > exons.bed`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bed.Convert(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
