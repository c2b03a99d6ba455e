package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/store"
	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/transcript"
)

func newStoreCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep transcript tables in a DuckDB file for gene queries",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "DuckDB database file (in-memory if empty)")

	load := &cobra.Command{
		Use:   "load [table.tsv]",
		Short: "Load a transcript table into the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open transcript table: %w", err)
				}
				defer f.Close()
				in = f
			}

			tr, err := transcript.NewTableReader(in)
			if err != nil {
				return err
			}

			var rows []transcript.Row
			for {
				row, err := tr.Next()
				if err != nil {
					return err
				}
				if row == nil {
					break
				}
				rows = append(rows, *row)
			}

			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.WriteRows(rows); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d transcripts\n", len(rows))
			return nil
		},
	}

	genes := &cobra.Command{
		Use:   "genes GENE...",
		Short: "Print stored transcript rows for gene symbols",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			var rows []transcript.Row
			for _, gene := range args {
				found, err := s.SearchByGene(gene)
				if err != nil {
					return err
				}
				rows = append(rows, found...)
			}

			return transcript.WriteTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.AddCommand(load)
	cmd.AddCommand(genes)

	return cmd
}
