package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/transcript"
)

// WriteRows batch-inserts transcript table rows using the Appender API.
// Duplicate transcript IDs are deduplicated before writing, last one wins.
func (s *Store) WriteRows(rows []transcript.Row) error {
	if len(rows) == 0 {
		return nil
	}

	byID := make(map[string]int, len(rows))
	deduped := make([]transcript.Row, 0, len(rows))
	for _, r := range rows {
		if i, seen := byID[r.Transcript]; seen {
			deduped[i] = r
			continue
		}
		byID[r.Transcript] = len(deduped)
		deduped = append(deduped, r)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "transcripts")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		if err := appender.AppendRow(
			r.Transcript, r.Gene, r.GeneID, r.Chrom, r.Strand,
			r.CDSStart, r.CDSEnd,
			joinCoords(r.ExonStarts), joinCoords(r.ExonEnds),
		); err != nil {
			return fmt.Errorf("append transcript row: %w", err)
		}
	}

	return appender.Flush()
}

// Clear removes all stored transcripts.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM transcripts")
	return err
}

// Count returns the number of stored transcripts.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return n, nil
}

// SearchByGene returns the stored rows for a gene symbol, ordered by
// transcript ID.
func (s *Store) SearchByGene(gene string) ([]transcript.Row, error) {
	rows, err := s.db.Query(`SELECT
		transcript, gene, gene_id, chrom, strand,
		cds_start, cds_end, exon_starts, exon_ends
		FROM transcripts
		WHERE gene=?
		ORDER BY transcript`, gene)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	var result []transcript.Row
	for rows.Next() {
		var r transcript.Row
		var starts, ends string
		if err := rows.Scan(
			&r.Transcript, &r.Gene, &r.GeneID, &r.Chrom, &r.Strand,
			&r.CDSStart, &r.CDSEnd, &starts, &ends,
		); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		if r.ExonStarts, err = splitCoords(starts); err != nil {
			return nil, fmt.Errorf("transcript %s: %w", r.Transcript, err)
		}
		if r.ExonEnds, err = splitCoords(ends); err != nil {
			return nil, fmt.Errorf("transcript %s: %w", r.Transcript, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return result, nil
}

// joinCoords renders a coordinate list in its table text form.
func joinCoords(coords []int64) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.FormatInt(c, 10)
	}
	return strings.Join(parts, ",")
}

// splitCoords parses a stored coordinate list.
func splitCoords(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	coords := make([]int64, len(parts))
	for i, p := range parts {
		c, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("stored coordinate %q: %w", p, err)
		}
		coords[i] = c
	}
	return coords, nil
}
