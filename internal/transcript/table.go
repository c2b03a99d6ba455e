package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header columns of the transcript table.
var tableColumns = []string{
	"TRANSCRIPT", "GENE", "ENSG", "CHROM", "STRAND",
	"CDS_START", "CDS_END", "EXON_STARTS", "EXON_ENDS",
}

// Row is one emitted transcript table row. Chrom holds the display form
// ("chr12", "chrM"); exon coordinate slices are parallel, in increasing
// genomic order.
type Row struct {
	Transcript string
	Gene       string
	GeneID     string
	Chrom      string
	Strand     string
	CDSStart   int64
	CDSEnd     int64
	ExonStarts []int64
	ExonEnds   []int64
}

// WriteTable writes the header line and all rows as tab-separated text.
func WriteTable(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(tableColumns, "\t") + "\n"); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	for _, r := range rows {
		line := strings.Join([]string{
			r.Transcript,
			r.Gene,
			r.GeneID,
			r.Chrom,
			r.Strand,
			strconv.FormatInt(r.CDSStart, 10),
			strconv.FormatInt(r.CDSEnd, 10),
			formatCoords(r.ExonStarts),
			formatCoords(r.ExonEnds),
		}, "\t")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}

	return bw.Flush()
}

// TableReader streams rows back out of a transcript table.
type TableReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewTableReader creates a reader over a transcript table stream and skips
// the header row.
func NewTableReader(r io.Reader) (*TableReader, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	tr := &TableReader{scanner: scanner}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read table header: %w", err)
		}
		return nil, fmt.Errorf("empty transcript table: missing header")
	}
	tr.line++

	return tr, nil
}

// Next returns the next row, or (nil, nil) at end of input.
func (tr *TableReader) Next() (*Row, error) {
	for tr.scanner.Scan() {
		tr.line++
		line := tr.scanner.Text()
		if line == "" {
			continue
		}

		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tr.line, err)
		}
		return row, nil
	}

	if err := tr.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript table: %w", err)
	}
	return nil, nil
}

// parseRow parses one data line of a transcript table.
func parseRow(line string) (*Row, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != len(tableColumns) {
		return nil, fmt.Errorf("invalid table row: expected %d fields, got %d", len(tableColumns), len(fields))
	}

	cdsStart, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse CDS_START: %w", err)
	}
	cdsEnd, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse CDS_END: %w", err)
	}

	starts, err := parseCoords(fields[7])
	if err != nil {
		return nil, fmt.Errorf("parse EXON_STARTS: %w", err)
	}
	ends, err := parseCoords(fields[8])
	if err != nil {
		return nil, fmt.Errorf("parse EXON_ENDS: %w", err)
	}
	if len(starts) != len(ends) {
		return nil, fmt.Errorf("transcript %s: %d exon starts but %d exon ends", fields[0], len(starts), len(ends))
	}

	return &Row{
		Transcript: fields[0],
		Gene:       fields[1],
		GeneID:     fields[2],
		Chrom:      fields[3],
		Strand:     fields[4],
		CDSStart:   cdsStart,
		CDSEnd:     cdsEnd,
		ExonStarts: starts,
		ExonEnds:   ends,
	}, nil
}

// formatCoords renders a coordinate list as a comma-separated string.
func formatCoords(coords []int64) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.FormatInt(c, 10)
	}
	return strings.Join(parts, ",")
}

// parseCoords parses a comma-separated coordinate list.
func parseCoords(s string) ([]int64, error) {
	if s == "" {
		return nil, fmt.Errorf("empty coordinate list")
	}
	parts := strings.Split(s, ",")
	coords := make([]int64, len(parts))
	for i, p := range parts {
		c, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", p, err)
		}
		coords[i] = c
	}
	return coords, nil
}
