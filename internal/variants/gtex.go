package variants

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
)

// ColSymbol is the gene-symbol column of a variant table, the join key for
// expression data.
const ColSymbol = "SYMBOL"

// GTEX holds per-tissue median expression values keyed by gene symbol, with
// tissues already in output order: favorite tissues first, the rest in file
// order.
type GTEX struct {
	columns []string            // rendered output column names
	values  map[string][]string // gene -> values aligned with columns
}

// LoadGTEX reads a GTEX per-tissue expression file: gene symbol in the
// first column, one column per tissue. Gzipped files are handled
// transparently. Favorite tissues are moved to the front and renamed
// GTEX_<tissue>_FAV; the rest become GTEX_<tissue>. A favorite missing from
// the file is a configuration error. Duplicate gene rows keep the last one.
func LoadGTEX(path string, favorites []string) (*GTEX, error) {
	r, err := csvh.OpenMaybeGz(path)
	if err != nil {
		return nil, fmt.Errorf("open GTEX file: %w", err)
	}
	defer r.Close()

	return parseGTEX(r, favorites)
}

// parseGTEX parses GTEX expression content.
func parseGTEX(r io.Reader, favorites []string) (*GTEX, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read GTEX header: %w", err)
		}
		return nil, fmt.Errorf("empty GTEX file: missing header")
	}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid GTEX header: need a gene column and at least one tissue")
	}
	tissues := header[1:]

	// order maps source column position (within tissues) to output position
	order, columns, err := tissueOrder(tissues, favorites)
	if err != nil {
		return nil, err
	}

	g := &GTEX{
		columns: columns,
		values:  make(map[string][]string),
	}

	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(fields))
		}

		vals := make([]string, len(tissues))
		for i, v := range fields[1:] {
			vals[order[i]] = v
		}
		g.values[fields[0]] = vals
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTEX file: %w", err)
	}

	return g, nil
}

// tissueOrder computes the favorite-first output ordering. It returns, for
// each source tissue index, its output index, plus the rendered output
// column names.
func tissueOrder(tissues, favorites []string) ([]int, []string, error) {
	srcIdx := make(map[string]int, len(tissues))
	for i, t := range tissues {
		srcIdx[t] = i
	}

	order := make([]int, len(tissues))
	for i := range order {
		order[i] = -1
	}
	columns := make([]string, 0, len(tissues))

	for _, fav := range favorites {
		i, ok := srcIdx[fav]
		if !ok {
			return nil, nil, fmt.Errorf("favorite tissue %q not in GTEX file", fav)
		}
		if order[i] != -1 {
			return nil, nil, fmt.Errorf("favorite tissue %q listed twice", fav)
		}
		order[i] = len(columns)
		columns = append(columns, "GTEX_"+fav+"_FAV")
	}

	for i, t := range tissues {
		if order[i] != -1 {
			continue
		}
		order[i] = len(columns)
		columns = append(columns, "GTEX_"+t)
	}

	return order, columns, nil
}

// Columns returns the rendered output column names.
func (g *GTEX) Columns() []string {
	return g.columns
}

// Expression returns the expression values for a gene, nil if unknown.
func (g *GTEX) Expression(gene string) []string {
	return g.values[gene]
}

// Join streams a variant table and inserts the GTEX columns immediately
// after the named anchor column, joining on the SYMBOL column. Genes absent
// from the expression data get empty cells.
func (g *GTEX) Join(r io.Reader, w io.Writer, after string) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		return fmt.Errorf("empty variant table: missing header")
	}
	columns := strings.Split(scanner.Text(), "\t")

	symbolIdx, afterIdx := -1, -1
	for i, c := range columns {
		if c == ColSymbol {
			symbolIdx = i
		}
		if c == after {
			afterIdx = i
		}
	}
	if symbolIdx == -1 {
		return fmt.Errorf("column %s not in header, cannot join expression data", ColSymbol)
	}
	if afterIdx == -1 {
		return fmt.Errorf("column %s not in header, cannot place expression columns", after)
	}

	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(insertAfter(columns, afterIdx, g.columns), "\t") + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	empty := make([]string, len(g.columns))

	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != len(columns) {
			return fmt.Errorf("line %d: expected %d fields, got %d", line, len(columns), len(fields))
		}

		vals := g.values[fields[symbolIdx]]
		if vals == nil {
			vals = empty
		}

		if _, err := bw.WriteString(strings.Join(insertAfter(fields, afterIdx, vals), "\t") + "\n"); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan variant table: %w", err)
	}

	return bw.Flush()
}

// insertAfter returns a new slice with ins placed right after index i.
func insertAfter(fields []string, i int, ins []string) []string {
	out := make([]string, 0, len(fields)+len(ins))
	out = append(out, fields[:i+1]...)
	out = append(out, ins...)
	out = append(out, fields[i+1:]...)
	return out
}
