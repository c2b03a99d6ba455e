// Package variants filters and augments tab-separated variant-annotation
// tables.
package variants

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Population allele-frequency columns checked against the frequency
// threshold when present in the header.
var afColumns = []string{"gnomADe_AF", "gnomADg_AF", "AF", "AF_ESP", "AF_EXAC", "AF_UK10K"}

// Well-known column names.
const (
	ColCountHR = "COUNT_HR"
	ColImpact  = "IMPACT"
)

// FilterConfig holds the thresholds for filtering a variant table.
type FilterConfig struct {
	// MaxAF is the maximum allowed value in any recognized population
	// allele-frequency column.
	MaxAF float64
	// MinHR is the minimum cohort homozygous-reference count, enforced when
	// the COUNT_HR column is present.
	MinHR int
	// NoModifier drops rows whose IMPACT is MODIFIER.
	NoModifier bool
	// Keep maps column names to the exact value a row must carry to survive.
	Keep map[string]string
}

// Filter streams a variant table, dropping rows that fail the configured
// thresholds. The header and surviving rows are echoed unchanged.
type Filter struct {
	cfg    FilterConfig
	logger *zap.Logger
}

// NewFilter creates a filter with the given configuration.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for summary messages.
func (f *Filter) SetLogger(l *zap.Logger) {
	f.logger = l
}

// Run consumes the whole input table and writes the filtered table.
func (f *Filter) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		return fmt.Errorf("empty variant table: missing header")
	}
	header := scanner.Text()
	columns := strings.Split(header, "\t")

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	var afIdx []int
	for _, c := range afColumns {
		if i, ok := index[c]; ok {
			afIdx = append(afIdx, i)
		}
	}

	hrIdx := -1
	if i, ok := index[ColCountHR]; ok {
		hrIdx = i
	}

	impactIdx := -1
	if f.cfg.NoModifier {
		i, ok := index[ColImpact]
		if !ok {
			return fmt.Errorf("column %s not in header, cannot filter on impact", ColImpact)
		}
		impactIdx = i
	}

	keepIdx := make(map[int]string, len(f.cfg.Keep))
	for col, val := range f.cfg.Keep {
		i, ok := index[col]
		if !ok {
			return fmt.Errorf("column %s not in header, cannot filter on it", col)
		}
		keepIdx[i] = val
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := 1
	total, kept := 0, 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		total++

		fields := strings.Split(text, "\t")
		if len(fields) != len(columns) {
			return fmt.Errorf("line %d: expected %d fields, got %d", line, len(columns), len(fields))
		}

		pass, err := f.keep(fields, afIdx, hrIdx, impactIdx, keepIdx)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if !pass {
			continue
		}

		kept++
		if _, err := bw.WriteString(text + "\n"); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan variant table: %w", err)
	}

	f.logger.Info("filtered variant table",
		zap.Int("rows", total),
		zap.Int("kept", kept))

	return bw.Flush()
}

// keep applies all configured tests to one row.
func (f *Filter) keep(fields []string, afIdx []int, hrIdx, impactIdx int, keepIdx map[int]string) (bool, error) {
	for _, i := range afIdx {
		ok, err := afBelow(fields[i], f.cfg.MaxAF)
		if err != nil {
			return false, fmt.Errorf("column %d: %w", i+1, err)
		}
		if !ok {
			return false, nil
		}
	}

	if hrIdx >= 0 && !missing(fields[hrIdx]) {
		n, err := strconv.Atoi(fields[hrIdx])
		if err != nil {
			return false, fmt.Errorf("parse %s %q: %w", ColCountHR, fields[hrIdx], err)
		}
		if n < f.cfg.MinHR {
			return false, nil
		}
	}

	if impactIdx >= 0 && fields[impactIdx] == "MODIFIER" {
		return false, nil
	}

	for i, want := range keepIdx {
		if fields[i] != want {
			return false, nil
		}
	}

	return true, nil
}

// afBelow checks a population-frequency cell against the threshold. VEP
// packs several values into one cell with "&" separators; every value must
// pass. Empty cells pass.
func afBelow(cell string, max float64) (bool, error) {
	if missing(cell) {
		return true, nil
	}
	for _, part := range strings.Split(cell, "&") {
		if missing(part) {
			continue
		}
		af, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return false, fmt.Errorf("parse allele frequency %q: %w", part, err)
		}
		if af > max {
			return false, nil
		}
	}
	return true, nil
}

// missing reports whether a cell holds no usable value.
func missing(cell string) bool {
	return cell == "" || cell == "." || cell == "-"
}
