// Package gtf parses Ensembl GTF annotation records.
package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// Feature types used by the transcript table builder.
const (
	FeatureExon       = "exon"
	FeatureStartCodon = "start_codon"
	FeatureStopCodon  = "stop_codon"
)

// Record is a single parsed GTF line.
type Record struct {
	Chrom   string
	Source  string
	Feature string
	Start   int64
	End     int64
	Score   string
	Strand  string
	Frame   string
	Attrs   map[string]string

	// attrText keeps the raw attribute column: the attribute map collapses
	// repeated keys (GENCODE emits several "tag" entries per transcript), so
	// tag tests have to run against the raw text.
	attrText string
}

// ParseLine parses a single GTF data line.
// The line must have exactly 9 tab-separated fields.
func ParseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	rec := &Record{
		Chrom:    fields[0],
		Source:   fields[1],
		Feature:  fields[2],
		Start:    start,
		End:      end,
		Score:    fields[5],
		Strand:   fields[6],
		Frame:    fields[7],
		Attrs:    ParseAttributes(fields[8]),
		attrText: fields[8],
	}

	return rec, nil
}

// HasTag reports whether the raw attribute column carries the given tag,
// e.g. HasTag("Ensembl_canonical") matches `tag "Ensembl_canonical";`.
func (r *Record) HasTag(tag string) bool {
	return strings.Contains(r.attrText, `tag "`+tag+`"`)
}

// IsRelevant reports whether the record's feature type contributes to
// transcript tables.
func (r *Record) IsRelevant() bool {
	switch r.Feature {
	case FeatureExon, FeatureStartCodon, FeatureStopCodon:
		return true
	}
	return false
}

// ParseAttributes parses a GTF attribute column.
// Format: key "value"; key "value"; ...
// Repeated keys keep the last value.
func ParseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	parts := strings.Split(attrStr, ";")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		value = strings.Trim(value, "\"")

		attrs[key] = value
	}

	return attrs
}
