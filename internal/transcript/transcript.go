// Package transcript builds canonical/MANE transcript tables from Ensembl
// GTF streams.
package transcript

import "fmt"

// Transcript accumulates per-transcript state while a GTF stream is consumed.
// Exon coordinate slices are parallel and kept in increasing genomic order
// regardless of strand: plus-strand exons arrive low-to-high and are
// appended, minus-strand exons arrive high-to-low and are prepended.
type Transcript struct {
	ID     string
	Gene   string
	GeneID string
	Chrom  string // bare label, "chr" prefix stripped
	Strand string // "+" or "-"

	// CDS bounds in genomic coordinates, 0 while undefined.
	CDSStart int64
	CDSEnd   int64

	ExonStarts []int64
	ExonEnds   []int64
}

// AddExon records an exon, preserving increasing genomic order.
func (t *Transcript) AddExon(start, end int64) {
	if t.Strand == "-" {
		t.ExonStarts = append([]int64{start}, t.ExonStarts...)
		t.ExonEnds = append([]int64{end}, t.ExonEnds...)
		return
	}
	t.ExonStarts = append(t.ExonStarts, start)
	t.ExonEnds = append(t.ExonEnds, end)
}

// SetStartCodon records a start_codon row. On the plus strand the start
// codon marks the genomic CDS start; on the minus strand it marks the
// genomic CDS end.
func (t *Transcript) SetStartCodon(start, end int64) {
	if t.Strand == "-" {
		t.CDSEnd = end
		return
	}
	t.CDSStart = start
}

// SetStopCodon records a stop_codon row, the mirror of SetStartCodon.
func (t *Transcript) SetStopCodon(start, end int64) {
	if t.Strand == "-" {
		t.CDSStart = start
		return
	}
	t.CDSEnd = end
}

// ResolveCDS finalizes the CDS bounds once the whole stream has been read:
//   - both bounds set: kept as-is;
//   - only one bound set: the transcript's CDS is incomplete on one end and
//     the missing bound is extended to the outermost exon boundary;
//   - neither set: non-coding by convention, CDS 1-1. Transcripts whose CDS
//     is incomplete on both ends fall into the same bucket; that
//     misclassification is accepted, downstream consumers rely on it.
func (t *Transcript) ResolveCDS() error {
	if len(t.ExonStarts) == 0 {
		return fmt.Errorf("transcript %s: no exons accumulated, cannot resolve CDS", t.ID)
	}

	switch {
	case t.CDSStart != 0 && t.CDSEnd != 0:
		// complete
	case t.CDSStart != 0:
		t.CDSEnd = t.ExonEnds[len(t.ExonEnds)-1]
	case t.CDSEnd != 0:
		t.CDSStart = t.ExonStarts[0]
	default:
		t.CDSStart = 1
		t.CDSEnd = 1
	}

	return nil
}
