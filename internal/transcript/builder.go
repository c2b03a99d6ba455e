package transcript

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/gtf"
)

// Builder produces one fully-resolved table row per transcript of interest
// seen in a GTF stream.
type Builder struct {
	sel         Selection
	logger      *zap.Logger
	transcripts map[string]*Transcript
}

// NewBuilder creates a builder with the given selection.
func NewBuilder(sel Selection) *Builder {
	return &Builder{
		sel:         sel,
		logger:      zap.NewNop(),
		transcripts: make(map[string]*Transcript),
	}
}

// SetLogger sets the logger for debug messages.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// ReadAll consumes an entire GTF stream.
func (b *Builder) ReadAll(r *gtf.Reader) error {
	for {
		rec, err := r.Next()
		if err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		if err := b.Add(rec); err != nil {
			return fmt.Errorf("line %d: %w", r.Line(), err)
		}
	}
}

// Add processes one GTF record. Records whose feature type is not
// exon/start_codon/stop_codon are ignored; records failing the selection
// test are silently skipped.
func (b *Builder) Add(rec *gtf.Record) error {
	if !rec.IsRelevant() {
		return nil
	}

	id, ok := rec.Attrs["transcript_id"]
	if !ok || id == "" {
		return fmt.Errorf("%s row has no transcript_id in attributes", rec.Feature)
	}
	id = stripVersion(id)

	if !b.sel.Keep(id, rec) {
		return nil
	}

	t, seen := b.transcripts[id]
	if !seen {
		gene := rec.Attrs["gene_name"]
		if gene == "" {
			return fmt.Errorf("transcript %s: no gene_name in attributes", id)
		}
		geneID := rec.Attrs["gene_id"]
		if geneID == "" {
			return fmt.Errorf("transcript %s: no gene_id in attributes", id)
		}
		t = &Transcript{
			ID:     id,
			Gene:   gene,
			GeneID: stripVersion(geneID),
			Chrom:  normalizeChrom(rec.Chrom),
			Strand: rec.Strand,
		}
		b.transcripts[id] = t
	}

	switch rec.Feature {
	case gtf.FeatureExon:
		t.AddExon(rec.Start, rec.End)
	case gtf.FeatureStartCodon:
		t.SetStartCodon(rec.Start, rec.End)
	case gtf.FeatureStopCodon:
		t.SetStopCodon(rec.Start, rec.End)
	}

	return nil
}

// Count returns the number of transcripts accumulated so far.
func (b *Builder) Count() int {
	return len(b.transcripts)
}

// Rows finalizes all accumulated transcripts and returns their table rows.
// In membership mode the rows are sorted by chromosome, then first exon
// start, first exon end, concatenated exon lists, and transcript ID; in tag
// mode emission order is unspecified. Membership IDs never observed in the
// stream are tolerated: canonical transcripts mapped to non-primary
// sequences are expected to be absent.
func (b *Builder) Rows() ([]Row, error) {
	rows := make([]Row, 0, len(b.transcripts))
	keys := make(map[string]sortKey, len(b.transcripts))

	for id, t := range b.transcripts {
		if err := t.ResolveCDS(); err != nil {
			return nil, err
		}
		row := Row{
			Transcript: t.ID,
			Gene:       t.Gene,
			GeneID:     t.GeneID,
			Chrom:      displayChrom(t.Chrom),
			Strand:     t.Strand,
			CDSStart:   t.CDSStart,
			CDSEnd:     t.CDSEnd,
			ExonStarts: t.ExonStarts,
			ExonEnds:   t.ExonEnds,
		}
		rows = append(rows, row)
		keys[id] = sortKey{
			chrom:      chromSortKey(t.Chrom),
			firstStart: t.ExonStarts[0],
			firstEnd:   t.ExonEnds[0],
			exons:      formatCoords(t.ExonStarts) + "|" + formatCoords(t.ExonEnds),
			id:         id,
		}
	}

	if b.sel.Membership() {
		sort.SliceStable(rows, func(i, j int) bool {
			return keys[rows[i].Transcript].less(keys[rows[j].Transcript])
		})
		for id := range b.sel.Members() {
			if _, ok := b.transcripts[id]; !ok {
				b.logger.Debug("transcript not seen in GTF stream", zap.String("transcript", id))
			}
		}
	}

	return rows, nil
}

// sortKey is the composite ordering key for the sorted builder variant,
// computed once per transcript. The trailing transcript ID makes the order
// total.
type sortKey struct {
	chrom      int
	firstStart int64
	firstEnd   int64
	exons      string
	id         string
}

func (a sortKey) less(b sortKey) bool {
	if a.chrom != b.chrom {
		return a.chrom < b.chrom
	}
	if a.firstStart != b.firstStart {
		return a.firstStart < b.firstStart
	}
	if a.firstEnd != b.firstEnd {
		return a.firstEnd < b.firstEnd
	}
	if a.exons != b.exons {
		return a.exons < b.exons
	}
	return a.id < b.id
}
