package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/gtf"
)

// feed parses GTF data lines and feeds them to the builder.
func feed(t *testing.T, b *Builder, lines string) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(lines), "\n") {
		rec, err := gtf.ParseLine(line)
		require.NoError(t, err)
		require.NoError(t, b.Add(rec))
	}
}

func TestBuilderTagMode(t *testing.T) {
	sel, err := SelectByTag("canonical")
	require.NoError(t, err)

	b := NewBuilder(sel)
	feed(t, b, `
12	havana	exon	25250751	25250929	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS"; tag "Ensembl_canonical";
12	havana	exon	25245274	25245395	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS"; tag "Ensembl_canonical";
12	havana	start_codon	25250806	25250808	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS"; tag "Ensembl_canonical";
12	havana	stop_codon	25245274	25245276	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000311936"; gene_name "KRAS"; tag "Ensembl_canonical";
12	havana	exon	25205246	25209911	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000556131"; gene_name "KRAS";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1, "untagged transcript must be skipped")

	row := rows[0]
	assert.Equal(t, "ENST00000311936", row.Transcript)
	assert.Equal(t, "KRAS", row.Gene)
	assert.Equal(t, "ENSG00000133703", row.GeneID)
	assert.Equal(t, "chr12", row.Chrom)
	assert.Equal(t, "-", row.Strand)
	assert.Equal(t, []int64{25245274, 25250751}, row.ExonStarts)
	assert.Equal(t, []int64{25245395, 25250929}, row.ExonEnds)
	// minus strand: stop codon start is the genomic CDS start, start codon
	// end the genomic CDS end
	assert.Equal(t, int64(25245274), row.CDSStart)
	assert.Equal(t, int64(25250808), row.CDSEnd)
}

func TestBuilderMembershipMode(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{"ENST00000311936": true}))
	feed(t, b, `
12	havana	exon	25250751	25250929	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000311936.8"; gene_name "KRAS";
12	havana	exon	25205246	25209911	.	-	.	gene_id "ENSG00000133703"; transcript_id "ENST00000556131.1"; gene_name "KRAS";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ENST00000311936", rows[0].Transcript, "version suffix must be stripped")
}

func TestBuilderNonCoding(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{"ENST00000623083": true}))
	feed(t, b, `
1	havana	exon	89295	91629	.	-	.	gene_id "ENSG00000238009"; transcript_id "ENST00000623083"; gene_name "AL627309.1";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].CDSStart)
	assert.Equal(t, int64(1), rows[0].CDSEnd)
}

func TestBuilderIncompleteCDS(t *testing.T) {
	// Only a start codon: CDS end extends to the last exon end.
	b := NewBuilder(SelectMembers(map[string]bool{"ENST1": true}))
	feed(t, b, `
1	havana	exon	100	200	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
1	havana	exon	300	400	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
1	havana	start_codon	150	152	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(150), rows[0].CDSStart)
	assert.Equal(t, int64(400), rows[0].CDSEnd)
}

func TestBuilderSortedOutput(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{
		"ENST1": true, "ENST2": true, "ENST3": true, "ENST4": true,
	}))
	feed(t, b, `
X	havana	exon	100	200	.	+	.	gene_id "ENSG3"; transcript_id "ENST3"; gene_name "G3";
2	havana	exon	500	600	.	+	.	gene_id "ENSG2"; transcript_id "ENST2"; gene_name "G2";
2	havana	exon	100	200	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
2	havana	exon	100	250	.	+	.	gene_id "ENSG4"; transcript_id "ENST4"; gene_name "G4";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// chromosome 2 before X; within chromosome 2, first exon start then
	// first exon end
	ids := []string{rows[0].Transcript, rows[1].Transcript, rows[2].Transcript, rows[3].Transcript}
	assert.Equal(t, []string{"ENST1", "ENST4", "ENST2", "ENST3"}, ids)
}

func TestBuilderUnseenMemberTolerated(t *testing.T) {
	// ENST2 is declared but never appears in the stream: expected for
	// transcripts mapped to non-primary sequences.
	b := NewBuilder(SelectMembers(map[string]bool{"ENST1": true, "ENST2": true}))
	feed(t, b, `
1	havana	exon	100	200	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
`)

	rows, err := b.Rows()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestBuilderMissingTranscriptID(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{"ENST1": true}))
	rec, err := gtf.ParseLine(`1	havana	exon	100	200	.	+	.	gene_id "ENSG1"; gene_name "G1";`)
	require.NoError(t, err)

	err = b.Add(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript_id")
}

func TestBuilderMissingGeneName(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{"ENST1": true}))
	rec, err := gtf.ParseLine(`1	havana	exon	100	200	.	+	.	gene_id "ENSG1"; transcript_id "ENST1";`)
	require.NoError(t, err)

	err = b.Add(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gene_name")
}

func TestBuilderIrrelevantFeatures(t *testing.T) {
	b := NewBuilder(SelectMembers(map[string]bool{"ENST1": true}))
	feed(t, b, `
1	havana	gene	1	1000	.	+	.	gene_id "ENSG1"; gene_name "G1";
1	havana	transcript	1	1000	.	+	.	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
1	havana	CDS	150	200	.	+	0	gene_id "ENSG1"; transcript_id "ENST1"; gene_name "G1";
`)

	assert.Equal(t, 0, b.Count(), "gene/transcript/CDS rows must be ignored")
}

func TestBuilderReadAll(t *testing.T) {
	input := "#!genome-build GRCh38\n#!genome-version GRCh38\n#!genome-date 2013-12\n#!genome-build-accession x\n#!genebuild-last-updated y\n" +
		"1\thavana\texon\t100\t200\t.\t+\t.\tgene_id \"ENSG1\"; transcript_id \"ENST1\"; gene_name \"G1\"; tag \"Ensembl_canonical\";\n"

	r, err := gtf.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	sel, err := SelectByTag("canonical")
	require.NoError(t, err)

	b := NewBuilder(sel)
	require.NoError(t, b.ReadAll(r))
	assert.Equal(t, 1, b.Count())
}

func TestSelectByTagUnknown(t *testing.T) {
	_, err := SelectByTag("best")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canonical or mane")
}
