// Package bed expands transcript table rows into per-exon BED records.
package bed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ntm/grexome-TIMC-Secondary-sub002/internal/transcript"
)

// Convert reads a transcript table and writes one BED row per exon:
// chromosome, exon start, exon end, "{transcript}_{exonNumber}". Exon
// numbering starts at 1 at the transcript's 5' end: ascending genomic order
// on the plus strand, descending on the minus strand.
func Convert(r io.Reader, w io.Writer) error {
	tr, err := transcript.NewTableReader(r)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	for {
		row, err := tr.Next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}

		count := len(row.ExonStarts)
		for i := 0; i < count; i++ {
			num := i + 1
			if row.Strand == "-" {
				num = count - i
			}
			line := row.Chrom + "\t" +
				strconv.FormatInt(row.ExonStarts[i], 10) + "\t" +
				strconv.FormatInt(row.ExonEnds[i], 10) + "\t" +
				row.Transcript + "_" + strconv.Itoa(num) + "\n"
			if _, err := bw.WriteString(line); err != nil {
				return fmt.Errorf("write BED row: %w", err)
			}
		}
	}

	return bw.Flush()
}
