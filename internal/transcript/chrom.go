package transcript

import (
	"strconv"
	"strings"
)

// chromOther sorts any chromosome outside 1-22/X/Y/MT after the primary
// assembly; ties are broken further down the composite sort key.
const chromOther = 1000

// normalizeChrom strips a leading "chr" prefix so that both Ensembl ("12",
// "MT") and UCSC ("chr12", "chrM") naming collapse to the bare label.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}

// chromSortKey maps a bare chromosome label to its numeric sort key:
// 1-22 as themselves, X=23, Y=24, M/MT=25.
func chromSortKey(chrom string) int {
	switch chrom {
	case "X":
		return 23
	case "Y":
		return 24
	case "M", "MT":
		return 25
	}
	if n, err := strconv.Atoi(chrom); err == nil && n >= 1 && n <= 22 {
		return n
	}
	return chromOther
}

// displayChrom renders a bare chromosome label for output: "chr" prefix
// re-applied, mitochondrial shown as chrM.
func displayChrom(chrom string) string {
	if chrom == "MT" {
		chrom = "M"
	}
	return "chr" + chrom
}
