package gtf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// headerLines is the fixed number of #! comment lines at the top of an
// Ensembl GTF file.
const headerLines = 5

// Reader streams records from an Ensembl GTF file.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader over an Ensembl GTF stream and consumes the
// fixed 5-line header. Each header line must start with "#!".
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	gr := &Reader{scanner: scanner}

	for i := 0; i < headerLines; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("read GTF header: %w", err)
			}
			return nil, fmt.Errorf("truncated GTF header: got %d of %d lines", i, headerLines)
		}
		gr.line++
		if !strings.HasPrefix(scanner.Text(), "#!") {
			return nil, fmt.Errorf("line %d: malformed GTF header, expected #! prefix: %q", gr.line, scanner.Text())
		}
	}

	return gr, nil
}

// Next returns the next record, or (nil, nil) at end of input.
// A malformed line is fatal and reported with its line number.
func (r *Reader) Next() (*Record, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}
	return nil, nil
}

// Line returns the number of the last line read, for diagnostics.
func (r *Reader) Line() int {
	return r.line
}
