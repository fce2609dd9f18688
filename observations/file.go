// Package observations reads position-vector observation files.
//
// One vector per line, three numbers separated by commas and/or whitespace.
// '#' starts a comment and blank lines are skipped. Every three consecutive
// vectors form one Gibbs triple.
package observations

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/echoflaresat/orbitcalc/gibbs"
	"github.com/echoflaresat/orbitcalc/vectors"
)

// ErrIncompleteTriple is returned when the vector count is not a multiple of three.
var ErrIncompleteTriple = errors.New("observations: incomplete triple")

// Load memory-maps path and parses it into triples.
func Load(path string) ([]gibbs.Triple, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	triples, err := Parse(io.NewSectionReader(reader, 0, int64(reader.Len())))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return triples, nil
}

// Parse reads triples from r.
func Parse(r io.Reader) ([]gibbs.Triple, error) {
	var (
		triples []gibbs.Triple
		pending []vectors.Vec3
		lastRow int
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		v, err := vectors.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		lastRow = lineNo

		pending = append(pending, v)
		if len(pending) == 3 {
			triples = append(triples, gibbs.Triple{R1: pending[0], R2: pending[1], R3: pending[2]})
			pending = pending[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}

	if len(pending) != 0 {
		return nil, fmt.Errorf("%w: %d vector(s) left over ending at line %d", ErrIncompleteTriple, len(pending), lastRow)
	}
	return triples, nil
}
