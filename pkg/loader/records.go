package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformed is returned for an edge line that is not two tab-separated names.
var ErrMalformed = errors.New("loader: malformed record")

// maxLine bounds a single record. Link-graph names are short; anything
// longer is almost certainly a corrupt file.
const maxLine = 1 << 20

// EdgeRecord is one line of an edge file.
type EdgeRecord struct {
	Line int
	Src  string
	Dst  string
}

// ReadVertices calls fn with each vertex name in r and its 1-based line
// number. Empty lines and lines starting with '#' are skipped; a line of
// spaces is a name like any other. A non-nil error from fn stops the scan
// and is returned as is.
func ReadVertices(r io.Reader, fn func(line int, name string) error) error {
	return scan(r, func(line int, text string) error {
		return fn(line, text)
	})
}

// ReadEdges calls fn with each edge record in r. Lines must hold exactly
// two non-empty names separated by a tab; anything else is handed to fn
// wrapped in ErrMalformed via the bad callback.
func ReadEdges(r io.Reader, fn func(rec EdgeRecord) error, bad func(line int, err error) error) error {
	return scan(r, func(line int, text string) error {
		src, dst, err := splitEdge(text)
		if err != nil {
			return bad(line, err)
		}
		return fn(EdgeRecord{Line: line, Src: src, Dst: dst})
	})
}

func splitEdge(text string) (string, string, error) {
	src, dst, ok := strings.Cut(text, "\t")
	switch {
	case !ok:
		return "", "", fmt.Errorf("%w: missing tab separator", ErrMalformed)
	case src == "" || dst == "":
		return "", "", fmt.Errorf("%w: empty endpoint", ErrMalformed)
	case strings.Contains(dst, "\t"):
		return "", "", fmt.Errorf("%w: more than two fields", ErrMalformed)
	}
	return src, dst, nil
}

func scan(r io.Reader, fn func(line int, text string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, text); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("loader: read line %d: %w", line+1, err)
	}
	return nil
}
