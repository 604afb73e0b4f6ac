package scan

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Grep prints every line that contains a fixed substring.
type Grep struct {
	needle []byte

	mu  sync.Mutex // serializes writes to out
	out io.Writer

	matches atomic.Int64
	files   atomic.Int64 // files with at least one match
}

// NewGrep returns a Grep that writes matches for needle to out.
func NewGrep(needle string, out io.Writer) (*Grep, error) {
	if needle == "" {
		return nil, ErrEmptyNeedle
	}
	return &Grep{needle: []byte(needle), out: out}, nil
}

// Handle searches the file at path. Matches are written as
// "path:lineno: line" with 1-based line numbers. All lines of one file are
// written in a single block so output from concurrent workers never
// interleaves mid-line.
func (g *Grep) Handle(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf bytes.Buffer
	n, err := g.search(path, f, &buf)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if n == 0 {
		return nil
	}

	g.matches.Add(int64(n))
	g.files.Add(1)

	g.mu.Lock()
	defer g.mu.Unlock()
	_, err = g.out.Write(buf.Bytes())
	return err
}

func (g *Grep) search(path string, r io.Reader, w *bytes.Buffer) (int, error) {
	br := bufio.NewReader(r)
	matches := 0
	for lineno := 1; ; lineno++ {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && bytes.Contains(line, g.needle) {
			matches++
			fmt.Fprintf(w, "%s:%d: %s", path, lineno, line)
			if line[len(line)-1] != '\n' {
				w.WriteByte('\n')
			}
		}
		if errors.Is(err, io.EOF) {
			return matches, nil
		}
		if err != nil {
			return matches, err
		}
	}
}

// Matches returns the number of matching lines seen so far.
func (g *Grep) Matches() int64 { return g.matches.Load() }

// MatchedFiles returns the number of files with at least one match.
func (g *Grep) MatchedFiles() int64 { return g.files.Load() }

// GrepResult is the report payload for a grep run.
type GrepResult struct {
	Needle       string `json:"needle"`
	Matches      int64  `json:"matches"`
	MatchedFiles int64  `json:"matched_files"`
}

// Result returns the totals for a report.
func (g *Grep) Result() GrepResult {
	return GrepResult{
		Needle:       string(g.needle),
		Matches:      g.Matches(),
		MatchedFiles: g.MatchedFiles(),
	}
}
