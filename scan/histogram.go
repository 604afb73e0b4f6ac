package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// BitPositions is the number of buckets in a bit histogram, one per bit of a byte.
const BitPositions = 8

// barWidth is the number of stars drawn for a bucket holding every set bit.
const barWidth = 60

// BitCounts holds, for each bit position, how many bytes had that bit set.
type BitCounts [BitPositions]int64

// Update counts the set bits of b.
func (c *BitCounts) Update(b byte) {
	for i := 0; i < BitPositions; i++ {
		if b&(1<<i) != 0 {
			c[i]++
		}
	}
}

// Merge adds other into c.
func (c *BitCounts) Merge(other BitCounts) {
	for i := range c {
		c[i] += other[i]
	}
}

// Total returns the number of set bits counted across all positions.
func (c BitCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// CountFile builds the bit histogram of a single file.
func CountFile(path string) (BitCounts, error) {
	var c BitCounts
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return c, nil
		}
		if err != nil {
			return c, fmt.Errorf("reading %s: %w", path, err)
		}
		c.Update(b)
	}
}

// RenderBitCounts writes one line per bit position with a bar proportional to
// that position's share of all set bits.
func RenderBitCounts(w io.Writer, c BitCounts) error {
	_, err := io.WriteString(w, formatBitCounts(c, ""))
	return err
}

func formatBitCounts(c BitCounts, linePrefix string) string {
	total := c.Total()
	var sb strings.Builder
	for i, n := range c {
		stars := 0
		if total > 0 {
			stars = int(barWidth * n / total)
		}
		fmt.Fprintf(&sb, "%sBit %d: %s\n", linePrefix, i, strings.Repeat("*", stars))
	}
	return sb.String()
}

// Histogram accumulates bit counts from many files. Each file is counted
// privately by the worker and merged under the histogram's own lock.
type Histogram struct {
	mu     sync.Mutex
	totals BitCounts
	out    io.Writer
	live   bool
	drawn  bool
}

// NewHistogram returns an empty Histogram. When live is true every merge
// redraws the running totals in place on out, which should be a terminal.
func NewHistogram(out io.Writer, live bool) *Histogram {
	return &Histogram{out: out, live: live}
}

// Handle counts the file at path and merges it into the running totals.
func (h *Histogram) Handle(path string) error {
	local, err := CountFile(path)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.totals.Merge(local)
	if h.live {
		return h.redrawLocked()
	}
	return nil
}

// redrawLocked moves the cursor back over the previous block, if any, and
// clears each line before drawing it again.
func (h *Histogram) redrawLocked() error {
	var sb strings.Builder
	if h.drawn {
		fmt.Fprintf(&sb, "\033[%dA", BitPositions)
	}
	sb.WriteString(formatBitCounts(h.totals, "\r\033[K"))
	h.drawn = true
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// Snapshot returns a copy of the running totals.
func (h *Histogram) Snapshot() BitCounts {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totals
}

// Finish prints the final histogram. In live mode the block on screen is
// already current, so it is only drawn if nothing was merged.
func (h *Histogram) Finish() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.live {
		if h.drawn {
			return nil
		}
		return h.redrawLocked()
	}
	return RenderBitCounts(h.out, h.totals)
}

// HistogramResult is the report payload for a histogram run.
type HistogramResult struct {
	Bits  BitCounts `json:"bits"`
	Total int64     `json:"total_set_bits"`
}

// Result returns the totals for a report.
func (h *Histogram) Result() HistogramResult {
	c := h.Snapshot()
	return HistogramResult{Bits: c, Total: c.Total()}
}
