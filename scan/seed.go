package scan

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SeedOptions controls SeedTree.
type SeedOptions struct {
	Files       int    // number of files to create
	UUIDPool    int    // distinct UUID lines to draw from; 0 means 50
	Needle      string // if set, written as an extra line into some files
	NeedleEvery int    // every Nth file gets the needle; 0 means never
	Seed        uint64 // seed for the layout, so trees are reproducible
}

// SeedStats describes a generated tree.
type SeedStats struct {
	Files       int
	Dirs        int
	NeedleFiles int
}

// SeedTree creates opts.Files small files below root in a YYYY/MM/DD/HH
// layout. Each file holds one UUID line drawn from a small pool, so the tree
// contains duplicate content.
func SeedTree(root string, opts SeedOptions) (SeedStats, error) {
	var stats SeedStats
	if err := os.MkdirAll(root, 0o755); err != nil {
		return stats, fmt.Errorf("failed to create output directory: %w", err)
	}

	poolSize := opts.UUIDPool
	if poolSize <= 0 {
		poolSize = 50
	}
	uuidPool := make([]string, poolSize)
	for i := range uuidPool {
		uuidPool[i] = uuid.NewString()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dirs := make(map[string]struct{})

	for stats.Files < opts.Files {
		ts := baseTime.Add(time.Duration(rng.IntN(365*24)) * time.Hour)
		parts := []string{
			fmt.Sprintf("%04d", ts.Year()),
			fmt.Sprintf("%02d", ts.Month()),
			fmt.Sprintf("%02d", ts.Day()),
			fmt.Sprintf("%02d", ts.Hour()),
		}
		// Most files land at the deepest level.
		depth := len(parts)
		if r := rng.IntN(100); r < 10 {
			depth = 1
		} else if r < 30 {
			depth = 3
		}
		dir := filepath.Join(append([]string{root}, parts[:depth]...)...)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}

		name := filepath.Join(dir, fmt.Sprintf("%08x.txt", rng.Uint32()))
		if _, err := os.Stat(name); err == nil {
			continue
		}

		content := uuidPool[rng.IntN(poolSize)] + "\n"
		if opts.Needle != "" && opts.NeedleEvery > 0 && stats.Files%opts.NeedleEvery == 0 {
			content += opts.Needle + "\n"
			stats.NeedleFiles++
		}
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return stats, fmt.Errorf("failed to write file %s: %w", name, err)
		}
		stats.Files++
	}

	stats.Dirs = len(dirs)
	return stats, nil
}
