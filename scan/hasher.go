package scan

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/taigrr/colorhash"
)

// DigestBuckets is the number of buckets digests are spread across.
const DigestBuckets = 1000

// GetFileHash hashes a file and returns the hash as a hex string.
func GetFileHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// BucketFromHash maps a digest onto one of DigestBuckets buckets using a color hash.
func BucketFromHash(hash string) int {
	bucket := int(colorhash.HashString(hash) % DigestBuckets)
	if bucket < 0 {
		bucket = -bucket
	}
	return bucket
}

// HashPathFromHash generates a bucketed identifier like "742-<hash>".
func HashPathFromHash(hash string) string {
	return fmt.Sprintf("%03d-%s", BucketFromHash(hash), hash)
}

// DuplicateSet lists files whose contents hash to the same digest.
type DuplicateSet struct {
	Digest string   `json:"digest"`
	Bucket int      `json:"bucket"`
	Paths  []string `json:"paths"`
}

// DigestIndex hashes files and groups paths by content.
type DigestIndex struct {
	mu       sync.Mutex
	byDigest map[string][]string
	out      io.Writer // nil to hash silently
}

// NewDigestIndex returns an empty index. If out is non-nil every hashed file
// is printed as "<bucket>-<hash>  <path>".
func NewDigestIndex(out io.Writer) *DigestIndex {
	return &DigestIndex{byDigest: make(map[string][]string), out: out}
}

// Handle hashes the file at path and records it.
func (d *DigestIndex) Handle(path string) error {
	hash, err := GetFileHash(path)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.byDigest[hash] = append(d.byDigest[hash], path)
	if d.out != nil {
		_, err = fmt.Fprintf(d.out, "%s  %s\n", HashPathFromHash(hash), path)
	}
	return err
}

// Len returns the number of distinct digests.
func (d *DigestIndex) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.byDigest)
}

// Duplicates returns every digest shared by more than one file, ordered by
// digest, with paths sorted.
func (d *DigestIndex) Duplicates() []DuplicateSet {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sets []DuplicateSet
	for digest, paths := range d.byDigest {
		if len(paths) < 2 {
			continue
		}
		sorted := slices.Clone(paths)
		slices.Sort(sorted)
		sets = append(sets, DuplicateSet{Digest: digest, Bucket: BucketFromHash(digest), Paths: sorted})
	}
	slices.SortFunc(sets, func(a, b DuplicateSet) int {
		return strings.Compare(a.Digest, b.Digest)
	})
	return sets
}

// HashResult is the report payload for a hash run.
type HashResult struct {
	Unique     int            `json:"unique"`
	Duplicates []DuplicateSet `json:"duplicates"`
}

// Result returns the totals for a report.
func (d *DigestIndex) Result() HashResult {
	return HashResult{Unique: d.Len(), Duplicates: d.Duplicates()}
}
