package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Walk calls fn once for every regular file found under roots, in lexical
// order per root. A root that is itself a regular file is passed to fn as is.
//
// With followSymlinks, symlinks to regular files are reported and a root that
// is a symlink to a directory is descended. Symlinks to directories below a
// root are never descended, which keeps cycles out of the walk. This differs
// from an fts(3) FTS_LOGICAL walk, which follows those too.
//
// Unreadable entries below a root are logged and skipped. A root that cannot
// be read is recorded and the walk moves on to the next root; all such errors
// are returned joined. Walk stops early with ctx.Err() if ctx is cancelled,
// and with fn's error if fn fails.
func Walk(ctx context.Context, roots []string, followSymlinks bool, logger *log.Logger, fn func(path string) error) error {
	if logger == nil {
		logger = log.Default()
	}

	var rootErrs []error
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := walkRoot(ctx, root, followSymlinks, logger, fn)
		var rootErr *rootError
		switch {
		case err == nil:
		case errors.As(err, &rootErr):
			logger.Printf("failed to walk %s: %v", root, rootErr.err)
			rootErrs = append(rootErrs, err)
		default:
			return err
		}
	}
	return errors.Join(rootErrs...)
}

// rootError marks a failure to open a root, as opposed to a cancellation or a
// callback failure which abort the whole walk.
type rootError struct {
	root string
	err  error
}

func (e *rootError) Error() string { return fmt.Sprintf("walking %s: %v", e.root, e.err) }
func (e *rootError) Unwrap() error { return e.err }

func walkRoot(ctx context.Context, root string, followSymlinks bool, logger *log.Logger, fn func(string) error) error {
	info, err := os.Lstat(root)
	if err != nil {
		return &rootError{root, err}
	}

	walkFrom := root
	if info.Mode()&fs.ModeSymlink != 0 {
		if !followSymlinks {
			return nil
		}
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return &rootError{root, err}
		}
		if info, err = os.Stat(resolved); err != nil {
			return &rootError{root, err}
		}
		walkFrom = resolved
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return fn(root)
		}
		return nil
	}

	return filepath.WalkDir(walkFrom, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == walkFrom {
				return &rootError{root, err}
			}
			logger.Printf("skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		// Report paths under the name the caller gave, not the resolved target.
		if walkFrom != root {
			rel, err := filepath.Rel(walkFrom, path)
			if err != nil {
				return err
			}
			path = filepath.Join(root, rel)
		}

		switch {
		case d.Type().IsRegular():
			return fn(path)
		case d.Type()&fs.ModeSymlink != 0 && followSymlinks:
			target, err := os.Stat(path)
			if err != nil {
				logger.Printf("skipping %s: %v", path, err)
				return nil
			}
			if target.Mode().IsRegular() {
				return fn(path)
			}
		}
		return nil
	})
}
