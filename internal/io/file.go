package ioutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// tempPrefix marks in-flight copies so crashed runs are recognizable
// (and cleanable) next to their destination.
const tempPrefix = ".renamer-tmp."

// AtomicCopy copies src to dest without ever exposing a partial file
// at the destination path.
//
// The data is written to a temporary file in the destination
// directory, flushed to disk, and renamed into place. The rename is
// atomic on POSIX filesystems, so readers either see the old state or
// the complete new file. Parent directories are created as needed, and
// the source's modification time is carried over.
//
// On failure the temporary file is removed; dest is never left
// half-written.
//
// Example:
//
//	err := ioutils.AtomicCopy("/downloads/movie.mkv", "/movies/Inception (2010)/Inception (2010).mkv")
func AtomicCopy(src, dest string) error {
	if err := EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(dest),
		fmt.Sprintf("%s%s.%d", tempPrefix, filepath.Base(dest), os.Getpid()))

	if err := copyToTemp(src, tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func copyToTemp(src, tmp string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Carry the source timestamps so media managers that sort by file
	// date keep working. Best effort.
	_ = os.Chtimes(tmp, info.ModTime(), info.ModTime())
	return nil
}

// AtomicMove moves src to dest, preferring a plain rename.
//
// A rename is atomic and instant on the same filesystem. When src and
// dest live on different filesystems the rename fails with EXDEV and
// the move degrades to AtomicCopy followed by deleting the source.
//
// Example:
//
//	err := ioutils.AtomicMove("/downloads/movie.mkv", "/movies/Inception (2010)/Inception (2010).mkv")
func AtomicMove(src, dest string) error {
	if err := EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := AtomicCopy(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	nfoContent := []byte("<movie>...</movie>")
//	err := ioutils.WriteFile("/movies/Inception (2010)/movie.nfo", nfoContent)
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := ioutils.EnsureDir("/movies/Inception (2010)")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Overlap describes how two directory trees relate.
type Overlap int

const (
	// OverlapNone means the trees are disjoint.
	OverlapNone Overlap = iota

	// OverlapSame means both paths resolve to the same directory.
	OverlapSame

	// OverlapSrcWithinDest means the source lives inside the
	// destination tree (renaming in place).
	OverlapSrcWithinDest

	// OverlapDestWithinSrc means the destination lives inside the
	// source tree: a recursive scan could re-discover freshly moved
	// files, so callers must scan before acting.
	OverlapDestWithinSrc
)

// ClassifyOverlap reports the relationship between a source directory
// and the output directory. Unresolvable paths classify as no overlap.
//
// Example:
//
//	if ioutils.ClassifyOverlap("/movies/incoming", "/movies") == ioutils.OverlapSrcWithinDest {
//	    // moving files within the same library
//	}
func ClassifyOverlap(src, dest string) Overlap {
	srcAbs, err := resolve(src)
	if err != nil {
		return OverlapNone
	}
	destAbs, err := resolve(dest)
	if err != nil {
		return OverlapNone
	}

	switch {
	case srcAbs == destAbs:
		return OverlapSame
	case isWithin(srcAbs, destAbs):
		return OverlapSrcWithinDest
	case isWithin(destAbs, srcAbs):
		return OverlapDestWithinSrc
	default:
		return OverlapNone
	}
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	// Follow symlinks when possible so bind-mounted libraries
	// classify correctly; fall back to the absolute path.
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// isWithin reports whether child is strictly inside parent.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsTempArtifact reports whether a filename is a leftover from an
// interrupted atomic copy.
func IsTempArtifact(name string) bool {
	return strings.HasPrefix(filepath.Base(name), tempPrefix)
}
