// Package paths converts user-supplied paths into canonical absolute
// paths and store-root-relative keys.
//
// Absolutization is lexical: the target does not have to exist and
// symlinks are not followed, so entries can be recorded for paths that
// were deleted or never created.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind classifies a PathError.
type Kind int

const (
	// InvalidPrefix: the resolved absolute path is not under the store
	// root.
	InvalidPrefix Kind = iota
	// InvalidChars: the root-relative path is not valid UTF-8.
	InvalidChars
	// IO: absolutization itself failed.
	IO
)

func (k Kind) String() string {
	switch k {
	case InvalidPrefix:
		return "invalid prefix"
	case InvalidChars:
		return "invalid characters"
	default:
		return "io"
	}
}

// PathError reports why a single path could not be converted into a
// store key. It is recoverable: batch operations log it and continue
// with the remaining paths.
type PathError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *PathError) Error() string {
	switch e.Kind {
	case InvalidPrefix:
		return fmt.Sprintf("file and db do not share a common root: %s", e.Path)
	case InvalidChars:
		return fmt.Sprintf("path is not valid utf-8: %s", e.Path)
	default:
		return fmt.Sprintf("failed to resolve path %s: %v", e.Path, e.Err)
	}
}

func (e *PathError) Unwrap() error { return e.Err }

// Resolver turns user paths into store keys. WorkDir is the process
// working directory, captured once by the caller and threaded through
// explicitly; Root is the absolute store root.
type Resolver struct {
	WorkDir string
	Root    string
}

// NewResolver returns a resolver for the given working directory and
// store root.
func NewResolver(workDir, root string) *Resolver {
	return &Resolver{WorkDir: workDir, Root: root}
}

// Abs lexically absolutizes p against the working directory.
func (r *Resolver) Abs(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if !filepath.IsAbs(r.WorkDir) {
		return "", &PathError{Path: p, Kind: IO, Err: fmt.Errorf("working directory %q is not absolute", r.WorkDir)}
	}
	return filepath.Join(r.WorkDir, p), nil
}

// Resolve returns the canonical absolute form of p and its store key:
// the root-relative path with `/` separators.
func (r *Resolver) Resolve(p string) (abs, key string, err error) {
	abs, err = r.Abs(p)
	if err != nil {
		return "", "", err
	}

	rel, relErr := filepath.Rel(r.Root, abs)
	if relErr != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", &PathError{Path: abs, Kind: InvalidPrefix, Err: relErr}
	}
	if !utf8.ValidString(rel) {
		return "", "", &PathError{Path: abs, Kind: InvalidChars}
	}

	// The store root itself resolves to the empty key.
	if rel == "." {
		rel = ""
	}
	return abs, filepath.ToSlash(rel), nil
}

// Key resolves p and returns only its store key.
func (r *Resolver) Key(p string) (string, error) {
	_, key, err := r.Resolve(p)
	return key, err
}
