package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ErrNoStore reports that no store governs the working directory.
var ErrNoStore = errors.New("no db found in this directory or any parent")

// DB couples an in-memory Store with the on-disk file it came from.
// Every command loads the whole store, mutates it in memory, and writes
// the whole store back.
type DB struct {
	Store  *Store
	path   string
	root   string
	format Format
}

// storeRoot is the directory two levels above the body file: the marker
// directory's parent.
func storeRoot(path string) string {
	return filepath.Dir(filepath.Dir(path))
}

// Create writes a brand-new empty store body at path. The marker
// directory must already exist; the body file must not.
func Create(path string, format Format) (*DB, error) {
	db := &DB{
		Store:  New(),
		path:   path,
		root:   storeRoot(path),
		format: format,
	}
	if err := db.write(true); err != nil {
		return nil, err
	}
	return db, nil
}

// Open locates the store governing start and loads it. ErrNoStore is
// returned when no ancestor of start holds one.
func Open(start string) (*DB, error) {
	path, format, found, err := Locate(start)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoStore
	}
	return Load(path, format)
}

// Load reads the store body at path in the given format.
func Load(path string, format Format) (*DB, error) {
	slog.Info("reading db", "path", path, "format", format.String())

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading db %s: %w", path, err)
	}
	defer f.Close()

	start := time.Now()
	s, err := format.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed deserializing db %s: %w", path, err)
	}
	slog.Debug("db parsed", "elapsed", time.Since(start))

	return &DB{Store: s, path: path, root: storeRoot(path), format: format}, nil
}

// Save persists the whole store back to its file. The file is truncated
// in place before the replacement is written, so a crash mid-write
// leaves a corrupt body; there is no cross-process locking either, and
// the last save wins.
func (d *DB) Save() error {
	return d.write(false)
}

func (d *DB) write(create bool) error {
	flags := os.O_WRONLY | os.O_TRUNC
	if create {
		flags |= os.O_CREATE | os.O_EXCL
		slog.Info("creating db", "path", d.path)
	} else {
		slog.Info("writing db", "path", d.path)
	}

	f, err := os.OpenFile(d.path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open db file %s: %w", d.path, err)
	}

	start := time.Now()
	if err := d.format.Encode(f, d.Store); err != nil {
		f.Close()
		return fmt.Errorf("failed serializing db %s: %w", d.path, err)
	}
	slog.Debug("db saved", "elapsed", time.Since(start))

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed writing db %s: %w", d.path, err)
	}
	return nil
}

// Drop removes the body file and its marker directory. The marker is
// removed with the non-recursive form so anything foreign inside it
// survives and surfaces as an error instead.
func (d *DB) Drop() error {
	slog.Info("dropping db file", "path", d.path)
	if err := os.Remove(d.path); err != nil {
		return fmt.Errorf("failed to remove db file: %w", err)
	}

	marker := filepath.Dir(d.path)
	slog.Info("dropping marker directory", "path", marker)
	if err := os.Remove(marker); err != nil {
		return fmt.Errorf("failed to remove %s directory: %w", MarkerDir, err)
	}
	return nil
}

// Path is the absolute location of the body file.
func (d *DB) Path() string { return d.path }

// Root is the store root: the marker directory's parent. All store keys
// are relative to it.
func (d *DB) Root() string { return d.root }

// Format is the on-disk encoding the store was created with.
func (d *DB) Format() Format { return d.format }
