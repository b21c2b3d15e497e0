package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// statIfExists stats path, mapping "does not exist" to a nil info
// instead of an error. Any other I/O failure is returned as-is.
func statIfExists(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

// Locate walks from start up through its ancestors, nearest first,
// looking for a marker directory. The first ancestor that holds one
// decides the outcome: its marker is probed for a body file in format
// priority order, and when none is present the search ends with "not
// found" rather than falling through to a higher store.
//
// found is false when no store governs start; probe I/O errors other
// than "does not exist" are fatal.
func Locate(start string) (path string, format Format, found bool, err error) {
	dir := filepath.Clean(start)
	for {
		marker := filepath.Join(dir, MarkerDir)

		info, err := statIfExists(marker)
		if err != nil {
			return "", 0, false, fmt.Errorf("checking for %s directory: %w", MarkerDir, err)
		}

		if info != nil && info.IsDir() {
			return probeMarker(marker)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", 0, false, nil
		}
		dir = parent
	}
}

// probeMarker looks inside a marker directory for the first body file
// in format priority order.
func probeMarker(marker string) (string, Format, bool, error) {
	for _, format := range Formats {
		body := filepath.Join(marker, format.FileName())

		info, err := statIfExists(body)
		if err != nil {
			return "", 0, false, fmt.Errorf("checking for db file: %w", err)
		}
		if info == nil || !info.Mode().IsRegular() {
			continue
		}
		return body, format, true, nil
	}
	return "", 0, false, nil
}

// PathExists reports whether path names any filesystem entry. Used by
// the --exists and --not-exists style checks.
func PathExists(path string) (bool, error) {
	info, err := statIfExists(path)
	if err != nil {
		return false, err
	}
	return info != nil, nil
}
