package paths

import (
	"errors"
	"path/filepath"
	"testing"
)

func testResolver() *Resolver {
	root := filepath.FromSlash("/home/user/project")
	return NewResolver(filepath.Join(root, "src"), root)
}

func TestResolveRelative(t *testing.T) {
	r := testResolver()

	tests := []struct {
		in      string
		wantKey string
	}{
		{"main.go", "src/main.go"},
		{"./main.go", "src/main.go"},
		{"../README.md", "README.md"},
		{"sub/a.txt", "src/sub/a.txt"},
		{"..", ""}, // the store root itself
		{"./", "src"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, err := r.Key(tt.in)
			if err != nil {
				t.Fatalf("Key(%q) failed: %v", tt.in, err)
			}
			if key != tt.wantKey {
				t.Errorf("Key(%q) = %q, want %q", tt.in, key, tt.wantKey)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	// An already-canonical absolute path and the equivalent relative
	// path from the working directory yield the same key.
	r := testResolver()

	fromRel, err := r.Key("main.go")
	if err != nil {
		t.Fatal(err)
	}

	abs := filepath.Join(r.Root, "src", "main.go")
	fromAbs, err := r.Key(abs)
	if err != nil {
		t.Fatal(err)
	}

	if fromRel != fromAbs {
		t.Errorf("relative key %q != absolute key %q", fromRel, fromAbs)
	}

	// Resolving the canonical absolute form again changes nothing.
	resolved, _, err := r.Resolve(abs)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != abs {
		t.Errorf("Resolve(%q) moved the path to %q", abs, resolved)
	}
}

func TestResolveInvalidPrefix(t *testing.T) {
	r := testResolver()

	for _, in := range []string{
		filepath.FromSlash("/etc/passwd"),
		"../../outside.txt",
		filepath.FromSlash("/home/user/other/file.txt"),
	} {
		_, err := r.Key(in)
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("Key(%q) error = %v, want *PathError", in, err)
		}
		if pathErr.Kind != InvalidPrefix {
			t.Errorf("Key(%q) kind = %v, want InvalidPrefix", in, pathErr.Kind)
		}
	}
}

func TestResolveInvalidChars(t *testing.T) {
	r := testResolver()

	_, err := r.Key("bad\xff\xfe.txt")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("error = %v, want *PathError", err)
	}
	if pathErr.Kind != InvalidChars {
		t.Errorf("kind = %v, want InvalidChars", pathErr.Kind)
	}
}

func TestResolveIOKind(t *testing.T) {
	r := NewResolver("not-absolute", filepath.FromSlash("/root"))

	_, err := r.Key("file.txt")
	var pathErr *PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("error = %v, want *PathError", err)
	}
	if pathErr.Kind != IO {
		t.Errorf("kind = %v, want IO", pathErr.Kind)
	}
}

func TestKeysUseForwardSlashes(t *testing.T) {
	r := testResolver()

	key, err := r.Key(filepath.FromSlash("sub/dir/a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "src/sub/dir/a.txt"; key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
}

func TestBatchSkipsBadPaths(t *testing.T) {
	// A batch mixing a foreign path with valid ones resolves the valid
	// ones; the failure stays per-item.
	r := testResolver()

	inputs := []string{"a.txt", filepath.FromSlash("/etc/passwd"), "b.txt"}
	var keys []string
	var failed int
	for _, in := range inputs {
		key, err := r.Key(in)
		if err != nil {
			failed++
			continue
		}
		keys = append(keys, key)
	}

	if failed != 1 || len(keys) != 2 {
		t.Errorf("batch resolved %d keys with %d failures, want 2 and 1", len(keys), failed)
	}
}
