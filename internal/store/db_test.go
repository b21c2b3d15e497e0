package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initStore creates a fresh store of the given format rooted at a temp
// directory, the way `db init` does.
func initStore(t *testing.T, format Format) (*DB, string) {
	t.Helper()

	root := t.TempDir()
	marker := filepath.Join(root, MarkerDir)
	require.NoError(t, os.Mkdir(marker, 0o755))

	db, err := Create(filepath.Join(marker, format.FileName()), format)
	require.NoError(t, err)
	return db, root
}

func TestCreateRefusesExistingBody(t *testing.T) {
	db, _ := initStore(t, FormatJSON)

	_, err := Create(db.Path(), FormatJSON)
	assert.Error(t, err, "Create over an existing body must fail")
}

func TestDBRoot(t *testing.T) {
	db, root := initStore(t, FormatJSON)
	assert.Equal(t, root, db.Root())
	assert.Equal(t, filepath.Join(root, MarkerDir, "db.json"), db.Path())
}

func TestOpenNoStore(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestMutateSaveReload(t *testing.T) {
	for _, format := range Formats {
		t.Run(format.String(), func(t *testing.T) {
			db, root := initStore(t, format)

			// Scenario: tag color:red and comment "test" on a.txt,
			// reload from disk, and read them back.
			entry, created := db.Store.EntryOrCreate("a.txt")
			require.True(t, created)
			entry.Tags["color"] = Simple("red")
			entry.Comment = "test"

			db.Store.CreateCollection("favs")
			coll, _ := db.Store.Collection("favs")
			coll.Add("a.txt")
			coll.Add("b.txt")

			require.NoError(t, db.Save())

			reloaded, err := Open(root)
			require.NoError(t, err)
			assert.Equal(t, format, reloaded.Format())

			assertStoreEqual(t, db.Store, reloaded.Store)

			got, ok := reloaded.Store.Entry("a.txt")
			require.True(t, ok)
			assert.Equal(t, "red", got.Tags["color"].String())
			assert.Equal(t, "test", got.Comment)
		})
	}
}

func TestSaveTruncatesInPlace(t *testing.T) {
	db, root := initStore(t, FormatPrettyJSON)

	// Grow the body, then shrink it. The rewrite truncates first, so
	// the smaller body must not carry trailing bytes of the old one.
	for _, key := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		entry, _ := db.Store.EntryOrCreate(key)
		entry.Comment = "some comment long enough to matter"
	}
	require.NoError(t, db.Save())

	db.Store.Files = map[string]*Meta{}
	require.NoError(t, db.Save())

	reloaded, err := Open(root)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Store.Files)
}

func TestOpenFromNestedDir(t *testing.T) {
	db, root := initStore(t, FormatJSON)
	entry, _ := db.Store.EntryOrCreate("src/main.go")
	entry.Tags["lang"] = Simple("go")
	require.NoError(t, db.Save())

	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	reloaded, err := Open(nested)
	require.NoError(t, err)
	assert.Equal(t, root, reloaded.Root())

	_, ok := reloaded.Store.Entry("src/main.go")
	assert.True(t, ok)
}

func TestDrop(t *testing.T) {
	db, root := initStore(t, FormatBinary)

	require.NoError(t, db.Drop())

	if _, err := os.Stat(filepath.Join(root, MarkerDir)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("marker directory still present: %v", err)
	}

	_, err := Open(root)
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestDropKeepsForeignFiles(t *testing.T) {
	db, root := initStore(t, FormatJSON)

	foreign := filepath.Join(root, MarkerDir, "unrelated.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("keep me"), 0o644))

	// The marker is removed non-recursively, so a foreign file inside
	// it turns the drop into an error and survives.
	assert.Error(t, db.Drop())
	_, err := os.Stat(foreign)
	assert.NoError(t, err)
}

func TestLoadWrapsPathInErrors(t *testing.T) {
	root := t.TempDir()
	marker := filepath.Join(root, MarkerDir)
	require.NoError(t, os.Mkdir(marker, 0o755))

	body := filepath.Join(marker, FormatJSON.FileName())
	require.NoError(t, os.WriteFile(body, []byte("{broken"), 0o644))

	_, err := Load(body, FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), body)
}
