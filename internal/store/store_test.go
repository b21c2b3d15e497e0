package store

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestMetaModifiedAt(t *testing.T) {
	m := NewMeta()
	if !m.ModifiedAt().Equal(m.Created) {
		t.Error("ModifiedAt() should fall back to Created before the first update")
	}

	m.Touch()
	if m.Updated == nil {
		t.Fatal("Touch() did not stamp Updated")
	}
	if !m.ModifiedAt().Equal(*m.Updated) {
		t.Error("ModifiedAt() should prefer Updated once set")
	}
	if m.Updated.Before(m.Created) {
		t.Error("Updated is before Created")
	}
}

func TestMetaTake(t *testing.T) {
	m := NewMeta()
	m.Tags["color"] = Simple("red")
	m.Comment = "note"

	tags := m.TakeTags()
	if _, ok := tags["color"]; !ok {
		t.Error("TakeTags() lost the tag")
	}
	if len(m.Tags) != 0 {
		t.Error("TakeTags() left tags behind")
	}

	if got := m.TakeComment(); got != "note" {
		t.Errorf("TakeComment() = %q, want %q", got, "note")
	}
	if m.Comment != "" {
		t.Error("TakeComment() left the comment behind")
	}
}

func TestTagUpdateApply(t *testing.T) {
	base := func() TagMap {
		return TagMap{"keep": nil, "victim": Simple("x")}
	}

	tests := []struct {
		name   string
		update TagUpdate
		want   []string
	}{
		{
			name:   "zero update touches nothing",
			update: TagUpdate{},
			want:   []string{"keep", "victim"},
		},
		{
			name:   "drop all clears",
			update: TagUpdate{DropAll: true},
			want:   []string{},
		},
		{
			name:   "set replaces wholesale",
			update: TagUpdate{Set: []Tag{{Name: "only"}}},
			want:   []string{"only"},
		},
		{
			name:   "drop then add merges",
			update: TagUpdate{Add: []Tag{{Name: "new"}}, Drop: []string{"victim"}},
			want:   []string{"keep", "new"},
		},
		{
			name:   "drop all wins over set",
			update: TagUpdate{DropAll: true, Set: []Tag{{Name: "only"}}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.update.Apply(base()).Keys()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() keys = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagUpdateApplyNilMap(t *testing.T) {
	update := TagUpdate{Add: []Tag{{Name: "a"}}}
	got := update.Apply(nil)
	if _, ok := got["a"]; !ok {
		t.Error("Apply(nil) did not create the tag map")
	}
}

func TestKeySet(t *testing.T) {
	s := KeySet{}

	for _, key := range []string{"b.txt", "a.txt", "c.txt", "a.txt"} {
		s.Add(key)
	}

	want := KeySet{"a.txt", "b.txt", "c.txt"}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("after adds: %v, want %v (sorted, deduplicated)", s, want)
	}

	if !s.Has("b.txt") {
		t.Error("Has(b.txt) = false")
	}
	if s.Has("d.txt") {
		t.Error("Has(d.txt) = true")
	}

	if !s.Remove("b.txt") {
		t.Error("Remove(b.txt) = false")
	}
	if s.Remove("b.txt") {
		t.Error("second Remove(b.txt) = true")
	}
	if !reflect.DeepEqual(s, KeySet{"a.txt", "c.txt"}) {
		t.Errorf("after remove: %v", s)
	}
}

func TestStoreEntryOrCreate(t *testing.T) {
	s := New()

	first, created := s.EntryOrCreate("a.txt")
	if !created {
		t.Error("first EntryOrCreate should create")
	}

	second, created := s.EntryOrCreate("a.txt")
	if created {
		t.Error("second EntryOrCreate should not create")
	}
	if first != second {
		t.Error("EntryOrCreate returned a different entry on the second call")
	}
}

func TestStoreRename(t *testing.T) {
	s := New()
	entry, _ := s.EntryOrCreate("old.txt")
	entry.Comment = "original"

	if err := s.Rename("old.txt", "new.txt"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, ok := s.Entry("old.txt"); ok {
		t.Error("old key still present after rename")
	}
	moved, ok := s.Entry("new.txt")
	if !ok || moved.Comment != "original" {
		t.Error("entry did not move intact")
	}
}

func TestStoreRenameConflicts(t *testing.T) {
	s := New()
	src, _ := s.EntryOrCreate("old.txt")
	src.Comment = "source"
	dst, _ := s.EntryOrCreate("new.txt")
	dst.Comment = "target"

	if err := s.Rename("old.txt", "new.txt"); !errors.Is(err, ErrEntryExists) {
		t.Fatalf("Rename onto taken key = %v, want ErrEntryExists", err)
	}

	// Both entries must be unchanged.
	if got, _ := s.Entry("old.txt"); got == nil || got.Comment != "source" {
		t.Error("source entry changed after refused rename")
	}
	if got, _ := s.Entry("new.txt"); got == nil || got.Comment != "target" {
		t.Error("target entry changed after refused rename")
	}

	if err := s.Rename("missing.txt", "other.txt"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Rename of missing key = %v, want ErrEntryNotFound", err)
	}
}

func TestStoreCollections(t *testing.T) {
	s := New()

	if !s.CreateCollection("favs") {
		t.Fatal("CreateCollection failed")
	}
	if s.CreateCollection("favs") {
		t.Error("duplicate CreateCollection succeeded")
	}

	coll, ok := s.Collection("favs")
	if !ok {
		t.Fatal("Collection(favs) not found")
	}

	// Membership is independent of file entries.
	coll.Add("ghost.txt")
	if _, ok := s.Entry("ghost.txt"); ok {
		t.Error("collection membership created a file entry")
	}

	keys, ok := s.RemoveCollection("favs")
	if !ok || !keys.Has("ghost.txt") {
		t.Error("RemoveCollection did not return the members")
	}
	if _, ok := s.Collection("favs"); ok {
		t.Error("collection still present after removal")
	}
}

func TestStoreTimestampsAgeForward(t *testing.T) {
	s := New()
	before := time.Now().UTC().Add(time.Second)
	if s.Created.After(before) {
		t.Error("store Created is in the future")
	}
	if s.Updated != nil {
		t.Error("new store already has Updated set")
	}
}
