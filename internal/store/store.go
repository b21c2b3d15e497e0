// Package store implements the fsm store: the persisted data model, the
// multi-format codec, and discovery of the on-disk store file from a
// working directory.
package store

import (
	"errors"
	"sort"
	"time"
)

// SelfKey is the display key used when the store's own metadata appears
// in query output.
const SelfKey = "!SELF"

var (
	// ErrEntryNotFound reports a missing file entry.
	ErrEntryNotFound = errors.New("entry not found in db")
	// ErrEntryExists reports that a target key is already taken.
	ErrEntryExists = errors.New("entry already exists in db")
)

// Meta is the metadata container shared by the store itself and each
// file entry.
type Meta struct {
	Tags    TagMap     `json:"tags" msgpack:"tags"`
	Comment string     `json:"comment,omitempty" msgpack:"comment,omitempty"`
	Created time.Time  `json:"created" msgpack:"created"`
	Updated *time.Time `json:"updated,omitempty" msgpack:"updated,omitempty"`
}

// NewMeta returns an empty container stamped with the current time.
func NewMeta() *Meta {
	return &Meta{Tags: TagMap{}, Created: time.Now().UTC()}
}

// ModifiedAt is the effective modified time: Updated when set,
// otherwise Created.
func (m *Meta) ModifiedAt() time.Time {
	if m.Updated != nil {
		return *m.Updated
	}
	return m.Created
}

// Touch stamps Updated with the current time. Every mutating operation
// on an existing container calls this.
func (m *Meta) Touch() {
	now := time.Now().UTC()
	m.Updated = &now
}

// TakeTags removes and returns the tag map, leaving an empty one.
func (m *Meta) TakeTags() TagMap {
	tags := m.Tags
	m.Tags = TagMap{}
	return tags
}

// TakeComment removes and returns the comment.
func (m *Meta) TakeComment() string {
	comment := m.Comment
	m.Comment = ""
	return comment
}

// TagUpdate describes how a set operation reshapes a tag map. The same
// policy applies to file entries and to the store itself.
type TagUpdate struct {
	Set     []Tag    // replaces the map wholesale when non-empty
	Add     []Tag    // merged in after Drop is applied
	Drop    []string // names removed before Add is merged
	DropAll bool     // clears the map; wins over everything else
}

// IsZero reports whether the update would leave any tag map untouched.
func (u TagUpdate) IsZero() bool {
	return !u.DropAll && len(u.Set) == 0 && len(u.Add) == 0 && len(u.Drop) == 0
}

// Apply returns the tag map as reshaped by the update. Tags unrelated
// to the update are never touched.
func (u TagUpdate) Apply(tags TagMap) TagMap {
	switch {
	case u.DropAll:
		return TagMap{}
	case len(u.Set) > 0:
		next := make(TagMap, len(u.Set))
		for _, t := range u.Set {
			next[t.Name] = t.Value
		}
		return next
	case len(u.Add) > 0 || len(u.Drop) > 0:
		if tags == nil {
			tags = TagMap{}
		}
		for _, name := range u.Drop {
			delete(tags, name)
		}
		for _, t := range u.Add {
			tags[t.Name] = t.Value
		}
		return tags
	default:
		return tags
	}
}

// KeySet is a sorted, deduplicated set of store keys. Members may
// reference keys that have no file entry; commands treat that as a
// normal "not found" case.
type KeySet []string

// Has reports whether key is a member.
func (s KeySet) Has(key string) bool {
	i := sort.SearchStrings(s, key)
	return i < len(s) && s[i] == key
}

// Add inserts key, keeping the set sorted. It reports whether the set
// changed.
func (s *KeySet) Add(key string) bool {
	i := sort.SearchStrings(*s, key)
	if i < len(*s) && (*s)[i] == key {
		return false
	}
	*s = append(*s, "")
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = key
	return true
}

// Remove deletes key and reports whether it was a member.
func (s *KeySet) Remove(key string) bool {
	i := sort.SearchStrings(*s, key)
	if i >= len(*s) || (*s)[i] != key {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

// Store is the root persisted aggregate: file entries, named
// collections, and the store's own metadata. It carries tags, comment,
// and timestamps exactly like a file entry.
type Store struct {
	Files       map[string]*Meta   `json:"files" msgpack:"files"`
	Collections map[string]*KeySet `json:"collections" msgpack:"collections"`
	Meta        `msgpack:",inline"`
}

// New returns an empty store stamped with the current time.
func New() *Store {
	return &Store{
		Files:       map[string]*Meta{},
		Collections: map[string]*KeySet{},
		Meta:        *NewMeta(),
	}
}

// Entry returns the file entry for key.
func (s *Store) Entry(key string) (*Meta, bool) {
	m, ok := s.Files[key]
	return m, ok
}

// EntryOrCreate returns the entry for key, creating an empty one when
// absent. created reports whether a new entry was made.
func (s *Store) EntryOrCreate(key string) (m *Meta, created bool) {
	if m, ok := s.Files[key]; ok {
		return m, false
	}
	m = NewMeta()
	s.Files[key] = m
	return m, true
}

// RemoveEntry deletes the entry for key and returns it.
func (s *Store) RemoveEntry(key string) (*Meta, bool) {
	m, ok := s.Files[key]
	if ok {
		delete(s.Files, key)
	}
	return m, ok
}

// Rename moves the entry at current to renamed. It fails with
// ErrEntryNotFound when current has no entry and with ErrEntryExists
// when renamed already has one; in both cases the store is unchanged.
func (s *Store) Rename(current, renamed string) error {
	found, ok := s.Files[current]
	if !ok {
		return ErrEntryNotFound
	}
	if _, taken := s.Files[renamed]; taken {
		return ErrEntryExists
	}
	delete(s.Files, current)
	s.Files[renamed] = found
	return nil
}

// FileKeys returns the entry keys in sorted order.
func (s *Store) FileKeys() []string {
	keys := make([]string, 0, len(s.Files))
	for k := range s.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Collection returns the named collection.
func (s *Store) Collection(name string) (*KeySet, bool) {
	c, ok := s.Collections[name]
	return c, ok
}

// CreateCollection makes an empty collection. It reports false when the
// name is already taken.
func (s *Store) CreateCollection(name string) bool {
	if _, ok := s.Collections[name]; ok {
		return false
	}
	s.Collections[name] = &KeySet{}
	return true
}

// RemoveCollection deletes the named collection and returns its
// members.
func (s *Store) RemoveCollection(name string) (KeySet, bool) {
	c, ok := s.Collections[name]
	if !ok {
		return nil, false
	}
	delete(s.Collections, name)
	return *c, true
}

// CollectionNames returns the collection names in sorted order.
func (s *Store) CollectionNames() []string {
	names := make([]string, 0, len(s.Collections))
	for name := range s.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
