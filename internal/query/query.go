// Package query filters and orders store entries for listing.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mstonestreet/fsm/internal/store"
)

// SortBy names one criterion of a composite sort.
type SortBy int

const (
	ByName SortBy = iota
	ByDate // effective modified time: updated when set, else created
	ByCreated
	ByUpdated
)

// ParseSortBy parses one --sort-by criterion.
func ParseSortBy(s string) (SortBy, error) {
	switch strings.ToLower(s) {
	case "name":
		return ByName, nil
	case "date":
		return ByDate, nil
	case "created":
		return ByCreated, nil
	case "updated":
		return ByUpdated, nil
	}
	return 0, fmt.Errorf("unknown sort criterion %q (expected name, date, created, or updated)", s)
}

// ParseSortList parses a --sort-by flag value list.
func ParseSortList(values []string) ([]SortBy, error) {
	criteria := make([]SortBy, 0, len(values))
	for _, v := range values {
		by, err := ParseSortBy(v)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, by)
	}
	return criteria, nil
}

// Filter holds conjunctive tag requirements: an entry passes only when
// it carries every include tag and none of the exclude tags.
type Filter struct {
	Include []string
	Exclude []string
}

// Match applies the filter to one metadata container.
func (f Filter) Match(m *store.Meta) bool {
	for _, name := range f.Include {
		if _, ok := m.Tags[name]; !ok {
			return false
		}
	}
	for _, name := range f.Exclude {
		if _, ok := m.Tags[name]; ok {
			return false
		}
	}
	return true
}

// Item pairs a display key with its metadata container.
type Item struct {
	Key  string
	Meta *store.Meta
}

// Result accumulates matching items, keeping them ordered under the
// composite comparator. Each Insert is a binary-search insertion, which
// keeps ties in insertion order.
type Result struct {
	items  []Item
	sortBy []SortBy
}

// NewResult returns an empty result ordered by the given criteria.
func NewResult(sortBy []SortBy) *Result {
	return &Result{sortBy: sortBy}
}

// Insert places the item at its sorted position.
func (r *Result) Insert(key string, m *store.Meta) {
	item := Item{Key: key, Meta: m}
	i := sort.Search(len(r.items), func(i int) bool {
		return compare(r.items[i], item, r.sortBy) > 0
	})
	r.items = append(r.items, Item{})
	copy(r.items[i+1:], r.items[i:])
	r.items[i] = item
}

// Items returns the ordered results.
func (r *Result) Items() []Item { return r.items }

// Len returns the number of accumulated items.
func (r *Result) Len() int { return len(r.items) }

// compare evaluates the criteria left to right, moving to the next one
// only on exact equality.
func compare(a, b Item, sortBy []SortBy) int {
	for _, by := range sortBy {
		var c int
		switch by {
		case ByName:
			c = strings.Compare(a.Key, b.Key)
		case ByDate:
			c = a.Meta.ModifiedAt().Compare(b.Meta.ModifiedAt())
		case ByCreated:
			c = a.Meta.Created.Compare(b.Meta.Created)
		case ByUpdated:
			c = compareUpdated(a.Meta.Updated, b.Meta.Updated)
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareUpdated orders entries that lack an updated timestamp after
// every entry that has one.
func compareUpdated(a, b *time.Time) int {
	switch {
	case a != nil && b != nil:
		return a.Compare(*b)
	case a != nil:
		return -1
	case b != nil:
		return 1
	default:
		return 0
	}
}
