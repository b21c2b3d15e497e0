package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Format identifies the on-disk encoding of the store body. It is
// chosen at creation time and discovered by filename afterwards, never
// stored as a field.
type Format int

const (
	FormatPrettyJSON Format = iota
	FormatJSON
	FormatBinary
)

// Formats lists every supported format in discovery priority order.
var Formats = [...]Format{FormatPrettyJSON, FormatJSON, FormatBinary}

// MarkerDir is the well-known directory whose presence roots a store.
const MarkerDir = ".fsm"

const (
	prettyJSONFile = "db.pretty.json"
	jsonFile       = "db.json"
	binaryFile     = "db.bin"
)

// FileName returns the fixed body filename for the format.
func (f Format) FileName() string {
	switch f {
	case FormatPrettyJSON:
		return prettyJSONFile
	case FormatJSON:
		return jsonFile
	default:
		return binaryFile
	}
}

func (f Format) String() string {
	switch f {
	case FormatPrettyJSON:
		return "json-pretty"
	case FormatJSON:
		return "json"
	default:
		return "binary"
	}
}

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json-pretty", "pretty":
		return FormatPrettyJSON, nil
	case "json":
		return FormatJSON, nil
	case "binary", "bin":
		return FormatBinary, nil
	}
	return 0, fmt.Errorf("unknown format %q (expected json-pretty, json, or binary)", s)
}

// Encode writes the store body to w in the format.
func (f Format) Encode(w io.Writer, s *Store) error {
	switch f {
	case FormatPrettyJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatJSON:
		return json.NewEncoder(w).Encode(s)
	default:
		return msgpack.NewEncoder(w).Encode(s)
	}
}

// Decode reads a store body from r in the format.
func (f Format) Decode(r io.Reader) (*Store, error) {
	s := New()
	var err error
	switch f {
	case FormatPrettyJSON, FormatJSON:
		err = json.NewDecoder(r).Decode(s)
	default:
		err = msgpack.NewDecoder(r).Decode(s)
	}
	if err != nil {
		return nil, err
	}
	if s.Files == nil {
		s.Files = map[string]*Meta{}
	}
	if s.Collections == nil {
		s.Collections = map[string]*KeySet{}
	}
	if s.Tags == nil {
		s.Tags = TagMap{}
	}
	for key, m := range s.Files {
		if m == nil {
			m = &Meta{}
			s.Files[key] = m
		}
		if m.Tags == nil {
			m.Tags = TagMap{}
		}
	}
	return s, nil
}
