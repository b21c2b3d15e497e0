package store

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/vmihailenco/msgpack/v5"
)

// TagMap maps tag names to optional values. A nil value is a
// presence-only tag.
type TagMap map[string]*TagValue

// Keys returns the tag names in sorted order.
func (m TagMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every tag from other into m, overwriting existing names.
func (m TagMap) Merge(other TagMap) {
	for k, v := range other {
		m[k] = v
	}
}

// invalidKeyChars are rejected in tag names in addition to control and
// whitespace runes. They collide with the CLI tag syntax.
const invalidKeyChars = `\:,!`

// ValidKey reports whether name is usable as a tag name.
func ValidKey(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) || strings.ContainsRune(invalidKeyChars, r) {
			return false
		}
	}
	return true
}

// TagKind discriminates the TagValue union.
type TagKind int

const (
	KindNumber TagKind = iota
	KindBool
	KindURL
	KindSimple
)

// TagValue is the payload of a tag: an integer, a boolean, a URL, or a
// plain string. The zero value is the empty plain string.
type TagValue struct {
	kind TagKind
	num  int64
	b    bool
	url  *url.URL
	str  string
}

// Number returns an integer tag value.
func Number(v int64) *TagValue { return &TagValue{kind: KindNumber, num: v} }

// Bool returns a boolean tag value.
func Bool(v bool) *TagValue { return &TagValue{kind: KindBool, b: v} }

// URL returns a URL tag value.
func URL(u *url.URL) *TagValue { return &TagValue{kind: KindURL, url: u} }

// Simple returns a plain-string tag value.
func Simple(s string) *TagValue { return &TagValue{kind: KindSimple, str: s} }

// Kind returns the union discriminant.
func (v *TagValue) Kind() TagKind { return v.kind }

// Num returns the integer payload; valid only for KindNumber.
func (v *TagValue) Num() int64 { return v.num }

// AsURL returns the URL payload, or nil for non-URL values.
func (v *TagValue) AsURL() *url.URL {
	if v.kind != KindURL {
		return nil
	}
	return v.url
}

func (v *TagValue) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindURL:
		return v.url.String()
	default:
		return v.str
	}
}

// SniffValue parses a raw tag value by trying integer, then boolean,
// then URL, falling back to a plain string.
func SniffValue(raw string) *TagValue {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Number(n)
	}
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		return URL(u)
	}
	return Simple(raw)
}

// ParseNumberValue parses raw as an integer tag value and fails on
// anything else.
func ParseNumberValue(raw string) (*TagValue, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number provided: %q", raw)
	}
	return Number(n), nil
}

// ParseBoolValue parses raw as a boolean tag value. Only the literals
// "true" and "false" are accepted.
func ParseBoolValue(raw string) (*TagValue, error) {
	switch raw {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return nil, fmt.Errorf("invalid bool provided: %q", raw)
}

// ParseURLValue parses raw as an absolute URL tag value.
func ParseURLValue(raw string) (*TagValue, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url provided: %v", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("invalid url provided: %q has no scheme", raw)
	}
	return URL(u), nil
}

// Tag is a parsed name/value pair. Value is nil for presence-only tags.
type Tag struct {
	Name  string
	Value *TagValue
}

// splitTag separates a raw "name:value" argument. An empty name is an
// error; ok reports whether a value part was present at all.
func splitTag(arg string) (name, value string, ok bool, err error) {
	if arg == "" {
		return "", "", false, fmt.Errorf("tag is empty")
	}
	name, value, ok = strings.Cut(arg, ":")
	if name == "" {
		return "", "", false, fmt.Errorf("tag name is empty")
	}
	if !ValidKey(name) {
		return "", "", false, fmt.Errorf("tag name %q contains invalid characters", name)
	}
	return name, value, ok, nil
}

// ParseTag parses a raw tag argument, sniffing the value type. "name"
// and "name:" are presence-only tags.
func ParseTag(arg string) (Tag, error) {
	name, value, _, err := splitTag(arg)
	if err != nil {
		return Tag{}, err
	}
	if value == "" {
		return Tag{Name: name}, nil
	}
	return Tag{Name: name, Value: SniffValue(value)}, nil
}

// parseTypedTag parses a "name:value" argument whose value must satisfy
// the given typed constructor.
func parseTypedTag(arg string, parse func(string) (*TagValue, error)) (Tag, error) {
	name, value, hadSep, err := splitTag(arg)
	if err != nil {
		return Tag{}, err
	}
	if !hadSep {
		return Tag{}, fmt.Errorf("missing tag value")
	}
	if value == "" {
		return Tag{}, fmt.Errorf("missing tag value")
	}
	v, err := parse(value)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, Value: v}, nil
}

// ParseURLTag parses a tag argument whose value must be an absolute URL.
func ParseURLTag(arg string) (Tag, error) { return parseTypedTag(arg, ParseURLValue) }

// ParseNumberTag parses a tag argument whose value must be an integer.
func ParseNumberTag(arg string) (Tag, error) { return parseTypedTag(arg, ParseNumberValue) }

// ParseBoolTag parses a tag argument whose value must be a boolean.
func ParseBoolTag(arg string) (Tag, error) { return parseTypedTag(arg, ParseBoolValue) }

// Wire names of the TagValue union variants. The on-disk form is an
// externally tagged single-key map in every format.
const (
	wireNumber = "Number"
	wireBool   = "Bool"
	wireURL    = "Url"
	wireSimple = "Simple"
)

func (v *TagValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(map[string]int64{wireNumber: v.num})
	case KindBool:
		return json.Marshal(map[string]bool{wireBool: v.b})
	case KindURL:
		return json.Marshal(map[string]string{wireURL: v.url.String()})
	default:
		return json.Marshal(map[string]string{wireSimple: v.str})
	}
}

func (v *TagValue) UnmarshalJSON(data []byte) error {
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire) != 1 {
		return fmt.Errorf("tag value must have exactly one variant, got %d", len(wire))
	}
	for variant, raw := range wire {
		switch variant {
		case wireNumber:
			v.kind = KindNumber
			return json.Unmarshal(raw, &v.num)
		case wireBool:
			v.kind = KindBool
			return json.Unmarshal(raw, &v.b)
		case wireURL:
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			return v.setURL(s)
		case wireSimple:
			v.kind = KindSimple
			return json.Unmarshal(raw, &v.str)
		default:
			return fmt.Errorf("unknown tag value variant %q", variant)
		}
	}
	return nil
}

func (v *TagValue) setURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url tag value: %w", err)
	}
	v.kind = KindURL
	v.url = u
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder with the same
// externally tagged shape as the JSON form.
func (v *TagValue) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(1); err != nil {
		return err
	}
	switch v.kind {
	case KindNumber:
		if err := enc.EncodeString(wireNumber); err != nil {
			return err
		}
		return enc.EncodeInt64(v.num)
	case KindBool:
		if err := enc.EncodeString(wireBool); err != nil {
			return err
		}
		return enc.EncodeBool(v.b)
	case KindURL:
		if err := enc.EncodeString(wireURL); err != nil {
			return err
		}
		return enc.EncodeString(v.url.String())
	default:
		if err := enc.EncodeString(wireSimple); err != nil {
			return err
		}
		return enc.EncodeString(v.str)
	}
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (v *TagValue) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("tag value must have exactly one variant, got %d", n)
	}
	variant, err := dec.DecodeString()
	if err != nil {
		return err
	}
	switch variant {
	case wireNumber:
		v.kind = KindNumber
		v.num, err = dec.DecodeInt64()
		return err
	case wireBool:
		v.kind = KindBool
		v.b, err = dec.DecodeBool()
		return err
	case wireURL:
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		return v.setURL(s)
	case wireSimple:
		v.kind = KindSimple
		v.str, err = dec.DecodeString()
		return err
	default:
		return fmt.Errorf("unknown tag value variant %q", variant)
	}
}
