package qs

import (
	"strconv"
	"strings"
)

// Entry is one flattened key with its values. Values is nil for a bare key
// (strict null handling) and holds several items only in Comma format.
type Entry struct {
	Key    string
	Values []string
}

// Stringifier turns trees back into query strings. A Stringifier is
// immutable and safe for concurrent use.
type Stringifier struct {
	opts StringifyOptions
}

func NewStringifier(opts StringifyOptions) (*Stringifier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Encoder == nil {
		opts.Encoder = FormEncoder{}
	}
	return &Stringifier{opts: opts}, nil
}

// Options returns a copy of the stringifier configuration.
func (s *Stringifier) Options() StringifyOptions { return s.opts }

var defaultStringifier, _ = NewStringifier(DefaultStringifyOptions())

// Stringify writes v with the default options.
func Stringify(v Value) string {
	return defaultStringifier.Stringify(v)
}

// Stringify writes v as a query string. Only Dict and Array roots produce
// output; an Array root uses its indices as keys.
func (s *Stringifier) Stringify(v Value) string {
	entries := s.Entries(v)
	parts := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		parts = append(parts, s.writeEntry(e))
	}
	if len(parts) == 0 {
		return ""
	}
	if s.opts.CharsetSentinel {
		parts = append([]string{sentinelFor(s.opts.Charset)}, parts...)
	}

	out := strings.Join(parts, s.opts.Delimiter)
	if s.opts.AddQueryPrefix {
		out = "?" + out
	}
	return out
}

// Entries flattens v into ordered, unencoded entries.
func (s *Stringifier) Entries(v Value) []Entry {
	var out []Entry
	switch t := v.(type) {
	case *Dict:
		s.walk("", t, &out)
	case *Array:
		t.Each(func(i int, elem Value) bool {
			s.walk(strconv.Itoa(i), elem, &out)
			return true
		})
	}
	return out
}

func (s *Stringifier) walk(prefix string, v Value, out *[]Entry) {
	switch t := v.(type) {
	case nil:
		return
	case Null:
		if s.opts.SkipNulls {
			return
		}
		if s.opts.StrictNullHandling {
			*out = append(*out, Entry{Key: prefix})
			return
		}
		*out = append(*out, Entry{Key: prefix, Values: []string{""}})
	case String, Int, Bool:
		text, _ := scalarText(t)
		*out = append(*out, Entry{Key: prefix, Values: []string{text}})
	case *Dict:
		for _, e := range t.entries {
			if _, isNull := e.value.(Null); isNull && s.opts.SkipNulls {
				continue
			}
			s.walk(s.childKey(prefix, e.key.String()), e.value, out)
		}
	case *Array:
		s.walkArray(prefix, t, out)
	}
}

func (s *Stringifier) walkArray(prefix string, a *Array, out *[]Entry) {
	format := s.opts.format()
	if format == Comma {
		vals := make([]string, 0, a.Len())
		a.Each(func(_ int, elem Value) bool {
			vals = append(vals, s.flatText(elem))
			return true
		})
		if len(vals) == 0 {
			return
		}
		key := prefix
		if s.opts.CommaRoundTrip && len(vals) == 1 {
			key += "[]"
		}
		*out = append(*out, Entry{Key: key, Values: vals})
		return
	}

	a.Each(func(i int, elem Value) bool {
		var key string
		switch {
		case prefix == "":
			key = strconv.Itoa(i)
		case format == Brackets:
			key = prefix + "[]"
		case format == Repeat:
			key = prefix
		default:
			key = prefix + "[" + strconv.Itoa(i) + "]"
		}
		s.walk(key, elem, out)
		return true
	})
}

func (s *Stringifier) childKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case s.opts.AllowDots:
		return prefix + "." + key
	default:
		return prefix + "[" + key + "]"
	}
}

// flatText renders an array element as a single string for Comma format.
// Dicts cannot be flattened and are replaced by the placeholder.
func (s *Stringifier) flatText(v Value) string {
	switch t := v.(type) {
	case *Dict:
		return s.opts.DictPlaceholder
	case *Array:
		parts := make([]string, 0, t.Len())
		t.Each(func(_ int, elem Value) bool {
			parts = append(parts, s.flatText(elem))
			return true
		})
		return strings.Join(parts, ",")
	}
	text, _ := scalarText(v)
	return text
}

func (s *Stringifier) writeEntry(e Entry) string {
	key := e.Key
	if !s.opts.EncodeValuesOnly {
		key = s.encode(key, RoleKey)
	}
	if e.Values == nil {
		return key
	}

	var val string
	if s.opts.EncodeValuesOnly {
		enc := make([]string, len(e.Values))
		for i, v := range e.Values {
			enc[i] = s.encode(v, RoleValue)
		}
		val = strings.Join(enc, ",")
	} else {
		val = s.encode(strings.Join(e.Values, ","), RoleValue)
	}
	return key + "=" + val
}

func (s *Stringifier) encode(text string, role Role) string {
	if !s.opts.Encode {
		return text
	}
	return s.opts.Encoder.Encode(text, s.opts.Charset, role)
}
